package editor

import (
	"fmt"
	"testing"
	"time"

	"github.com/kronika/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDraftTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:editor-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&db.ArticleDraft{}))
	return gdb
}

func sampleSnapshot(title string) Snapshot {
	id := uint(7)
	return Snapshot{
		Title:      db.LocalizedText{EN: title, PL: title},
		Content:    db.LocalizedText{EN: "<p>body</p>", PL: "<p>treść</p>"},
		CategoryID: &id,
		CoverURL:   "/static/uploads/cover.jpg",
	}
}

func TestKeyStringUsesCreateBucket(t *testing.T) {
	key := Key{Locale: "en", Mode: ModeCreate, Slug: "ignored"}
	require.Equal(t, "en:create:new", key.String())

	key = Key{Locale: "pl", Mode: ModeEdit, Slug: "my-slug"}
	require.Equal(t, "pl:edit:my-slug", key.String())
}

func TestStoreSaveLoadClear(t *testing.T) {
	store := NewStore(setupDraftTestDB(t))
	key := Key{Locale: "en", Mode: ModeEdit, Slug: "my-slug"}

	_, found, err := store.Load(key)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Save(key, sampleSnapshot("Draft Title")))

	loaded, found, err := store.Load(key)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Draft Title", loaded.Title.EN)

	// Saving again overwrites in place.
	require.NoError(t, store.Save(key, sampleSnapshot("Second Title")))
	loaded, found, err = store.Load(key)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Second Title", loaded.Title.EN)

	require.NoError(t, store.Clear(key))
	_, found, err = store.Load(key)
	require.NoError(t, err)
	require.False(t, found)
}

func TestStoreMalformedPayloadReadsAsAbsent(t *testing.T) {
	gdb := setupDraftTestDB(t)
	store := NewStore(gdb)
	key := Key{Locale: "en", Mode: ModeEdit, Slug: "broken"}

	require.NoError(t, gdb.Create(&db.ArticleDraft{
		Key:           key.String(),
		Payload:       "{not json",
		SchemaVersion: SchemaVersion,
		SavedAt:       time.Now(),
	}).Error)

	_, found, err := store.Load(key)
	require.NoError(t, err)
	require.False(t, found)
}

func TestStoreVersionMismatchReadsAsAbsent(t *testing.T) {
	gdb := setupDraftTestDB(t)
	store := NewStore(gdb)
	key := Key{Locale: "en", Mode: ModeEdit, Slug: "old"}

	require.NoError(t, gdb.Create(&db.ArticleDraft{
		Key:           key.String(),
		Payload:       `{"version":99,"snapshot":{}}`,
		SchemaVersion: 99,
		SavedAt:       time.Now(),
	}).Error)

	_, found, err := store.Load(key)
	require.NoError(t, err)
	require.False(t, found)
}

func TestStoreMigrateMovesDraftToNewSlug(t *testing.T) {
	store := NewStore(setupDraftTestDB(t))
	from := Key{Locale: "en", Mode: ModeEdit, Slug: "old-slug"}
	to := Key{Locale: "en", Mode: ModeEdit, Slug: "new-slug"}

	require.NoError(t, store.Save(from, sampleSnapshot("Moving")))
	require.NoError(t, store.Migrate(from, to))

	_, found, err := store.Load(from)
	require.NoError(t, err)
	require.False(t, found)

	loaded, found, err := store.Load(to)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Moving", loaded.Title.EN)
}

func TestStoreMigrateToSameKeyKeepsDraft(t *testing.T) {
	store := NewStore(setupDraftTestDB(t))
	key := Key{Locale: "en", Mode: ModeEdit, Slug: "news-2"}

	require.NoError(t, store.Save(key, sampleSnapshot("Staying")))
	require.NoError(t, store.Migrate(key, key))

	loaded, found, err := store.Load(key)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Staying", loaded.Title.EN)
}

func TestStoreMigrateWithoutDraftIsNoop(t *testing.T) {
	store := NewStore(setupDraftTestDB(t))
	from := Key{Locale: "en", Mode: ModeEdit, Slug: "nothing"}
	to := Key{Locale: "en", Mode: ModeEdit, Slug: "elsewhere"}

	require.NoError(t, store.Migrate(from, to))
	_, found, err := store.Load(to)
	require.NoError(t, err)
	require.False(t, found)
}
