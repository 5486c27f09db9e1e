package editor

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/kronika/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SchemaVersion tags stored draft payloads. A payload carrying any other
// version is treated as absent.
const SchemaVersion = 1

const (
	ModeCreate = "create"
	ModeEdit   = "edit"

	// createBucket replaces the slug in create-mode keys, where no server
	// identity exists yet.
	createBucket = "new"
)

// Key identifies one editing session's draft.
type Key struct {
	Locale string
	Mode   string
	Slug   string
}

// String renders the composite storage key.
func (k Key) String() string {
	slug := strings.TrimSpace(k.Slug)
	if k.Mode == ModeCreate || slug == "" {
		slug = createBucket
	}
	return k.Locale + ":" + k.Mode + ":" + slug
}

// Snapshot is the full editable field set captured by a draft.
type Snapshot struct {
	Title         db.LocalizedText `json:"title"`
	Excerpt       db.LocalizedText `json:"excerpt"`
	Content       db.LocalizedText `json:"content"`
	CategoryID    *uint            `json:"categoryId,omitempty"`
	CoverURL      string           `json:"coverUrl,omitempty"`
	CoverPosition db.CoverPosition `json:"coverPosition,omitempty"`
	VideoURL      string           `json:"videoUrl,omitempty"`
	VideoOnly     bool             `json:"videoOnly"`
}

type storedDraft struct {
	Version  int       `json:"version"`
	SavedAt  time.Time `json:"savedAt"`
	Snapshot Snapshot  `json:"snapshot"`
}

// Store persists draft snapshots in the article_drafts table.
type Store struct {
	db *gorm.DB
}

// NewStore creates a draft store over the given database handle.
func NewStore(gdb *gorm.DB) *Store {
	return &Store{db: gdb}
}

// Save upserts the snapshot for the key, tagged with the schema version
// and a save timestamp.
func (s *Store) Save(key Key, snapshot Snapshot) error {
	payload, err := json.Marshal(storedDraft{
		Version:  SchemaVersion,
		SavedAt:  time.Now(),
		Snapshot: snapshot,
	})
	if err != nil {
		return err
	}

	draft := db.ArticleDraft{
		Key:           key.String(),
		Payload:       string(payload),
		SchemaVersion: SchemaVersion,
		SavedAt:       time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "schema_version", "saved_at", "updated_at"}),
	}).Create(&draft).Error
}

// Load returns the stored snapshot for the key. A missing row, a payload
// that fails to decode, or a schema version mismatch all read as absent:
// drafts fail open rather than blocking the editor.
func (s *Store) Load(key Key) (*Snapshot, bool, error) {
	var draft db.ArticleDraft
	if err := s.db.Where("key = ?", key.String()).First(&draft).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var stored storedDraft
	if err := json.Unmarshal([]byte(draft.Payload), &stored); err != nil {
		return nil, false, nil
	}
	if stored.Version != SchemaVersion {
		return nil, false, nil
	}
	return &stored.Snapshot, true, nil
}

// Clear deletes the draft for the key, if any.
func (s *Store) Clear(key Key) error {
	return s.db.Unscoped().Where("key = ?", key.String()).Delete(&db.ArticleDraft{}).Error
}

// Migrate moves a draft to a new key after a slug change, so an editing
// session keeps its unsaved work across the redirect.
func (s *Store) Migrate(from, to Key) error {
	if from.String() == to.String() {
		return nil
	}
	snapshot, ok, err := s.Load(from)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := s.Save(to, *snapshot); err != nil {
		return err
	}
	return s.Clear(from)
}
