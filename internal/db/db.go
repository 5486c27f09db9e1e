package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the SQLite database at the given path and migrates the
// core models. The handle is returned to the caller rather than stored in
// package state so that services and handlers receive it explicitly.
func Open(databasePath string) (*gorm.DB, error) {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "kronika.db"
	}

	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := gdb.AutoMigrate(
		&User{},
		&Category{},
		&Article{},
		&ArticleDraft{},
	); err != nil {
		return nil, err
	}

	// Older rows predate the locale split and carry text only in the
	// English columns. Fill the Polish side so locale records stay total.
	for _, field := range []string{"title", "excerpt", "content"} {
		if err := gdb.Model(&Article{}).
			Where(field+"_pl = '' OR "+field+"_pl IS NULL").
			Update(field+"_pl", gorm.Expr(field+"_en")).Error; err != nil {
			return nil, err
		}
	}
	if err := gdb.Model(&Article{}).
		Where("status = '' OR status IS NULL").
		Update("status", "published").Error; err != nil {
		return nil, err
	}

	return gdb, nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
