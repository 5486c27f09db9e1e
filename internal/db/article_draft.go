package db

import (
	"time"

	"gorm.io/gorm"
)

// ArticleDraft stores an unsaved edit snapshot for one editing session,
// keyed by locale, mode and slug. The payload is an opaque JSON blob owned
// by the editor package; a blob that fails to decode is treated as absent.
type ArticleDraft struct {
	gorm.Model
	Key           string `gorm:"uniqueIndex;not null"`
	Payload       string `gorm:"type:text"`
	SchemaVersion int
	SavedAt       time.Time
}
