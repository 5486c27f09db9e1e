package db

import "gorm.io/gorm"

// Category groups articles. Its slug is derived from the English name.
type Category struct {
	gorm.Model
	Name     LocalizedText `gorm:"embedded;embeddedPrefix:name_"`
	Slug     string        `gorm:"uniqueIndex;not null"`
	Articles []Article
}
