package db

import "gorm.io/gorm"

// Article is the central published document. Slug is its public identity
// and changes only through explicit negotiation.
type Article struct {
	gorm.Model
	Slug          string        `gorm:"uniqueIndex;not null"`
	Title         LocalizedText `gorm:"embedded;embeddedPrefix:title_"`
	Excerpt       LocalizedText `gorm:"embedded;embeddedPrefix:excerpt_"`
	Content       LocalizedText `gorm:"embedded;embeddedPrefix:content_"`
	CategoryID    *uint
	Category      *Category
	CoverURL      string
	CoverPosition CoverPosition `gorm:"type:text"`
	VideoURL      string
	VideoOnly     bool
	ReadingTime   string
	Status        string `gorm:"default:published"`
	AuthorID      uint
	Author        User `gorm:"foreignKey:AuthorID"`
}
