package models

import (
	"time"

	"gorm.io/gorm"
)

// BlogPost is an editorial article managed from the back-office.
type BlogPost struct {
	gorm.Model
	Title       string     `gorm:"size:255;not null"    json:"title"`
	Slug        string     `gorm:"size:255;uniqueIndex" json:"slug"`
	Body        string     `gorm:"type:text"            json:"body"`
	AuthorID    uint       `gorm:"index"                json:"author_id"`
	PublishedAt *time.Time `gorm:"index"                json:"published_at,omitempty"`
}

// Setting is a key/value row for shop-wide configuration edited by admins
// (shipping copy, announcement banner, and similar).
type Setting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value string `gorm:"type:text"                     json:"value"`
}
