package models

import (
	"time"
)

// Category groups ingredients for browsing and for recipe prompts.
// Rows are hard-deleted so a removed category name can be reused without
// tripping the unique index.
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
