package models

import (
	"time"
)

// RecipeHistory is an append-only record of one suggestion request. The
// ingredient list and options are stored as serialized JSON snapshots rather
// than foreign keys, so later edits or deletions of ingredients never touch
// past entries.
type RecipeHistory struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Suggestion  string    `gorm:"type:text;not null" json:"suggestion"`
	Ingredients string    `gorm:"type:text;not null" json:"ingredients"`
	Options     string    `gorm:"type:text;not null" json:"options"`
	CreatedAt   time.Time `json:"createdAt"`
}
