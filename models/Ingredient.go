package models

import (
	"time"
)

type Ingredient struct {
	ID              uint                 `gorm:"primarykey" json:"id"`
	Name            string               `gorm:"not null" json:"name"`
	Quantity        float64              `gorm:"not null" json:"quantity"`
	Unit            string               `gorm:"not null" json:"unit"`
	ExpirationDate  *time.Time           `json:"expirationDate,omitempty"`
	NutritionalInfo string               `gorm:"type:text" json:"nutritionalInfo,omitempty"`
	Categories      []IngredientCategory `gorm:"foreignKey:IngredientID" json:"categories"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}
