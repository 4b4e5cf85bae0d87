package models

// IngredientCategory links an ingredient to a category. The pair is the whole
// identity; rows are owned by the ingredient's create/update operations and
// are replaced wholesale whenever the category set changes.
type IngredientCategory struct {
	ID           uint `gorm:"primarykey" json:"id"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_ingredient_category" json:"ingredientId"`
	CategoryID   uint `gorm:"not null;uniqueIndex:idx_ingredient_category" json:"categoryId"`

	// Preloadable so responses can flatten join rows to plain categories.
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
