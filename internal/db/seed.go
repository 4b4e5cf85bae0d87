package db

import (
	"context"
	"fmt"

	applog "fridgechef/internal/log"
	"fridgechef/models"

	"gorm.io/gorm"
)

// DefaultCategories is the stock set of grocery categories installed by the
// seed command. Seeding upserts by name, so running it repeatedly is safe.
var DefaultCategories = []models.Category{
	{Name: "Produce", Description: "Fresh fruits and vegetables"},
	{Name: "Dairy", Description: "Milk, cheese, yogurt, and other dairy products"},
	{Name: "Meat", Description: "Beef, pork, chicken, and other meats"},
	{Name: "Seafood", Description: "Fish, shellfish, and other seafood"},
	{Name: "Pantry", Description: "Canned goods, pasta, rice, and other dry goods"},
	{Name: "Frozen", Description: "Frozen foods and ice cream"},
	{Name: "Beverages", Description: "Water, juice, soda, and other drinks"},
	{Name: "Snacks", Description: "Chips, cookies, and other snack foods"},
	{Name: "Condiments", Description: "Sauces, spices, and other condiments"},
	{Name: "Bakery", Description: "Bread, pastries, and other baked goods"},
}

// SeedDefaultCategories installs the default category set, creating only the
// names that do not exist yet.
func SeedDefaultCategories(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database handle is nil")
	}

	for _, category := range DefaultCategories {
		record := category
		if err := db.WithContext(ctx).
			Where("name = ?", record.Name).
			FirstOrCreate(&record).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", record.Name, err)
		}
		applog.Debug(ctx, "category seeded", "name", record.Name, "id", record.ID)
	}

	return nil
}
