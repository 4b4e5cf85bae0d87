package mock

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fridgechef/internal/db"
	applog "fridgechef/internal/log"
	"fridgechef/models"
)

// New returns an in-memory sqlite database seeded with a representative
// fridge: the default categories plus a handful of ingredients and one
// past suggestion.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := gorm.Open(sqlite.Open("file:fridgechef-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	if err := db.SeedDefaultCategories(ctx, database); err != nil {
		return err
	}

	var dairy, produce, pantry models.Category
	if err := database.WithContext(ctx).Where("name = ?", "Dairy").First(&dairy).Error; err != nil {
		return err
	}
	if err := database.WithContext(ctx).Where("name = ?", "Produce").First(&produce).Error; err != nil {
		return err
	}
	if err := database.WithContext(ctx).Where("name = ?", "Pantry").First(&pantry).Error; err != nil {
		return err
	}

	soon := time.Now().UTC().AddDate(0, 0, 3)
	nextWeek := time.Now().UTC().AddDate(0, 0, 7)

	milk := models.Ingredient{Name: "Milk", Quantity: 1, Unit: "L", ExpirationDate: &soon}
	spinach := models.Ingredient{Name: "Spinach", Quantity: 200, Unit: "g", ExpirationDate: &nextWeek}
	rice := models.Ingredient{Name: "Rice", Quantity: 2, Unit: "kg"}

	ingredients := []*models.Ingredient{&milk, &spinach, &rice}
	for _, ingredient := range ingredients {
		if err := database.WithContext(ctx).Create(ingredient).Error; err != nil {
			return err
		}
	}

	links := []models.IngredientCategory{
		{IngredientID: milk.ID, CategoryID: dairy.ID},
		{IngredientID: spinach.ID, CategoryID: produce.ID},
		{IngredientID: rice.ID, CategoryID: pantry.ID},
	}
	for _, link := range links {
		linkCopy := link
		if err := database.WithContext(ctx).Create(&linkCopy).Error; err != nil {
			return err
		}
	}

	history := models.RecipeHistory{
		Suggestion:  "1. Spinach fried rice\n2. Creamed spinach\n3. Rice pudding",
		Ingredients: `[{"name":"Spinach","quantity":200,"unit":"g"},{"name":"Rice","quantity":2,"unit":"kg"}]`,
		Options:     `{"skillLevel":"beginner","servings":2}`,
	}
	if err := database.WithContext(ctx).Create(&history).Error; err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
