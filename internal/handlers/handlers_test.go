package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fridgechef/internal/ai"
	"fridgechef/models"
)

func withTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	original := database
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Ingredient{},
		&models.IngredientCategory{},
		&models.RecipeHistory{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	database = db
	t.Cleanup(func() {
		database = original
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// withFakeAI points the package AI client at a stub chat completion server.
func withFakeAI(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	original := aiClient
	server := httptest.NewServer(handler)
	client, err := ai.NewClient(ai.Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("failed to build ai client: %v", err)
	}
	aiClient = client
	t.Cleanup(func() {
		aiClient = original
		server.Close()
	})
}

func mustCreateCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to create category %q: %v", name, err)
	}
	return category
}
