package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	applog "fridgechef/internal/log"
	"fridgechef/models"
)

type categoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// Categories handles /api/categories: listing, creation, and deletion via
// the id query parameter.
func Categories(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "category request without database")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	switch r.Method {
	case http.MethodGet:
		listCategories(w, r)
	case http.MethodPost:
		createCategory(w, r)
	case http.MethodDelete:
		deleteCategory(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var categories []models.Category
	if err := database.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		applog.Error(ctx, "failed to list categories", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load categories")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func createCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid category payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := validate.Struct(payload); err != nil {
		applog.Debug(ctx, "category validation failed", "error", err)
		writeJSONError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	name := strings.TrimSpace(payload.Name)

	var count int64
	if err := database.WithContext(ctx).
		Model(&models.Category{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		applog.Error(ctx, "failed to check category name", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to create category")
		return
	}
	if count > 0 {
		writeJSONError(w, http.StatusConflict, "a category with this name already exists")
		return
	}

	category := models.Category{
		Name:        name,
		Description: strings.TrimSpace(payload.Description),
	}
	if err := database.WithContext(ctx).Create(&category).Error; err != nil {
		applog.Error(ctx, "failed to create category", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to create category")
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

// deleteCategory removes the category and its ingredient links. The
// ingredients themselves survive with one category fewer.
func deleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idParam := strings.TrimSpace(r.URL.Query().Get("id"))
	if idParam == "" {
		writeJSONError(w, http.StatusBadRequest, "category id is required")
		return
	}
	idValue, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var category models.Category
	if err := database.WithContext(ctx).First(&category, uint(idValue)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSONError(w, http.StatusNotFound, "category not found")
			return
		}
		applog.Error(ctx, "failed to load category for delete", "error", err, "id", idValue)
		writeJSONError(w, http.StatusInternalServerError, "unable to load category")
		return
	}

	err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", category.ID).
			Delete(&models.IngredientCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		applog.Error(ctx, "failed to delete category", "error", err, "id", category.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
