package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	applog "fridgechef/internal/log"
	"fridgechef/models"
)

type ingredientRequest struct {
	Name           string  `json:"name" validate:"required"`
	Quantity       float64 `json:"quantity" validate:"gte=0"`
	Unit           string  `json:"unit" validate:"required"`
	CategoryIDs    []uint  `json:"categoryIds"`
	ExpirationDate string  `json:"expirationDate"`
}

type categoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ingredientResponse struct {
	ID              uint               `json:"id"`
	Name            string             `json:"name"`
	Quantity        float64            `json:"quantity"`
	Unit            string             `json:"unit"`
	ExpirationDate  *time.Time         `json:"expirationDate,omitempty"`
	NutritionalInfo json.RawMessage    `json:"nutritionalInfo,omitempty"`
	Categories      []categoryResponse `json:"categories"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// IngredientCollection handles the list, create, and legacy query-parameter
// delete forms of /api/ingredients.
func IngredientCollection(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "ingredient request without database")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	switch r.Method {
	case http.MethodGet:
		listIngredients(w, r)
	case http.MethodPost:
		createIngredient(w, r)
	case http.MethodDelete:
		legacyDeleteIngredient(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// IngredientResource handles /api/ingredients/{id} and the nutrition
// subresource.
func IngredientResource(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "ingredient request without database")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/ingredients")
	path = strings.Trim(path, "/")

	if path == "" {
		IngredientCollection(w, r)
		return
	}

	segments := strings.Split(path, "/")
	idValue, err := strconv.ParseUint(segments[0], 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid ingredient identifier", "identifier", segments[0], "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid ingredient id")
		return
	}
	ingredientID := uint(idValue)

	if len(segments) > 1 && segments[1] == "nutrition" {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		ingredientNutrition(w, r, ingredientID)
		return
	}

	switch r.Method {
	case http.MethodGet:
		showIngredient(w, r, ingredientID)
	case http.MethodPut:
		updateIngredient(w, r, ingredientID)
	case http.MethodDelete:
		removeIngredient(w, r, ingredientID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listIngredients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var results []models.Ingredient
	if err := database.WithContext(ctx).
		Preload("Categories.Category").
		Order("name asc").
		Find(&results).Error; err != nil {
		applog.Error(ctx, "failed to list ingredients", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load ingredients")
		return
	}

	responses := make([]ingredientResponse, 0, len(results))
	for _, ingredient := range results {
		responses = append(responses, projectIngredient(ingredient))
	}
	writeJSON(w, http.StatusOK, responses)
}

func showIngredient(w http.ResponseWriter, r *http.Request, ingredientID uint) {
	ctx := r.Context()
	var ingredient models.Ingredient
	if err := database.WithContext(ctx).
		Preload("Categories.Category").
		First(&ingredient, ingredientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSONError(w, http.StatusNotFound, "ingredient not found")
			return
		}
		applog.Error(ctx, "failed to load ingredient", "error", err, "id", ingredientID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load ingredient")
		return
	}

	writeJSON(w, http.StatusOK, projectIngredient(ingredient))
}

func createIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload ingredientRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid ingredient create payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := validate.Struct(payload); err != nil {
		applog.Debug(ctx, "ingredient validation failed", "error", err)
		writeJSONError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	expiration, err := parseExpirationDate(payload.ExpirationDate)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	categoryIDs := uniqueCategoryIDs(payload.CategoryIDs)
	if err := ensureCategoriesExist(ctx, categoryIDs); err != nil {
		applog.Debug(ctx, "ingredient references unknown category", "error", err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	ingredient := models.Ingredient{
		Name:           strings.TrimSpace(payload.Name),
		Quantity:       payload.Quantity,
		Unit:           strings.TrimSpace(payload.Unit),
		ExpirationDate: expiration,
	}

	err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ingredient).Error; err != nil {
			return err
		}
		return createCategoryLinks(tx, ingredient.ID, categoryIDs)
	})
	if err != nil {
		applog.Error(ctx, "failed to create ingredient", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to create ingredient")
		return
	}

	if err := database.WithContext(ctx).
		Preload("Categories.Category").
		First(&ingredient, ingredient.ID).Error; err != nil {
		applog.Error(ctx, "failed to reload created ingredient", "error", err, "id", ingredient.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load ingredient")
		return
	}

	writeJSON(w, http.StatusCreated, projectIngredient(ingredient))
}

func updateIngredient(w http.ResponseWriter, r *http.Request, ingredientID uint) {
	ctx := r.Context()
	var existing models.Ingredient
	if err := database.WithContext(ctx).First(&existing, ingredientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSONError(w, http.StatusNotFound, "ingredient not found")
			return
		}
		applog.Error(ctx, "failed to load ingredient for update", "error", err, "id", ingredientID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load ingredient")
		return
	}

	var payload ingredientRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid ingredient update payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := validate.Struct(payload); err != nil {
		applog.Debug(ctx, "ingredient update validation failed", "error", err)
		writeJSONError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	expiration, err := parseExpirationDate(payload.ExpirationDate)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	categoryIDs := uniqueCategoryIDs(payload.CategoryIDs)
	if err := ensureCategoriesExist(ctx, categoryIDs); err != nil {
		applog.Debug(ctx, "ingredient update references unknown category", "error", err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	updates := map[string]any{
		"name":            strings.TrimSpace(payload.Name),
		"quantity":        payload.Quantity,
		"unit":            strings.TrimSpace(payload.Unit),
		"expiration_date": expiration,
	}

	// The category set is replaced wholesale: every existing link is removed
	// before the requested set is written, never merged.
	err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("ingredient_id = ?", ingredientID).
			Delete(&models.IngredientCategory{}).Error; err != nil {
			return err
		}
		return createCategoryLinks(tx, ingredientID, categoryIDs)
	})
	if err != nil {
		applog.Error(ctx, "failed to update ingredient", "error", err, "id", ingredientID)
		writeJSONError(w, http.StatusInternalServerError, "unable to update ingredient")
		return
	}

	if err := database.WithContext(ctx).
		Preload("Categories.Category").
		First(&existing, ingredientID).Error; err != nil {
		applog.Error(ctx, "failed to reload updated ingredient", "error", err, "id", ingredientID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load updated ingredient")
		return
	}

	writeJSON(w, http.StatusOK, projectIngredient(existing))
}

func legacyDeleteIngredient(w http.ResponseWriter, r *http.Request) {
	idParam := strings.TrimSpace(r.URL.Query().Get("id"))
	if idParam == "" {
		writeJSONError(w, http.StatusBadRequest, "ingredient id is required")
		return
	}
	idValue, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid ingredient id")
		return
	}
	removeIngredient(w, r, uint(idValue))
}

func removeIngredient(w http.ResponseWriter, r *http.Request, ingredientID uint) {
	ctx := r.Context()
	var ingredient models.Ingredient
	if err := database.WithContext(ctx).First(&ingredient, ingredientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSONError(w, http.StatusNotFound, "ingredient not found")
			return
		}
		applog.Error(ctx, "failed to load ingredient for delete", "error", err, "id", ingredientID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load ingredient")
		return
	}

	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ingredient_id = ?", ingredientID).
			Delete(&models.IngredientCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ingredient).Error
	})
	if err != nil {
		applog.Error(ctx, "failed to delete ingredient", "error", err, "id", ingredientID)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete ingredient")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseExpirationDate(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	if parsed, err := time.Parse("2006-01-02", trimmed); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return nil, fmt.Errorf("expirationDate must be an ISO date")
	}
	return &parsed, nil
}

func uniqueCategoryIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

func ensureCategoriesExist(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var count int64
	if err := database.WithContext(ctx).
		Model(&models.Category{}).
		Where("id IN ?", ids).
		Count(&count).Error; err != nil {
		return fmt.Errorf("unable to verify categories")
	}
	if count != int64(len(ids)) {
		return fmt.Errorf("one or more category ids do not exist")
	}
	return nil
}

func createCategoryLinks(tx *gorm.DB, ingredientID uint, categoryIDs []uint) error {
	for _, categoryID := range categoryIDs {
		link := models.IngredientCategory{
			IngredientID: ingredientID,
			CategoryID:   categoryID,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func projectIngredient(ingredient models.Ingredient) ingredientResponse {
	categories := make([]categoryResponse, 0, len(ingredient.Categories))
	for _, link := range ingredient.Categories {
		if link.Category == nil {
			continue
		}
		categories = append(categories, categoryResponse{
			ID:          link.Category.ID,
			Name:        link.Category.Name,
			Description: link.Category.Description,
		})
	}

	response := ingredientResponse{
		ID:             ingredient.ID,
		Name:           ingredient.Name,
		Quantity:       ingredient.Quantity,
		Unit:           ingredient.Unit,
		ExpirationDate: ingredient.ExpirationDate,
		Categories:     categories,
		CreatedAt:      ingredient.CreatedAt,
		UpdatedAt:      ingredient.UpdatedAt,
	}
	if strings.TrimSpace(ingredient.NutritionalInfo) != "" {
		response.NutritionalInfo = json.RawMessage(ingredient.NutritionalInfo)
	}
	return response
}
