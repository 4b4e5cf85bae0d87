package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	applog "fridgechef/internal/log"
	"fridgechef/models"
)

// ingredientNutrition returns per-100g nutrition facts for an ingredient.
// The first successful lookup is cached on the row so repeat requests skip
// the model entirely.
func ingredientNutrition(w http.ResponseWriter, r *http.Request, ingredientID uint) {
	ctx := r.Context()
	var ingredient models.Ingredient
	if err := database.WithContext(ctx).First(&ingredient, ingredientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSONError(w, http.StatusNotFound, "ingredient not found")
			return
		}
		applog.Error(ctx, "failed to load ingredient for nutrition lookup", "error", err, "id", ingredientID)
		writeJSONError(w, http.StatusInternalServerError, "unable to load ingredient")
		return
	}

	if ingredient.NutritionalInfo != "" {
		writeJSON(w, http.StatusOK, json.RawMessage(ingredient.NutritionalInfo))
		return
	}

	if aiClient == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "suggestions are not configured")
		return
	}

	nutrition, err := aiClient.FetchNutrition(ctx, ingredient.Name)
	if err != nil {
		applog.Error(ctx, "nutrition lookup failed", "error", err, "ingredient", ingredient.Name)
		writeJSONError(w, http.StatusInternalServerError, "failed to fetch nutritional information")
		return
	}

	encoded, err := json.Marshal(nutrition)
	if err != nil {
		applog.Error(ctx, "failed to encode nutrition payload", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to fetch nutritional information")
		return
	}

	if err := database.WithContext(ctx).
		Model(&ingredient).
		Update("nutritional_info", string(encoded)).Error; err != nil {
		applog.Error(ctx, "failed to cache nutrition payload", "error", err, "id", ingredientID)
	}

	writeJSON(w, http.StatusOK, nutrition)
}
