package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"fridgechef/internal/ai"
	applog "fridgechef/internal/log"
	"fridgechef/models"
)

type suggestionRequest struct {
	Ingredients json.RawMessage `json:"ingredients"`
	Options     json.RawMessage `json:"options"`
}

// Suggestions handles POST /api/suggestions. On success the generated text
// is returned to the caller and a history entry is recorded with snapshots
// of the exact ingredients and options the prompt was built from.
func Suggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if database == nil {
		applog.Debug(r.Context(), "suggestion request without database")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	if aiClient == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "suggestions are not configured")
		return
	}

	ctx := r.Context()
	var payload suggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid suggestion payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	var ingredients []ai.RecipeIngredient
	if len(payload.Ingredients) > 0 {
		if err := json.Unmarshal(payload.Ingredients, &ingredients); err != nil {
			applog.Debug(ctx, "invalid suggestion ingredients", "error", err)
			writeJSONError(w, http.StatusBadRequest, "invalid ingredients payload")
			return
		}
	}

	var options ai.RecipeOptions
	if len(payload.Options) > 0 {
		if err := json.Unmarshal(payload.Options, &options); err != nil {
			applog.Debug(ctx, "invalid suggestion options", "error", err)
			writeJSONError(w, http.StatusBadRequest, "invalid options payload")
			return
		}
	}

	suggestion, err := aiClient.SuggestRecipes(ctx, ingredients, options)
	if err != nil {
		applog.Error(ctx, "suggestion request failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to generate suggestion")
		return
	}

	entry := models.RecipeHistory{
		Suggestion:  suggestion,
		Ingredients: compactSnapshot(payload.Ingredients, "[]"),
		Options:     compactSnapshot(payload.Options, "{}"),
	}
	if err := database.WithContext(ctx).Create(&entry).Error; err != nil {
		// The suggestion already exists; losing the history row should not
		// cost the caller their answer.
		applog.Error(ctx, "failed to record suggestion history", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"suggestion": suggestion})
}

// compactSnapshot normalises a raw JSON document for storage, substituting
// the given default when the caller omitted the field.
func compactSnapshot(raw json.RawMessage, fallback string) string {
	if len(raw) == 0 {
		return fallback
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return fallback
	}
	compacted := buf.String()
	if compacted == "null" {
		return fallback
	}
	return compacted
}
