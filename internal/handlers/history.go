package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	applog "fridgechef/internal/log"
	"fridgechef/models"
)

type historyRequest struct {
	Suggestion  string          `json:"suggestion" validate:"required"`
	Ingredients json.RawMessage `json:"ingredients"`
	Options     json.RawMessage `json:"options"`
}

type historyResponse struct {
	ID          uint            `json:"id"`
	Suggestion  string          `json:"suggestion"`
	Ingredients json.RawMessage `json:"ingredients"`
	Options     json.RawMessage `json:"options"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// History handles /api/history: listing past suggestions newest first,
// recording an entry directly, and deleting one by id.
func History(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		applog.Debug(r.Context(), "history request without database")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	switch r.Method {
	case http.MethodGet:
		listHistory(w, r)
	case http.MethodPost:
		createHistory(w, r)
	case http.MethodDelete:
		deleteHistory(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var entries []models.RecipeHistory
	if err := database.WithContext(ctx).
		Order("created_at desc, id desc").
		Find(&entries).Error; err != nil {
		applog.Error(ctx, "failed to list history", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load history")
		return
	}

	responses := make([]historyResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, projectHistory(entry))
	}
	writeJSON(w, http.StatusOK, responses)
}

func createHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var payload historyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid history payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := validate.Struct(payload); err != nil {
		applog.Debug(ctx, "history validation failed", "error", err)
		writeJSONError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	entry := models.RecipeHistory{
		Suggestion:  payload.Suggestion,
		Ingredients: compactSnapshot(payload.Ingredients, "[]"),
		Options:     compactSnapshot(payload.Options, "{}"),
	}
	if err := database.WithContext(ctx).Create(&entry).Error; err != nil {
		applog.Error(ctx, "failed to create history entry", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to record history")
		return
	}

	writeJSON(w, http.StatusCreated, projectHistory(entry))
}

func deleteHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idParam := strings.TrimSpace(r.URL.Query().Get("id"))
	if idParam == "" {
		writeJSONError(w, http.StatusBadRequest, "history id is required")
		return
	}
	idValue, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid history id")
		return
	}

	var entry models.RecipeHistory
	if err := database.WithContext(ctx).First(&entry, uint(idValue)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSONError(w, http.StatusNotFound, "history entry not found")
			return
		}
		applog.Error(ctx, "failed to load history entry", "error", err, "id", idValue)
		writeJSONError(w, http.StatusInternalServerError, "unable to load history")
		return
	}

	if err := database.WithContext(ctx).Delete(&entry).Error; err != nil {
		applog.Error(ctx, "failed to delete history entry", "error", err, "id", entry.ID)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete history")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func projectHistory(entry models.RecipeHistory) historyResponse {
	return historyResponse{
		ID:          entry.ID,
		Suggestion:  entry.Suggestion,
		Ingredients: snapshotMessage(entry.Ingredients, "[]"),
		Options:     snapshotMessage(entry.Options, "{}"),
		CreatedAt:   entry.CreatedAt,
	}
}

// snapshotMessage re-exposes a stored snapshot as embedded JSON, falling
// back to the given default when the stored text is not valid JSON.
func snapshotMessage(stored, fallback string) json.RawMessage {
	if json.Valid([]byte(stored)) && stored != "" {
		return json.RawMessage(stored)
	}
	return json.RawMessage(fallback)
}
