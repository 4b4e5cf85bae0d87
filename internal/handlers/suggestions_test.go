package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fridgechef/models"
)

func stubChatCompletion(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": content}},
			},
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}
}

func TestSuggestionsReturnsTextAndRecordsHistory(t *testing.T) {
	db := withTestDatabase(t)
	withFakeAI(t, stubChatCompletion("Three recipes with milk."))

	body := `{"ingredients":[{"name":"Milk","quantity":1,"unit":"L"}],"options":{"servings":4}}`
	req := httptest.NewRequest(http.MethodPost, "/api/suggestions", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	Suggestions(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["suggestion"] != "Three recipes with milk." {
		t.Fatalf("suggestion = %q", resp["suggestion"])
	}

	var entries []models.RecipeHistory
	if err := db.Find(&entries).Error; err != nil {
		t.Fatalf("failed to load history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one history entry, got %d", len(entries))
	}
	if entries[0].Suggestion != "Three recipes with milk." {
		t.Fatalf("stored suggestion = %q", entries[0].Suggestion)
	}
	if !strings.Contains(entries[0].Ingredients, `"Milk"`) {
		t.Fatalf("stored ingredient snapshot = %q", entries[0].Ingredients)
	}
	if !strings.Contains(entries[0].Options, `"servings":4`) {
		t.Fatalf("stored options snapshot = %q", entries[0].Options)
	}
}

func TestSuggestionsAcceptsEmptyFridge(t *testing.T) {
	withTestDatabase(t)
	withFakeAI(t, stubChatCompletion("Pantry staples it is."))

	req := httptest.NewRequest(http.MethodPost, "/api/suggestions",
		bytes.NewBufferString(`{"ingredients":[],"options":{}}`))
	w := httptest.NewRecorder()
	Suggestions(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 for empty fridge, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["suggestion"] != "Pantry staples it is." {
		t.Fatalf("suggestion = %q", resp["suggestion"])
	}
}

func TestSuggestionsFailureWritesNoHistory(t *testing.T) {
	db := withTestDatabase(t)
	withFakeAI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/suggestions",
		bytes.NewBufferString(`{"ingredients":[{"name":"Milk","quantity":1,"unit":"L"}]}`))
	w := httptest.NewRecorder()
	Suggestions(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["error"] != "failed to generate suggestion" {
		t.Fatalf("error = %q", resp["error"])
	}

	var count int64
	db.Model(&models.RecipeHistory{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no history after failure, got %d entries", count)
	}
}

func TestSuggestionsRejectsMalformedPayload(t *testing.T) {
	withTestDatabase(t)
	withFakeAI(t, stubChatCompletion("unused"))

	req := httptest.NewRequest(http.MethodPost, "/api/suggestions",
		bytes.NewBufferString(`{"ingredients":"not a list"}`))
	w := httptest.NewRecorder()
	Suggestions(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestSuggestionsRequiresConfiguredClient(t *testing.T) {
	withTestDatabase(t)
	original := aiClient
	aiClient = nil
	t.Cleanup(func() { aiClient = original })

	req := httptest.NewRequest(http.MethodPost, "/api/suggestions",
		bytes.NewBufferString(`{"ingredients":[]}`))
	w := httptest.NewRecorder()
	Suggestions(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}
}
