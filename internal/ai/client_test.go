package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func chatResponse(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(body)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestNewClientAppliesDefaults(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client.model != defaultModel {
		t.Fatalf("model = %q, want %q", client.model, defaultModel)
	}
	if client.baseURL != defaultBaseURL {
		t.Fatalf("baseURL = %q, want %q", client.baseURL, defaultBaseURL)
	}
	if client.temperature != defaultTemperature {
		t.Fatalf("temperature = %v, want %v", client.temperature, defaultTemperature)
	}
}

func TestSuggestRecipesSendsPromptAndReturnsTextVerbatim(t *testing.T) {
	t.Parallel()

	var captured struct {
		Model       string        `json:"model"`
		Temperature float64       `json:"temperature"`
		Messages    []chatMessage `json:"messages"`
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatResponse("  ```Recipe one``` ")))
	})

	ingredients := []RecipeIngredient{{Name: "Milk", Quantity: 1, Unit: "L"}}
	suggestion, err := client.SuggestRecipes(context.Background(), ingredients, RecipeOptions{})
	if err != nil {
		t.Fatalf("SuggestRecipes() error = %v", err)
	}

	if suggestion != "  ```Recipe one``` " {
		t.Fatalf("expected verbatim model output, got %q", suggestion)
	}
	if captured.Model != defaultModel {
		t.Fatalf("request model = %q, want %q", captured.Model, defaultModel)
	}
	if captured.Temperature != defaultTemperature {
		t.Fatalf("request temperature = %v, want %v", captured.Temperature, defaultTemperature)
	}
	if len(captured.Messages) != 1 || captured.Messages[0].Role != "user" {
		t.Fatalf("expected single user message, got %+v", captured.Messages)
	}
	if captured.Messages[0].Content != BuildRecipePrompt(ingredients, RecipeOptions{}) {
		t.Fatal("expected request content to match the rendered prompt")
	}
}

func TestSuggestRecipesSurfacesServerErrors(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	if _, err := client.SuggestRecipes(context.Background(), nil, RecipeOptions{}); err == nil {
		t.Fatal("expected error for non-success status")
	}
}

func TestSuggestRecipesRejectsEmptyChoices(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	})

	if _, err := client.SuggestRecipes(context.Background(), nil, RecipeOptions{}); err == nil {
		t.Fatal("expected error when no choices are returned")
	}
}

func TestFetchNutritionParsesFencedJSON(t *testing.T) {
	t.Parallel()

	var captured struct {
		Temperature float64 `json:"temperature"`
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatResponse("```json\n{\"calories\":42,\"protein\":3.4,\"carbohydrates\":5,\"fat\":1,\"fiber\":0,\"sugar\":5,\"sodium\":44}\n```")))
	})

	nutrition, err := client.FetchNutrition(context.Background(), "Milk")
	if err != nil {
		t.Fatalf("FetchNutrition() error = %v", err)
	}
	if nutrition.Calories != 42 || nutrition.Protein != 3.4 || nutrition.Sodium != 44 {
		t.Fatalf("unexpected nutrition payload: %+v", nutrition)
	}
	if captured.Temperature != nutritionTemperature {
		t.Fatalf("request temperature = %v, want %v", captured.Temperature, nutritionTemperature)
	}
}

func TestFetchNutritionRequiresIngredientName(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty ingredient name")
	})

	if _, err := client.FetchNutrition(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank ingredient name")
	}
}

func TestFetchNutritionRejectsMalformedPayload(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatResponse("sorry, I can only answer cooking questions")))
	})

	if _, err := client.FetchNutrition(context.Background(), "Milk"); err == nil {
		t.Fatal("expected error for non-JSON nutrition payload")
	}
}
