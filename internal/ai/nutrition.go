package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Nutritional lookups want stable numbers, so they run cooler than the
// recipe suggestions.
const nutritionTemperature = 0.3

// Nutrition captures per-100g facts for a single ingredient.
type Nutrition struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	Fiber         float64 `json:"fiber"`
	Sugar         float64 `json:"sugar"`
	Sodium        float64 `json:"sodium"`
}

func buildNutritionPrompt(ingredient string) string {
	return fmt.Sprintf(`Please provide nutritional information for %s per 100g. Include:
- Calories
- Protein
- Carbohydrates
- Fat
- Fiber
- Sugar
- Sodium

Respond with a raw JSON object using the keys calories, protein, carbohydrates, fat, fiber, sugar and sodium. Every value must be a plain number (grams, except calories in kcal and sodium in mg). No Markdown, no commentary.`, ingredient)
}

// FetchNutrition asks the model for per-100g nutrition facts and parses the
// JSON payload it returns.
func (c *Client) FetchNutrition(ctx context.Context, ingredient string) (Nutrition, error) {
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return Nutrition{}, errors.New("ai: ingredient name must not be empty")
	}

	content, err := c.performChatCompletion(ctx, nutritionTemperature, []chatMessage{
		{Role: "user", Content: buildNutritionPrompt(ingredient)},
	})
	if err != nil {
		return Nutrition{}, err
	}

	var nutrition Nutrition
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &nutrition); err != nil {
		return Nutrition{}, fmt.Errorf("ai: parse nutrition payload: %w", err)
	}

	return nutrition, nil
}

// stripCodeFence removes a Markdown code fence some models wrap around JSON
// payloads despite instructions.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
