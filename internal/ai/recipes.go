package ai

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	defaultDietaryRestrictions = "none"
	defaultSkillLevel          = "beginner"
	defaultCookingTime         = 30
	defaultServings            = 2

	allowMissingClause = " Include ingredients that are not available in my fridge if necessary, clearly mentioning them."
	fridgeOnlyClause   = " Only use ingredients that are in my fridge."

	expirationDateLayout = "2006-01-02"
)

const recipePromptTemplate = `Given the following ingredients in my fridge:
%s

Please suggest 3 recipes I can make with these ingredients.%s For each recipe:
1. List the ingredients needed and quantities
2. Provide step-by-step instructions
3. Mention any additional ingredients that might be needed but aren't in the list
4. Include approximate cooking time and difficulty level
5. Add any relevant tips or notes

Consider the following factors:
- Use ingredients that are expiring soon first
- Consider dietary restrictions: %s
- Cooking skill level: %s
- Available cooking time: %d minutes
- Number of servings: %d

Format the response in a clear, easy-to-read way.`

// RecipeOptions tune a suggestion request. Zero values fall back to the
// documented defaults when the prompt is rendered.
type RecipeOptions struct {
	DietaryRestrictions     string `json:"dietaryRestrictions,omitempty"`
	SkillLevel              string `json:"skillLevel,omitempty"`
	CookingTime             int    `json:"cookingTime,omitempty"`
	Servings                int    `json:"servings,omitempty"`
	AllowMissingIngredients bool   `json:"allowMissingIngredients,omitempty"`
}

// RecipeCategory carries the only category detail the prompt needs.
type RecipeCategory struct {
	Name string `json:"name"`
}

// RecipeIngredient is one fridge item as supplied by the caller.
type RecipeIngredient struct {
	Name           string           `json:"name"`
	Quantity       float64          `json:"quantity"`
	Unit           string           `json:"unit"`
	Categories     []RecipeCategory `json:"categories,omitempty"`
	ExpirationDate *Date            `json:"expirationDate,omitempty"`
}

// Date accepts both bare dates and RFC 3339 timestamps when decoding JSON.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		d.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(expirationDateLayout, raw); err == nil {
		d.Time = parsed
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("ai: parse date %q: %w", raw, err)
	}
	d.Time = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Time.Format(time.RFC3339) + `"`), nil
}

// BuildRecipePrompt renders the fixed instructional template for the given
// fridge contents. It is deterministic and never fails: an empty ingredient
// list simply renders an empty ingredient section.
func BuildRecipePrompt(ingredients []RecipeIngredient, options RecipeOptions) string {
	lines := make([]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		lines = append(lines, formatIngredientLine(ingredient))
	}

	missingClause := fridgeOnlyClause
	if options.AllowMissingIngredients {
		missingClause = allowMissingClause
	}

	dietary := strings.TrimSpace(options.DietaryRestrictions)
	if dietary == "" {
		dietary = defaultDietaryRestrictions
	}

	skill := strings.TrimSpace(options.SkillLevel)
	if skill == "" {
		skill = defaultSkillLevel
	}

	cookingTime := options.CookingTime
	if cookingTime <= 0 {
		cookingTime = defaultCookingTime
	}

	servings := options.Servings
	if servings <= 0 {
		servings = defaultServings
	}

	return fmt.Sprintf(recipePromptTemplate,
		strings.Join(lines, "\n"),
		missingClause,
		dietary,
		skill,
		cookingTime,
		servings,
	)
}

func formatIngredientLine(ingredient RecipeIngredient) string {
	var builder strings.Builder
	builder.WriteString(strings.TrimSpace(ingredient.Name))
	builder.WriteString(" (")
	builder.WriteString(strconv.FormatFloat(ingredient.Quantity, 'f', -1, 64))
	builder.WriteString(" ")
	builder.WriteString(strings.TrimSpace(ingredient.Unit))
	builder.WriteString(")")

	if len(ingredient.Categories) > 0 {
		names := make([]string, 0, len(ingredient.Categories))
		for _, category := range ingredient.Categories {
			names = append(names, strings.TrimSpace(category.Name))
		}
		builder.WriteString(" [")
		builder.WriteString(strings.Join(names, ", "))
		builder.WriteString("]")
	}

	if ingredient.ExpirationDate != nil && !ingredient.ExpirationDate.IsZero() {
		builder.WriteString(" - expires on ")
		builder.WriteString(ingredient.ExpirationDate.Format(expirationDateLayout))
	}

	return builder.String()
}

// SuggestRecipes sends the rendered prompt to the model and returns the
// generated text verbatim. It never writes history; that is the caller's job.
func (c *Client) SuggestRecipes(ctx context.Context, ingredients []RecipeIngredient, options RecipeOptions) (string, error) {
	prompt := BuildRecipePrompt(ingredients, options)
	return c.performChatCompletion(ctx, c.temperature, []chatMessage{
		{Role: "user", Content: prompt},
	})
}
