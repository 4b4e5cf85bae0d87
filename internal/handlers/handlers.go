package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"fridgechef/internal/ai"
	applog "fridgechef/internal/log"
)

var (
	database *gorm.DB
	aiClient *ai.Client

	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Configure installs the shared database handle used by the HTTP handlers.
func Configure(db *gorm.DB) {
	database = db
}

// ConfigureAI installs the suggestion client used by the suggestion and
// nutrition endpoints. A nil client disables them with a 503.
func ConfigureAI(client *ai.Client) {
	aiClient = client
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// validationMessage turns the first validator failure into the short field
// message the API promises.
func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		switch fe.Tag() {
		case "required":
			return jsonFieldName(fe.Field()) + " is required"
		case "gte":
			return jsonFieldName(fe.Field()) + " must be at least " + fe.Param()
		}
	}
	return "invalid request payload"
}

func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return string(field[0]|0x20) + field[1:]
}
