package helpers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"github.com/gsk-limited/storefront/app/models"
)

type contextKey string

const (
	ContextKeyUser contextKey = "userObject"
)

// GetBaseData fills the values every HTML page expects.
func GetBaseData(r *http.Request, pageSpecificData map[string]interface{}) map[string]interface{} {
	if pageSpecificData == nil {
		pageSpecificData = make(map[string]interface{})
	}

	if _, exists := pageSpecificData["Title"]; !exists {
		pageSpecificData["Title"] = "GSK Limited"
	}
	pageSpecificData["IsLoggedIn"] = false
	pageSpecificData["IsAdmin"] = false
	pageSpecificData["User"] = nil

	if user, ok := r.Context().Value(ContextKeyUser).(*models.User); ok && user != nil {
		pageSpecificData["User"] = user
		pageSpecificData["IsLoggedIn"] = true
		pageSpecificData["IsAdmin"] = user.Role == models.RoleAdmin
		pageSpecificData["RoleLabel"] = RoleLabel(user.Role)
	}

	if msg := r.URL.Query().Get("message"); msg != "" {
		pageSpecificData["Message"] = msg
	}

	return pageSpecificData
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := lowerFirst(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required.", err.Field())
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address.", err.Field())
		case "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s characters.", err.Field(), err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s characters.", err.Field(), err.Param())
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s must be one of: %s.", err.Field(), err.Param())
		case "alphanum":
			errorMessages[field] = fmt.Sprintf("%s may only contain letters and numbers.", err.Field())
		default:
			errorMessages[field] = fmt.Sprintf("%s failed the %s check.", err.Field(), err.Tag())
		}
	}
	return errorMessages
}

// RoleLabel turns VIEW_ONLY into "View Only".
func RoleLabel(role models.Role) string {
	words := strings.Fields(strings.ReplaceAll(string(role), "_", " "))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}

func GenerateSlug(s string) string {
	return slug.Make(s)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
