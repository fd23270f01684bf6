package helpers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gsk-limited/storefront/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValidationErrors(t *testing.T) {
	type form struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
		Role  string `validate:"oneof=ADMIN VIEW_ONLY"`
	}

	err := validator.New().Struct(form{Email: "nope", Role: "OWNER"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	fields := FormatValidationErrors(verrs)
	assert.Equal(t, "Name is required.", fields["name"])
	assert.Equal(t, "Email must be a valid email address.", fields["email"])
	assert.Equal(t, "Role must be one of: ADMIN VIEW_ONLY.", fields["role"])
}

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "View Only", RoleLabel(models.RoleViewOnly))
	assert.Equal(t, "Admin", RoleLabel(models.RoleAdmin))
}

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "centrifugal-pump-3hp", GenerateSlug("Centrifugal Pump  3HP"))
}

func TestGetBaseData(t *testing.T) {
	r := httptest.NewRequest("GET", "/admin?message=Saved", nil)
	data := GetBaseData(r, nil)
	assert.Equal(t, false, data["IsLoggedIn"])
	assert.Equal(t, "Saved", data["Message"])

	user := &models.User{ID: "u1", Role: models.RoleAdmin}
	r = r.WithContext(context.WithValue(r.Context(), ContextKeyUser, user))
	data = GetBaseData(r, map[string]interface{}{"Title": "Dashboard"})
	assert.Equal(t, true, data["IsLoggedIn"])
	assert.Equal(t, true, data["IsAdmin"])
	assert.Equal(t, "Dashboard", data["Title"])
}
