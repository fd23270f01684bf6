package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gsk-limited/storefront/app/mocks"
	"github.com/gsk-limited/storefront/app/models"
	"github.com/gsk-limited/storefront/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/unrolled/render"
)

type fakeAuth struct{ mock.Mock }

func (m *fakeAuth) SignUp(ctx context.Context, in services.SignUpInput) (*services.UserView, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.UserView), args.Error(1)
}

func (m *fakeAuth) Login(ctx context.Context, in services.LoginInput) (*services.UserView, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.UserView), args.Error(1)
}

func TestSignUpSetsSession(t *testing.T) {
	auth := new(fakeAuth)
	store := new(mocks.SessionStore)
	in := services.SignUpInput{Name: "Asha", Username: "asha01", Email: "asha@example.com", Password: "SuperSecret"}
	auth.On("SignUp", mock.Anything, in).Return(&services.UserView{ID: "u1", Role: models.RoleViewOnly}, nil)
	store.On("SetUserID", mock.Anything, mock.Anything, "u1").Return(nil)

	body, _ := json.Marshal(in)
	w := httptest.NewRecorder()
	NewAuthHandler(render.New(), auth, store).SignUp(w, httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body)))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"VIEW_ONLY"`)
	store.AssertExpectations(t)
}

func TestSignUpBadJSON(t *testing.T) {
	w := httptest.NewRecorder()
	NewAuthHandler(render.New(), new(fakeAuth), new(mocks.SessionStore)).
		SignUp(w, httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	auth := new(fakeAuth)
	auth.On("Login", mock.Anything, services.LoginInput{Identifier: "asha01", Password: "nope"}).Return(nil, services.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	NewAuthHandler(render.New(), auth, new(mocks.SessionStore)).
		Login(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"identifier":"asha01","password":"nope"}`)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginFormRedirectsToCallback(t *testing.T) {
	auth := new(fakeAuth)
	store := new(mocks.SessionStore)
	auth.On("Login", mock.Anything, services.LoginInput{Identifier: "asha01", Password: "SuperSecret"}).Return(&services.UserView{ID: "u1"}, nil)
	store.On("SetUserID", mock.Anything, mock.Anything, "u1").Return(nil)

	form := url.Values{"identifier": {"asha01"}, "password": {"SuperSecret"}, "callbackUrl": {"/admin?tab=products"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	NewAuthHandler(render.New(), auth, store).LoginForm(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin?tab=products", w.Header().Get("Location"))
}

func TestSafeCallback(t *testing.T) {
	assert.Equal(t, "/admin", safeCallback(""))
	assert.Equal(t, "/admin", safeCallback("https://evil.example.com"))
	assert.Equal(t, "/admin", safeCallback("//evil.example.com"))
	assert.Equal(t, "/admin/products", safeCallback("/admin/products"))
}
