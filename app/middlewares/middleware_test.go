package middlewares

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gsk-limited/storefront/app/mocks"
	"github.com/gsk-limited/storefront/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := CurrentUser(r.Context()); user != nil {
			w.Header().Set("X-User", user.ID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func serve(t *testing.T, sessionUser string, user *models.User, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	store := new(mocks.SessionStore)
	store.On("GetUserID", mock.Anything).Return(sessionUser)
	users := new(mocks.UserRepository)
	if sessionUser != "" {
		users.On("FindByID", mock.Anything, sessionUser).Return(user, nil)
	}

	h := Authorize(DefaultAccessRules(), store, users)(okHandler(t))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestAuthorizePublicRoutePassesThrough(t *testing.T) {
	w := serve(t, "", nil, http.MethodGet, "/api/products?page=2")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthorizeAPIWithoutSession(t *testing.T) {
	w := serve(t, "", nil, http.MethodGet, "/api/admin/products")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Authentication required", errorBody(t, w))
}

func TestAuthorizeViewOnlyCanRead(t *testing.T) {
	viewer := &models.User{ID: "u2", Role: models.RoleViewOnly}

	w := serve(t, "u2", viewer, http.MethodGet, "/api/admin/categories")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u2", w.Header().Get("X-User"))

	w = serve(t, "u2", viewer, http.MethodDelete, "/api/admin/products/p1")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(t, "u2", viewer, http.MethodGet, "/api/admin/users")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthorizeAdminCanWrite(t *testing.T) {
	admin := &models.User{ID: "u1", Role: models.RoleAdmin}
	w := serve(t, "u1", admin, http.MethodPost, "/api/admin/products")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthorizePageRedirects(t *testing.T) {
	w := serve(t, "", nil, http.MethodGet, "/admin?tab=products")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?callbackUrl=%2Fadmin%3Ftab%3Dproducts", w.Header().Get("Location"))

	viewer := &models.User{ID: "u2", Role: models.RoleViewOnly}
	w = serve(t, "u2", viewer, http.MethodPost, "/admin/anything")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestAuthorizeDeletedUser(t *testing.T) {
	w := serve(t, "ghost", nil, http.MethodGet, "/api/admin/products")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthorizeLookupFailure(t *testing.T) {
	store := new(mocks.SessionStore)
	store.On("GetUserID", mock.Anything).Return("u1")
	users := new(mocks.UserRepository)
	users.On("FindByID", mock.Anything, "u1").Return(nil, errors.New("db down"))

	w := httptest.NewRecorder()
	Authorize(DefaultAccessRules(), store, users)(okHandler(t)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/products", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAccessRuleMatchesPrefixOnly(t *testing.T) {
	rule := AccessRule{Pattern: "/admin"}
	assert.True(t, rule.Matches(httptest.NewRequest(http.MethodGet, "/admin", nil)))
	assert.True(t, rule.Matches(httptest.NewRequest(http.MethodGet, "/admin/x", nil)))
	assert.False(t, rule.Matches(httptest.NewRequest(http.MethodGet, "/administrator", nil)))
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", errorBody(t, w))
}

func TestMethodOverride(t *testing.T) {
	var got string
	h := MethodOverrideMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Method
	}))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/products/p1", nil)
	req.Header.Set("X-HTTP-Method-Override", "delete")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, http.MethodDelete, got)
}
