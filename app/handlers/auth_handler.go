package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gsk-limited/storefront/app/helpers"
	"github.com/gsk-limited/storefront/app/middlewares"
	"github.com/gsk-limited/storefront/app/services"
	"github.com/gsk-limited/storefront/app/utils/respond"
	"github.com/gsk-limited/storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type Authenticator interface {
	SignUp(ctx context.Context, in services.SignUpInput) (*services.UserView, error)
	Login(ctx context.Context, in services.LoginInput) (*services.UserView, error)
}

type AuthHandler struct {
	render       *render.Render
	auth         Authenticator
	sessionStore sessions.SessionStore
}

func NewAuthHandler(r *render.Render, auth Authenticator, sessionStore sessions.SessionStore) *AuthHandler {
	return &AuthHandler{
		render:       r,
		auth:         auth,
		sessionStore: sessionStore,
	}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var in services.SignUpInput
	if err := respond.DecodeJSON(w, r, &in); err != nil {
		respond.Error(h.render, w, "AuthHandler.SignUp", err)
		return
	}

	user, err := h.auth.SignUp(r.Context(), in)
	if err != nil {
		respond.Error(h.render, w, "AuthHandler.SignUp", err)
		return
	}
	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("AuthHandler.SignUp: Error setting user session: %v", err)
	}
	_ = h.render.JSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := respond.DecodeJSON(w, r, &in); err != nil {
		respond.Error(h.render, w, "AuthHandler.Login", err)
		return
	}

	user, err := h.auth.Login(r.Context(), in)
	if err != nil {
		respond.Error(h.render, w, "AuthHandler.Login", err)
		return
	}
	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		respond.Error(h.render, w, "AuthHandler.Login", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("AuthHandler.Logout: Error clearing session: %v", err)
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middlewares.CurrentUser(r.Context())
	if user == nil {
		respond.Message(h.render, w, http.StatusForbidden, "Authentication required")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"user": services.NewUserView(user)})
}

// CSRFToken hands API clients the token they must echo in X-CSRF-Token.
func (h *AuthHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	token := csrf.Token(r)
	w.Header().Set("X-CSRF-Token", token)
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"csrfToken": token})
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	callback := safeCallback(r.URL.Query().Get("callbackUrl"))
	if middlewares.CurrentUser(r.Context()) != nil {
		http.Redirect(w, r, callback, http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, callback, "", "")
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("AuthHandler.LoginForm: Error parsing form: %v", err)
		h.renderLogin(w, r, http.StatusBadRequest, "/admin", "", "Something went wrong while reading the form.")
		return
	}

	identifier := strings.TrimSpace(r.FormValue("identifier"))
	callback := safeCallback(r.FormValue("callbackUrl"))

	user, err := h.auth.Login(r.Context(), services.LoginInput{Identifier: identifier, Password: r.FormValue("password")})
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			h.renderLogin(w, r, http.StatusBadRequest, callback, identifier, "Enter your email or username and password.")
		case errors.Is(err, services.ErrInvalidCredentials):
			h.renderLogin(w, r, http.StatusUnauthorized, callback, identifier, "Invalid email or password.")
		default:
			log.Printf("AuthHandler.LoginForm: %v", err)
			h.renderLogin(w, r, http.StatusInternalServerError, callback, identifier, "Something went wrong. Please try again.")
		}
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("AuthHandler.LoginForm: Error setting user session: %v", err)
		h.renderLogin(w, r, http.StatusInternalServerError, callback, identifier, "Could not start your session.")
		return
	}
	http.Redirect(w, r, callback, http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, callback, identifier, errMsg string) {
	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":          "Sign in",
		"CallbackURL":    callback,
		"Identifier":     identifier,
		"Error":          errMsg,
		csrf.TemplateTag: csrf.TemplateField(r),
	})
	_ = h.render.HTML(w, status, "auth/login", data)
}

// safeCallback only allows local paths so the login page cannot be used
// as an open redirect.
func safeCallback(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "/admin"
	}
	return raw
}
