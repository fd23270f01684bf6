package middlewares

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gsk-limited/storefront/app/helpers"
	"github.com/gsk-limited/storefront/app/models"
	"github.com/gsk-limited/storefront/app/repositories"
	"github.com/gsk-limited/storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type RuleKind int

const (
	// API rules answer denials with 403 JSON.
	API RuleKind = iota
	// Page rules answer denials with a redirect.
	Page
)

// AccessRule guards every path under Pattern. Empty Methods matches all methods.
type AccessRule struct {
	Pattern string
	Methods []string
	Roles   []models.Role
	Kind    RuleKind
}

func (a AccessRule) Matches(r *http.Request) bool {
	base := strings.TrimSuffix(a.Pattern, "/")
	if r.URL.Path != base && !strings.HasPrefix(r.URL.Path, base+"/") {
		return false
	}
	if len(a.Methods) == 0 {
		return true
	}
	for _, m := range a.Methods {
		if strings.EqualFold(m, r.Method) {
			return true
		}
	}
	return false
}

func (a AccessRule) Allows(role models.Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

var (
	anyRole   = []models.Role{models.RoleAdmin, models.RoleViewOnly}
	adminOnly = []models.Role{models.RoleAdmin}
	readOnly  = []string{http.MethodGet, http.MethodHead}
)

// DefaultAccessRules is ordered most specific first.
func DefaultAccessRules() []AccessRule {
	return []AccessRule{
		{Pattern: "/api/admin/users", Roles: adminOnly, Kind: API},
		{Pattern: "/api/admin", Methods: readOnly, Roles: anyRole, Kind: API},
		{Pattern: "/api/admin", Roles: adminOnly, Kind: API},
		{Pattern: "/api/auth/me", Roles: anyRole, Kind: API},
		{Pattern: "/admin", Methods: readOnly, Roles: anyRole, Kind: Page},
		{Pattern: "/admin", Roles: adminOnly, Kind: Page},
	}
}

var jsonRender = render.New()

// Authorize evaluates rules in order and applies the first that matches.
// Requests no rule matches pass through untouched. An authorized user is
// stored in the request context for CurrentUser.
func Authorize(rules []AccessRule, store sessions.SessionStore, users repositories.UserRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var rule *AccessRule
			for i := range rules {
				if rules[i].Matches(r) {
					rule = &rules[i]
					break
				}
			}
			if rule == nil {
				next.ServeHTTP(w, r)
				return
			}

			userID := store.GetUserID(r)
			if userID == "" {
				deny(w, r, rule, false)
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				log.Printf("Authorize: error finding user %s: %v", userID, err)
				jsonRender.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
				return
			}
			if user == nil {
				log.Printf("Authorize: session user %s no longer exists", userID)
				deny(w, r, rule, false)
				return
			}

			if !rule.Allows(user.Role) {
				log.Printf("Authorize: user %s (%s) denied %s %s", user.ID, user.Role, r.Method, r.URL.Path)
				deny(w, r, rule, true)
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func deny(w http.ResponseWriter, r *http.Request, rule *AccessRule, authenticated bool) {
	if rule.Kind == Page {
		if authenticated {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		http.Redirect(w, r, "/login?callbackUrl="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
		return
	}

	msg := "Authentication required"
	if authenticated {
		msg = "You do not have permission to perform this action"
	}
	jsonRender.JSON(w, http.StatusForbidden, map[string]string{"error": msg})
}

// LoadUser puts the session user, if any, into the request context without
// enforcing anything. Pages like /login use it to know who is signed in.
func LoadUser(store sessions.SessionStore, users repositories.UserRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if CurrentUser(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}
			if userID := store.GetUserID(r); userID != "" {
				user, err := users.FindByID(r.Context(), userID)
				if err != nil {
					log.Printf("LoadUser: error finding user %s: %v", userID, err)
				} else if user != nil {
					r = r.WithContext(context.WithValue(r.Context(), helpers.ContextKeyUser, user))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(helpers.ContextKeyUser).(*models.User)
	return user
}
