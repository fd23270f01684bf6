package admin

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gsk-limited/storefront/app/middlewares"
	"github.com/gsk-limited/storefront/app/models"
	"github.com/gsk-limited/storefront/app/utils/respond"
)

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		respond.Error(h.render, w, "AdminHandler.ListUsers", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

type roleForm struct {
	Role models.Role `json:"role"`
}

func (h *AdminHandler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	actor := middlewares.CurrentUser(r.Context())
	if actor == nil {
		respond.Message(h.render, w, http.StatusForbidden, "Authentication required")
		return
	}

	var form roleForm
	if err := respond.DecodeJSON(w, r, &form); err != nil {
		respond.Error(h.render, w, "AdminHandler.SetUserRole", err)
		return
	}

	user, err := h.users.SetRole(r.Context(), actor.ID, mux.Vars(r)["id"], form.Role)
	if err != nil {
		respond.Error(h.render, w, "AdminHandler.SetUserRole", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
