package admin

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gsk-limited/storefront/app/services"
	"github.com/gsk-limited/storefront/app/utils/respond"
)

func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.GetCategories(r.Context(), false)
	if err != nil {
		respond.Error(h.render, w, "AdminHandler.ListCategories", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (h *AdminHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.GetCategory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respond.Error(h.render, w, "AdminHandler.GetCategory", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, category)
}

func categoryInput(r *http.Request) services.CategoryInput {
	return services.CategoryInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Featured:    formBool(r, "featured"),
		Image:       formFile(r, "image"),
		RemoveImage: formBool(r, "removeImage"),
	}
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		respond.Error(h.render, w, "AdminHandler.CreateCategory", err)
		return
	}
	category, err := h.categories.CreateCategory(r.Context(), categoryInput(r))
	if err != nil {
		respond.Error(h.render, w, "AdminHandler.CreateCategory", err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, category)
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		respond.Error(h.render, w, "AdminHandler.UpdateCategory", err)
		return
	}
	category, err := h.categories.UpdateCategory(r.Context(), mux.Vars(r)["id"], categoryInput(r))
	if err != nil {
		respond.Error(h.render, w, "AdminHandler.UpdateCategory", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, category)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.DeleteCategory(r.Context(), mux.Vars(r)["id"]); err != nil {
		respond.Error(h.render, w, "AdminHandler.DeleteCategory", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
