package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gsk-limited/storefront/app/catalog"
	"github.com/gsk-limited/storefront/app/services"
	"github.com/gsk-limited/storefront/app/utils/respond"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type CategoryReader interface {
	GetCategories(ctx context.Context, featuredOnly bool) ([]catalog.CategoryView, error)
	GetCategory(ctx context.Context, id string) (*catalog.CategoryView, error)
}

type PartnerReader interface {
	GetPartners(ctx context.Context) ([]services.PartnerView, error)
}

// HomeHandler serves the storefront's category and partner listings.
type HomeHandler struct {
	render     *render.Render
	categories CategoryReader
	partners   PartnerReader
	db         *gorm.DB
}

func NewHomeHandler(r *render.Render, c CategoryReader, p PartnerReader, db *gorm.DB) *HomeHandler {
	return &HomeHandler{
		render:     r,
		categories: c,
		partners:   p,
		db:         db,
	}
}

func (h *HomeHandler) Categories(w http.ResponseWriter, r *http.Request) {
	featured, _ := strconv.ParseBool(r.URL.Query().Get("featured"))

	categories, err := h.categories.GetCategories(r.Context(), featured)
	if err != nil {
		respond.Error(h.render, w, "HomeHandler.Categories", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (h *HomeHandler) Category(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.GetCategory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respond.Error(h.render, w, "HomeHandler.Category", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, category)
}

func (h *HomeHandler) Partners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.partners.GetPartners(r.Context())
	if err != nil {
		respond.Error(h.render, w, "HomeHandler.Partners", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"partners": partners})
}

// Healthz pings the database when one is attached.
func (h *HomeHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			respond.Message(h.render, w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
