package admin

import (
	"context"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gsk-limited/storefront/app/catalog"
	"github.com/gsk-limited/storefront/app/helpers"
	"github.com/gsk-limited/storefront/app/models"
	"github.com/gsk-limited/storefront/app/services"
	"github.com/gsk-limited/storefront/app/utils/respond"
	"github.com/unrolled/render"
)

type ProductManager interface {
	GetProducts(ctx context.Context, params catalog.ProductListParams) (services.ProductListResult, error)
	GetProduct(ctx context.Context, id string) (*catalog.ProductView, error)
	CreateProduct(ctx context.Context, in services.ProductInput) (*catalog.ProductView, error)
	UpdateProduct(ctx context.Context, id string, in services.ProductInput) (*catalog.ProductView, error)
	DeleteProduct(ctx context.Context, id string) error
	CountProducts(ctx context.Context) (int64, error)
}

type CategoryManager interface {
	GetCategories(ctx context.Context, featuredOnly bool) ([]catalog.CategoryView, error)
	GetCategory(ctx context.Context, id string) (*catalog.CategoryView, error)
	CreateCategory(ctx context.Context, in services.CategoryInput) (*catalog.CategoryView, error)
	UpdateCategory(ctx context.Context, id string, in services.CategoryInput) (*catalog.CategoryView, error)
	DeleteCategory(ctx context.Context, id string) error
	CountCategories(ctx context.Context) (int64, error)
}

type PartnerManager interface {
	GetPartners(ctx context.Context) ([]services.PartnerView, error)
	GetPartner(ctx context.Context, id string) (*services.PartnerView, error)
	CreatePartner(ctx context.Context, in services.PartnerInput) (*services.PartnerView, error)
	UpdatePartner(ctx context.Context, id string, in services.PartnerInput) (*services.PartnerView, error)
	DeletePartner(ctx context.Context, id string) error
	CountPartners(ctx context.Context) (int64, error)
}

type UserManager interface {
	ListUsers(ctx context.Context) ([]services.UserView, error)
	SetRole(ctx context.Context, actorID, userID string, role models.Role) (*services.UserView, error)
}

// AdminHandler serves /admin and /api/admin. Access is enforced by the
// Authorize middleware before any of these run.
type AdminHandler struct {
	render     *render.Render
	products   ProductManager
	categories CategoryManager
	partners   PartnerManager
	users      UserManager
}

func NewAdminHandler(
	render *render.Render,
	products ProductManager,
	categories CategoryManager,
	partners PartnerManager,
	users UserManager,
) *AdminHandler {
	return &AdminHandler{
		render:     render,
		products:   products,
		categories: categories,
		partners:   partners,
		users:      users,
	}
}

type DashboardStats struct {
	Products   int64 `json:"products"`
	Categories int64 `json:"categories"`
	Partners   int64 `json:"partners"`
}

func (h *AdminHandler) stats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	var err error
	if stats.Products, err = h.products.CountProducts(ctx); err != nil {
		return stats, err
	}
	if stats.Categories, err = h.categories.CountCategories(ctx); err != nil {
		return stats, err
	}
	if stats.Partners, err = h.partners.CountPartners(ctx); err != nil {
		return stats, err
	}
	return stats, nil
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats(r.Context())
	if err != nil {
		respond.Error(h.render, w, "AdminHandler.Stats", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := helpers.GetBaseData(r, map[string]interface{}{"Title": "Dashboard"})

	stats, err := h.stats(r.Context())
	if err != nil {
		log.Printf("AdminHandler.Dashboard: failed to load stats: %v", err)
		data["Error"] = "Could not load catalog totals."
	}
	data["Stats"] = stats

	_ = h.render.HTML(w, http.StatusOK, "admin/dashboard", data)
}

const maxFormMemory = 32 << 20

// parseForm accepts multipart and urlencoded bodies alike.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxFormMemory)
	if err == http.ErrNotMultipart {
		err = r.ParseForm()
	}
	if err != nil {
		return &services.ValidationError{Fields: map[string]string{"form": "Could not read the submitted form."}}
	}
	return nil
}

func formFiles(r *http.Request, field string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.File[field]
}

func formFile(r *http.Request, field string) *multipart.FileHeader {
	if files := formFiles(r, field); len(files) > 0 {
		return files[0]
	}
	return nil
}

func formBool(r *http.Request, field string) bool {
	switch r.FormValue(field) {
	case "true", "on", "1":
		return true
	}
	return false
}

// formOptionalBool returns nil when the field is absent or empty.
func formOptionalBool(r *http.Request, field string) *bool {
	if r.FormValue(field) == "" {
		return nil
	}
	v := formBool(r, field)
	return &v
}
