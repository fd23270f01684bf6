package catalog

import (
	"encoding/json"
	"time"

	"github.com/gsk-limited/storefront/app/models"
	"github.com/shopspring/decimal"
)

type CategoryView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Featured    bool    `json:"featured"`
}

type ProductView struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Price       *json.Number  `json:"price"`
	PriceLabel  string        `json:"priceLabel,omitempty"`
	Images      []string      `json:"images"`
	InStock     *bool         `json:"inStock"`
	Brand       *string       `json:"brand"`
	CategoryID  *string       `json:"categoryId"`
	Category    *CategoryView `json:"category"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// PriceFormatter renders a price for display.
type PriceFormatter func(decimal.Decimal) string

// ShapeProducts dedupes records by id, keeping the first occurrence's
// position, and maps them to their client form.
func ShapeProducts(records []models.Product, formatPrice PriceFormatter) []ProductView {
	seen := make(map[string]int, len(records))
	views := make([]ProductView, 0, len(records))
	for i := range records {
		view := ShapeProduct(&records[i], formatPrice)
		if idx, ok := seen[view.ID]; ok {
			views[idx] = view
			continue
		}
		seen[view.ID] = len(views)
		views = append(views, view)
	}
	return views
}

func ShapeProduct(p *models.Product, formatPrice PriceFormatter) ProductView {
	view := ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Images:      p.Images,
		InStock:     p.InStock,
		Brand:       p.Brand,
		CategoryID:  p.CategoryID,
		Category:    ShapeCategory(p.CategoryID, p.Category),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if view.Images == nil {
		view.Images = []string{}
	}
	if p.Price.Valid {
		n := json.Number(p.Price.Decimal.String())
		view.Price = &n
		if formatPrice != nil {
			view.PriceLabel = formatPrice(p.Price.Decimal)
		}
	}
	return view
}

// ShapeCategory returns nil when the product has no category id or the
// loaded relation does not match it.
func ShapeCategory(categoryID *string, c *models.Category) *CategoryView {
	if categoryID == nil || *categoryID == "" || c == nil || c.ID != *categoryID {
		return nil
	}
	return NewCategoryView(c)
}

func NewCategoryView(c *models.Category) *CategoryView {
	return &CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.Image,
		Featured:    c.Featured,
	}
}
