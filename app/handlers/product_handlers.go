package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gsk-limited/storefront/app/catalog"
	"github.com/gsk-limited/storefront/app/services"
	"github.com/gsk-limited/storefront/app/utils/respond"
	"github.com/unrolled/render"
)

type ProductReader interface {
	GetProducts(ctx context.Context, params catalog.ProductListParams) (services.ProductListResult, error)
	GetProduct(ctx context.Context, id string) (*catalog.ProductView, error)
}

type ProductHandler struct {
	products ProductReader
	render   *render.Render
}

func NewProductHandler(products ProductReader, r *render.Render) *ProductHandler {
	return &ProductHandler{products: products, render: r}
}

// Products serves GET /api/products?page=&limit=&categoryIds=&expandedId=.
func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	params := catalog.ParseProductListParams(r.URL.Query())

	result, err := h.products.GetProducts(r.Context(), params)
	if err != nil {
		log.Printf("ProductHandler.Products: %v", err)
		respond.Message(h.render, w, http.StatusInternalServerError, respond.InternalServerError)
		return
	}
	if !result.Success {
		respond.Message(h.render, w, http.StatusInternalServerError, result.Error)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, result)
}

func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respond.Error(h.render, w, "ProductHandler.ProductDetail", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}
