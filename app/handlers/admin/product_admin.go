package admin

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gsk-limited/storefront/app/catalog"
	"github.com/gsk-limited/storefront/app/services"
	"github.com/gsk-limited/storefront/app/utils/respond"
)

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.products.GetProducts(r.Context(), catalog.ParseProductListParams(r.URL.Query()))
	if err != nil {
		log.Printf("AdminHandler.ListProducts: %v", err)
		respond.Message(h.render, w, http.StatusInternalServerError, respond.InternalServerError)
		return
	}
	if !result.Success {
		respond.Message(h.render, w, http.StatusInternalServerError, result.Error)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, result)
}

func (h *AdminHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respond.Error(h.render, w, "AdminHandler.GetProduct", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}

func productInput(r *http.Request) services.ProductInput {
	return services.ProductInput{
		Name:         r.FormValue("name"),
		Description:  r.FormValue("description"),
		Price:        r.FormValue("price"),
		InStock:      formOptionalBool(r, "inStock"),
		Brand:        r.FormValue("brand"),
		CategoryID:   r.FormValue("categoryId"),
		RemoveImages: r.Form["removeImages"],
		Images:       formFiles(r, "images"),
	}
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		respond.Error(h.render, w, "AdminHandler.CreateProduct", err)
		return
	}
	product, err := h.products.CreateProduct(r.Context(), productInput(r))
	if err != nil {
		respond.Error(h.render, w, "AdminHandler.CreateProduct", err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		respond.Error(h.render, w, "AdminHandler.UpdateProduct", err)
		return
	}
	product, err := h.products.UpdateProduct(r.Context(), mux.Vars(r)["id"], productInput(r))
	if err != nil {
		respond.Error(h.render, w, "AdminHandler.UpdateProduct", err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.DeleteProduct(r.Context(), mux.Vars(r)["id"]); err != nil {
		respond.Error(h.render, w, "AdminHandler.DeleteProduct", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
