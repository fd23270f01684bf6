package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/gsk-limited/storefront/app/catalog"
	"github.com/gsk-limited/storefront/app/middlewares"
	"github.com/gsk-limited/storefront/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/unrolled/render"
)

type fakeProducts struct{ mock.Mock }

func (m *fakeProducts) GetProducts(ctx context.Context, params catalog.ProductListParams) (services.ProductListResult, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(services.ProductListResult), args.Error(1)
}

func (m *fakeProducts) GetProduct(ctx context.Context, id string) (*catalog.ProductView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductView), args.Error(1)
}

func productRouter(p ProductReader) http.Handler {
	h := NewProductHandler(p, render.New())
	r := mux.NewRouter()
	r.HandleFunc("/api/products", h.Products).Methods(http.MethodGet)
	r.HandleFunc("/api/products/{id}", h.ProductDetail).Methods(http.MethodGet)
	return middlewares.Recover(r)
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestProductsReturnsServiceResult(t *testing.T) {
	products := new(fakeProducts)
	want := catalog.ProductListParams{Page: 1, Limit: 10, CategoryIDs: "1"}
	products.On("GetProducts", mock.Anything, want).Return(services.ProductListResult{
		Products:    []catalog.ProductView{{ID: "p1", Name: "Pump", Images: []string{}}},
		CurrentPage: 1,
		TotalPages:  1,
		Total:       1,
		Success:     true,
	}, nil)

	w, body := get(t, productRouter(products), "/api/products?page=1&limit=10&categoryIds=1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(1), body["totalPages"])
	assert.Equal(t, float64(1), body["currentPage"])
	assert.NotContains(t, body, "error")
	require.Len(t, body["products"], 1)
	products.AssertExpectations(t)
}

func TestProductsDefaults(t *testing.T) {
	products := new(fakeProducts)
	products.On("GetProducts", mock.Anything, catalog.ProductListParams{Page: 1, Limit: 20}).
		Return(services.ProductListResult{Products: []catalog.ProductView{}, CurrentPage: 1, Success: true}, nil)

	w, body := get(t, productRouter(products), "/api/products?page=abc&limit=-4")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, body["products"])
}

func TestProductsHandledFailure(t *testing.T) {
	products := new(fakeProducts)
	products.On("GetProducts", mock.Anything, mock.Anything).Return(services.ProductListResult{
		Products: []catalog.ProductView{},
		Error:    services.FailedToFetchProducts,
	}, nil)

	w, body := get(t, productRouter(products), "/api/products")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]interface{}{"error": "Failed to fetch products"}, body)
}

func TestProductsUncaughtFailure(t *testing.T) {
	products := new(fakeProducts)
	products.On("GetProducts", mock.Anything, mock.Anything).Return(services.ProductListResult{}, context.DeadlineExceeded)

	w, body := get(t, productRouter(products), "/api/products")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]interface{}{"error": "Internal Server Error"}, body)
}

func TestProductsPanic(t *testing.T) {
	products := new(fakeProducts)
	products.On("GetProducts", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("nil map")
	}).Return(services.ProductListResult{}, nil)

	w, body := get(t, productRouter(products), "/api/products")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", body["error"])
}

func TestProductDetailNotFound(t *testing.T) {
	products := new(fakeProducts)
	products.On("GetProduct", mock.Anything, "missing").Return(nil, &services.Error{Kind: services.ErrNotFound, Message: "Product not found"})

	w, body := get(t, productRouter(products), "/api/products/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", body["error"])
}

func TestProductDetailStoreError(t *testing.T) {
	products := new(fakeProducts)
	products.On("GetProduct", mock.Anything, "p1").Return(nil, errors.New("i/o timeout"))

	w, body := get(t, productRouter(products), "/api/products/p1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", body["error"])
}
