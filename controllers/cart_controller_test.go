package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"shopping-cart/models"
	"shopping-cart/repositories"
	"shopping-cart/services"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type recordingCache struct {
	entries     map[uint64]models.CartSummary
	invalidated int
	failGet     bool
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: map[uint64]models.CartSummary{}}
}

func (r *recordingCache) Get(_ context.Context, revision uint64) (*models.CartSummary, error) {
	if r.failGet {
		return nil, errors.New("connection refused")
	}
	s, ok := r.entries[revision]
	if !ok {
		return nil, repositories.ErrCacheMiss
	}
	return &s, nil
}

func (r *recordingCache) Set(_ context.Context, revision uint64, summary models.CartSummary) error {
	r.entries[revision] = summary
	return nil
}

func (r *recordingCache) Invalidate(context.Context) error {
	r.invalidated++
	r.entries = map[uint64]models.CartSummary{}
	return nil
}

func newTestRouter(cart *services.CartService, cache repositories.CartCache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewCartController(cart, cache, nil)

	r := gin.New()
	g := r.Group("/api/cart")
	g.GET("", ctrl.GetCart)
	g.POST("", ctrl.AddProduct)
	g.DELETE("/clear", ctrl.ClearCart)
	g.GET("/:productId", ctrl.GetProduct)
	g.PUT("/:productId", ctrl.UpdateProductQuantity)
	g.DELETE("/:productId", ctrl.RemoveProduct)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: invalid JSON body %q: %v", method, path, rec.Body.String(), err)
	}
	return rec, env
}

const widgetJSON = `{"productId":"123","name":"Widget","price":29.99,"quantity":2}`

func decodeItem(t *testing.T, raw json.RawMessage) models.LineItem {
	t.Helper()
	var item models.LineItem
	if err := json.Unmarshal(raw, &item); err != nil {
		t.Fatalf("decode item: %v", err)
	}
	return item
}

func decodeSummary(t *testing.T, raw json.RawMessage) models.CartSummary {
	t.Helper()
	var s models.CartSummary
	if err := json.Unmarshal(raw, &s); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	return s
}

func TestGetEmptyCart(t *testing.T) {
	r := newTestRouter(services.NewCartService(), nil)

	rec, env := do(t, r, http.MethodGet, "/api/cart", "")
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
	if string(env.Data) != `{"items":[],"total":0,"itemCount":0}` {
		t.Fatalf("unexpected data: %s", env.Data)
	}
}

func TestAddAndListProduct(t *testing.T) {
	r := newTestRouter(services.NewCartService(), nil)

	rec, env := do(t, r, http.MethodPost, "/api/cart", widgetJSON)
	if rec.Code != http.StatusCreated || !env.Success {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
	if env.Message != "Product added to cart successfully" {
		t.Fatalf("unexpected message: %q", env.Message)
	}
	item := decodeItem(t, env.Data)
	if item.ProductID != "123" || item.Name != "Widget" || item.UnitPrice != 29.99 || item.Quantity != 2 {
		t.Fatalf("unexpected item: %+v", item)
	}

	_, env = do(t, r, http.MethodGet, "/api/cart", "")
	summary := decodeSummary(t, env.Data)
	if len(summary.Items) != 1 || summary.ItemCount != 1 || math.Abs(summary.Total-59.98) > 1e-9 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestAddDuplicateProductMerges(t *testing.T) {
	r := newTestRouter(services.NewCartService(), nil)

	do(t, r, http.MethodPost, "/api/cart", widgetJSON)
	rec, env := do(t, r, http.MethodPost, "/api/cart", widgetJSON)
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if item := decodeItem(t, env.Data); item.Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", item.Quantity)
	}
}

func TestAddProductErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{"missing fields", `{"productId":"123","name":"Widget"}`, "Missing required fields"},
		{"empty body", "", "Missing required fields"},
		{"non-positive values", `{"productId":"123","name":"Widget","price":-10,"quantity":-1}`, "Failed to add product"},
		{"malformed json", `{"productId":`, "Invalid request body"},
		{"wrong types", `{"productId":"123","name":"Widget","price":"abc","quantity":1}`, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := services.NewCartService()
			r := newTestRouter(cart, nil)

			rec, env := do(t, r, http.MethodPost, "/api/cart", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
			}
			if env.Success || env.Error != tt.wantError || env.Message == "" {
				t.Fatalf("unexpected body: %s", rec.Body.String())
			}
			if cart.Count() != 0 {
				t.Fatalf("cart changed after rejected add")
			}
		})
	}
}

func TestUpdateProductQuantity(t *testing.T) {
	cart := services.NewCartService()
	r := newTestRouter(cart, nil)
	do(t, r, http.MethodPost, "/api/cart", widgetJSON)

	rec, env := do(t, r, http.MethodPut, "/api/cart/123", `{"quantity":5}`)
	if rec.Code != http.StatusOK || env.Message != "Quantity updated successfully" {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
	item := decodeItem(t, env.Data)
	if item.Quantity != 5 || item.UpdatedAt == nil {
		t.Fatalf("unexpected item: %+v", item)
	}
	if math.Abs(cart.Total()-149.95) > 1e-9 {
		t.Fatalf("expected total 149.95, got %v", cart.Total())
	}
}

func TestUpdateProductQuantityErrors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"zero quantity", "/api/cart/123", `{"quantity":0}`, http.StatusBadRequest, "Missing required field"},
		{"missing quantity", "/api/cart/123", `{}`, http.StatusBadRequest, "Missing required field"},
		{"negative quantity", "/api/cart/123", `{"quantity":-2}`, http.StatusBadRequest, "Failed to update quantity"},
		{"unknown product", "/api/cart/999", `{"quantity":5}`, http.StatusNotFound, "Failed to update quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := services.NewCartService()
			r := newTestRouter(cart, nil)
			do(t, r, http.MethodPost, "/api/cart", widgetJSON)

			rec, env := do(t, r, http.MethodPut, tt.path, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tt.wantStatus)
			}
			if env.Success || env.Error != tt.wantError {
				t.Fatalf("unexpected body: %s", rec.Body.String())
			}
			if item, _ := cart.Find("123"); item.Quantity != 2 {
				t.Fatalf("quantity changed after failed update: %d", item.Quantity)
			}
		})
	}
}

func TestGetProduct(t *testing.T) {
	r := newTestRouter(services.NewCartService(), nil)
	do(t, r, http.MethodPost, "/api/cart", widgetJSON)

	rec, env := do(t, r, http.MethodGet, "/api/cart/123", "")
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
	if item := decodeItem(t, env.Data); item.ProductID != "123" || item.Quantity != 2 {
		t.Fatalf("unexpected item: %+v", item)
	}

	rec, env = do(t, r, http.MethodGet, "/api/cart/999", "")
	if rec.Code != http.StatusNotFound || env.Success || env.Error != "Product not found" {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRemoveProduct(t *testing.T) {
	cart := services.NewCartService()
	r := newTestRouter(cart, nil)
	do(t, r, http.MethodPost, "/api/cart", widgetJSON)

	rec, env := do(t, r, http.MethodDelete, "/api/cart/123", "")
	if rec.Code != http.StatusOK || env.Message != "Product removed from cart successfully" {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
	if cart.Count() != 0 {
		t.Fatalf("product was not removed")
	}

	rec, env = do(t, r, http.MethodDelete, "/api/cart/123", "")
	if rec.Code != http.StatusNotFound || env.Error != "Failed to remove product" {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestClearCart(t *testing.T) {
	cart := services.NewCartService()
	r := newTestRouter(cart, nil)
	do(t, r, http.MethodPost, "/api/cart", widgetJSON)

	for i := 0; i < 2; i++ {
		rec, env := do(t, r, http.MethodDelete, "/api/cart/clear", "")
		if rec.Code != http.StatusOK || env.Message != "Cart cleared successfully" {
			t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
		}
		if cart.Count() != 0 {
			t.Fatalf("cart not empty after clear")
		}
	}
}

func TestGetCartUsesCacheForCurrentRevision(t *testing.T) {
	cart := services.NewCartService()
	cache := newRecordingCache()
	r := newTestRouter(cart, cache)

	do(t, r, http.MethodPost, "/api/cart", widgetJSON)
	if cache.invalidated != 1 {
		t.Fatalf("add did not invalidate the cache")
	}

	do(t, r, http.MethodGet, "/api/cart", "")
	if _, ok := cache.entries[cart.Revision()]; !ok {
		t.Fatalf("summary was not cached under the current revision")
	}

	// Serve a marker from the cache to prove the hit path is taken.
	marked := cache.entries[cart.Revision()]
	marked.ItemCount = 42
	cache.entries[cart.Revision()] = marked
	_, env := do(t, r, http.MethodGet, "/api/cart", "")
	if decodeSummary(t, env.Data).ItemCount != 42 {
		t.Fatalf("expected cached summary to be served")
	}

	// A mutation that bypasses the controller still moves the revision.
	if _, err := cart.UpdateQuantity("123", 9); err != nil {
		t.Fatalf("UpdateQuantity failed: %v", err)
	}
	_, env = do(t, r, http.MethodGet, "/api/cart", "")
	summary := decodeSummary(t, env.Data)
	if summary.ItemCount != 1 || summary.Items[0].Quantity != 9 {
		t.Fatalf("stale summary served: %+v", summary)
	}
}

func TestGetCartFallsBackWhenCacheFails(t *testing.T) {
	cart := services.NewCartService()
	cache := newRecordingCache()
	cache.failGet = true
	r := newTestRouter(cart, cache)
	do(t, r, http.MethodPost, "/api/cart", widgetJSON)

	rec, env := do(t, r, http.MethodGet, "/api/cart", "")
	if rec.Code != http.StatusOK || decodeSummary(t, env.Data).ItemCount != 1 {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestFailedMutationsKeepCache(t *testing.T) {
	cart := services.NewCartService()
	cache := newRecordingCache()
	r := newTestRouter(cart, cache)

	do(t, r, http.MethodPost, "/api/cart", `{"productId":"1"}`)
	do(t, r, http.MethodPut, "/api/cart/404", `{"quantity":1}`)
	do(t, r, http.MethodDelete, "/api/cart/404", "")
	if cache.invalidated != 0 {
		t.Fatalf("failed requests invalidated the cache %d times", cache.invalidated)
	}
}

func TestAddProductRejectsOverflowingTotal(t *testing.T) {
	cart := services.NewCartService()
	r := newTestRouter(cart, nil)

	rec, env := do(t, r, http.MethodPost, "/api/cart", `{"productId":"a","name":"A","price":1e308,"quantity":2}`)
	if rec.Code != http.StatusBadRequest || env.Error != "Failed to add product" {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}

	do(t, r, http.MethodPost, "/api/cart", `{"productId":"a","name":"A","price":1e308,"quantity":1}`)
	rec, env = do(t, r, http.MethodPut, "/api/cart/a", `{"quantity":2}`)
	if rec.Code != http.StatusBadRequest || env.Error != "Failed to update quantity" {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}

	rec, env = do(t, r, http.MethodGet, "/api/cart", "")
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
	if summary := decodeSummary(t, env.Data); summary.ItemCount != 1 || summary.Total != 1e308 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestAddProductAcceptsNumericStrings(t *testing.T) {
	r := newTestRouter(services.NewCartService(), nil)

	rec, env := do(t, r, http.MethodPost, "/api/cart", `{"productId":"123","name":"Widget","price":"29.99","quantity":"2"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
	if item := decodeItem(t, env.Data); item.UnitPrice != 29.99 || item.Quantity != 2 {
		t.Fatalf("unexpected item: %+v", item)
	}

	rec, env = do(t, r, http.MethodPost, "/api/cart", `{"productId":"9","name":"Gadget","price":"","quantity":"1"}`)
	if rec.Code != http.StatusBadRequest || env.Error != "Missing required fields" {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}
