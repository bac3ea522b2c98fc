package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DRSN-tech/cart-backend/internal/usecase"
	"github.com/DRSN-tech/cart-backend/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCartUC struct {
	submitRes *usecase.SubmitCartRes
	submitErr error
	lastReq   *usecase.SubmitCartReq

	cartsRes *usecase.GetCartsRes
	cartsErr error
}

func (m *mockCartUC) SubmitCart(_ context.Context, req *usecase.SubmitCartReq) (*usecase.SubmitCartRes, error) {
	m.lastReq = req
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return m.submitRes, nil
}

func (m *mockCartUC) GetCustomerCarts(_ context.Context, req *usecase.GetCartsReq) (*usecase.GetCartsRes, error) {
	if m.cartsErr != nil {
		return nil, m.cartsErr
	}
	return m.cartsRes, nil
}

type mockCatalogUC struct {
	listRes *usecase.ListProductsRes
	listErr error

	getRes   *usecase.GetProductRes
	getErr   error
	getCalls int
}

func (m *mockCatalogUC) ListProducts(_ context.Context, req *usecase.ListProductsReq) (*usecase.ListProductsRes, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listRes, nil
}

func (m *mockCatalogUC) GetProduct(_ context.Context, req *usecase.GetProductReq) (*usecase.GetProductRes, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.getRes, nil
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

func newTestRouter(catalogUC usecase.CatalogUC, cartUC usecase.CartUC) *chi.Mux {
	mux := chi.NewRouter()
	router := NewRouter(mux, nopLogger{})
	router.Init(catalogUC, cartUC)
	return mux
}

func doRequest(t *testing.T, mux *chi.Mux, method, target string, body []byte) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))

	return rec, parsed
}

func TestSubmitCartCreated(t *testing.T) {
	cartUC := &mockCartUC{
		submitRes: usecase.NewSubmitCartRes("CART-20250310-1234", "saved", false),
	}
	mux := newTestRouter(&mockCatalogUC{}, cartUC)

	body := []byte(`{"customer_id":"u1","items":[{"product_id":1,"quantity":2},{"product_id":"2","quantity":"1.5"}]}`)
	rec, parsed := doRequest(t, mux, http.MethodPost, "/carts", body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, parsed["success"])
	assert.Equal(t, "CART-20250310-1234", parsed["cart_id"])
	assert.Equal(t, "saved", parsed["status"])
	assert.Equal(t, "Cart saved successfully", parsed["message"])

	// тело передаётся в usecase без приведения типов
	require.NotNil(t, cartUC.lastReq)
	assert.Equal(t, "u1", cartUC.lastReq.CustomerID)
	require.Len(t, cartUC.lastReq.Items, 2)
	assert.Equal(t, json.Number("1"), cartUC.lastReq.Items[0].ProductID)
	assert.Equal(t, "2", cartUC.lastReq.Items[1].ProductID)
	assert.Equal(t, "1.5", cartUC.lastReq.Items[1].Quantity)
}

func TestSubmitCartReplaced(t *testing.T) {
	cartUC := &mockCartUC{
		submitRes: usecase.NewSubmitCartRes("CART-20250310-1234", "saved", true),
	}
	mux := newTestRouter(&mockCatalogUC{}, cartUC)

	body := []byte(`{"cart_id":"CART-20250310-1234","customer_id":"u1","items":[{"product_id":1,"quantity":5}]}`)
	rec, parsed := doRequest(t, mux, http.MethodPost, "/carts", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cart updated successfully", parsed["message"])
	assert.Equal(t, "CART-20250310-1234", cartUC.lastReq.CartID)
}

func TestSubmitCartMalformedJSON(t *testing.T) {
	cartUC := &mockCartUC{}
	mux := newTestRouter(&mockCatalogUC{}, cartUC)

	rec, parsed := doRequest(t, mux, http.MethodPost, "/carts", []byte(`{"customer_id":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, parsed["success"])
	assert.Equal(t, "bad_request", parsed["error"])
	assert.Nil(t, cartUC.lastReq)
}

func TestSubmitCartValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"нет customer_id", e.ErrCustomerIDRequired, "missing_customer_id"},
		{"пустые items", e.ErrItemsRequired, "items_required"},
		{"прочие ошибки", errors.New("pool exhausted"), "internal_server_error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mux := newTestRouter(&mockCatalogUC{}, &mockCartUC{submitErr: tc.err})

			body := []byte(`{"items":[]}`)
			rec, parsed := doRequest(t, mux, http.MethodPost, "/carts", body)

			if tc.wantCode == "internal_server_error" {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
			} else {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			}
			assert.Equal(t, false, parsed["success"])
			assert.Equal(t, tc.wantCode, parsed["error"])
		})
	}
}

func TestSubmitCartInvalidItemsDetails(t *testing.T) {
	productID := int64(9)
	cartUC := &mockCartUC{
		submitErr: &usecase.InvalidItemsError{Details: []usecase.ItemIssue{
			{Index: 0, Reason: usecase.ReasonInvalidQuantity},
			{Index: 1, Reason: usecase.ReasonProductNotFound, ProductID: &productID},
		}},
	}
	mux := newTestRouter(&mockCatalogUC{}, cartUC)

	body := []byte(`{"customer_id":"u1","items":[{"product_id":1,"quantity":0},{"product_id":9,"quantity":1}]}`)
	rec, parsed := doRequest(t, mux, http.MethodPost, "/carts", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_items", parsed["error"])

	details, ok := parsed["details"].([]any)
	require.True(t, ok)
	require.Len(t, details, 2)

	first := details[0].(map[string]any)
	assert.Equal(t, float64(0), first["index"])
	assert.Equal(t, "invalid_quantity", first["reason"])
	_, hasProductID := first["product_id"]
	assert.False(t, hasProductID)

	second := details[1].(map[string]any)
	assert.Equal(t, "product_not_found", second["reason"])
	assert.Equal(t, float64(9), second["product_id"])
}

func TestGetCartsMissingCustomerID(t *testing.T) {
	mux := newTestRouter(&mockCatalogUC{}, &mockCartUC{cartsErr: e.ErrUserIDRequired})

	rec, parsed := doRequest(t, mux, http.MethodGet, "/carts", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_user_id", parsed["error"])
}

func TestGetCarts(t *testing.T) {
	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	cartUC := &mockCartUC{
		cartsRes: usecase.NewGetCartsRes([]usecase.CartInfo{
			{
				CartID:     "CART-20250310-1234",
				CustomerID: "u1",
				Items: []usecase.CartItemInfo{
					{ProductID: 1, Quantity: decimal.RequireFromString("2.5")},
				},
				Status:    "saved",
				CreatedAt: created,
				UpdatedAt: created,
				ExpiresAt: created.Add(7 * 24 * time.Hour),
			},
		}),
	}
	mux := newTestRouter(&mockCatalogUC{}, cartUC)

	rec, parsed := doRequest(t, mux, http.MethodGet, "/carts?customer_id=u1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), parsed["total"])

	carts := parsed["carts"].([]any)
	require.Len(t, carts, 1)
	cart := carts[0].(map[string]any)
	assert.Equal(t, "CART-20250310-1234", cart["cart_id"])
	assert.Equal(t, "saved", cart["status"])

	items := cart["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, float64(1), item["product_id"])
	assert.Equal(t, 2.5, item["quantity"])
}

func TestListProducts(t *testing.T) {
	catalogUC := &mockCatalogUC{
		listRes: usecase.NewListProductsRes([]usecase.ProductInfo{
			usecase.NewProductInfo(1, "mug", "kitchen", 59900),
			usecase.NewProductInfo(2, "plate", "kitchen", 9950),
		}),
	}
	mux := newTestRouter(catalogUC, &mockCartUC{})

	rec, parsed := doRequest(t, mux, http.MethodGet, "/products?limit=2", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), parsed["total"])

	products := parsed["products"].([]any)
	require.Len(t, products, 2)
	first := products[0].(map[string]any)
	assert.Equal(t, "mug", first["name"])
	assert.Equal(t, "599.00", first["price"])
	second := products[1].(map[string]any)
	assert.Equal(t, "99.50", second["price"])
}

func TestGetProduct(t *testing.T) {
	catalogUC := &mockCatalogUC{
		getRes: usecase.NewGetProductRes(usecase.NewProductInfo(1, "mug", "kitchen", 59900)),
	}
	mux := newTestRouter(catalogUC, &mockCartUC{})

	rec, parsed := doRequest(t, mux, http.MethodGet, "/products/1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	product := parsed["product"].(map[string]any)
	assert.Equal(t, float64(1), product["id"])
	assert.Equal(t, "599.00", product["price"])
}

func TestGetProductNotFound(t *testing.T) {
	mux := newTestRouter(&mockCatalogUC{getErr: e.ErrProductNotFound}, &mockCartUC{})

	rec, parsed := doRequest(t, mux, http.MethodGet, "/products/404", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "product_not_found", parsed["error"])
}

func TestGetProductBadID(t *testing.T) {
	catalogUC := &mockCatalogUC{}
	mux := newTestRouter(catalogUC, &mockCartUC{})

	rec, parsed := doRequest(t, mux, http.MethodGet, "/products/abc", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "product_not_found", parsed["error"])
	// до usecase запрос не доходит
	assert.Equal(t, 0, catalogUC.getCalls)
}
