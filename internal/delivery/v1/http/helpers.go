package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/DRSN-tech/cart-backend/internal/usecase"
	"github.com/DRSN-tech/cart-backend/pkg/e"
	"github.com/shopspring/decimal"
)

// ErrorResponse — единый формат тела ошибки.
type ErrorResponse struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Details []ItemIssueResponse `json:"details,omitempty"`
}

// ItemIssueResponse — ошибка валидации одной позиции корзины.
type ItemIssueResponse struct {
	Index     int    `json:"index"`
	Reason    string `json:"reason"`
	ProductID *int64 `json:"product_id,omitempty"`
}

type ProductResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
}

type CartResponse struct {
	CartID     string             `json:"cart_id"`
	CustomerID string             `json:"customer_id"`
	Items      []CartItemResponse `json:"items"`
	Status     string             `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	ExpiresAt  time.Time          `json:"expires_at"`
}

type CartItemResponse struct {
	ProductID int64   `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

// ToHTTPResponse сопоставляет ошибку usecase со статусом и телом ответа.
// Неопознанные ошибки отдаются как internal_server_error без деталей.
func ToHTTPResponse(err error) (int, *ErrorResponse) {
	var invalidItems *usecase.InvalidItemsError

	switch {
	case errors.As(err, &invalidItems):
		return http.StatusBadRequest, &ErrorResponse{
			Error:   "invalid_items",
			Details: toItemIssueResponses(invalidItems.Details),
		}
	case errors.Is(err, e.ErrCustomerIDRequired):
		return http.StatusBadRequest, &ErrorResponse{Error: e.ErrCustomerIDRequired.Error()}
	case errors.Is(err, e.ErrItemsRequired):
		return http.StatusBadRequest, &ErrorResponse{Error: e.ErrItemsRequired.Error()}
	case errors.Is(err, e.ErrUserIDRequired):
		return http.StatusBadRequest, &ErrorResponse{Error: e.ErrUserIDRequired.Error()}
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, &ErrorResponse{Error: e.ErrStatusBadRequest.Error()}
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, &ErrorResponse{Error: e.ErrProductNotFound.Error()}
	default:
		return http.StatusInternalServerError, &ErrorResponse{Error: e.ErrInternalServerError.Error()}
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, body := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func toItemIssueResponses(issues []usecase.ItemIssue) []ItemIssueResponse {
	result := make([]ItemIssueResponse, 0, len(issues))
	for _, issue := range issues {
		result = append(result, ItemIssueResponse{
			Index:     issue.Index,
			Reason:    issue.Reason,
			ProductID: issue.ProductID,
		})
	}

	return result
}

// toProductResponse рендерит цену из копеек в строку с двумя знаками.
func toProductResponse(p usecase.ProductInfo) ProductResponse {
	price := decimal.NewFromInt(p.Price).Div(decimal.NewFromInt(100))

	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    price.StringFixed(2),
	}
}

func toProductResponses(products []usecase.ProductInfo) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		result = append(result, toProductResponse(p))
	}

	return result
}

func toCartResponse(c usecase.CartInfo) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		quantity, _ := it.Quantity.Float64()
		items = append(items, CartItemResponse{
			ProductID: it.ProductID,
			Quantity:  quantity,
		})
	}

	return CartResponse{
		CartID:     c.CartID,
		CustomerID: c.CustomerID,
		Items:      items,
		Status:     c.Status,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		ExpiresAt:  c.ExpiresAt,
	}
}

func toCartResponses(carts []usecase.CartInfo) []CartResponse {
	result := make([]CartResponse, 0, len(carts))
	for _, c := range carts {
		result = append(result, toCartResponse(c))
	}

	return result
}

// stringValue возвращает строковое значение сырого JSON-поля.
// Любой нестроковый тип трактуется как отсутствие значения.
func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
