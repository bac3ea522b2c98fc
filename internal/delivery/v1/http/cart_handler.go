package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/cart-backend/internal/usecase"
	"github.com/DRSN-tech/cart-backend/pkg/e"
	"github.com/DRSN-tech/cart-backend/pkg/logger"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

// submitCartRequest — сырое тело POST /carts.
// Идентификаторы и количества принимаются в свободной форме (число или строка)
// и приводятся к типам на этапе валидации.
type submitCartRequest struct {
	CartID     any                     `json:"cart_id"`
	CustomerID any                     `json:"customer_id"`
	Items      []submitCartItemRequest `json:"items"`
}

type submitCartItemRequest struct {
	ProductID any `json:"product_id"`
	Quantity  any `json:"quantity"`
}

// submitCart сохраняет корзину целиком: создаёт новую или заменяет существующую по cart_id.
// 201 — создана, 200 — заменена.
func (c *CartHandler) submitCart(w http.ResponseWriter, r *http.Request) {
	const maxBodySize = 1 << 20

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var body submitCartRequest
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&body); err != nil {
		c.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	items := make([]usecase.SubmitCartItem, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, usecase.SubmitCartItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	res, err := c.cartUsecase.SubmitCart(r.Context(), usecase.NewSubmitCartReq(
		stringValue(body.CartID),
		stringValue(body.CustomerID),
		items,
	))
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	status := http.StatusCreated
	message := "Cart saved successfully"
	if res.Replaced {
		status = http.StatusOK
		message = "Cart updated successfully"
	}

	WriteSuccess(w, status, map[string]interface{}{
		"success": true,
		"cart_id": res.CartID,
		"status":  res.Status,
		"message": message,
	})
}

// getCarts отдаёт все корзины покупателя; параметр customer_id обязателен.
func (c *CartHandler) getCarts(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")

	res, err := c.cartUsecase.GetCustomerCarts(r.Context(), usecase.NewGetCartsReq(customerID))
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	carts := toCartResponses(res.Carts)
	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"total":   len(carts),
		"carts":   carts,
	})
}
