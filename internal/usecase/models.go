package usecase

import (
	"fmt"
	"time"

	"github.com/DRSN-tech/cart-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// CART USECASE

// Причины отклонения отдельных позиций корзины.
const (
	ReasonItemFieldsRequired = "item_fields_required"
	ReasonInvalidQuantity    = "invalid_quantity"
	ReasonProductNotFound    = "product_not_found"
)

// SubmitCartReq — запрос на сохранение корзины.
type SubmitCartReq struct {
	CartID     string
	CustomerID string
	Items      []SubmitCartItem
}

// SubmitCartItem — позиция корзины до нормализации.
// Поля хранятся как сырые JSON-значения: клиенты присылают числа и строки вперемешку,
// приведение к типам выполняется явным шагом валидации.
type SubmitCartItem struct {
	ProductID any
	Quantity  any
}

// SubmitCartRes — результат сохранения корзины.
type SubmitCartRes struct {
	CartID   string
	Status   string
	Replaced bool // true, если корзина с таким cart_id уже существовала и была заменена
}

// ItemIssue описывает ошибку валидации одной позиции корзины.
type ItemIssue struct {
	Index     int
	Reason    string
	ProductID *int64 // заполняется для ReasonProductNotFound
}

// InvalidItemsError агрегирует ошибки валидации по всем позициям корзины.
// Список полный: проверка не останавливается на первой ошибке.
type InvalidItemsError struct {
	Details []ItemIssue
}

func (e *InvalidItemsError) Error() string {
	return fmt.Sprintf("invalid items: %d issue(s)", len(e.Details))
}

// GetCartsReq — запрос корзин покупателя.
type GetCartsReq struct {
	CustomerID string
}

// GetCartsRes — ответ со всеми корзинами покупателя.
type GetCartsRes struct {
	Carts []CartInfo
}

// CartInfo — DTO корзины для внешнего использования.
type CartInfo struct {
	CartID     string
	CustomerID string
	Items      []CartItemInfo
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ExpiresAt  time.Time
}

type CartItemInfo struct {
	ProductID int64
	Quantity  decimal.Decimal
}

// CATALOG USECASE

// ListProductsReq — запрос списка товаров. Limit <= 0 заменяется значением по умолчанию.
type ListProductsReq struct {
	Limit int
}

type ListProductsRes struct {
	Products []ProductInfo
}

type GetProductReq struct {
	ID int64
}

type GetProductRes struct {
	Product ProductInfo
}

// ProductInfo — DTO с информацией о товаре для внешнего использования.
type ProductInfo struct {
	ID       int64
	Name     string
	Category string
	Price    int64
}

// MAPPERS

func NewSubmitCartReq(cartID string, customerID string, items []SubmitCartItem) *SubmitCartReq {
	return &SubmitCartReq{
		CartID:     cartID,
		CustomerID: customerID,
		Items:      items,
	}
}

func NewSubmitCartRes(cartID string, status string, replaced bool) *SubmitCartRes {
	return &SubmitCartRes{
		CartID:   cartID,
		Status:   status,
		Replaced: replaced,
	}
}

func NewGetCartsReq(customerID string) *GetCartsReq {
	return &GetCartsReq{CustomerID: customerID}
}

func NewGetCartsRes(carts []CartInfo) *GetCartsRes {
	return &GetCartsRes{Carts: carts}
}

func NewCartInfo(cart *domain.Cart) CartInfo {
	items := make([]CartItemInfo, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, CartItemInfo{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	return CartInfo{
		CartID:     cart.ID,
		CustomerID: cart.CustomerID,
		Items:      items,
		Status:     cart.Status,
		CreatedAt:  cart.CreatedAt,
		UpdatedAt:  cart.UpdatedAt,
		ExpiresAt:  cart.ExpiresAt,
	}
}

func NewListProductsReq(limit int) *ListProductsReq {
	return &ListProductsReq{Limit: limit}
}

func NewListProductsRes(products []ProductInfo) *ListProductsRes {
	return &ListProductsRes{Products: products}
}

func NewGetProductReq(id int64) *GetProductReq {
	return &GetProductReq{ID: id}
}

func NewGetProductRes(product ProductInfo) *GetProductRes {
	return &GetProductRes{Product: product}
}

func NewProductInfo(id int64, name string, category string, price int64) ProductInfo {
	return ProductInfo{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    price,
	}
}

func NewProductInfoFromDomain(product *domain.Product) ProductInfo {
	return NewProductInfo(product.ID, product.Name, product.Category, product.Price)
}
