package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartStatusSaved — единственный статус жизненного цикла корзины.
const CartStatusSaved = "saved"

// CartItem описывает позицию корзины.
// ProductID обязан ссылаться на существующий товар на момент сохранения.
type CartItem struct {
	ProductID int64
	Quantity  decimal.Decimal
}

// Cart описывает корзину покупателя
type Cart struct {
	ID         string
	CustomerID string
	Items      []CartItem
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ExpiresAt  time.Time
}

func NewCartItem(productID int64, quantity decimal.Decimal) CartItem {
	return CartItem{
		ProductID: productID,
		Quantity:  quantity,
	}
}
