package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID         int64      `db:"id"`
	Name       string     `db:"name"`
	Category   string     `db:"category"`
	Price      int64      `db:"price"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at"`
	IsArchived bool       `db:"is_archived"`
}

// CartModel представляет запись таблицы carts в PostgreSQL.
// Items хранит позиции корзины как JSONB-документ.
type CartModel struct {
	CartID     string    `db:"cart_id"`
	CustomerID string    `db:"customer_id"`
	Items      []byte    `db:"items"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
	ExpiresAt  time.Time `db:"expires_at"`
}

// CartItemModel — элемент JSONB-массива items.
type CartItemModel struct {
	ProductID int64   `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	CartID      string     `db:"cart_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
