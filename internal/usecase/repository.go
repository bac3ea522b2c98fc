package usecase

import (
	"context"

	"github.com/DRSN-tech/cart-backend/internal/domain"
)

type ProductRepository interface {
	List(ctx context.Context, limit int) ([]domain.Product, error)
	GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error)
}

type CartRepository interface {
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	FindByCustomer(ctx context.Context, customerID string) ([]domain.Cart, error)
	Upsert(ctx context.Context, cart *domain.Cart) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error)
	SetProducts(ctx context.Context, products []ProductInfo) error
}
