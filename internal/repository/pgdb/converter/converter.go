package converter

import (
	"encoding/json"

	"github.com/DRSN-tech/cart-backend/internal/domain"
	"github.com/DRSN-tech/cart-backend/internal/usecase"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
}

// CartConverter преобразует сущности Cart между domain и моделью PostgreSQL.
// Позиции корзины сериализуются в JSONB.
type CartConverter interface {
	ToModel(entity *domain.Cart) (*CartModel, error)
	ToEntity(model *CartModel) (*domain.Cart, error)
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func (c *ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
		ID:         entity.ID,
		Name:       entity.Name,
		Category:   entity.Category,
		Price:      entity.Price,
		CreatedAt:  entity.CreatedAt,
		UpdatedAt:  entity.UpdatedAt,
		IsArchived: entity.IsArchived,
	}
}

func (c *ProductConverterImpl) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:         model.ID,
		Name:       model.Name,
		Category:   model.Category,
		Price:      model.Price,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
		IsArchived: model.IsArchived,
	}
}

type CartConverterImpl struct{}

func NewCartConverterImpl() *CartConverterImpl {
	return &CartConverterImpl{}
}

func (c *CartConverterImpl) ToModel(entity *domain.Cart) (*CartModel, error) {
	items := make([]CartItemModel, 0, len(entity.Items))
	for _, it := range entity.Items {
		quantity, _ := it.Quantity.Float64()
		items = append(items, CartItemModel{
			ProductID: it.ProductID,
			Quantity:  quantity,
		})
	}

	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	return &CartModel{
		CartID:     entity.ID,
		CustomerID: entity.CustomerID,
		Items:      data,
		Status:     entity.Status,
		CreatedAt:  entity.CreatedAt,
		UpdatedAt:  entity.UpdatedAt,
		ExpiresAt:  entity.ExpiresAt,
	}, nil
}

func (c *CartConverterImpl) ToEntity(model *CartModel) (*domain.Cart, error) {
	var items []CartItemModel
	if err := json.Unmarshal(model.Items, &items); err != nil {
		return nil, err
	}

	domainItems := make([]domain.CartItem, 0, len(items))
	for _, it := range items {
		domainItems = append(domainItems, domain.CartItem{
			ProductID: it.ProductID,
			Quantity:  decimal.NewFromFloat(it.Quantity),
		})
	}

	return &domain.Cart{
		ID:         model.CartID,
		CustomerID: model.CustomerID,
		Items:      domainItems,
		Status:     model.Status,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
		ExpiresAt:  model.ExpiresAt,
	}, nil
}

type OutboxEventConverterImpl struct{}

func NewOutboxEventConverterImpl() *OutboxEventConverterImpl {
	return &OutboxEventConverterImpl{}
}

func (c *OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		CartID:      entity.CartID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		CartID:      model.CartID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		result = append(result, c.ToEntity(model))
	}

	return result
}
