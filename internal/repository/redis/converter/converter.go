package converter

import "github.com/DRSN-tech/cart-backend/internal/usecase"

// ProductInfoConverter преобразует DTO товара между usecase и моделью кэша.
type ProductInfoConverter interface {
	ToRedisModel(entity *usecase.ProductInfo) *ProductInfoRedisModel
	ToUseCase(model *ProductInfoRedisModel) *usecase.ProductInfo
	ToArrRedisModel(entities []usecase.ProductInfo) []ProductInfoRedisModel
}

type ProductInfoConverterImpl struct{}

func NewProductInfoConverterImpl() *ProductInfoConverterImpl {
	return &ProductInfoConverterImpl{}
}

func (c *ProductInfoConverterImpl) ToRedisModel(entity *usecase.ProductInfo) *ProductInfoRedisModel {
	return &ProductInfoRedisModel{
		ID:       entity.ID,
		Name:     entity.Name,
		Category: entity.Category,
		Price:    entity.Price,
	}
}

func (c *ProductInfoConverterImpl) ToUseCase(model *ProductInfoRedisModel) *usecase.ProductInfo {
	return &usecase.ProductInfo{
		ID:       model.ID,
		Name:     model.Name,
		Category: model.Category,
		Price:    model.Price,
	}
}

func (c *ProductInfoConverterImpl) ToArrRedisModel(entities []usecase.ProductInfo) []ProductInfoRedisModel {
	result := make([]ProductInfoRedisModel, 0, len(entities))
	for i := range entities {
		result = append(result, *c.ToRedisModel(&entities[i]))
	}

	return result
}
