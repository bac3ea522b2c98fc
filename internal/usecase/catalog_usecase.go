package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/cart-backend/pkg/e"
	"github.com/DRSN-tech/cart-backend/pkg/logger"
)

// defaultProductsLimit применяется, когда клиент не передал корректный limit.
const defaultProductsLimit = 10

// CatalogUseCase реализует чтение каталога товаров.
type CatalogUseCase struct {
	productRepo ProductRepository
	cacheRepo   CacheRepository
	logger      logger.Logger
}

func NewCatalogUC(productRepo ProductRepository, cacheRepo CacheRepository, logger logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

// ListProducts возвращает товары каталога в порядке хранения, не больше limit штук.
func (c *CatalogUseCase) ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error) {
	const op = "CatalogUseCase.ListProducts"

	limit := req.Limit
	if limit <= 0 {
		limit = defaultProductsLimit
	}

	products, err := c.productRepo.List(ctx, limit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	infos := make([]ProductInfo, 0, len(products))
	for i := range products {
		infos = append(infos, NewProductInfoFromDomain(&products[i]))
	}

	return NewListProductsRes(infos), nil
}

// GetProduct возвращает товар по идентификатору: сначала из кэша, затем из БД.
func (c *CatalogUseCase) GetProduct(ctx context.Context, req *GetProductReq) (*GetProductRes, error) {
	const op = "CatalogUseCase.GetProduct"

	cached, err := c.cacheRepo.GetProducts(ctx, []int64{req.ID})
	if err == nil {
		if product, ok := cached[req.ID]; ok {
			return NewGetProductRes(product), nil
		}
	}

	infos, err := c.productRepo.GetProductsInfo(ctx, []int64{req.ID})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(infos) == 0 {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	// Фоновое добавление товара в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := c.cacheRepo.SetProducts(bgCtx, infos); err != nil {
			c.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return NewGetProductRes(infos[0]), nil
}
