package usecase

import "context"

type CartUC interface {
	SubmitCart(ctx context.Context, req *SubmitCartReq) (*SubmitCartRes, error)
	GetCustomerCarts(ctx context.Context, req *GetCartsReq) (*GetCartsRes, error)
}

type CatalogUC interface {
	ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error)
	GetProduct(ctx context.Context, req *GetProductReq) (*GetProductRes, error)
}
