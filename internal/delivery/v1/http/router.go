package http

import (
	"github.com/DRSN-tech/cart-backend/internal/usecase"
	"github.com/DRSN-tech/cart-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(catalogUC usecase.CatalogUC, cartUC usecase.CartUC) {
	prHandler := NewProductHandler(catalogUC, r.logger)
	cartHandler := NewCartHandler(cartUC, r.logger)

	registerProductRoutes(r.router, prHandler)
	registerCartRoutes(r.router, cartHandler)
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.listProducts)
		pr.Get("/{id}", prHandler.getProduct)
	})
}

func registerCartRoutes(router chi.Router, cartHandler *CartHandler) {
	router.Route("/carts", func(ct chi.Router) {
		ct.Post("/", cartHandler.submitCart)
		ct.Get("/", cartHandler.getCarts)
	})
}
