package http

import (
	"net/http"
	"strconv"

	"github.com/DRSN-tech/cart-backend/internal/usecase"
	"github.com/DRSN-tech/cart-backend/pkg/e"
	"github.com/DRSN-tech/cart-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewProductHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// listProducts отдаёт каталог товаров.
// Параметр limit необязателен; некорректное значение заменяется значением по умолчанию.
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = 0 // usecase подставит значение по умолчанию
	}

	res, err := p.catalogUsecase.ListProducts(r.Context(), usecase.NewListProductsReq(limit))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	products := toProductResponses(res.Products)
	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"total":    len(products),
		"products": products,
	})
}

// getProduct отдаёт один товар по числовому идентификатору.
// Нечисловой идентификатор не может совпасть ни с одним товаром и даёт 404.
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteError(w, e.ErrProductNotFound)
		return
	}

	res, err := p.catalogUsecase.GetProduct(r.Context(), usecase.NewGetProductReq(id))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"product": toProductResponse(res.Product),
	})
}
