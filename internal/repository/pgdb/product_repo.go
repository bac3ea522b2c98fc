package pgdb

import (
	"context"

	"github.com/DRSN-tech/cart-backend/internal/domain"
	"github.com/DRSN-tech/cart-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/cart-backend/internal/usecase"
	"github.com/DRSN-tech/cart-backend/pkg/e"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий каталога товаров поверх PostgreSQL.
// Каталог доступен только на чтение; пустая таблица трактуется как пустой каталог.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// List возвращает не больше limit товаров в порядке хранения.
func (p *ProductRepo) List(ctx context.Context, limit int) ([]domain.Product, error) {
	query := `
		SELECT id, name, category, price, created_at, updated_at, is_archived
		FROM products
		WHERE NOT is_archived
		ORDER BY id
		LIMIT $1
	`

	rows, err := p.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0, limit)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Category, &model.Price,
			&model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *p.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// GetProductsInfo возвращает информацию о товарах по их идентификаторам.
// Отсутствующие идентификаторы просто не попадают в результат.
func (p *ProductRepo) GetProductsInfo(ctx context.Context, ids []int64) ([]usecase.ProductInfo, error) {
	query := `
		SELECT id, name, category, price
		FROM products
		WHERE id = ANY($1)
	`

	rows, err := p.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.ProductInfo, 0)
	for rows.Next() {
		var product usecase.ProductInfo
		if err := rows.Scan(&product.ID, &product.Name, &product.Category, &product.Price); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, product)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
