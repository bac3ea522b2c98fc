package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/cart-backend/internal/domain"
	"github.com/DRSN-tech/cart-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/cart-backend/pkg/e"
	"github.com/DRSN-tech/cart-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CartRepo реализует репозиторий корзин поверх PostgreSQL.
type CartRepo struct {
	pool *pgxpool.Pool
	conv converter.CartConverter
}

func NewCartRepo(pool *pgxpool.Pool, conv converter.CartConverter) *CartRepo {
	return &CartRepo{
		pool: pool,
		conv: conv,
	}
}

// Get возвращает корзину по cart_id или nil, если её нет.
// Выполняется внутри транзакции сохранения.
func (c *CartRepo) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT cart_id, customer_id, items, status, created_at, updated_at, expires_at
		FROM carts
		WHERE cart_id = $1
	`

	var model converter.CartModel
	err = tx.QueryRow(ctx, query, cartID).Scan(
		&model.CartID, &model.CustomerID, &model.Items, &model.Status,
		&model.CreatedAt, &model.UpdatedAt, &model.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model)
}

// Upsert заменяет корзину с совпадающим cart_id целиком либо создаёт новую.
// created_at существующей записи не перезаписывается.
func (c *CartRepo) Upsert(ctx context.Context, cart *domain.Cart) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := c.conv.ToModel(cart)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO carts (cart_id, customer_id, items, status, created_at, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (cart_id)
		DO UPDATE SET
			customer_id = EXCLUDED.customer_id,
			items = EXCLUDED.items,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at,
			expires_at = EXCLUDED.expires_at
	`

	_, err = tx.Exec(ctx, query,
		model.CartID,
		model.CustomerID,
		model.Items,
		model.Status,
		model.CreatedAt,
		model.UpdatedAt,
		model.ExpiresAt,
	)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// FindByCustomer возвращает все корзины покупателя в порядке создания.
func (c *CartRepo) FindByCustomer(ctx context.Context, customerID string) ([]domain.Cart, error) {
	query := `
		SELECT cart_id, customer_id, items, status, created_at, updated_at, expires_at
		FROM carts
		WHERE customer_id = $1
		ORDER BY created_at
	`

	rows, err := c.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Cart, 0)
	for rows.Next() {
		var model converter.CartModel
		if err := rows.Scan(
			&model.CartID, &model.CustomerID, &model.Items, &model.Status,
			&model.CreatedAt, &model.UpdatedAt, &model.ExpiresAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		cart, err := c.conv.ToEntity(&model)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *cart)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
