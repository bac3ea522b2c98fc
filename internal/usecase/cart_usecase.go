package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/DRSN-tech/cart-backend/internal/domain"
	"github.com/DRSN-tech/cart-backend/pkg/e"
	"github.com/DRSN-tech/cart-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// cartTTL — фиксированный срок жизни корзины от момента последнего сохранения.
const cartTTL = 7 * 24 * time.Hour

// CartUseCase реализует бизнес-логику сохранения и чтения корзин.
type CartUseCase struct {
	cartRepo    CartRepository
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	dbPool      transaction.Transactional
	logger      logger.Logger
	now         func() time.Time
}

func NewCartUC(
	cartRepo CartRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		dbPool:      dbPool,
		logger:      logger,
		now:         time.Now,
	}
}

// SubmitCart валидирует запрос и сохраняет корзину целиком (insert-or-replace по cart_id).
// Ошибки позиций накапливаются по всем позициям сразу; при любой ошибке валидации
// запись в хранилище не выполняется.
func (c *CartUseCase) SubmitCart(ctx context.Context, req *SubmitCartReq) (*SubmitCartRes, error) {
	const op = "CartUseCase.SubmitCart"

	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		return nil, e.Wrap(op, e.ErrCustomerIDRequired)
	}

	if len(req.Items) == 0 {
		return nil, e.Wrap(op, e.ErrItemsRequired)
	}

	parsed, issues := parseItems(req.Items)

	notFound, err := c.checkProductsExist(ctx, parsed)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	issues = append(issues, notFound...)

	if len(issues) > 0 {
		sort.Slice(issues, func(i, j int) bool { return issues[i].Index < issues[j].Index })
		return nil, &InvalidItemsError{Details: issues}
	}

	now := c.now().UTC()

	cartID := strings.TrimSpace(req.CartID)
	if cartID == "" {
		cartID = generateCartID(now)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	existing, err := c.cartRepo.Get(ctx, cartID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	cart := buildCart(cartID, customerID, parsed, existing, now)

	if err = c.cartRepo.Upsert(ctx, cart); err != nil {
		return nil, e.Wrap(op, err)
	}

	event, err := newCartSavedEvent(cart)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if _, err = c.outboxRepo.Create(ctx, event); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewSubmitCartRes(cart.ID, cart.Status, existing != nil), nil
}

// GetCustomerCarts возвращает все корзины покупателя.
func (c *CartUseCase) GetCustomerCarts(ctx context.Context, req *GetCartsReq) (*GetCartsRes, error) {
	const op = "CartUseCase.GetCustomerCarts"

	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		return nil, e.Wrap(op, e.ErrUserIDRequired)
	}

	carts, err := c.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	infos := make([]CartInfo, 0, len(carts))
	for i := range carts {
		infos = append(infos, NewCartInfo(&carts[i]))
	}

	return NewGetCartsRes(infos), nil
}

// checkProductsExist проверяет, что каждый распознанный product_id есть в каталоге.
// Возвращает ошибки позиций для отсутствующих товаров.
func (c *CartUseCase) checkProductsExist(ctx context.Context, parsed []parsedItem) ([]ItemIssue, error) {
	if len(parsed) == 0 {
		return nil, nil
	}

	seen := make(map[int64]struct{}, len(parsed))
	ids := make([]int64, 0, len(parsed))
	for _, it := range parsed {
		if _, ok := seen[it.productID]; ok {
			continue
		}
		seen[it.productID] = struct{}{}
		ids = append(ids, it.productID)
	}

	infos, err := c.productRepo.GetProductsInfo(ctx, ids)
	if err != nil {
		return nil, err
	}

	found := make(map[int64]struct{}, len(infos))
	for _, info := range infos {
		found[info.ID] = struct{}{}
	}

	var issues []ItemIssue
	for _, it := range parsed {
		if _, ok := found[it.productID]; !ok {
			id := it.productID
			issues = append(issues, ItemIssue{
				Index:     it.index,
				Reason:    ReasonProductNotFound,
				ProductID: &id,
			})
		}
	}

	return issues, nil
}

// parsedItem — позиция корзины после приведения типов.
type parsedItem struct {
	index     int
	productID int64
	quantity  decimal.Decimal
}

// parseItems приводит сырые позиции к типизированному виду.
// Проверки выполняются для всех позиций без остановки на первой ошибке;
// внутри позиции фиксируется только первая обнаруженная проблема.
func parseItems(items []SubmitCartItem) ([]parsedItem, []ItemIssue) {
	parsed := make([]parsedItem, 0, len(items))
	var issues []ItemIssue

	for i, it := range items {
		if it.ProductID == nil || it.Quantity == nil {
			issues = append(issues, ItemIssue{Index: i, Reason: ReasonItemFieldsRequired})
			continue
		}

		quantity, ok := parseNumber(it.Quantity)
		if !ok || quantity.Sign() <= 0 {
			issues = append(issues, ItemIssue{Index: i, Reason: ReasonInvalidQuantity})
			continue
		}

		// количество хранится и сериализуется как float64; значения вне его диапазона невалидны
		if f, _ := quantity.Float64(); math.IsInf(f, 0) {
			issues = append(issues, ItemIssue{Index: i, Reason: ReasonInvalidQuantity})
			continue
		}

		productID, ok := parseNumber(it.ProductID)
		if !ok || !productID.IsInteger() {
			// нечисловой или дробный идентификатор не может совпасть ни с одним товаром
			issues = append(issues, ItemIssue{Index: i, Reason: ReasonProductNotFound})
			continue
		}

		parsed = append(parsed, parsedItem{
			index:     i,
			productID: productID.IntPart(),
			quantity:  quantity,
		})
	}

	return parsed, issues
}

// parseNumber приводит сырое JSON-значение к decimal.
// Поддерживает json.Number, строку и числовые типы Go.
func parseNumber(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	default:
		return decimal.Decimal{}, false
	}
}

// buildCart собирает запись корзины для сохранения.
// created_at существующей корзины сохраняется при замене.
func buildCart(cartID string, customerID string, parsed []parsedItem, existing *domain.Cart, now time.Time) *domain.Cart {
	createdAt := now
	if existing != nil {
		createdAt = existing.CreatedAt
	}

	items := make([]domain.CartItem, 0, len(parsed))
	for _, it := range parsed {
		items = append(items, domain.NewCartItem(it.productID, it.quantity))
	}

	return &domain.Cart{
		ID:         cartID,
		CustomerID: customerID,
		Items:      items,
		Status:     domain.CartStatusSaved,
		CreatedAt:  createdAt,
		UpdatedAt:  now,
		// срок жизни отсчитывается от времени обновления, а не создания:
		// каждое повторное сохранение продлевает корзину ещё на 7 дней
		ExpiresAt: now.Add(cartTTL),
	}
}

// generateCartID генерирует идентификатор вида CART-<YYYYMMDD>-<4 цифры>.
// Уникальность best-effort: коллизии не проверяются.
func generateCartID(now time.Time) string {
	suffix := 1000 + rand.Intn(9000)
	return fmt.Sprintf("CART-%s-%d", now.UTC().Format("20060102"), suffix)
}

// newCartSavedEvent формирует outbox-событие о сохранении корзины.
func newCartSavedEvent(cart *domain.Cart) (*OutboxEvent, error) {
	items := make([]cartSavedItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		quantity, _ := it.Quantity.Float64()
		items = append(items, cartSavedItem{
			ProductID: it.ProductID,
			Quantity:  quantity,
		})
	}

	eventID := uuid.NewString()
	payload, err := json.Marshal(cartSavedPayload{
		EventID:    eventID,
		EventType:  string(CartSaved),
		CartID:     cart.ID,
		CustomerID: cart.CustomerID,
		Status:     cart.Status,
		UpdatedAt:  cart.UpdatedAt,
		Items:      items,
	})
	if err != nil {
		return nil, err
	}

	return NewOutboxEvent(eventID, CartSaved, cart.ID, payload, cart.UpdatedAt), nil
}

type cartSavedPayload struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	CartID     string          `json:"cart_id"`
	CustomerID string          `json:"customer_id"`
	Status     string          `json:"status"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Items      []cartSavedItem `json:"items"`
}

type cartSavedItem struct {
	ProductID int64   `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}
