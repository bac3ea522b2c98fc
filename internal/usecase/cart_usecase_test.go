package usecase

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/DRSN-tech/cart-backend/internal/domain"
	"github.com/DRSN-tech/cart-backend/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartUC(productRepo *mockProductRepo, cartRepo *mockCartRepo) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      nopLogger{},
		now:         time.Now,
	}
}

func TestSubmitCartMissingCustomerID(t *testing.T) {
	productRepo := newMockProductRepo(NewProductInfo(1, "mug", "kitchen", 59900))
	uc := newTestCartUC(productRepo, newMockCartRepo())

	for _, customerID := range []string{"", "   "} {
		_, err := uc.SubmitCart(context.Background(), NewSubmitCartReq("", customerID, []SubmitCartItem{
			{ProductID: 1, Quantity: 2},
		}))

		require.ErrorIs(t, err, e.ErrCustomerIDRequired)
	}

	// До каталога дело дойти не должно
	assert.Equal(t, 0, productRepo.infoCalls)
}

func TestSubmitCartItemsRequired(t *testing.T) {
	productRepo := newMockProductRepo(NewProductInfo(1, "mug", "kitchen", 59900))
	uc := newTestCartUC(productRepo, newMockCartRepo())

	_, err := uc.SubmitCart(context.Background(), NewSubmitCartReq("", "u1", nil))

	require.ErrorIs(t, err, e.ErrItemsRequired)
	assert.Equal(t, 0, productRepo.infoCalls)
}

func TestSubmitCartUnknownProduct(t *testing.T) {
	productRepo := newMockProductRepo(
		NewProductInfo(1, "mug", "kitchen", 59900),
		NewProductInfo(2, "plate", "kitchen", 29900),
	)
	cartRepo := newMockCartRepo()
	uc := newTestCartUC(productRepo, cartRepo)

	_, err := uc.SubmitCart(context.Background(), NewSubmitCartReq("", "u1", []SubmitCartItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 9, Quantity: 1},
	}))

	var invalidItems *InvalidItemsError
	require.ErrorAs(t, err, &invalidItems)
	require.Len(t, invalidItems.Details, 1)

	issue := invalidItems.Details[0]
	assert.Equal(t, 1, issue.Index)
	assert.Equal(t, ReasonProductNotFound, issue.Reason)
	require.NotNil(t, issue.ProductID)
	assert.Equal(t, int64(9), *issue.ProductID)

	// Отклонённая корзина не записывается
	assert.Empty(t, cartRepo.store)
}

func TestSubmitCartAccumulatesAllIssues(t *testing.T) {
	productRepo := newMockProductRepo(NewProductInfo(1, "mug", "kitchen", 59900))
	uc := newTestCartUC(productRepo, newMockCartRepo())

	_, err := uc.SubmitCart(context.Background(), NewSubmitCartReq("", "u1", []SubmitCartItem{
		{ProductID: 1, Quantity: nil},
		{ProductID: 1, Quantity: 0},
		{ProductID: 1, Quantity: -3},
		{ProductID: "abc", Quantity: 1},
		{ProductID: 9, Quantity: 1},
	}))

	var invalidItems *InvalidItemsError
	require.ErrorAs(t, err, &invalidItems)
	require.Len(t, invalidItems.Details, 5)

	reasons := make([]string, 0, len(invalidItems.Details))
	for i, issue := range invalidItems.Details {
		assert.Equal(t, i, issue.Index)
		reasons = append(reasons, issue.Reason)
	}

	assert.Equal(t, []string{
		ReasonItemFieldsRequired,
		ReasonInvalidQuantity,
		ReasonInvalidQuantity,
		ReasonProductNotFound,
		ReasonProductNotFound,
	}, reasons)
}

func TestParseItemsCoercion(t *testing.T) {
	t.Run("строковые значения приводятся к числам", func(t *testing.T) {
		parsed, issues := parseItems([]SubmitCartItem{
			{ProductID: "1", Quantity: "2.5"},
		})

		require.Empty(t, issues)
		require.Len(t, parsed, 1)
		assert.Equal(t, int64(1), parsed[0].productID)
		assert.True(t, parsed[0].quantity.Equal(decimal.RequireFromString("2.5")))
	})

	t.Run("дробный product_id не находит товар", func(t *testing.T) {
		_, issues := parseItems([]SubmitCartItem{
			{ProductID: "1.5", Quantity: 1},
		})

		require.Len(t, issues, 1)
		assert.Equal(t, ReasonProductNotFound, issues[0].Reason)
	})

	t.Run("количество вне диапазона float64 отклоняется", func(t *testing.T) {
		parsed, issues := parseItems([]SubmitCartItem{
			{ProductID: 1, Quantity: "1e400"},
		})

		require.Empty(t, parsed)
		require.Len(t, issues, 1)
		assert.Equal(t, ReasonInvalidQuantity, issues[0].Reason)
	})
}

func TestSubmitCartQuantityBeyondFloat64(t *testing.T) {
	productRepo := newMockProductRepo(NewProductInfo(1, "mug", "kitchen", 59900))
	cartRepo := newMockCartRepo()
	uc := newTestCartUC(productRepo, cartRepo)

	_, err := uc.SubmitCart(context.Background(), NewSubmitCartReq("", "u1", []SubmitCartItem{
		{ProductID: 1, Quantity: "1e400"},
	}))

	var invalidItems *InvalidItemsError
	require.ErrorAs(t, err, &invalidItems)
	require.Len(t, invalidItems.Details, 1)
	assert.Equal(t, 0, invalidItems.Details[0].Index)
	assert.Equal(t, ReasonInvalidQuantity, invalidItems.Details[0].Reason)
	assert.Empty(t, cartRepo.store)
}

func TestBuildCartNew(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	cart := buildCart("CART-20250310-1234", "u1", []parsedItem{
		{index: 0, productID: 1, quantity: decimal.NewFromInt(2)},
	}, nil, now)

	assert.Equal(t, domain.CartStatusSaved, cart.Status)
	assert.Equal(t, now, cart.CreatedAt)
	assert.Equal(t, now, cart.UpdatedAt)
	assert.Equal(t, now.Add(7*24*time.Hour), cart.ExpiresAt)
}

func TestBuildCartReplacePreservesCreatedAt(t *testing.T) {
	firstSave := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	secondSave := firstSave.Add(48 * time.Hour)

	existing := buildCart("CART-20250310-1234", "u1", []parsedItem{
		{index: 0, productID: 1, quantity: decimal.NewFromInt(2)},
	}, nil, firstSave)

	replaced := buildCart("CART-20250310-1234", "u1", []parsedItem{
		{index: 0, productID: 1, quantity: decimal.NewFromInt(5)},
	}, existing, secondSave)

	assert.Equal(t, firstSave, replaced.CreatedAt)
	assert.Equal(t, secondSave, replaced.UpdatedAt)
	// срок жизни продлевается от каждого сохранения
	assert.Equal(t, secondSave.Add(7*24*time.Hour), replaced.ExpiresAt)
}

func TestSubmitCartCreateThenReplace(t *testing.T) {
	productRepo := newMockProductRepo(
		NewProductInfo(1, "mug", "kitchen", 59900),
		NewProductInfo(2, "plate", "kitchen", 29900),
	)
	cartRepo := newMockCartRepo()
	outboxRepo := newMockOutboxRepo()

	firstSave := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	current := firstSave
	uc := &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		dbPool:      stubDBPool{},
		logger:      nopLogger{},
		now:         func() time.Time { return current },
	}

	res, err := uc.SubmitCart(context.Background(), NewSubmitCartReq("CART-20250310-1234", "u1", []SubmitCartItem{
		{ProductID: 1, Quantity: 2},
	}))

	require.NoError(t, err)
	assert.Equal(t, "CART-20250310-1234", res.CartID)
	assert.Equal(t, domain.CartStatusSaved, res.Status)
	assert.False(t, res.Replaced)

	stored := cartRepo.store["CART-20250310-1234"]
	require.NotNil(t, stored)
	assert.Equal(t, firstSave, stored.CreatedAt)
	require.Len(t, outboxRepo.events, 1)
	assert.Equal(t, CartSaved, outboxRepo.events[0].EventType)
	assert.Equal(t, "CART-20250310-1234", outboxRepo.events[0].CartID)

	// повторная отправка с тем же cart_id заменяет корзину целиком
	current = firstSave.Add(48 * time.Hour)
	res, err = uc.SubmitCart(context.Background(), NewSubmitCartReq("CART-20250310-1234", "u1", []SubmitCartItem{
		{ProductID: 2, Quantity: 5},
	}))

	require.NoError(t, err)
	assert.True(t, res.Replaced)
	assert.Equal(t, "CART-20250310-1234", res.CartID)

	stored = cartRepo.store["CART-20250310-1234"]
	require.NotNil(t, stored)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, int64(2), stored.Items[0].ProductID)
	assert.Equal(t, firstSave, stored.CreatedAt)
	assert.Equal(t, current, stored.UpdatedAt)
	assert.Equal(t, current.Add(7*24*time.Hour), stored.ExpiresAt)

	// каждое сохранение даёт ровно одно outbox-событие
	require.Len(t, outboxRepo.events, 2)
	assert.Equal(t, CartSaved, outboxRepo.events[1].EventType)
}

func TestGenerateCartID(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^CART-20250310-(\d{4})$`)

	for i := 0; i < 100; i++ {
		id := generateCartID(now)
		matches := pattern.FindStringSubmatch(id)
		require.NotNil(t, matches, "unexpected cart id format: %s", id)

		suffix, err := strconv.Atoi(matches[1])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, suffix, 1000)
		assert.LessOrEqual(t, suffix, 9999)
	}
}

func TestGetCustomerCarts(t *testing.T) {
	cartRepo := newMockCartRepo()
	cartRepo.store["CART-20250310-1234"] = &domain.Cart{
		ID:         "CART-20250310-1234",
		CustomerID: "u1",
		Items:      []domain.CartItem{domain.NewCartItem(1, decimal.NewFromInt(2))},
		Status:     domain.CartStatusSaved,
	}
	uc := newTestCartUC(newMockProductRepo(), cartRepo)

	t.Run("customer_id обязателен", func(t *testing.T) {
		_, err := uc.GetCustomerCarts(context.Background(), NewGetCartsReq("  "))
		require.ErrorIs(t, err, e.ErrUserIDRequired)
	})

	t.Run("возвращаются корзины покупателя", func(t *testing.T) {
		res, err := uc.GetCustomerCarts(context.Background(), NewGetCartsReq("u1"))
		require.NoError(t, err)
		require.Len(t, res.Carts, 1)
		assert.Equal(t, "CART-20250310-1234", res.Carts[0].CartID)
	})

	t.Run("чужих корзин нет", func(t *testing.T) {
		res, err := uc.GetCustomerCarts(context.Background(), NewGetCartsReq("u2"))
		require.NoError(t, err)
		assert.Empty(t, res.Carts)
	})
}

func TestNewCartSavedEvent(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	cart := buildCart("CART-20250310-1234", "u1", []parsedItem{
		{index: 0, productID: 1, quantity: decimal.NewFromInt(2)},
	}, nil, now)

	event, err := newCartSavedEvent(cart)
	require.NoError(t, err)

	assert.Equal(t, CartSaved, event.EventType)
	assert.Equal(t, cart.ID, event.CartID)
	assert.Equal(t, Pending, event.Status)
	assert.NotEmpty(t, event.EventID)
	assert.True(t, strings.Contains(string(event.Payload), `"cart_id":"CART-20250310-1234"`))
}
