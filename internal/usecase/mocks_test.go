package usecase

import (
	"context"
	"sync"

	"github.com/DRSN-tech/cart-backend/internal/domain"
	"github.com/jackc/pgx/v5"
)

type mockProductRepo struct {
	products map[int64]ProductInfo
	order    []int64

	listCalls    int
	lastLimit    int
	infoCalls    int
	lastInfoIDs  []int64
	getInfoError error
}

func newMockProductRepo(products ...ProductInfo) *mockProductRepo {
	repo := &mockProductRepo{products: make(map[int64]ProductInfo)}
	for _, p := range products {
		repo.products[p.ID] = p
		repo.order = append(repo.order, p.ID)
	}
	return repo
}

func (m *mockProductRepo) List(_ context.Context, limit int) ([]domain.Product, error) {
	m.listCalls++
	m.lastLimit = limit

	result := make([]domain.Product, 0, limit)
	for _, id := range m.order {
		if len(result) == limit {
			break
		}
		p := m.products[id]
		result = append(result, domain.Product{ID: p.ID, Name: p.Name, Category: p.Category, Price: p.Price})
	}
	return result, nil
}

func (m *mockProductRepo) GetProductsInfo(_ context.Context, ids []int64) ([]ProductInfo, error) {
	m.infoCalls++
	m.lastInfoIDs = ids

	if m.getInfoError != nil {
		return nil, m.getInfoError
	}

	result := make([]ProductInfo, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

type mockCartRepo struct {
	store map[string]*domain.Cart
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{store: make(map[string]*domain.Cart)}
}

func (m *mockCartRepo) Get(_ context.Context, cartID string) (*domain.Cart, error) {
	return m.store[cartID], nil
}

func (m *mockCartRepo) FindByCustomer(_ context.Context, customerID string) ([]domain.Cart, error) {
	var result []domain.Cart
	for _, cart := range m.store {
		if cart.CustomerID == customerID {
			result = append(result, *cart)
		}
	}
	return result, nil
}

func (m *mockCartRepo) Upsert(_ context.Context, cart *domain.Cart) error {
	m.store[cart.ID] = cart
	return nil
}

type mockCacheRepo struct {
	mu       sync.Mutex
	data     map[int64]ProductInfo
	getError error
	setCalls int
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{data: make(map[int64]ProductInfo)}
}

func (m *mockCacheRepo) GetProducts(_ context.Context, ids []int64) (map[int64]ProductInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getError != nil {
		return nil, m.getError
	}

	result := make(map[int64]ProductInfo)
	for _, id := range ids {
		if p, ok := m.data[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (m *mockCacheRepo) SetProducts(_ context.Context, products []ProductInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setCalls++
	for _, p := range products {
		m.data[p.ID] = p
	}
	return nil
}

type mockOutboxRepo struct {
	events []*OutboxEvent
}

func newMockOutboxRepo() *mockOutboxRepo {
	return &mockOutboxRepo{}
}

func (m *mockOutboxRepo) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	event.ID = int64(len(m.events) + 1)
	m.events = append(m.events, event)
	return event, nil
}

func (m *mockOutboxRepo) GetAndMarkAsProcessing(_ context.Context, limit int) ([]*OutboxEvent, error) {
	result := make([]*OutboxEvent, 0, limit)
	for _, ev := range m.events {
		if len(result) == limit {
			break
		}
		if ev.Status == Pending {
			ev.Status = Processing
			result = append(result, ev)
		}
	}
	return result, nil
}

func (m *mockOutboxRepo) MarkAsProcessed(_ context.Context, id int64) error {
	for _, ev := range m.events {
		if ev.ID == id {
			ev.Status = Processed
		}
	}
	return nil
}

// stubDBPool выдаёт no-op транзакции, чтобы прогонять workflow сохранения без базы.
type stubDBPool struct{}

func (stubDBPool) BeginTx(_ context.Context, _ pgx.TxOptions) (pgx.Tx, error) {
	return stubTx{}, nil
}

type stubTx struct{ pgx.Tx }

func (stubTx) Commit(context.Context) error   { return nil }
func (stubTx) Rollback(context.Context) error { return nil }

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}
