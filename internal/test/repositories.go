package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/vouchermart/internal/domain/errors"
	"github.com/polkiloo/vouchermart/internal/domain/model"
	"github.com/polkiloo/vouchermart/internal/domain/repository"
)

// ProductRepositoryStub serves a fixed catalog from memory.
type ProductRepositoryStub struct {
	Products []model.Product
	Err      error
}

// NewProductRepositoryStub returns a stub seeded with the given products.
func NewProductRepositoryStub(products ...model.Product) *ProductRepositoryStub {
	return &ProductRepositoryStub{Products: products}
}

// List returns every product.
func (s *ProductRepositoryStub) List(ctx context.Context) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]model.Product(nil), s.Products...), nil
}

// GetBySlug returns product with the slug or not found.
func (s *ProductRepositoryStub) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Products {
		if p.Slug == slug {
			p := p
			return &p, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID returns product with the id or not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// OrderStore is an in-memory OrderRepository that applies the same
// conditional transitions as the SQL implementation.
type OrderStore struct {
	mu       sync.Mutex
	orders   map[string]*model.Order
	claimed  map[string]time.Time
	Products *ProductRepositoryStub

	// Optional error injection per operation.
	CreateErr   error
	MarkPaidErr error
	SaveOTPErr  error

	MarkPaidCalls      int
	MarkFulfilledCalls int
	SaveOTPCalls       int
}

// NewOrderStore returns empty store. Products is used by the sales report.
func NewOrderStore(products *ProductRepositoryStub) *OrderStore {
	return &OrderStore{
		orders:   make(map[string]*model.Order),
		claimed:  make(map[string]time.Time),
		Products: products,
	}
}

// Put stores a copy of order as-is, bypassing transition rules.
func (s *OrderStore) Put(order model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
		order.UpdatedAt = order.CreatedAt
	}
	s.orders[order.ID] = &order
}

// Len returns number of stored orders.
func (s *OrderStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *OrderStore) Create(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return s.CreateErr
	}
	now := time.Now()
	order.CreatedAt, order.UpdatedAt = now, now
	stored := *order
	s.orders[order.ID] = &stored
	return nil
}

func (s *OrderStore) Get(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (s *OrderStore) DeletePending(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.Status != model.OrderStatusPending {
		return domainErrors.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

func (s *OrderStore) AttachSession(ctx context.Context, id, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	o.SessionID = sessionID
	return nil
}

func (s *OrderStore) MarkPaid(ctx context.Context, id, paymentIntentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.MarkPaidCalls++
	if s.MarkPaidErr != nil {
		return false, s.MarkPaidErr
	}
	o, ok := s.orders[id]
	if !ok || !model.CanTransition(o.Status, model.OrderStatusPaid) {
		return false, nil
	}
	o.Status = model.OrderStatusPaid
	o.PaymentIntentID = paymentIntentID
	o.UpdatedAt = time.Now()
	return true, nil
}

func (s *OrderStore) MarkFulfilled(ctx context.Context, id string, lease model.NumberLease, raw string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.MarkFulfilledCalls++
	o, ok := s.orders[id]
	if !ok || !model.CanTransition(o.Status, model.OrderStatusFulfilled) {
		return false, nil
	}
	o.Status = model.OrderStatusFulfilled
	o.RentalOrderID = lease.RentalOrderID
	o.PhoneNumber = lease.PhoneNumber
	o.RawResponse = raw
	o.UpdatedAt = time.Now()
	if lease.RentalOrderID != "" {
		s.claimed[id] = time.Now()
	}
	return true, nil
}

func (s *OrderStore) MarkFailed(ctx context.Context, id, raw string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || !model.CanTransition(o.Status, model.OrderStatusFailed) {
		return false, nil
	}
	o.Status = model.OrderStatusFailed
	o.RawResponse = raw
	o.UpdatedAt = time.Now()
	return true, nil
}

func (s *OrderStore) SaveOTP(ctx context.Context, id, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SaveOTPCalls++
	if s.SaveOTPErr != nil {
		return s.SaveOTPErr
	}
	o, ok := s.orders[id]
	if !ok || o.Status != model.OrderStatusFulfilled || o.OTPCode != "" {
		return nil
	}
	now := time.Now()
	o.OTPCode = code
	o.OTPPollFinishedAt = &now
	return nil
}

func (s *OrderStore) FinishOTPPoll(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.OTPPollFinishedAt != nil {
		return nil
	}
	now := time.Now()
	o.OTPPollFinishedAt = &now
	return nil
}

func (s *OrderStore) ClaimStaleOTPPolls(ctx context.Context, staleAfter time.Duration, limit int) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-staleAfter)

	ids := make([]string, 0, len(s.orders))
	for id := range s.orders {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var result []model.Order
	for _, id := range ids {
		if len(result) >= limit {
			break
		}
		o := s.orders[id]
		if !o.AwaitingOTP() || o.OTPPollFinishedAt != nil {
			continue
		}
		if at, ok := s.claimed[id]; ok && !at.Before(cutoff) {
			continue
		}
		s.claimed[id] = time.Now()
		result = append(result, *o)
	}
	return result, nil
}

func (s *OrderStore) SalesByProduct(ctx context.Context, statuses []model.OrderStatus) ([]model.ProductSales, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	include := make(map[model.OrderStatus]bool, len(statuses))
	for _, st := range statuses {
		include[st] = true
	}

	var products []model.Product
	if s.Products != nil {
		products = s.Products.Products
	}
	result := make([]model.ProductSales, 0, len(products))
	for _, p := range products {
		sales := model.ProductSales{ProductID: p.ID, Slug: p.Slug, Name: p.Name}
		for _, o := range s.orders {
			if o.ProductID == p.ID && include[o.Status] {
				sales.Orders++
				sales.Revenue += o.Amount
			}
		}
		result = append(result, sales)
	}
	return result, nil
}

func (s *OrderStore) CountByStatus(ctx context.Context) (map[model.OrderStatus]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[model.OrderStatus]int64)
	for _, o := range s.orders {
		counts[o.Status]++
	}
	return counts, nil
}

var (
	_ repository.ProductRepository = (*ProductRepositoryStub)(nil)
	_ repository.OrderRepository   = (*OrderStore)(nil)
)
