package handlers

import (
	"context"

	"github.com/polkiloo/vouchermart/internal/domain/model"
)

// CatalogFacade exposes the product catalog.
type CatalogFacade interface {
	Products(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, slug string) (*model.Product, error)
}

// CheckoutFacade opens payment sessions.
type CheckoutFacade interface {
	Checkout(ctx context.Context, slug string) (*model.CheckoutResult, error)
}

// PaymentFacade accepts provider webhooks.
type PaymentFacade interface {
	ReceivePaymentEvent(ctx context.Context, payload []byte, signature string) (*model.Order, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Order(ctx context.Context, id string) (*model.Order, error)
	RefreshOTP(ctx context.Context, id string) (*model.Order, error)
}

// AdminFacade provides admin authentication and reporting.
type AdminFacade interface {
	AdminLogin(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (string, error)
	Report(ctx context.Context) (*model.Report, error)
}

// HealthFacade reports readiness.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	CatalogFacade
	CheckoutFacade
	PaymentFacade
	OrderFacade
	AdminFacade
	HealthFacade
}
