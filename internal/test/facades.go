package test

import (
	"context"

	"github.com/polkiloo/vouchermart/internal/domain/model"
)

// StoreFacadeStub implements the HTTP facade contracts via optional overrides.
type StoreFacadeStub struct {
	ProductsFn   func(context.Context) ([]model.Product, error)
	ProductFn    func(context.Context, string) (*model.Product, error)
	CheckoutFn   func(context.Context, string) (*model.CheckoutResult, error)
	ReceiveFn    func(context.Context, []byte, string) (*model.Order, error)
	OrderFn      func(context.Context, string) (*model.Order, error)
	RefreshOTPFn func(context.Context, string) (*model.Order, error)
	LoginFn      func(context.Context, string, string) (string, error)
	ParseTokenFn func(string) (string, error)
	ReportFn     func(context.Context) (*model.Report, error)
	HealthFn     func(context.Context) error
}

// Products returns an empty catalog unless overridden.
func (s StoreFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return nil, nil
}

// Product echoes the slug unless overridden.
func (s StoreFacadeStub) Product(ctx context.Context, slug string) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, slug)
	}
	return &model.Product{Slug: slug}, nil
}

// Checkout opens a fake session unless overridden.
func (s StoreFacadeStub) Checkout(ctx context.Context, slug string) (*model.CheckoutResult, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, slug)
	}
	return &model.CheckoutResult{
		Order:   &model.Order{ID: "order-" + slug, Status: model.OrderStatusPending},
		Session: model.CheckoutSession{ID: "cs_test", URL: "https://checkout.test/" + slug},
	}, nil
}

// ReceivePaymentEvent returns a paid order unless overridden.
func (s StoreFacadeStub) ReceivePaymentEvent(ctx context.Context, payload []byte, signature string) (*model.Order, error) {
	if s.ReceiveFn != nil {
		return s.ReceiveFn(ctx, payload, signature)
	}
	return &model.Order{ID: string(payload), Status: model.OrderStatusPaid}, nil
}

// Order echoes the id unless overridden.
func (s StoreFacadeStub) Order(ctx context.Context, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusPending}, nil
}

// RefreshOTP echoes the id unless overridden.
func (s StoreFacadeStub) RefreshOTP(ctx context.Context, id string) (*model.Order, error) {
	if s.RefreshOTPFn != nil {
		return s.RefreshOTPFn(ctx, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusFulfilled}, nil
}

// AdminLogin returns a static token unless overridden.
func (s StoreFacadeStub) AdminLogin(ctx context.Context, login, password string) (string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken accepts any token unless overridden.
func (s StoreFacadeStub) ParseToken(token string) (string, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return "admin", nil
}

// Report returns an empty report unless overridden.
func (s StoreFacadeStub) Report(ctx context.Context) (*model.Report, error) {
	if s.ReportFn != nil {
		return s.ReportFn(ctx)
	}
	return &model.Report{}, nil
}

// Health reports healthy unless overridden.
func (s StoreFacadeStub) Health(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}
