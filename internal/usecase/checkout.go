package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/polkiloo/vouchermart/internal/adapter/payment"
	"github.com/polkiloo/vouchermart/internal/config"
	domainErrors "github.com/polkiloo/vouchermart/internal/domain/errors"
	"github.com/polkiloo/vouchermart/internal/domain/model"
	"github.com/polkiloo/vouchermart/internal/domain/repository"
	"github.com/polkiloo/vouchermart/internal/metrics"
)

// CheckoutUseCase opens hosted payment sessions.
type CheckoutUseCase struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	gateway  payment.Gateway
	baseURL  string
	currency string
	logger   *slog.Logger
	metrics  *metrics.Recorder
	newID    func() string
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(products repository.ProductRepository, orders repository.OrderRepository, gateway payment.Gateway, cfg *config.Config, logger *slog.Logger, recorder *metrics.Recorder) *CheckoutUseCase {
	return &CheckoutUseCase{
		products: products,
		orders:   orders,
		gateway:  gateway,
		baseURL:  cfg.PublicBaseURL,
		currency: cfg.Currency,
		logger:   logger,
		metrics:  recorder,
		newID:    uuid.NewString,
	}
}

// Start creates a pending order for the product and opens a payment session for it.
// The order is removed again when the provider rejects the session.
func (u *CheckoutUseCase) Start(ctx context.Context, slug string) (*model.CheckoutResult, error) {
	if !ValidateSlug(slug) {
		return nil, domainErrors.ErrNotFound
	}
	product, err := u.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:        u.newID(),
		ProductID: product.ID,
		Amount:    product.Price,
		Currency:  u.currency,
		Status:    model.OrderStatusPending,
	}
	if err := u.orders.Create(ctx, order); err != nil {
		u.metrics.Checkout("error")
		return nil, fmt.Errorf("create order: %w", err)
	}

	session, err := u.gateway.CreateCheckoutSession(ctx, model.CheckoutRequest{
		OrderID:    order.ID,
		Product:    *product,
		Amount:     order.Amount,
		Currency:   order.Currency,
		SuccessURL: fmt.Sprintf("%s/orders/%s?session_id={CHECKOUT_SESSION_ID}", u.baseURL, order.ID),
		CancelURL:  fmt.Sprintf("%s/products/%s", u.baseURL, product.Slug),
	})
	if err != nil {
		u.metrics.Checkout("rejected")
		u.logger.Error("checkout session failed",
			slog.String("order_id", order.ID),
			slog.String("product", product.Slug),
			slog.String("error", err.Error()))
		if delErr := u.orders.DeletePending(context.WithoutCancel(ctx), order.ID); delErr != nil && !errors.Is(delErr, domainErrors.ErrNotFound) {
			u.logger.Error("discard pending order failed", slog.String("order_id", order.ID), slog.String("error", delErr.Error()))
		}
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrCheckoutFailed, err)
	}

	if err := u.orders.AttachSession(ctx, order.ID, session.ID); err != nil {
		// The webhook correlates by metadata, so a missing session id is only diagnostic.
		u.logger.Warn("store checkout session id failed", slog.String("order_id", order.ID), slog.String("error", err.Error()))
	} else {
		order.SessionID = session.ID
	}

	u.metrics.Checkout("created")
	u.logger.Info("checkout started",
		slog.String("order_id", order.ID),
		slog.String("product", product.Slug),
		slog.Int64("amount", order.Amount))
	return &model.CheckoutResult{Order: order, Session: session}, nil
}
