package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/polkiloo/vouchermart/internal/adapter/rental"
	"github.com/polkiloo/vouchermart/internal/config"
	domainErrors "github.com/polkiloo/vouchermart/internal/domain/errors"
	"github.com/polkiloo/vouchermart/internal/domain/model"
	"github.com/polkiloo/vouchermart/internal/domain/repository"
	"github.com/polkiloo/vouchermart/internal/metrics"
)

// FulfillmentUseCase turns paid orders into leased numbers and collects their OTPs.
type FulfillmentUseCase struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	rental     rental.Client
	attempts   int
	delay      time.Duration
	staleAfter time.Duration
	logger     *slog.Logger
	metrics    *metrics.Recorder
}

// NewFulfillmentUseCase constructs FulfillmentUseCase.
func NewFulfillmentUseCase(orders repository.OrderRepository, products repository.ProductRepository, client rental.Client, cfg *config.Config, logger *slog.Logger, recorder *metrics.Recorder) *FulfillmentUseCase {
	attempts := cfg.OTPPollAttempts
	if attempts <= 0 {
		attempts = 1
	}
	return &FulfillmentUseCase{
		orders:     orders,
		products:   products,
		rental:     client,
		attempts:   attempts,
		delay:      cfg.OTPPollDelay,
		staleAfter: cfg.OTPPollBudget(),
		logger:     logger,
		metrics:    recorder,
	}
}

// AcquireNumber leases a phone number for a paid order. The order ends
// fulfilled or failed; upstream problems are recorded on the order, not returned.
func (u *FulfillmentUseCase) AcquireNumber(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(order.Status, model.OrderStatusFulfilled) {
		return order, fmt.Errorf("%w: acquire number for %s order", domainErrors.ErrInvalidTransition, order.Status)
	}
	log := u.logger.With(slog.String("order_id", order.ID))

	product, err := u.products.GetByID(ctx, order.ProductID)
	if err != nil {
		if !errors.Is(err, domainErrors.ErrNotFound) {
			return nil, fmt.Errorf("load product: %w", err)
		}
		u.settle(ctx, log, order.ID, model.OrderStatusFailed, model.NumberLease{}, "product not found", "error")
		return u.orders.Get(ctx, order.ID)
	}

	if !u.rental.Configured() {
		log.Warn("rental api key not configured, fulfilling without a number")
		u.settle(ctx, log, order.ID, model.OrderStatusFulfilled, model.NumberLease{}, model.RentalNotConfigured, "unconfigured")
		return u.orders.Get(ctx, order.ID)
	}

	raw, err := u.rental.GetNumber(ctx, product.ServiceCode, product.CountryCode)
	switch {
	case err != nil:
		log.Error("get number failed", slog.String("error", err.Error()))
		u.settle(ctx, log, order.ID, model.OrderStatusFailed, model.NumberLease{}, err.Error(), "error")
	default:
		lease, perr := model.ParseNumberResponse(raw)
		if perr != nil {
			log.Warn("number not available", slog.String("raw", raw))
			u.settle(ctx, log, order.ID, model.OrderStatusFailed, model.NumberLease{}, raw, "rejected")
			break
		}
		log.Info("number leased", slog.String("rental_id", lease.RentalOrderID))
		u.settle(ctx, log, order.ID, model.OrderStatusFulfilled, lease, raw, "fulfilled")
	}

	return u.orders.Get(ctx, order.ID)
}

// settle applies the terminal transition. A lost race means another caller
// already settled the order and is only logged.
func (u *FulfillmentUseCase) settle(ctx context.Context, log *slog.Logger, orderID string, status model.OrderStatus, lease model.NumberLease, raw, outcome string) {
	// Money has moved; the result must be stored even if the caller went away.
	ctx = context.WithoutCancel(ctx)

	var (
		won bool
		err error
	)
	if status == model.OrderStatusFulfilled {
		won, err = u.orders.MarkFulfilled(ctx, orderID, lease, raw)
	} else {
		won, err = u.orders.MarkFailed(ctx, orderID, raw)
	}
	if err != nil {
		log.Error("store fulfillment result failed", slog.String("status", string(status)), slog.String("error", err.Error()))
		return
	}
	if !won {
		log.Warn("order settled concurrently", slog.String("status", string(status)))
		return
	}
	u.metrics.Fulfillment(outcome)
	log.Info("order settled", slog.String("status", string(status)))
}

// PollOTP checks the rental status until a code arrives or the attempt budget
// is spent. Transport errors count as an attempt and never end the poll early.
func (u *FulfillmentUseCase) PollOTP(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.AwaitingOTP() || order.OTPPollFinishedAt != nil {
		return order, nil
	}
	log := u.logger.With(slog.String("order_id", order.ID), slog.String("rental_id", order.RentalOrderID))

	var timer *time.Timer
	for attempt := 1; attempt <= u.attempts; attempt++ {
		if attempt > 1 {
			if timer == nil {
				timer = time.NewTimer(u.delay)
				defer timer.Stop()
			} else {
				timer.Reset(u.delay)
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		raw, err := u.rental.GetStatus(ctx, order.RentalOrderID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn("otp status check failed", slog.Int("attempt", attempt), slog.String("error", err.Error()))
			continue
		}

		code, ok := model.ParseStatusResponse(raw)
		if !ok {
			log.Debug("otp not ready", slog.Int("attempt", attempt), slog.String("raw", raw))
			continue
		}

		if err := u.orders.SaveOTP(context.WithoutCancel(ctx), order.ID, code); err != nil {
			return nil, fmt.Errorf("save otp: %w", err)
		}
		u.metrics.OTPPoll("received")
		log.Info("otp received", slog.Int("attempt", attempt))
		return u.orders.Get(ctx, order.ID)
	}

	if err := u.orders.FinishOTPPoll(context.WithoutCancel(ctx), order.ID); err != nil {
		return nil, fmt.Errorf("finish otp poll: %w", err)
	}
	u.metrics.OTPPoll("exhausted")
	log.Info("otp poll exhausted", slog.Int("attempts", u.attempts))
	return u.orders.Get(ctx, order.ID)
}

// RefreshOTP performs a single on-demand status check for a fulfilled order.
func (u *FulfillmentUseCase) RefreshOTP(ctx context.Context, orderID string) (*model.Order, error) {
	if !ValidateOrderID(orderID) {
		return nil, domainErrors.ErrNotFound
	}
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.OTPCode != "" {
		return order, nil
	}
	if order.Status != model.OrderStatusFulfilled || order.RentalOrderID == "" {
		return order, fmt.Errorf("%w: no leased number on %s order", domainErrors.ErrInvalidTransition, order.Status)
	}
	if !u.rental.Configured() {
		return order, nil
	}

	raw, err := u.rental.GetStatus(ctx, order.RentalOrderID)
	if err != nil {
		return order, fmt.Errorf("%w: check otp status: %v", domainErrors.ErrUpstream, err)
	}
	code, ok := model.ParseStatusResponse(raw)
	if !ok {
		return order, nil
	}
	if err := u.orders.SaveOTP(ctx, order.ID, code); err != nil {
		return nil, fmt.Errorf("save otp: %w", err)
	}
	u.metrics.OTPPoll("refreshed")
	return u.orders.Get(ctx, order.ID)
}

// ClaimStalePolls returns fulfilled orders whose OTP poll was never finished,
// marking them claimed so concurrent sweeps skip them.
func (u *FulfillmentUseCase) ClaimStalePolls(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.ClaimStaleOTPPolls(ctx, u.staleAfter, limit)
}

// Order returns an order by id.
func (u *FulfillmentUseCase) Order(ctx context.Context, orderID string) (*model.Order, error) {
	if !ValidateOrderID(orderID) {
		return nil, domainErrors.ErrNotFound
	}
	return u.orders.Get(ctx, orderID)
}
