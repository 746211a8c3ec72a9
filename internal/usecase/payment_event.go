package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/polkiloo/vouchermart/internal/domain/model"
	"github.com/polkiloo/vouchermart/internal/domain/repository"
	"github.com/polkiloo/vouchermart/internal/metrics"
)

// PaymentEventUseCase applies verified payment confirmations to orders.
type PaymentEventUseCase struct {
	orders      repository.OrderRepository
	fulfillment *FulfillmentUseCase
	logger      *slog.Logger
	metrics     *metrics.Recorder
}

// NewPaymentEventUseCase constructs PaymentEventUseCase.
func NewPaymentEventUseCase(orders repository.OrderRepository, fulfillment *FulfillmentUseCase, logger *slog.Logger, recorder *metrics.Recorder) *PaymentEventUseCase {
	return &PaymentEventUseCase{orders: orders, fulfillment: fulfillment, logger: logger, metrics: recorder}
}

// Handle marks the order paid and acquires its number. Only the delivery that
// wins the pending->paid transition runs fulfillment; the returned flag reports
// whether this call did.
func (u *PaymentEventUseCase) Handle(ctx context.Context, evt model.CheckoutCompleted) (*model.Order, bool, error) {
	order, err := u.orders.Get(ctx, evt.OrderID)
	if err != nil {
		u.metrics.PaymentEvent("unknown_order")
		return nil, false, fmt.Errorf("load order %s: %w", evt.OrderID, err)
	}
	if evt.ProductID != "" && evt.ProductID != strconv.FormatInt(order.ProductID, 10) {
		u.logger.Warn("payment event product mismatch",
			slog.String("order_id", order.ID),
			slog.String("event_product", evt.ProductID),
			slog.Int64("order_product", order.ProductID))
	}

	won, err := u.orders.MarkPaid(ctx, order.ID, evt.PaymentIntentID)
	if err != nil {
		u.metrics.PaymentEvent("error")
		return nil, false, fmt.Errorf("mark order paid: %w", err)
	}
	if !won {
		u.metrics.PaymentEvent("duplicate")
		if !order.Status.IsTerminal() {
			// A concurrent delivery may have moved the order since it was loaded.
			if current, gerr := u.orders.Get(ctx, order.ID); gerr == nil {
				order = current
			}
		}
		u.logger.Info("payment event already applied",
			slog.String("order_id", order.ID),
			slog.String("event_id", evt.EventID),
			slog.String("status", string(order.Status)))
		return order, false, nil
	}

	u.metrics.PaymentEvent("accepted")
	u.logger.Info("order paid",
		slog.String("order_id", order.ID),
		slog.String("event_id", evt.EventID),
		slog.String("payment_intent", evt.PaymentIntentID))

	fulfilled, err := u.fulfillment.AcquireNumber(ctx, order.ID)
	if err != nil {
		return nil, true, err
	}
	return fulfilled, true, nil
}
