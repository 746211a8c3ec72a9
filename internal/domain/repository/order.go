package repository

import (
	"context"
	"time"

	"github.com/polkiloo/vouchermart/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
//
// Every status-changing method is a conditional update on the expected
// current status; a false result means another caller already moved the order.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	Get(ctx context.Context, id string) (*model.Order, error)
	DeletePending(ctx context.Context, id string) error
	AttachSession(ctx context.Context, id, sessionID string) error

	MarkPaid(ctx context.Context, id, paymentIntentID string) (bool, error)
	MarkFulfilled(ctx context.Context, id string, lease model.NumberLease, raw string) (bool, error)
	MarkFailed(ctx context.Context, id, raw string) (bool, error)

	SaveOTP(ctx context.Context, id, code string) error
	FinishOTPPoll(ctx context.Context, id string) error
	ClaimStaleOTPPolls(ctx context.Context, staleAfter time.Duration, limit int) ([]model.Order, error)

	SalesByProduct(ctx context.Context, statuses []model.OrderStatus) ([]model.ProductSales, error)
	CountByStatus(ctx context.Context) (map[model.OrderStatus]int64, error)
}
