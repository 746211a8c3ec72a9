package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/vouchermart/internal/domain/errors"
	"github.com/polkiloo/vouchermart/internal/domain/model"
)

const orderColumns = `id, created_at, updated_at, product_id, amount, currency,
                      COALESCE(session_id, ''), COALESCE(payment_intent_id, ''), status,
                      COALESCE(rental_order_id, ''), COALESCE(phone_number, ''),
                      COALESCE(raw_response, ''), COALESCE(otp_code, ''), otp_finished_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt, &o.ProductID, &o.Amount, &o.Currency,
		&o.SessionID, &o.PaymentIntentID, &o.Status,
		&o.RentalOrderID, &o.PhoneNumber, &o.RawResponse, &o.OTPCode, &o.OTPPollFinishedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	const query = `INSERT INTO orders (id, product_id, amount, currency, status)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING created_at, updated_at`
	return r.storage.pool.QueryRow(ctx, query, order.ID, order.ProductID, order.Amount, order.Currency, order.Status).
		Scan(&order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	return scanOrder(r.storage.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
}

func (r *orderRepository) DeletePending(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1 AND status='pending'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) AttachSession(ctx context.Context, id, sessionID string) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE orders SET session_id=$2, updated_at=NOW() WHERE id=$1`, id, sessionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, id, paymentIntentID string) (bool, error) {
	const query = `UPDATE orders SET status='paid', payment_intent_id=NULLIF($2, ''), updated_at=NOW()
                   WHERE id=$1 AND status='pending'`
	return r.transition(ctx, query, id, paymentIntentID)
}

func (r *orderRepository) MarkFulfilled(ctx context.Context, id string, lease model.NumberLease, raw string) (bool, error) {
	const query = `UPDATE orders SET status='fulfilled',
                       rental_order_id=NULLIF($2, ''), phone_number=NULLIF($3, ''), raw_response=$4,
                       otp_claimed_at=CASE WHEN $5 THEN NOW() END, updated_at=NOW()
                   WHERE id=$1 AND status='paid'`
	return r.transition(ctx, query, id, lease.RentalOrderID, lease.PhoneNumber, raw, lease.RentalOrderID != "")
}

func (r *orderRepository) MarkFailed(ctx context.Context, id, raw string) (bool, error) {
	const query = `UPDATE orders SET status='failed', raw_response=$2, updated_at=NOW()
                   WHERE id=$1 AND status='paid'`
	return r.transition(ctx, query, id, raw)
}

func (r *orderRepository) transition(ctx context.Context, query string, args ...any) (bool, error) {
	tag, err := r.storage.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *orderRepository) SaveOTP(ctx context.Context, id, code string) error {
	const query = `UPDATE orders SET otp_code=$2, otp_finished_at=NOW(), updated_at=NOW()
                   WHERE id=$1 AND status='fulfilled' AND otp_code IS NULL`
	_, err := r.storage.pool.Exec(ctx, query, id, code)
	return err
}

func (r *orderRepository) FinishOTPPoll(ctx context.Context, id string) error {
	const query = `UPDATE orders SET otp_finished_at=NOW(), updated_at=NOW()
                   WHERE id=$1 AND otp_finished_at IS NULL`
	_, err := r.storage.pool.Exec(ctx, query, id)
	return err
}

func (r *orderRepository) ClaimStaleOTPPolls(ctx context.Context, staleAfter time.Duration, limit int) ([]model.Order, error) {
	const selectQuery = `SELECT ` + orderColumns + `
                         FROM orders
                         WHERE status='fulfilled' AND rental_order_id IS NOT NULL
                           AND otp_code IS NULL AND otp_finished_at IS NULL
                           AND (otp_claimed_at IS NULL OR otp_claimed_at < $1)
                         ORDER BY updated_at
                         LIMIT $2
                         FOR UPDATE SKIP LOCKED`
	cutoff := time.Now().Add(-staleAfter)

	var orders []model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, cutoff, limit)
		if err != nil {
			return err
		}
		var claimed []model.Order
		for rows.Next() {
			o, err := scanOrder(rows)
			if err != nil {
				rows.Close()
				return err
			}
			claimed = append(claimed, *o)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, o := range claimed {
			if _, err := tx.Exec(ctx, `UPDATE orders SET otp_claimed_at=NOW() WHERE id=$1`, o.ID); err != nil {
				return err
			}
		}
		orders = claimed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) SalesByProduct(ctx context.Context, statuses []model.OrderStatus) ([]model.ProductSales, error) {
	const query = `SELECT p.id, p.slug, p.name, COUNT(o.id), COALESCE(SUM(o.amount), 0)::BIGINT
                   FROM products p
                   LEFT JOIN orders o ON o.product_id = p.id AND o.status = ANY($1)
                   GROUP BY p.id, p.slug, p.name
                   ORDER BY p.id`

	filter := make([]string, 0, len(statuses))
	for _, s := range statuses {
		filter = append(filter, string(s))
	}

	rows, err := r.storage.pool.Query(ctx, query, filter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ProductSales
	for rows.Next() {
		var s model.ProductSales
		if err := rows.Scan(&s.ProductID, &s.Slug, &s.Name, &s.Orders, &s.Revenue); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) CountByStatus(ctx context.Context) (map[model.OrderStatus]int64, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.OrderStatus]int64)
	for rows.Next() {
		var (
			status model.OrderStatus
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
