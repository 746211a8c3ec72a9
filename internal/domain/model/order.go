package model

import "time"

// OrderStatus describes fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusFailed    OrderStatus = "failed"
)

var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid},
	OrderStatusPaid:    {OrderStatusFulfilled, OrderStatusFailed},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status change is possible.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusFulfilled || s == OrderStatusFailed
}

// Order is a single checkout attempt and its fulfillment outcome.
type Order struct {
	ID                string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ProductID         int64
	Amount            int64
	Currency          string
	SessionID         string
	PaymentIntentID   string
	Status            OrderStatus
	RentalOrderID     string
	PhoneNumber       string
	RawResponse       string
	OTPCode           string
	OTPPollFinishedAt *time.Time
}

// AwaitingOTP reports whether a code can still arrive for the order.
func (o Order) AwaitingOTP() bool {
	return o.Status == OrderStatusFulfilled && o.RentalOrderID != "" && o.OTPCode == ""
}
