package dto

import (
	"time"

	"github.com/polkiloo/vouchermart/internal/domain/model"
)

// CheckoutResponse is returned to clients that asked for JSON instead of a redirect.
type CheckoutResponse struct {
	OrderID     string `json:"order_id"`
	CheckoutURL string `json:"checkout_url"`
}

// WebhookResponse acknowledges a provider callback.
type WebhookResponse struct {
	Status string `json:"status"`
}

// OrderResponse is the customer view of an order.
type OrderResponse struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	OTPCode     string    `json:"otp_code,omitempty"`
	AwaitingOTP bool      `json:"awaiting_otp"`
	Message     string    `json:"message,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewOrderResponse maps an order to its public representation.
// Upstream diagnostics are only exposed for failed or unconfigured fulfillment.
func NewOrderResponse(o model.Order) OrderResponse {
	resp := OrderResponse{
		ID:          o.ID,
		Status:      string(o.Status),
		Amount:      FormatAmount(o.Amount),
		Currency:    o.Currency,
		PhoneNumber: o.PhoneNumber,
		OTPCode:     o.OTPCode,
		AwaitingOTP: o.AwaitingOTP(),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if o.Status == model.OrderStatusFailed || o.RawResponse == model.RentalNotConfigured {
		resp.Message = o.RawResponse
	}
	return resp
}
