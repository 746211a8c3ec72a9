package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminDisabled      = errors.New("admin login disabled")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrUnsupportedEvent   = errors.New("unsupported event type")
	ErrMissingMetadata    = errors.New("event metadata missing order id")
	ErrMalformedEvent     = errors.New("malformed payment event")
	ErrCheckoutFailed     = errors.New("checkout session creation failed")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrMalformedResponse  = errors.New("malformed upstream response")
	ErrUpstream           = errors.New("upstream request failed")
)
