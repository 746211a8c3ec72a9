package model

import (
	"strings"

	domainErrors "github.com/polkiloo/vouchermart/internal/domain/errors"
)

const (
	accessNumberPrefix = "ACCESS_NUMBER:"
	statusOKPrefix     = "STATUS_OK:"

	// RentalNotConfigured is stored as the raw response when fulfillment skipped the upstream call.
	RentalNotConfigured = "SMS_API_KEY_NOT_CONFIGURED"
)

// NumberLease is a phone number reserved on the rental service.
type NumberLease struct {
	RentalOrderID string
	PhoneNumber   string
}

// ParseNumberResponse decodes "ACCESS_NUMBER:<id>:<number>".
func ParseNumberResponse(raw string) (NumberLease, error) {
	line := strings.TrimSpace(raw)
	if !strings.HasPrefix(line, accessNumberPrefix) {
		return NumberLease{}, domainErrors.ErrMalformedResponse
	}
	parts := strings.SplitN(strings.TrimPrefix(line, accessNumberPrefix), ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return NumberLease{}, domainErrors.ErrMalformedResponse
	}
	return NumberLease{RentalOrderID: parts[0], PhoneNumber: parts[1]}, nil
}

// ParseStatusResponse extracts the code from "STATUS_OK:<code>".
// Any other response means the code has not arrived.
func ParseStatusResponse(raw string) (string, bool) {
	line := strings.TrimSpace(raw)
	if !strings.HasPrefix(line, statusOKPrefix) {
		return "", false
	}
	code := strings.TrimPrefix(line, statusOKPrefix)
	if code == "" {
		return "", false
	}
	return code, true
}
