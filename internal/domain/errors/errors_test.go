package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"not found", ErrNotFound},
		{"invalid credentials", ErrInvalidCredentials},
		{"admin disabled", ErrAdminDisabled},
		{"invalid signature", ErrInvalidSignature},
		{"unsupported event", ErrUnsupportedEvent},
		{"missing metadata", ErrMissingMetadata},
		{"malformed event", ErrMalformedEvent},
		{"checkout failed", ErrCheckoutFailed},
		{"invalid transition", ErrInvalidTransition},
		{"malformed response", ErrMalformedResponse},
		{"upstream", ErrUpstream},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match: %v", tc.err)
			}
		})
	}
}
