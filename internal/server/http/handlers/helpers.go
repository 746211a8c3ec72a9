package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/vouchermart/internal/domain/errors"
	"github.com/polkiloo/vouchermart/internal/server/http/middleware"
)

// CurrentAdmin extracts authenticated admin login from context.
func CurrentAdmin(c *gin.Context) string {
	return c.GetString(middleware.AdminContextKey)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrInvalidSignature),
		errors.Is(err, domainErrors.ErrMissingMetadata),
		errors.Is(err, domainErrors.ErrMalformedEvent):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrAdminDisabled):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrCheckoutFailed),
		errors.Is(err, domainErrors.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError maps a domain error to a JSON error response.
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status)})
}
