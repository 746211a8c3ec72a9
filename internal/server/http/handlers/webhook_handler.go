package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/vouchermart/internal/domain/errors"
	"github.com/polkiloo/vouchermart/internal/server/http/dto"
)

const (
	maxWebhookBody  = 64 << 10
	signatureHeader = "Stripe-Signature"
)

// WebhookHandler receives payment provider callbacks.
type WebhookHandler struct {
	facade PaymentFacade
	logger *slog.Logger
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade PaymentFacade, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{facade: facade, logger: logger}
}

// Stripe handles POST /api/webhooks/stripe.
func (h *WebhookHandler) Stripe(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatus(http.StatusRequestEntityTooLarge)
			return
		}
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	order, err := h.facade.ReceivePaymentEvent(c.Request.Context(), body, c.GetHeader(signatureHeader))
	if err != nil {
		if errors.Is(err, domainErrors.ErrUnsupportedEvent) {
			c.JSON(http.StatusOK, dto.WebhookResponse{Status: "ignored"})
			return
		}
		abortWithError(c, err)
		return
	}

	h.logger.Info("payment event received",
		slog.String("order_id", order.ID),
		slog.String("status", string(order.Status)),
	)
	c.JSON(http.StatusOK, dto.WebhookResponse{Status: "received"})
}
