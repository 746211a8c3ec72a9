package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/vouchermart/internal/server/http/dto"
)

// CheckoutHandler starts hosted checkouts.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Start handles POST /api/checkout/:slug.
//
// Browsers are redirected to the payment page; API clients asking for JSON
// receive the order id and checkout URL instead.
func (h *CheckoutHandler) Start(c *gin.Context) {
	result, err := h.facade.Checkout(c.Request.Context(), c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(http.StatusOK, dto.CheckoutResponse{
			OrderID:     result.Order.ID,
			CheckoutURL: result.Session.URL,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, result.Session.URL)
}
