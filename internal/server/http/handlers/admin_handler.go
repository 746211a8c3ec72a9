package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/vouchermart/internal/server/http/dto"
	"github.com/polkiloo/vouchermart/internal/server/http/middleware"
)

// AdminHandler processes admin login and reporting.
type AdminHandler struct {
	facade AdminFacade
	logger *slog.Logger
}

// NewAdminHandler creates AdminHandler instance.
func NewAdminHandler(facade AdminFacade, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{facade: facade, logger: logger}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, err := h.facade.AdminLogin(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Report handles GET /api/admin/report.
func (h *AdminHandler) Report(c *gin.Context) {
	admin := CurrentAdmin(c)
	report, err := h.facade.Report(c.Request.Context())
	if err != nil {
		h.logger.Error("sales report failed", slog.String("admin", admin), slog.String("error", err.Error()))
		abortWithError(c, err)
		return
	}
	h.logger.Info("sales report served", slog.String("admin", admin), slog.Int64("orders", report.TotalOrders))
	c.JSON(http.StatusOK, dto.NewReportResponse(*report))
}
