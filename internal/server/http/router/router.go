package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/vouchermart/internal/metrics"
	"github.com/polkiloo/vouchermart/internal/server/http/handlers"
	"github.com/polkiloo/vouchermart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, recorder *metrics.Recorder, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.RequestMetrics(recorder))
	engine.Use(middleware.DecompressRequest(middleware.DefaultMaxDecompressedBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	catalogHandler := handlers.NewCatalogHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade, logger)
	orderHandler := handlers.NewOrderHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(facade, logger)

	engine.GET("/healthz", healthHandler.Check)
	if recorder != nil {
		engine.GET("/metrics", gin.WrapH(recorder.Handler(logger)))
	}

	api := engine.Group("/api")
	api.GET("/products", catalogHandler.List)
	api.GET("/products/:slug", catalogHandler.Get)
	api.POST("/checkout/:slug", checkoutHandler.Start)
	api.POST("/webhooks/stripe", webhookHandler.Stripe)
	api.GET("/orders/:id", orderHandler.Get)
	api.POST("/orders/:id/otp", orderHandler.RefreshOTP)

	admin := api.Group("/admin")
	admin.POST("/login", adminHandler.Login)

	adminAuth := admin.Group("")
	adminAuth.Use(middleware.AuthRequired(facade))
	adminAuth.GET("/report", adminHandler.Report)

	return engine
}
