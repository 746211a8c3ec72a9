package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/vouchermart/internal/config"
)

// Module exposes the payment gateway to fx graph.
var Module = fx.Provide(newGateway)

type gatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p gatewayParams) Gateway {
	if p.Config.StripeWebhookSecret == "" {
		p.Logger.Warn("STRIPE_WEBHOOK_SECRET is empty, payment events will not be verified")
	}
	return NewStripeGateway(Options{
		SecretKey:     p.Config.StripeSecretKey,
		WebhookSecret: p.Config.StripeWebhookSecret,
		APIURL:        p.Config.StripeAPIURL,
	}, p.Logger)
}
