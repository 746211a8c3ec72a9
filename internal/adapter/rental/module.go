package rental

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/vouchermart/internal/config"
)

// Module exposes the rental client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.RentalBaseURL, p.Config.RentalAPIKey, p.Config.UpstreamTimeout, p.Logger)
}
