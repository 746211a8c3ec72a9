package di

import (
	"github.com/polkiloo/vouchermart/internal/adapter/payment"
	"github.com/polkiloo/vouchermart/internal/adapter/rental"
	"github.com/polkiloo/vouchermart/internal/app"
	"github.com/polkiloo/vouchermart/internal/config"
	"github.com/polkiloo/vouchermart/internal/logger"
	"github.com/polkiloo/vouchermart/internal/metrics"
	"github.com/polkiloo/vouchermart/internal/pkg/auth"
	"github.com/polkiloo/vouchermart/internal/server/http/router"
	"github.com/polkiloo/vouchermart/internal/storage/postgres"
	"github.com/polkiloo/vouchermart/internal/usecase"
	"go.uber.org/fx"
)

// Module composes the application graph. Extra options are appended last so
// tests can swap infrastructure with fx.Replace.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		postgres.Module,
		rental.Module,
		payment.Module,
		usecase.Module,
		fx.Provide(func(s *postgres.Storage) app.HealthChecker { return s }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
