package router

import (
	"go.uber.org/fx"

	"github.com/polkiloo/vouchermart/internal/app"
	"github.com/polkiloo/vouchermart/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(func(f *app.StoreFacade) handlers.StoreFacade { return f }),
	fx.Provide(Setup),
)
