package app

import (
	"context"
	"errors"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/vouchermart/internal/adapter/payment"
	domainErrors "github.com/polkiloo/vouchermart/internal/domain/errors"
	"github.com/polkiloo/vouchermart/internal/domain/model"
	"github.com/polkiloo/vouchermart/internal/metrics"
	"github.com/polkiloo/vouchermart/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// OTPScheduler queues background OTP polls.
type OTPScheduler interface {
	Schedule(orderID string) bool
}

type FacadeParams struct {
	fx.In

	Catalog     *usecase.CatalogUseCase
	Checkout    *usecase.CheckoutUseCase
	Payments    *usecase.PaymentEventUseCase
	Fulfillment *usecase.FulfillmentUseCase
	Reports     *usecase.ReportUseCase
	Admin       *usecase.AdminAuthUseCase
	Gateway     payment.Gateway
	Scheduler   OTPScheduler
	Health      HealthChecker
	Logger      *slog.Logger
	Metrics     *metrics.Recorder `optional:"true"`
}

type StoreFacade struct {
	catalog     *usecase.CatalogUseCase
	checkout    *usecase.CheckoutUseCase
	payments    *usecase.PaymentEventUseCase
	fulfillment *usecase.FulfillmentUseCase
	reports     *usecase.ReportUseCase
	admin       *usecase.AdminAuthUseCase
	gateway     payment.Gateway
	scheduler   OTPScheduler
	health      HealthChecker
	logger      *slog.Logger
	metrics     *metrics.Recorder
}

func NewStoreFacade(p FacadeParams) *StoreFacade {
	return &StoreFacade{
		catalog:     p.Catalog,
		checkout:    p.Checkout,
		payments:    p.Payments,
		fulfillment: p.Fulfillment,
		reports:     p.Reports,
		admin:       p.Admin,
		gateway:     p.Gateway,
		scheduler:   p.Scheduler,
		health:      p.Health,
		logger:      p.Logger,
		metrics:     p.Metrics,
	}
}

func (f *StoreFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.List(ctx)
}

func (f *StoreFacade) Product(ctx context.Context, slug string) (*model.Product, error) {
	return f.catalog.Get(ctx, slug)
}

func (f *StoreFacade) Checkout(ctx context.Context, slug string) (*model.CheckoutResult, error) {
	return f.checkout.Start(ctx, slug)
}

// ReceivePaymentEvent verifies a provider webhook, applies it and hands the
// OTP poll to the background worker once a number was leased.
func (f *StoreFacade) ReceivePaymentEvent(ctx context.Context, payload []byte, signature string) (*model.Order, error) {
	evt, err := f.gateway.ParseEvent(payload, signature)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUnsupportedEvent) {
			f.metrics.PaymentEvent("ignored")
		} else {
			f.metrics.PaymentEvent("rejected")
			f.logger.Warn("payment event rejected", slog.String("error", err.Error()))
		}
		return nil, err
	}

	// The provider may drop the connection; fulfillment of a paid order must still finish.
	order, ran, err := f.payments.Handle(context.WithoutCancel(ctx), evt)
	if err != nil {
		return nil, err
	}
	if ran && order.AwaitingOTP() {
		f.scheduler.Schedule(order.ID)
	}
	return order, nil
}

func (f *StoreFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.fulfillment.Order(ctx, id)
}

func (f *StoreFacade) RefreshOTP(ctx context.Context, id string) (*model.Order, error) {
	return f.fulfillment.RefreshOTP(ctx, id)
}

func (f *StoreFacade) Report(ctx context.Context) (*model.Report, error) {
	return f.reports.Sales(ctx)
}

func (f *StoreFacade) AdminLogin(ctx context.Context, login, password string) (string, error) {
	return f.admin.Login(login, password)
}

func (f *StoreFacade) ParseToken(token string) (string, error) {
	return f.admin.ParseToken(token)
}

func (f *StoreFacade) Health(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
