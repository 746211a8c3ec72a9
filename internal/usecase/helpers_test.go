package usecase

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/vouchermart/internal/config"
	"github.com/polkiloo/vouchermart/internal/domain/model"
	"github.com/polkiloo/vouchermart/internal/metrics"
	testhelpers "github.com/polkiloo/vouchermart/internal/test"
)

var (
	zus = model.Product{ID: 1, Slug: "zus", Name: "Zus Coffee", ServiceCode: "aik", CountryCode: "7", Price: 150, OriginalPrice: 180}
	kfc = model.Product{ID: 2, Slug: "kfc", Name: "KFC RM10 OFF", ServiceCode: "fz", CountryCode: "7", Price: 150, OriginalPrice: 180}
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		PublicBaseURL:   "https://shop.example",
		Currency:        "myr",
		UpstreamTimeout: time.Second,
		OTPPollAttempts: 3,
		OTPPollDelay:    time.Millisecond,
	}
}

type fixture struct {
	products    *testhelpers.ProductRepositoryStub
	orders      *testhelpers.OrderStore
	rental      *testhelpers.RentalStub
	gateway     *testhelpers.GatewayStub
	fulfillment *FulfillmentUseCase
	payments    *PaymentEventUseCase
	checkout    *CheckoutUseCase
}

func newFixture(cfg *config.Config) *fixture {
	products := testhelpers.NewProductRepositoryStub(zus, kfc)
	orders := testhelpers.NewOrderStore(products)
	rental := &testhelpers.RentalStub{NumberRaw: "ACCESS_NUMBER:12345:60171234567"}
	gateway := &testhelpers.GatewayStub{}
	recorder := metrics.New()

	fulfillment := NewFulfillmentUseCase(orders, products, rental, cfg, testLogger(), recorder)
	return &fixture{
		products:    products,
		orders:      orders,
		rental:      rental,
		gateway:     gateway,
		fulfillment: fulfillment,
		payments:    NewPaymentEventUseCase(orders, fulfillment, testLogger(), recorder),
		checkout:    NewCheckoutUseCase(products, orders, gateway, cfg, testLogger(), recorder),
	}
}

func (f *fixture) putOrder(status model.OrderStatus, mutate ...func(*model.Order)) model.Order {
	order := model.Order{ID: uuid.NewString(), ProductID: zus.ID, Amount: zus.Price, Currency: "myr", Status: status}
	for _, m := range mutate {
		m(&order)
	}
	f.orders.Put(order)
	return order
}

func withRental(id string) func(*model.Order) {
	return func(o *model.Order) {
		o.RentalOrderID = id
		o.PhoneNumber = "60171234567"
	}
}
