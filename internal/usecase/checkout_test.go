package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/vouchermart/internal/domain/errors"
	"github.com/polkiloo/vouchermart/internal/domain/model"
)

func TestCheckoutStartCreatesPendingOrder(t *testing.T) {
	f := newFixture(testConfig())

	result, err := f.checkout.Start(context.Background(), "zus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ValidateOrderID(result.Order.ID) {
		t.Fatalf("expected uuid order id, got %q", result.Order.ID)
	}

	stored, err := f.orders.Get(context.Background(), result.Order.ID)
	if err != nil {
		t.Fatalf("order not stored: %v", err)
	}
	if stored.Status != model.OrderStatusPending || stored.Amount != zus.Price || stored.Currency != "myr" {
		t.Fatalf("unexpected stored order: %+v", stored)
	}
	if stored.SessionID != result.Session.ID || result.Session.URL == "" {
		t.Fatalf("session not attached: order=%+v session=%+v", stored, result.Session)
	}

	if len(f.gateway.Requests) != 1 {
		t.Fatalf("expected one gateway request, got %d", len(f.gateway.Requests))
	}
	req := f.gateway.Requests[0]
	if req.OrderID != stored.ID || req.Amount != 150 || req.Product.Slug != "zus" {
		t.Fatalf("unexpected checkout request: %+v", req)
	}
	if req.SuccessURL != "https://shop.example/orders/"+stored.ID+"?session_id={CHECKOUT_SESSION_ID}" {
		t.Fatalf("unexpected success url %q", req.SuccessURL)
	}
	if req.CancelURL != "https://shop.example/products/zus" {
		t.Fatalf("unexpected cancel url %q", req.CancelURL)
	}
}

func TestCheckoutCopiesPriceAtPurchaseTime(t *testing.T) {
	f := newFixture(testConfig())

	result, err := f.checkout.Start(context.Background(), "zus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.products.Products[0].Price = 999

	stored, _ := f.orders.Get(context.Background(), result.Order.ID)
	if stored.Amount != 150 {
		t.Fatalf("expected amount to stay 150, got %d", stored.Amount)
	}
}

func TestCheckoutFailureLeavesNoOrphanOrder(t *testing.T) {
	f := newFixture(testConfig())
	f.gateway.CreateFn = func(context.Context, model.CheckoutRequest) (model.CheckoutSession, error) {
		return model.CheckoutSession{}, errors.New("card network down")
	}

	_, err := f.checkout.Start(context.Background(), "zus")
	if !errors.Is(err, domainErrors.ErrCheckoutFailed) {
		t.Fatalf("expected ErrCheckoutFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "card network down") {
		t.Fatalf("expected provider error in message, got %v", err)
	}
	if f.orders.Len() != 0 {
		t.Fatalf("expected no orders left, got %d", f.orders.Len())
	}
}

func TestCheckoutErrors(t *testing.T) {
	f := newFixture(testConfig())

	if _, err := f.checkout.Start(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := f.checkout.Start(context.Background(), "../zus"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for invalid slug, got %v", err)
	}

	f.orders.CreateErr = errors.New("db down")
	if _, err := f.checkout.Start(context.Background(), "zus"); err == nil || errors.Is(err, domainErrors.ErrCheckoutFailed) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if len(f.gateway.Requests) != 0 {
		t.Fatal("gateway must not be called when the order cannot be stored")
	}
}
