package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stripe/stripe-go/v76/webhook"

	domainErrors "github.com/polkiloo/vouchermart/internal/domain/errors"
	"github.com/polkiloo/vouchermart/internal/domain/model"
)

const testWebhookSecret = "whsec_test"

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func checkoutRequest() model.CheckoutRequest {
	return model.CheckoutRequest{
		OrderID:    "order-1",
		Product:    model.Product{ID: 3, Slug: "zus", Name: "Zus Coffee", Description: "RM5 voucher"},
		Amount:     150,
		Currency:   "myr",
		SuccessURL: "https://shop.example/orders/order-1?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  "https://shop.example/products/zus",
	}
}

func TestCreateCheckoutSessionSendsOrderMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		form := r.PostForm
		checks := map[string]string{
			"mode":                                                 "payment",
			"client_reference_id":                                  "order-1",
			"metadata[order_id]":                                   "order-1",
			"metadata[product_id]":                                 "3",
			"cancel_url":                                           "https://shop.example/products/zus",
			"line_items[0][quantity]":                              "1",
			"line_items[0][price_data][currency]":                  "myr",
			"line_items[0][price_data][unit_amount]":               "150",
			"line_items[0][price_data][product_data][name]":        "Zus Coffee",
			"line_items[0][price_data][product_data][description]": "RM5 voucher",
		}
		for key, want := range checks {
			if got := form.Get(key); got != want {
				t.Errorf("form %s: expected %q, got %q", key, want, got)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.example/cs_test_1"}`)
	}))
	defer srv.Close()

	gw := NewStripeGateway(Options{SecretKey: "sk_test_123", APIURL: srv.URL}, testLogger())
	got, err := gw.CreateCheckoutSession(context.Background(), checkoutRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "cs_test_1" || got.URL != "https://checkout.example/cs_test_1" {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestCreateCheckoutSessionReturnsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"type":"invalid_request_error","message":"Invalid currency"}}`)
	}))
	defer srv.Close()

	gw := NewStripeGateway(Options{SecretKey: "sk_test_123", APIURL: srv.URL}, testLogger())
	if _, err := gw.CreateCheckoutSession(context.Background(), checkoutRequest()); err == nil {
		t.Fatal("expected provider error")
	}
}

func completedPayload(eventType, metadata string) []byte {
	return []byte(`{"id":"evt_1","object":"event","type":"` + eventType + `","api_version":"2023-10-16",` +
		`"data":{"object":{"id":"cs_test_1","object":"checkout.session","payment_intent":"pi_1","metadata":` + metadata + `}}}`)
}

func sign(payload []byte) string {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: testWebhookSecret})
	return signed.Header
}

func TestParseEventVerifiesSignature(t *testing.T) {
	gw := NewStripeGateway(Options{SecretKey: "sk", WebhookSecret: testWebhookSecret}, testLogger())
	payload := completedPayload("checkout.session.completed", `{"order_id":"order-1","product_id":"3"}`)

	got, err := gw.ParseEvent(payload, sign(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := model.CheckoutCompleted{EventID: "evt_1", SessionID: "cs_test_1", PaymentIntentID: "pi_1", OrderID: "order-1", ProductID: "3"}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestParseEventRejections(t *testing.T) {
	gw := NewStripeGateway(Options{SecretKey: "sk", WebhookSecret: testWebhookSecret}, testLogger())
	valid := completedPayload("checkout.session.completed", `{"order_id":"order-1"}`)

	tests := []struct {
		name      string
		payload   []byte
		signature string
		wantErr   error
	}{
		{name: "missing signature", payload: valid, signature: "", wantErr: domainErrors.ErrInvalidSignature},
		{name: "bad signature", payload: valid, signature: "t=1,v1=deadbeef", wantErr: domainErrors.ErrInvalidSignature},
		{name: "tampered payload", payload: completedPayload("checkout.session.completed", `{"order_id":"order-2"}`), signature: sign(valid), wantErr: domainErrors.ErrInvalidSignature},
		{name: "other event", payload: completedPayload("payment_intent.succeeded", `{}`), wantErr: domainErrors.ErrUnsupportedEvent},
		{name: "no order id", payload: completedPayload("checkout.session.completed", `{"product_id":"3"}`), wantErr: domainErrors.ErrMissingMetadata},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signature := tt.signature
			if signature == "" && tt.wantErr != domainErrors.ErrInvalidSignature {
				signature = sign(tt.payload)
			}
			_, err := gw.ParseEvent(tt.payload, signature)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseEventWithoutSecretTrustsPayload(t *testing.T) {
	var logs strings.Builder
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	gw := NewStripeGateway(Options{SecretKey: "sk"}, logger)

	got, err := gw.ParseEvent(completedPayload("checkout.session.completed", `{"order_id":"order-1"}`), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.OrderID != "order-1" {
		t.Fatalf("unexpected order id %q", got.OrderID)
	}
	if !strings.Contains(logs.String(), "verification disabled") {
		t.Fatalf("expected warning log, got %s", logs.String())
	}

	if _, err := gw.ParseEvent([]byte("not json"), ""); !errors.Is(err, domainErrors.ErrMalformedEvent) {
		t.Fatal("expected decode error")
	}
}

func TestLeveledLoggerBridgesLevels(t *testing.T) {
	var logs strings.Builder
	l := &leveledLogger{logger: slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)

	out := logs.String()
	for _, want := range []string{`"level":"DEBUG"`, `"level":"INFO"`, `"level":"WARN"`, `"level":"ERROR"`, "error 4", `"component":"stripe"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in logs: %s", want, out)
		}
	}
}
