package metrics

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCounters(t *testing.T) {
	r := New()
	r.Checkout("created")
	r.Checkout("created")
	r.PaymentEvent("duplicate")
	r.Fulfillment("failed")
	r.OTPPoll("received")
	r.HTTPRequest("GET", "/api/products", "200")

	if got := testutil.ToFloat64(r.checkouts.WithLabelValues("created")); got != 2 {
		t.Fatalf("expected 2 checkouts, got %v", got)
	}
	if got := testutil.ToFloat64(r.paymentEvents.WithLabelValues("duplicate")); got != 1 {
		t.Fatalf("expected 1 duplicate event, got %v", got)
	}
	if got := testutil.ToFloat64(r.fulfillments.WithLabelValues("failed")); got != 1 {
		t.Fatalf("expected 1 failed fulfillment, got %v", got)
	}
	if got := testutil.ToFloat64(r.otpPolls.WithLabelValues("received")); got != 1 {
		t.Fatalf("expected 1 received otp, got %v", got)
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.Checkout("x")
	r.PaymentEvent("x")
	r.Fulfillment("x")
	r.OTPPoll("x")
	r.HTTPRequest("GET", "/", "200")
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := New()
	r.Fulfillment("fulfilled")
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	srv := httptest.NewServer(r.Handler(logger))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `vouchermart_fulfillment_total{outcome="fulfilled"} 1`) {
		t.Fatalf("expected fulfillment counter in output, got:\n%s", body)
	}
}
