package metrics

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vouchermart"

// Recorder owns the service registry and its counters. A nil Recorder is a no-op.
type Recorder struct {
	registry      *prometheus.Registry
	checkouts     *prometheus.CounterVec
	paymentEvents *prometheus.CounterVec
	fulfillments  *prometheus.CounterVec
	otpPolls      *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
}

// New registers collectors on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Checkout session attempts by result.",
		}, []string{"result"}),
		paymentEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_events_total",
			Help:      "Payment provider webhook deliveries by result.",
		}, []string{"result"}),
		fulfillments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fulfillment_total",
			Help:      "Number acquisition outcomes.",
		}, []string{"outcome"}),
		otpPolls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_polls_total",
			Help:      "Finished OTP polls by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Handled HTTP requests.",
		}, []string{"method", "route", "status"}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.checkouts,
		r.paymentEvents,
		r.fulfillments,
		r.otpPolls,
		r.httpRequests,
	)
	return r
}

// Checkout counts a checkout attempt.
func (r *Recorder) Checkout(result string) {
	if r == nil {
		return
	}
	r.checkouts.WithLabelValues(result).Inc()
}

// PaymentEvent counts a webhook delivery.
func (r *Recorder) PaymentEvent(result string) {
	if r == nil {
		return
	}
	r.paymentEvents.WithLabelValues(result).Inc()
}

// Fulfillment counts a number acquisition outcome.
func (r *Recorder) Fulfillment(outcome string) {
	if r == nil {
		return
	}
	r.fulfillments.WithLabelValues(outcome).Inc()
}

// OTPPoll counts a finished OTP poll.
func (r *Recorder) OTPPoll(outcome string) {
	if r == nil {
		return
	}
	r.otpPolls.WithLabelValues(outcome).Inc()
}

// HTTPRequest counts a handled request.
func (r *Recorder) HTTPRequest(method, route, status string) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, status).Inc()
}

// Registry exposes the underlying gatherer.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler(logger *slog.Logger) http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		ErrorLog:      slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
}
