package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"

	domainErrors "github.com/polkiloo/vouchermart/internal/domain/errors"
	"github.com/polkiloo/vouchermart/internal/domain/model"
)

const (
	eventCheckoutCompleted = "checkout.session.completed"

	metadataOrderID   = "order_id"
	metadataProductID = "product_id"
)

// Gateway creates hosted checkout sessions and decodes their completion events.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req model.CheckoutRequest) (model.CheckoutSession, error)
	ParseEvent(payload []byte, signature string) (model.CheckoutCompleted, error)
}

// Options configure StripeGateway.
type Options struct {
	SecretKey     string
	WebhookSecret string
	// APIURL overrides the Stripe API endpoint, used by tests and mocks.
	APIURL     string
	HTTPClient *http.Client
}

// StripeGateway implements Gateway on top of Stripe Checkout.
type StripeGateway struct {
	sessions      *session.Client
	webhookSecret string
	logger        *slog.Logger
}

// NewStripeGateway builds a gateway with its own backend so no global stripe state is touched.
func NewStripeGateway(opts Options, logger *slog.Logger) *StripeGateway {
	cfg := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &leveledLogger{logger: logger},
	}
	if opts.APIURL != "" {
		cfg.URL = stripe.String(opts.APIURL)
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	}

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, cfg)
	return &StripeGateway{
		sessions:      &session.Client{B: backend, Key: opts.SecretKey},
		webhookSecret: opts.WebhookSecret,
		logger:        logger,
	}
}

// CreateCheckoutSession opens a single-item payment session for the order.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req model.CheckoutRequest) (model.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.OrderID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.Product.Name),
						Description: stripe.String(productDescription(req.Product)),
					},
				},
			},
		},
	}
	params.Context = ctx
	params.AddMetadata(metadataOrderID, req.OrderID)
	params.AddMetadata(metadataProductID, strconv.FormatInt(req.Product.ID, 10))

	s, err := g.sessions.New(params)
	if err != nil {
		return model.CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}
	return model.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// ParseEvent verifies and decodes a webhook payload.
//
// Without a configured webhook secret the payload is trusted as-is.
func (g *StripeGateway) ParseEvent(payload []byte, signature string) (model.CheckoutCompleted, error) {
	var event stripe.Event
	if g.webhookSecret != "" {
		if signature == "" {
			return model.CheckoutCompleted{}, domainErrors.ErrInvalidSignature
		}
		verified, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
			webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
		if err != nil {
			return model.CheckoutCompleted{}, fmt.Errorf("%w: %v", domainErrors.ErrInvalidSignature, err)
		}
		event = verified
	} else {
		g.logger.Warn("webhook signature verification disabled, accepting unsigned event")
		if err := json.Unmarshal(payload, &event); err != nil {
			return model.CheckoutCompleted{}, fmt.Errorf("%w: %v", domainErrors.ErrMalformedEvent, err)
		}
	}

	if string(event.Type) != eventCheckoutCompleted {
		return model.CheckoutCompleted{}, fmt.Errorf("%w: %s", domainErrors.ErrUnsupportedEvent, event.Type)
	}
	if event.Data == nil {
		return model.CheckoutCompleted{}, fmt.Errorf("%w: empty data", domainErrors.ErrMalformedEvent)
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return model.CheckoutCompleted{}, fmt.Errorf("%w: checkout session: %v", domainErrors.ErrMalformedEvent, err)
	}

	orderID := s.Metadata[metadataOrderID]
	if orderID == "" {
		return model.CheckoutCompleted{}, domainErrors.ErrMissingMetadata
	}

	completed := model.CheckoutCompleted{
		EventID:   event.ID,
		SessionID: s.ID,
		OrderID:   orderID,
		ProductID: s.Metadata[metadataProductID],
	}
	if s.PaymentIntent != nil {
		completed.PaymentIntentID = s.PaymentIntent.ID
	}
	return completed, nil
}

func productDescription(p model.Product) string {
	if p.Description != "" {
		return p.Description
	}
	return p.Name
}
