package rental

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotConfigured is returned when the rental API key is missing.
var ErrNotConfigured = errors.New("rental api key not configured")

// maxBodySize bounds upstream responses; the grammar is a single short line.
const maxBodySize = 4 << 10

// Client exposes the number-rental API. Responses are returned verbatim.
type Client interface {
	Configured() bool
	GetNumber(ctx context.Context, service, country string) (string, error)
	GetStatus(ctx context.Context, rentalID string) (string, error)
}

// HTTPClient implements Client via the handler_api HTTP endpoint.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a rental client. An empty apiKey yields an
// unconfigured client whose calls fail with ErrNotConfigured.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse rental url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("rental url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:    parsed,
		apiKey:     apiKey,
		timeout:    timeout,
		logger:     logger,
		httpClient: &http.Client{},
	}, nil
}

// Configured reports whether an API key is present.
func (c *HTTPClient) Configured() bool {
	return c.apiKey != ""
}

// GetNumber leases a phone number for the given service and country.
func (c *HTTPClient) GetNumber(ctx context.Context, service, country string) (string, error) {
	return c.call(ctx, url.Values{
		"action":  {"getNumber"},
		"service": {service},
		"country": {country},
	})
}

// GetStatus asks for the activation status of a leased number.
func (c *HTTPClient) GetStatus(ctx context.Context, rentalID string) (string, error) {
	return c.call(ctx, url.Values{
		"action": {"getStatus"},
		"id":     {rentalID},
	})
}

func (c *HTTPClient) call(ctx context.Context, params url.Values) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params.Set("api_key", c.apiKey)
	endpoint := *c.baseURL
	query := endpoint.Query()
	for key, values := range params {
		query[key] = values
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", params.Get("action"), redact(err, c.apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}
	text := string(body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("rental request failed",
			slog.String("action", params.Get("action")),
			slog.Int("status", resp.StatusCode),
			slog.String("body", strings.TrimSpace(text)))
		return "", fmt.Errorf("rental error: %s", resp.Status)
	}
	return text, nil
}

// redact strips the api key from url errors so it never reaches stored diagnostics.
func redact(err error, apiKey string) error {
	var urlErr *url.Error
	if apiKey == "" || !errors.As(err, &urlErr) {
		return err
	}
	return &url.Error{
		Op:  urlErr.Op,
		URL: strings.ReplaceAll(urlErr.URL, url.QueryEscape(apiKey), "REDACTED"),
		Err: urlErr.Err,
	}
}
