package fulfillment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/elmscz/elms-client/elms"
)

const defaultTimeout = 10 * time.Second

// Client delivers encoded order payloads to the fulfillment service.
type Client interface {
	Send(ctx context.Context, payload string) error
}

// HTTPClient implements Client against the ELMS import endpoint.
type HTTPClient struct {
	endpoint   *url.URL
	username   string
	password   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient validates the endpoint URL and builds a client. A
// non-positive timeout falls back to the default.
func NewHTTPClient(endpoint, username, password string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse fulfillment url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("fulfillment url must be absolute")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		endpoint: parsed,
		username: username,
		password: password,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Send performs the import request. The service answers with a plain-text
// body: anything but the literal "OK", or a status of 400 and above, is a
// refusal and surfaces as a ValidationError carrying the HTTP status.
func (c *HTTPClient) Send(ctx context.Context, payload string) error {
	endpoint := *c.endpoint
	query := endpoint.Query()
	query.Set("data", payload)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fulfillment request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read fulfillment response: %w", err)
	}

	if string(body) != "OK" || resp.StatusCode >= http.StatusBadRequest {
		c.logger.Error("fulfillment request failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
		return &elms.ValidationError{
			Message:    fmt.Sprintf("fulfillment service refused order: %s", string(body)),
			StatusCode: resp.StatusCode,
		}
	}
	return nil
}
