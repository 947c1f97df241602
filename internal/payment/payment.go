package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client creates payment sessions with the external payment provider.
type Client interface {
	// CreateSession registers the order amount with the provider and
	// returns the provider's session id.
	CreateSession(ctx context.Context, orderID uuid.UUID, amount float64) (string, error)
}

// httpClient implements Client against the provider's HTTP API.
type httpClient struct {
	url    string
	apiKey string
	client *http.Client
	logger zerolog.Logger
}

// NewHTTPClient creates a payment client for the provider at url.
func NewHTTPClient(url, apiKey string, timeout time.Duration, logger zerolog.Logger) Client {
	return &httpClient{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
		logger: logger.With().Str("component", "payment-client").Logger(),
	}
}

type sessionRequest struct {
	OrderID string  `json:"orderId"`
	Amount  float64 `json:"amount"`
}

type sessionResponse struct {
	SessionID string `json:"sessionId"`
}

// CreateSession registers the order with the provider.
func (c *httpClient) CreateSession(ctx context.Context, orderID uuid.UUID, amount float64) (string, error) {
	payload, err := json.Marshal(sessionRequest{OrderID: orderID.String(), Amount: amount})
	if err != nil {
		return "", fmt.Errorf("failed to encode session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("payment session request failed")
		return "", fmt.Errorf("payment session request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("order_id", orderID.String()).
			Msg("payment provider returned an error")
		return "", fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var body sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode session response: %w", err)
	}
	if body.SessionID == "" {
		return "", fmt.Errorf("payment provider returned an empty session id")
	}

	return body.SessionID, nil
}
