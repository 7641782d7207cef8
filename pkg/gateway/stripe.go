package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StripeClient talks to the Stripe REST API with bearer auth. Stripe takes
// form-encoded bodies and amounts in the smallest currency unit.
type StripeClient struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
}

func NewStripeClient(baseURL, secretKey string, timeout time.Duration) *StripeClient {
	return &StripeClient{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *StripeClient) Name() string {
	return "stripe"
}

type stripeIntentResponse struct {
	ID             string `json:"id"`
	ClientSecret   string `json:"client_secret"`
	Status         string `json:"status"` // requires_payment_method, processing, succeeded, canceled
	AmountReceived int64  `json:"amount_received"`
}

type stripeRefundResponse struct {
	ID string `json:"id"`
}

func (c *StripeClient) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error) {
	if c.SecretKey == "" {
		return nil, ErrNotConfigured
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount*100, 10))
	form.Set("currency", strings.ToLower(currency))
	form.Set("automatic_payment_methods[enabled]", "true")
	for k, v := range metadata {
		form.Set("metadata["+k+"]", v)
	}

	var resp stripeIntentResponse
	if err := c.do(ctx, http.MethodPost, "/v1/payment_intents", form, &resp); err != nil {
		return nil, err
	}

	return &Intent{
		TransactionID: resp.ID,
		ClientToken:   resp.ClientSecret,
	}, nil
}

func (c *StripeClient) Confirm(ctx context.Context, reference string) (*Confirmation, error) {
	if c.SecretKey == "" {
		return nil, ErrNotConfigured
	}

	var resp stripeIntentResponse
	if err := c.do(ctx, http.MethodGet, "/v1/payment_intents/"+reference, nil, &resp); err != nil {
		return nil, err
	}

	conf := &Confirmation{PaidAmount: resp.AmountReceived / 100}
	switch resp.Status {
	case "succeeded":
		conf.Status = StatusSucceeded
	case "processing", "requires_action", "requires_confirmation":
		conf.Status = StatusPending
	default:
		conf.Status = StatusFailed
	}
	return conf, nil
}

func (c *StripeClient) Refund(ctx context.Context, reference string, amount int64) (string, error) {
	if c.SecretKey == "" {
		return "", ErrNotConfigured
	}

	form := url.Values{}
	form.Set("payment_intent", reference)
	form.Set("amount", strconv.FormatInt(amount*100, 10))

	var resp stripeRefundResponse
	if err := c.do(ctx, http.MethodPost, "/v1/refunds", form, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *StripeClient) do(ctx context.Context, method, path string, form url.Values, dest interface{}) error {
	var reader io.Reader
	if form != nil {
		reader = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("stripe returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, dest); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
