package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RazorpayClient talks to the Razorpay REST API with basic auth. Amounts are
// converted to paise on the wire and back to whole currency units in results.
type RazorpayClient struct {
	BaseURL    string
	KeyID      string
	KeySecret  string
	HTTPClient *http.Client
}

func NewRazorpayClient(baseURL, keyID, keySecret string, timeout time.Duration) *RazorpayClient {
	return &RazorpayClient{
		BaseURL:   baseURL,
		KeyID:     keyID,
		KeySecret: keySecret,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *RazorpayClient) Name() string {
	return "razorpay"
}

func (c *RazorpayClient) configured() bool {
	return c.KeyID != "" && c.KeySecret != ""
}

type razorpayOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type razorpayPaymentResponse struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Status string `json:"status"` // created, authorized, captured, refunded, failed
}

type razorpayRefundResponse struct {
	ID string `json:"id"`
}

func (c *RazorpayClient) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error) {
	if !c.configured() {
		return nil, ErrNotConfigured
	}

	reqBody := razorpayOrderRequest{
		Amount:   amount * 100, // paise
		Currency: currency,
		Receipt:  metadata["order_number"],
		Notes:    metadata,
	}

	var resp razorpayOrderResponse
	if err := c.do(ctx, http.MethodPost, "/v1/orders", reqBody, &resp); err != nil {
		return nil, err
	}

	return &Intent{
		TransactionID: resp.ID,
		ClientToken:   resp.ID,
	}, nil
}

func (c *RazorpayClient) Confirm(ctx context.Context, reference string) (*Confirmation, error) {
	if !c.configured() {
		return nil, ErrNotConfigured
	}

	var resp razorpayPaymentResponse
	if err := c.do(ctx, http.MethodGet, "/v1/payments/"+reference, nil, &resp); err != nil {
		return nil, err
	}

	conf := &Confirmation{PaidAmount: resp.Amount / 100}
	switch resp.Status {
	case "captured":
		conf.Status = StatusSucceeded
	case "created", "authorized":
		conf.Status = StatusPending
	default:
		conf.Status = StatusFailed
	}
	return conf, nil
}

func (c *RazorpayClient) Refund(ctx context.Context, reference string, amount int64) (string, error) {
	if !c.configured() {
		return "", ErrNotConfigured
	}

	reqBody := map[string]int64{"amount": amount * 100}

	var resp razorpayRefundResponse
	if err := c.do(ctx, http.MethodPost, "/v1/payments/"+reference+"/refund", reqBody, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *RazorpayClient) do(ctx context.Context, method, path string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request data: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	auth := base64.StdEncoding.EncodeToString([]byte(c.KeyID + ":" + c.KeySecret))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("razorpay request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("razorpay returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, dest); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
