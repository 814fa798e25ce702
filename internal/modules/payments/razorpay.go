package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Shoury7/EzyStayBackend/internal/config"
)

type CreateOrderRequest struct {
	AmountMinor int64
	Currency    string
	Receipt     string
}

// ProviderOrder mirrors the fields of a Razorpay order we care about.
type ProviderOrder struct {
	ID          string `json:"id"`
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
	Status      string `json:"status"`
}

// Client talks to the Razorpay orders API with key-pair basic auth.
type Client struct {
	http      *http.Client
	baseURL   string
	keyID     string
	keySecret string
}

func NewClient(cfg config.RazorpayConfig) *Client {
	return &Client{
		http:      &http.Client{Timeout: 10 * time.Second},
		baseURL:   cfg.BaseURL,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
	}
}

func (c *Client) CreateOrder(ctx context.Context, in CreateOrderRequest) (ProviderOrder, error) {
	payload, err := json.Marshal(map[string]any{
		"amount":   in.AmountMinor,
		"currency": in.Currency,
		"receipt":  in.Receipt,
	})
	if err != nil {
		return ProviderOrder{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return ProviderOrder{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return ProviderOrder{}, fmt.Errorf("razorpay create order: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ProviderOrder{}, err
	}
	if resp.StatusCode != http.StatusOK {
		// Do not bubble the raw body to callers; it may echo credentials context.
		return ProviderOrder{}, fmt.Errorf("razorpay create order: status %d", resp.StatusCode)
	}

	var out ProviderOrder
	if err := json.Unmarshal(body, &out); err != nil {
		return ProviderOrder{}, fmt.Errorf("razorpay create order: decode: %w", err)
	}
	return out, nil
}
