package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

type GatewayError error

var ErrGatewayUnavailable GatewayError = errors.New("payment gateway unavailable")

// IPaymentGateway 外部金流能力
// 只需要建立遠端扣款單，扣款結果由金流方callback回報
type IPaymentGateway interface {
	// CreateOrder 以最小幣值單位建立遠端扣款單，回傳金流單號
	CreateOrder(ctx context.Context, amountMinor int64, currency string) (string, error)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	keyID      string
	keySecret  string
}

func NewClient(baseURL, keyID, keySecret string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		keyID:      keyID,
		keySecret:  keySecret,
	}
}

type createOrderRequest struct {
	Amount         int64  `json:"amount"` // 最小幣值單位
	Currency       string `json:"currency"`
	PaymentCapture int    `json:"payment_capture"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// CreateOrder 建立遠端扣款單
// 不做重試，失敗由呼叫端決定
func (c *Client) CreateOrder(ctx context.Context, amountMinor int64, currency string) (string, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:         amountMinor,
		Currency:       currency,
		PaymentCapture: 1,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%w: unexpected status %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	var orderResp createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrGatewayUnavailable, err)
	}
	if orderResp.ID == "" {
		return "", fmt.Errorf("%w: empty order id", ErrGatewayUnavailable)
	}

	return orderResp.ID, nil
}

var _ IPaymentGateway = (*Client)(nil)
