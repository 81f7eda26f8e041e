package payos

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"directory-app/config"
	"directory-app/internal/infra/gateway"
)

// Client talks to the PayOS checkout-link API. Order ids on this gateway are
// numeric order codes; the app generates digit-only order ids for PayOS
// payments so the ledger key and the gateway key stay identical.
type Client struct {
	Endpoint    string
	ClientID    string
	APIKey      string
	ChecksumKey string
	ReturnURL   string
	CancelURL   string

	HTTP *http.Client
}

func NewFromEnv() *Client {
	return &Client{
		Endpoint:    config.PAYOS_ENDPOINT,
		ClientID:    config.PAYOS_CLIENT_ID,
		APIKey:      config.PAYOS_API_KEY,
		ChecksumKey: config.PAYOS_CHECKSUM_KEY,
		ReturnURL:   config.APP_BASE_URL + "/api/payos/return?status=success",
		CancelURL:   config.APP_BASE_URL + "/api/payos/return?status=failed",
		HTTP:        &http.Client{Timeout: 15 * time.Second},
	}
}

type createResponse struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
	Data struct {
		CheckoutURL   string `json:"checkoutUrl"`
		PaymentLinkID string `json:"paymentLinkId"`
	} `json:"data"`
}

func (c *Client) CreatePayment(ctx context.Context, req gateway.CreateRequest) (*gateway.Session, error) {
	if c.ClientID == "" || c.APIKey == "" || c.ChecksumKey == "" {
		return nil, errors.New("payos credentials not configured")
	}

	orderCode, err := strconv.ParseInt(req.OrderID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("payos order id must be numeric: %q", req.OrderID)
	}

	body := map[string]interface{}{
		"orderCode":   orderCode,
		"amount":      req.AmountVND,
		"description": req.Description,
		"returnUrl":   c.ReturnURL,
		"cancelUrl":   c.CancelURL,
		"signature":   c.SignCreate(req.AmountVND, c.CancelURL, req.Description, orderCode, c.ReturnURL),
	}

	var resp createResponse
	if err := c.do(ctx, http.MethodPost, "/v2/payment-requests", body, &resp); err != nil {
		return nil, err
	}

	if resp.Code != "00" || resp.Data.CheckoutURL == "" {
		return nil, fmt.Errorf("payos create failed (code %s): %s", resp.Code, resp.Desc)
	}

	return &gateway.Session{OrderID: req.OrderID, PayURL: resp.Data.CheckoutURL}, nil
}

type queryResponse struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
	Data struct {
		Status string `json:"status"`
	} `json:"data"`
}

func (c *Client) QueryStatus(ctx context.Context, orderID string) (gateway.Status, error) {
	var resp queryResponse
	if err := c.do(ctx, http.MethodGet, "/v2/payment-requests/"+orderID, nil, &resp); err != nil {
		return gateway.StatusPending, err
	}
	if resp.Code != "00" {
		return gateway.StatusPending, fmt.Errorf("payos query failed (code %s): %s", resp.Code, resp.Desc)
	}
	return NormalizeStatus(resp.Data.Status), nil
}

// NormalizeStatus maps PayOS link states to the gateway status enum.
func NormalizeStatus(s string) gateway.Status {
	switch s {
	case "PAID":
		return gateway.StatusSuccess
	case "CANCELLED", "EXPIRED":
		return gateway.StatusFailed
	default: // PENDING, PROCESSING
		return gateway.StatusPending
	}
}

// SignCreate computes the checksum over the create fields in the fixed
// alphabetical order PayOS requires.
func (c *Client) SignCreate(amount int64, cancelURL, description string, orderCode int64, returnURL string) string {
	raw := fmt.Sprintf(
		"amount=%d&cancelUrl=%s&description=%s&orderCode=%d&returnUrl=%s",
		amount, cancelURL, description, orderCode, returnURL,
	)
	mac := hmac.New(sha256.New, []byte(c.ChecksumKey))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Endpoint+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-client-id", c.ClientID)
	req.Header.Set("x-api-key", c.APIKey)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("payos gateway returned %d", res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
