package momo

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
	"time"

	"directory-app/config"
	"directory-app/internal/infra/gateway"

	"github.com/google/uuid"
)

// Client talks to the MoMo wallet gateway (captureWallet flow). Every request
// carries an HMAC-SHA256 signature over the alphabetically ordered
// key=value&... string of its fields.
type Client struct {
	Endpoint    string
	PartnerCode string
	AccessKey   string
	SecretKey   string
	RedirectURL string
	IPNURL      string

	HTTP *http.Client
}

func NewFromEnv() *Client {
	return &Client{
		Endpoint:    config.MOMO_ENDPOINT,
		PartnerCode: config.MOMO_PARTNER_CODE,
		AccessKey:   config.MOMO_ACCESS_KEY,
		SecretKey:   config.MOMO_SECRET_KEY,
		RedirectURL: config.APP_BASE_URL + "/api/payment/momo/return",
		IPNURL:      config.APP_BASE_URL + "/api/payment/momo/ipn",
		HTTP:        &http.Client{Timeout: 15 * time.Second},
	}
}

type createResponse struct {
	ResultCode int    `json:"resultCode"`
	Message    string `json:"message"`
	PayURL     string `json:"payUrl"`
	RequestID  string `json:"requestId"`
}

func (c *Client) CreatePayment(ctx context.Context, req gateway.CreateRequest) (*gateway.Session, error) {
	if c.PartnerCode == "" || c.AccessKey == "" || c.SecretKey == "" {
		return nil, errors.New("momo credentials not configured")
	}

	requestID := uuid.NewString()
	extraData := ""

	raw := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=captureWallet",
		c.AccessKey, req.AmountVND, extraData, c.IPNURL, req.OrderID,
		req.Description, c.PartnerCode, c.RedirectURL, requestID,
	)

	body := map[string]interface{}{
		"partnerCode": c.PartnerCode,
		"accessKey":   c.AccessKey,
		"requestId":   requestID,
		"amount":      req.AmountVND,
		"orderId":     req.OrderID,
		"orderInfo":   req.Description,
		"redirectUrl": c.RedirectURL,
		"ipnUrl":      c.IPNURL,
		"extraData":   extraData,
		"requestType": "captureWallet",
		"lang":        "en",
		"signature":   c.Sign(raw),
	}

	var resp createResponse
	if err := c.post(ctx, "/v2/gateway/api/create", body, &resp); err != nil {
		return nil, err
	}

	if resp.ResultCode != 0 || resp.PayURL == "" {
		return nil, fmt.Errorf("momo create failed (code %d): %s", resp.ResultCode, resp.Message)
	}

	return &gateway.Session{OrderID: req.OrderID, PayURL: resp.PayURL}, nil
}

type queryResponse struct {
	ResultCode int    `json:"resultCode"`
	Message    string `json:"message"`
	TransID    int64  `json:"transId"`
}

func (c *Client) QueryStatus(ctx context.Context, orderID string) (gateway.Status, error) {
	requestID := uuid.NewString()

	raw := fmt.Sprintf(
		"accessKey=%s&orderId=%s&partnerCode=%s&requestId=%s",
		c.AccessKey, orderID, c.PartnerCode, requestID,
	)

	body := map[string]interface{}{
		"partnerCode": c.PartnerCode,
		"requestId":   requestID,
		"orderId":     orderID,
		"lang":        "en",
		"signature":   c.Sign(raw),
	}

	var resp queryResponse
	if err := c.post(ctx, "/v2/gateway/api/query", body, &resp); err != nil {
		return gateway.StatusPending, err
	}

	return NormalizeResultCode(resp.ResultCode), nil
}

// NormalizeResultCode maps MoMo result codes to the gateway status enum.
// 0 = success; 1000/7000/7002/9000 are in-flight states; anything else failed.
func NormalizeResultCode(code int) gateway.Status {
	switch code {
	case 0:
		return gateway.StatusSuccess
	case 1000, 7000, 7002, 9000:
		return gateway.StatusPending
	default:
		return gateway.StatusFailed
	}
}

// IPNRequest is the payload MoMo posts to our IPN endpoint after the user
// finishes (or abandons) the wallet flow.
type IPNRequest struct {
	PartnerCode  string `json:"partnerCode"`
	OrderID      string `json:"orderId"`
	RequestID    string `json:"requestId"`
	Amount       int64  `json:"amount"`
	OrderInfo    string `json:"orderInfo"`
	OrderType    string `json:"orderType"`
	TransID      int64  `json:"transId"`
	ResultCode   int    `json:"resultCode"`
	Message      string `json:"message"`
	PayType      string `json:"payType"`
	ResponseTime int64  `json:"responseTime"`
	ExtraData    string `json:"extraData"`
	Signature    string `json:"signature"`
}

// SignIPN computes the expected signature for an IPN payload.
func (c *Client) SignIPN(ipn IPNRequest) string {
	raw := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%d&resultCode=%d&transId=%d",
		c.AccessKey, ipn.Amount, ipn.ExtraData, ipn.Message, ipn.OrderID,
		ipn.OrderInfo, ipn.OrderType, ipn.PartnerCode, ipn.PayType,
		ipn.RequestID, ipn.ResponseTime, ipn.ResultCode, ipn.TransID,
	)
	return c.Sign(raw)
}

// VerifyIPN checks the payload signature against our secret key.
func (c *Client) VerifyIPN(ipn IPNRequest) bool {
	return hmac.Equal([]byte(c.SignIPN(ipn)), []byte(ipn.Signature))
}

// Sign returns the hex HMAC-SHA256 of raw under the partner secret key.
func (c *Client) Sign(raw string) string {
	mac := hmac.New(sha256.New, []byte(c.SecretKey))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("momo gateway returned %d", res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
