package deuna

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/la593ec/deuna-backend/internal/domain/charge"
	"github.com/la593ec/deuna-backend/internal/infrastructure/config"
)

// Client DeUna決済APIクライアント
type Client struct {
	paymentsURL string
	apiKey      string
	httpClient  *http.Client
}

// NewClient 新しいClientを作成
func NewClient(cfg *config.DeUnaConfig, timeout time.Duration) *Client {
	return &Client{
		paymentsURL: cfg.PaymentsURL(),
		apiKey:      cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// chargePayload チャージ作成APIのリクエストボディ
type chargePayload struct {
	MerchantID  string          `json:"merchantId"`
	Amount      amountPayload   `json:"amount"`
	Reference   string          `json:"reference"`
	Customer    customerPayload `json:"customer"`
	CallbackURL string          `json:"callbackUrl"`
	ReturnURL   string          `json:"returnUrl"`
	Channel     string          `json:"channel"`
}

type amountPayload struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

type customerPayload struct {
	Email string `json:"email"`
}

// chargeResponse チャージ作成APIのレスポンスボディ
type chargeResponse struct {
	PaymentID  *string `json:"paymentId"`
	PaymentURL *string `json:"paymentUrl"`
	QRImage    *string `json:"qrImage"`
}

// CreateCharge チャージを作成
func (c *Client) CreateCharge(ctx context.Context, pc *charge.ProviderCharge) (*charge.ProviderResult, error) {
	payload := chargePayload{
		MerchantID: pc.MerchantID,
		Amount: amountPayload{
			Value:    pc.Amount,
			Currency: pc.Currency,
		},
		Reference: pc.Reference,
		Customer: customerPayload{
			Email: pc.CustomerEmail,
		},
		CallbackURL: pc.CallbackURL,
		ReturnURL:   pc.ReturnURL,
		Channel:     pc.Channel,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal charge payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.paymentsURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create charge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call charge API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read charge response: %w", err)
	}

	// プロバイダーの拒否は生のボディを診断情報として保持する
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &charge.RejectedError{
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}

	if len(raw) == 0 {
		raw = []byte("{}")
	}

	var cr chargeResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return nil, fmt.Errorf("failed to parse charge response: %w", err)
	}

	return &charge.ProviderResult{
		PaymentID:  cr.PaymentID,
		PaymentURL: cr.PaymentURL,
		QRImage:    cr.QRImage,
	}, nil
}
