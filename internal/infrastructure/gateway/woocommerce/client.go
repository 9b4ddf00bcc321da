package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/la593ec/deuna-backend/internal/infrastructure/config"
)

const (
	// paidOrderStatus 支払い完了後に設定する注文ステータス
	paidOrderStatus = "processing"
	// paidMetaKey 支払い済みフラグのメタデータキー
	paidMetaKey = "_deuna_paid"
)

// Client WooCommerce REST APIクライアント
type Client struct {
	cfg        *config.WooCommerceConfig
	httpClient *http.Client
}

// NewClient 新しいClientを作成
func NewClient(cfg *config.WooCommerceConfig, timeout time.Duration) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// orderUpdatePayload 注文更新APIのリクエストボディ
type orderUpdatePayload struct {
	Status   string          `json:"status"`
	MetaData []metaDataEntry `json:"meta_data"`
}

type metaDataEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MarkOrderPaid 注文を支払い済み（processing）として更新
func (c *Client) MarkOrderPaid(ctx context.Context, orderID string) error {
	payload := orderUpdatePayload{
		Status: paidOrderStatus,
		MetaData: []metaDataEntry{
			{Key: paidMetaKey, Value: "1"},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal order update payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.cfg.OrderUpdateURL(orderID), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create order update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call order update API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("order update rejected: status=%d body=%s", resp.StatusCode, string(raw))
	}

	return nil
}
