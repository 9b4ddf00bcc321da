package handler

// WebhookResponse Webhook受信確認レスポンス
// @Description Webhook受信確認レスポンス
type WebhookResponse struct {
	OK bool `json:"ok" example:"true"`
}
