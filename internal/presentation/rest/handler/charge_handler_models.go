package handler

// CreateChargeRequest チャージ作成リクエスト
// @Description チャージ作成リクエスト
type CreateChargeRequest struct {
	OrderID       string  `json:"order_id" example:"42"`
	Amount        float64 `json:"amount" example:"10.5"`
	Currency      string  `json:"currency,omitempty" example:"USD"`
	CustomerEmail string  `json:"customer_email,omitempty" example:"buyer@example.com"`
}

// CreateChargeResponse チャージ作成レスポンス
// @Description チャージ作成レスポンス（プロバイダーが返さなかったフィールドはnull）
type CreateChargeResponse struct {
	OK         bool    `json:"ok" example:"true"`
	PaymentID  *string `json:"payment_id" example:"pay_1"`
	PaymentURL *string `json:"payment_url" example:"https://pay.deuna.example/pay_1"`
	QR         *string `json:"qr"`
	Reference  string  `json:"reference" example:"ORDER-42"`
}
