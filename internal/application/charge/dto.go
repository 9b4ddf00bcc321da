package charge

// CreateChargeRequest チャージ作成リクエスト
type CreateChargeRequest struct {
	OrderID       string
	Amount        float64
	Currency      string
	CustomerEmail string
}

// CreateChargeResponse チャージ作成レスポンス
// プロバイダーが返さなかったフィールドはnilのまま
type CreateChargeResponse struct {
	OK         bool
	PaymentID  *string
	PaymentURL *string
	QR         *string
	Reference  string
}
