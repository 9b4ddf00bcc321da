package charge

import (
	"context"
)

// ProviderCharge 決済プロバイダーへ送るチャージ作成内容
type ProviderCharge struct {
	MerchantID    string
	Amount        float64
	Currency      string
	Reference     string
	CustomerEmail string
	CallbackURL   string
	ReturnURL     string
	Channel       string
}

// ProviderResult 決済プロバイダーのチャージ作成結果
// プロバイダーが返さなかったフィールドはnilのまま
type ProviderResult struct {
	PaymentID  *string
	PaymentURL *string
	QRImage    *string
}

// ProviderGateway 決済プロバイダーゲートウェイインターフェース
type ProviderGateway interface {
	// CreateCharge チャージを作成
	CreateCharge(ctx context.Context, charge *ProviderCharge) (*ProviderResult, error)
}
