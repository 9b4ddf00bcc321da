package charge

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFields 必須フィールドが欠けているエラー
	ErrMissingFields = errors.New("order_id and amount are required")
)

// RejectedError 決済プロバイダーがチャージ作成を拒否したエラー
// プロバイダーの生のレスポンスボディを診断情報として保持する
type RejectedError struct {
	StatusCode int
	Body       string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("charge creation rejected by provider: status=%d", e.StatusCode)
}
