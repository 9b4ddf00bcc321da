package event

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/la593ec/deuna-backend/internal/domain/charge"
)

// paidStatuses 支払い完了とみなすステータス（完全一致）
var paidStatuses = map[string]struct{}{
	"paid":      {},
	"approved":  {},
	"confirmed": {},
	"success":   {},
}

// PaymentEvent 決済プロバイダーから通知される決済イベント
type PaymentEvent struct {
	reference string
	status    string
}

// envelope プロバイダーのイベント形式
// referenceとstatusはトップレベルまたはdata配下のどちらにも現れうる
type envelope struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Data      struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
	} `json:"data"`
}

// Parse 生のイベントJSONからPaymentEventを構築
func Parse(raw []byte) (*PaymentEvent, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	reference := env.Reference
	if reference == "" {
		reference = env.Data.Reference
	}

	status := env.Status
	if status == "" {
		status = env.Data.Status
	}

	return &PaymentEvent{
		reference: reference,
		status:    strings.ToLower(status),
	}, nil
}

// Reference 参照を返す
func (e *PaymentEvent) Reference() string {
	return e.reference
}

// Status 小文字化済みのステータスを返す
func (e *PaymentEvent) Status() string {
	return e.status
}

// OrderID 参照から先頭のORDER-プレフィックスを除いた注文IDを返す
// プレフィックスがない参照はそのまま注文IDとして扱う
func (e *PaymentEvent) OrderID() string {
	return strings.TrimPrefix(e.reference, charge.ReferencePrefix)
}

// IsPaid 支払い完了を示すステータスかどうかを返す
func (e *PaymentEvent) IsPaid() bool {
	_, ok := paidStatuses[e.status]
	return ok
}
