package event

import (
	"context"
)

// OrderGateway 注文管理システムゲートウェイインターフェース
type OrderGateway interface {
	// MarkOrderPaid 注文を支払い済み（processing）として更新
	MarkOrderPaid(ctx context.Context, orderID string) error
}
