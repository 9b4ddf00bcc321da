package webhook

// HandleEventRequest Webhookイベント処理リクエスト
type HandleEventRequest struct {
	// RawBody 署名検証のための生のリクエストボディ
	RawBody []byte
	// Signature 署名ヘッダーの値（ヘッダーがない場合は空文字列）
	Signature string
}

// HandleEventResponse Webhookイベント処理レスポンス
type HandleEventResponse struct {
	OK bool
	// OrderUpdated 注文管理システムの更新を実行し成功したかどうか
	OrderUpdated bool
}
