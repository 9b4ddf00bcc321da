package event

import "errors"

var (
	// ErrInvalidSignature 署名が一致しないエラー
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrMalformedEvent イベントを解析できないエラー
	ErrMalformedEvent = errors.New("malformed payment event")
)
