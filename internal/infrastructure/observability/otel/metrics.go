package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics メトリクス定義
type Metrics struct {
	// 作成したチャージ数
	ChargeCount metric.Int64Counter

	// 受信したWebhookイベント数
	WebhookEventCount metric.Int64Counter

	// 注文更新の失敗件数
	OrderUpdateFailureCount metric.Int64Counter

	// リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー率
	ErrorCount metric.Int64Counter
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := otel.Meter(meterName)

	chargeCount, err := meter.Int64Counter(
		"charges_total",
		metric.WithDescription("Total number of charges created"),
	)
	if err != nil {
		return nil, err
	}

	webhookEventCount, err := meter.Int64Counter(
		"webhook_events_total",
		metric.WithDescription("Total number of webhook events received"),
	)
	if err != nil {
		return nil, err
	}

	orderUpdateFailureCount, err := meter.Int64Counter(
		"order_update_failures_total",
		metric.WithDescription("Total number of failed order updates"),
	)
	if err != nil {
		return nil, err
	}

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		ChargeCount:             chargeCount,
		WebhookEventCount:       webhookEventCount,
		OrderUpdateFailureCount: orderUpdateFailureCount,
		RequestCount:            requestCount,
		ResponseTime:            responseTime,
		ErrorCount:              errorCount,
	}, nil
}

// RecordCharge チャージ作成を記録
func (m *Metrics) RecordCharge(ctx context.Context, currency string) {
	m.ChargeCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("currency", currency),
		),
	)
}

// RecordWebhookEvent Webhookイベントの受信を記録
func (m *Metrics) RecordWebhookEvent(ctx context.Context, status string, paid bool) {
	m.WebhookEventCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("status", status),
			attribute.Bool("paid", paid),
		),
	)
}

// RecordOrderUpdateFailure 注文更新の失敗を記録
func (m *Metrics) RecordOrderUpdateFailure(ctx context.Context) {
	m.OrderUpdateFailureCount.Add(ctx, 1)
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}
