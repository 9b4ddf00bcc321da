package webhook

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/la593ec/deuna-backend/internal/domain/event"
	"github.com/la593ec/deuna-backend/internal/infrastructure/config"
	otelinfra "github.com/la593ec/deuna-backend/internal/infrastructure/observability/otel"
)

// WebhookApplicationService Webhookイベント処理アプリケーションサービス
type WebhookApplicationService struct {
	orders     event.OrderGateway
	webhookCfg *config.WebhookConfig
	logger     *otelinfra.Logger
	metrics    *otelinfra.Metrics
	tracer     trace.Tracer
}

// NewWebhookApplicationService 新しいWebhookApplicationServiceを作成
func NewWebhookApplicationService(
	orders event.OrderGateway,
	webhookCfg *config.WebhookConfig,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *WebhookApplicationService {
	return &WebhookApplicationService{
		orders:     orders,
		webhookCfg: webhookCfg,
		logger:     logger,
		metrics:    metrics,
		tracer:     otel.Tracer("webhook-service"),
	}
}

// HandleEvent 決済イベントを処理する
// 注文更新の失敗はログとメトリクスに残すのみで、プロバイダーへの応答には影響させない
func (s *WebhookApplicationService) HandleEvent(ctx context.Context, req *HandleEventRequest) (*HandleEventResponse, error) {
	ctx, span := s.tracer.Start(ctx, "WebhookApplicationService.HandleEvent")
	defer span.End()

	// 署名検証（失敗した場合は後続処理を行わない）
	if err := s.verifySignature(req.RawBody, req.Signature); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Warn(ctx, "Webhook signature verification failed", nil)
		return nil, err
	}

	ev, err := event.Parse(req.RawBody)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to parse payment event", err, nil)
		s.metrics.RecordError(ctx, "webhook_parse_failed")
		return nil, err
	}

	span.SetAttributes(
		attribute.String("reference", ev.Reference()),
		attribute.String("status", ev.Status()),
	)

	s.logger.Info(ctx, "Payment event received", map[string]interface{}{
		"reference": ev.Reference(),
		"status":    ev.Status(),
		"paid":      ev.IsPaid(),
	})

	s.metrics.RecordWebhookEvent(ctx, ev.Status(), ev.IsPaid())

	resp := &HandleEventResponse{OK: true}

	orderID := ev.OrderID()
	if orderID != "" && ev.IsPaid() {
		// 注文更新は1回だけ試行し、失敗してもリトライしない
		if err := s.orders.MarkOrderPaid(ctx, orderID); err != nil {
			span.RecordError(err)
			s.logger.Error(ctx, "Failed to update order", err, map[string]interface{}{
				"order_id":  orderID,
				"reference": ev.Reference(),
			})
			s.metrics.RecordOrderUpdateFailure(ctx)
		} else {
			resp.OrderUpdated = true
			s.logger.Info(ctx, "Order marked as paid", map[string]interface{}{
				"order_id": orderID,
			})
		}
	}

	return resp, nil
}

// verifySignature 設定と署名ヘッダーの有無に応じて署名を検証する
// シークレットまたはヘッダーがない場合は検証をスキップするが、
// RequireSignatureが有効な場合はどちらが欠けても拒否する
func (s *WebhookApplicationService) verifySignature(body []byte, signature string) error {
	if s.webhookCfg.RequireSignature {
		if s.webhookCfg.Secret == "" || signature == "" {
			return event.ErrInvalidSignature
		}
	}

	if s.webhookCfg.Secret == "" || signature == "" {
		return nil
	}

	return event.VerifySignature(s.webhookCfg.Secret, body, signature)
}
