package charge

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	chargedomain "github.com/la593ec/deuna-backend/internal/domain/charge"
	"github.com/la593ec/deuna-backend/internal/infrastructure/config"
	otelinfra "github.com/la593ec/deuna-backend/internal/infrastructure/observability/otel"
)

// ChargeApplicationService チャージ作成アプリケーションサービス
type ChargeApplicationService struct {
	provider chargedomain.ProviderGateway
	deunaCfg *config.DeUnaConfig
	storeCfg *config.WooCommerceConfig
	logger   *otelinfra.Logger
	metrics  *otelinfra.Metrics
	tracer   trace.Tracer
}

// NewChargeApplicationService 新しいChargeApplicationServiceを作成
func NewChargeApplicationService(
	provider chargedomain.ProviderGateway,
	deunaCfg *config.DeUnaConfig,
	storeCfg *config.WooCommerceConfig,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *ChargeApplicationService {
	return &ChargeApplicationService{
		provider: provider,
		deunaCfg: deunaCfg,
		storeCfg: storeCfg,
		logger:   logger,
		metrics:  metrics,
		tracer:   otel.Tracer("charge-service"),
	}
}

// CreateCharge チャージを作成し、正規化したレスポンスを返す
func (s *ChargeApplicationService) CreateCharge(ctx context.Context, req *CreateChargeRequest) (*CreateChargeResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ChargeApplicationService.CreateCharge")
	defer span.End()

	span.SetAttributes(
		attribute.String("order_id", req.OrderID),
		attribute.Float64("amount", req.Amount),
	)

	// バリデーション（必須フィールドが欠けている場合は外部呼び出しを行わない）
	ch, err := chargedomain.NewCharge(req.OrderID, req.Amount, req.Currency, req.CustomerEmail)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Creating charge", map[string]interface{}{
		"order_id":  ch.OrderID(),
		"reference": ch.Reference(),
		"amount":    ch.Amount(),
		"currency":  ch.Currency(),
	})

	result, err := s.provider.CreateCharge(ctx, &chargedomain.ProviderCharge{
		MerchantID:    s.deunaCfg.MerchantID,
		Amount:        ch.Amount(),
		Currency:      ch.Currency(),
		Reference:     ch.Reference(),
		CustomerEmail: ch.CustomerEmail(),
		CallbackURL:   s.deunaCfg.CallbackURL,
		ReturnURL:     s.storeCfg.OrderReceivedURL(ch.OrderID()),
		Channel:       chargedomain.ChannelQR,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to create charge", err, map[string]interface{}{
			"order_id":  ch.OrderID(),
			"reference": ch.Reference(),
		})
		s.metrics.RecordError(ctx, "charge_failed")
		return nil, err
	}

	s.metrics.RecordCharge(ctx, ch.Currency())
	s.logger.Info(ctx, "Charge created", map[string]interface{}{
		"order_id":  ch.OrderID(),
		"reference": ch.Reference(),
	})

	return &CreateChargeResponse{
		OK:         true,
		PaymentID:  result.PaymentID,
		PaymentURL: result.PaymentURL,
		QR:         result.QRImage,
		Reference:  ch.Reference(),
	}, nil
}
