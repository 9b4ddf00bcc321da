package rest

import (
	chargeapp "github.com/la593ec/deuna-backend/internal/application/charge"
	webhookapp "github.com/la593ec/deuna-backend/internal/application/webhook"
	"github.com/la593ec/deuna-backend/internal/infrastructure/config"
	otelinfra "github.com/la593ec/deuna-backend/internal/infrastructure/observability/otel"
	"github.com/la593ec/deuna-backend/internal/presentation/rest/handler"
	restmiddleware "github.com/la593ec/deuna-backend/internal/presentation/rest/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// serviceName ヘルスチェックで返すサービス名
const serviceName = "deuna-backend"

// Router REST APIルーター
type Router struct {
	echo           *echo.Echo
	chargeHandler  *handler.ChargeHandler
	webhookHandler *handler.WebhookHandler
	healthHandler  *handler.HealthHandler
	qrHandler      *handler.QRHandler
}

// NewRouter 新しいRouterを作成
func NewRouter(
	cfg *config.Config,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	chargeService *chargeapp.ChargeApplicationService,
	webhookService *webhookapp.WebhookApplicationService,
) (*Router, error) {
	e := echo.New()

	// Echoのデフォルトエラーハンドラーを無効化（カスタムエラーハンドラーを使用）
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		// エラーハンドリングミドルウェアで処理される
	}

	// ミドルウェアの設定
	setupMiddleware(e, logger, metrics)

	// ハンドラーの作成
	chargeHandler := handler.NewChargeHandler(chargeService)
	webhookHandler := handler.NewWebhookHandler(webhookService, &cfg.Webhook)
	healthHandler := handler.NewHealthHandler(serviceName)
	qrHandler := handler.NewQRHandler()

	// ルーティングの設定
	setupRoutes(e, chargeHandler, webhookHandler, healthHandler, qrHandler)

	// Swagger UI / ReDoc統合
	SetupSwagger(e)

	return &Router{
		echo:           e,
		chargeHandler:  chargeHandler,
		webhookHandler: webhookHandler,
		healthHandler:  healthHandler,
		qrHandler:      qrHandler,
	}, nil
}

// setupMiddleware ミドルウェアを設定
func setupMiddleware(e *echo.Echo, logger *otelinfra.Logger, metrics *otelinfra.Metrics) {
	// リカバリーミドルウェア
	e.Use(middleware.Recover())

	// CORS設定
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"}, // 本番環境では適切に設定
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-DeUna-Signature"},
	}))

	// リクエストIDの設定
	e.Use(middleware.RequestID())

	// セキュリティヘッダー
	e.Use(restmiddleware.SecurityHeadersMiddleware())

	// トレーシングミドルウェア
	e.Use(restmiddleware.TracingMiddleware())

	// ログミドルウェア
	e.Use(restmiddleware.LoggingMiddleware(logger))

	// メトリクスミドルウェア
	e.Use(restmiddleware.MetricsMiddleware(metrics))

	// エラーハンドリングミドルウェア
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
}

// setupRoutes ルーティングを設定
func setupRoutes(
	e *echo.Echo,
	chargeHandler *handler.ChargeHandler,
	webhookHandler *handler.WebhookHandler,
	healthHandler *handler.HealthHandler,
	qrHandler *handler.QRHandler,
) {
	// ヘルスチェックエンドポイント
	e.GET("/", healthHandler.Root)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// DeUna関連エンドポイント
	deuna := e.Group("/deuna")
	deuna.POST("/create-charge", chargeHandler.CreateCharge)
	deuna.POST("/webhook", webhookHandler.Receive)
	deuna.GET("/qr/:order_id", qrHandler.RenderReference)
}

// Start サーバーを起動
func (r *Router) Start(address string) error {
	return r.echo.Start(address)
}

// Shutdown サーバーをシャットダウン
func (r *Router) Shutdown() error {
	return r.echo.Close()
}
