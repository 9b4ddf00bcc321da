package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	chargeapp "github.com/la593ec/deuna-backend/internal/application/charge"
	webhookapp "github.com/la593ec/deuna-backend/internal/application/webhook"
	"github.com/la593ec/deuna-backend/internal/infrastructure/config"
	"github.com/la593ec/deuna-backend/internal/infrastructure/gateway/deuna"
	"github.com/la593ec/deuna-backend/internal/infrastructure/gateway/woocommerce"
	otelinfra "github.com/la593ec/deuna-backend/internal/infrastructure/observability/otel"
	"github.com/la593ec/deuna-backend/internal/presentation/rest"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// OpenTelemetryトレーサーの初期化
	shutdownTracer, err := otelinfra.InitTracer(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			log.Printf("Failed to shutdown tracer: %v", err)
		}
	}()

	// OpenTelemetryメーターの初期化
	shutdownMeter, err := otelinfra.InitMeter(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize meter: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownMeter(ctx); err != nil {
			log.Printf("Failed to shutdown meter: %v", err)
		}
	}()

	// ロガーとメトリクスの作成
	tracer := otelinfra.Tracer(cfg.OpenTelemetry.ServiceName)
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics(cfg.OpenTelemetry.ServiceName)
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	// 外部ゲートウェイの作成
	deunaClient := deuna.NewClient(&cfg.DeUna, cfg.HTTPClient.Timeout)
	wcClient := woocommerce.NewClient(&cfg.WooCommerce, cfg.HTTPClient.Timeout)

	// アプリケーションサービスの作成
	chargeService := chargeapp.NewChargeApplicationService(deunaClient, &cfg.DeUna, &cfg.WooCommerce, logger, metrics)
	webhookService := webhookapp.NewWebhookApplicationService(wcClient, &cfg.Webhook, logger, metrics)

	// ルーターの作成
	router, err := rest.NewRouter(cfg, logger, metrics, chargeService, webhookService)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	// サーバーの起動
	go func() {
		address := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info(context.Background(), "Starting server", map[string]interface{}{
			"address":     address,
			"environment": cfg.Environment,
		})
		if err := router.Start(address); err != nil {
			logger.Error(context.Background(), "Server stopped", err, nil)
		}
	}()

	// シグナルを待ってグレースフルシャットダウン
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(context.Background(), "Shutting down server", nil)
	if err := router.Shutdown(); err != nil {
		logger.Error(context.Background(), "Failed to shutdown server", err, nil)
	}
}
