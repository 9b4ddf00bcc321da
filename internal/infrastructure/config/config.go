package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config アプリケーション全体の設定
type Config struct {
	Server        ServerConfig
	DeUna         DeUnaConfig
	Webhook       WebhookConfig
	WooCommerce   WooCommerceConfig
	HTTPClient    HTTPClientConfig
	OpenTelemetry OpenTelemetryConfig
	Environment   string
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DeUnaConfig DeUna決済プロバイダー設定
type DeUnaConfig struct {
	APIBase     string
	APIKey      string
	MerchantID  string
	CallbackURL string
}

// WebhookConfig Webhook署名検証設定
type WebhookConfig struct {
	Secret           string
	SignatureHeader  string
	RequireSignature bool
}

// WooCommerceConfig WooCommerceストア設定
type WooCommerceConfig struct {
	StoreURL       string
	ConsumerKey    string
	ConsumerSecret string
}

// HTTPClientConfig 外部API呼び出し用HTTPクライアント設定
type HTTPClientConfig struct {
	Timeout time.Duration
}

// OpenTelemetryConfig OpenTelemetry設定
type OpenTelemetryConfig struct {
	Enabled         bool
	ServiceName     string
	ServiceVersion  string
	OTLPEndpoint    string
	OTLPInsecure    bool
	TraceExporter   string // "otlp", "stdout"
	MetricsExporter string // "otlp", "stdout"
}

// Load 設定を読み込む
func Load() (*Config, error) {
	// .envファイルを読み込む（存在しない場合は無視）
	_ = godotenv.Load()

	env := getEnv("ENVIRONMENT", "development")

	cfg := &Config{
		Environment: env,
		Server: ServerConfig{
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		DeUna: DeUnaConfig{
			APIBase:     getEnv("DEUNA_API_BASE", ""),
			APIKey:      getEnv("DEUNA_API_KEY", ""),
			MerchantID:  getEnv("DEUNA_MERCHANT", ""),
			CallbackURL: getEnv("DEUNA_CALLBACK_URL", ""),
		},
		Webhook: WebhookConfig{
			Secret:           getEnv("WEBHOOK_SECRET", ""),
			SignatureHeader:  getEnv("WEBHOOK_SIGNATURE_HEADER", "X-DeUna-Signature"),
			RequireSignature: getEnvAsBool("WEBHOOK_REQUIRE_SIGNATURE", false),
		},
		WooCommerce: WooCommerceConfig{
			StoreURL:       getEnv("WC_STORE_URL", ""),
			ConsumerKey:    getEnv("WC_CK", ""),
			ConsumerSecret: getEnv("WC_CS", ""),
		},
		HTTPClient: HTTPClientConfig{
			Timeout: getEnvAsDuration("HTTP_CLIENT_TIMEOUT", 30*time.Second),
		},
		OpenTelemetry: OpenTelemetryConfig{
			Enabled:         getEnvAsBool("OTEL_ENABLED", true),
			ServiceName:     getEnv("OTEL_SERVICE_NAME", "deuna-backend"),
			ServiceVersion:  getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
			OTLPInsecure:    getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			TraceExporter:   getEnv("OTEL_TRACES_EXPORTER", "otlp"),
			MetricsExporter: getEnv("OTEL_METRICS_EXPORTER", "otlp"),
		},
	}

	// 必須設定の検証
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate 設定の検証（認証情報に安全でないフォールバックは持たせない）
func (c *Config) validate() error {
	if c.DeUna.APIBase == "" {
		return fmt.Errorf("DEUNA_API_BASE is required")
	}
	if c.DeUna.APIKey == "" {
		return fmt.Errorf("DEUNA_API_KEY is required")
	}
	if c.DeUna.MerchantID == "" {
		return fmt.Errorf("DEUNA_MERCHANT is required")
	}
	if c.DeUna.CallbackURL == "" {
		return fmt.Errorf("DEUNA_CALLBACK_URL is required")
	}
	if c.WooCommerce.StoreURL == "" {
		return fmt.Errorf("WC_STORE_URL is required")
	}
	if c.WooCommerce.ConsumerKey == "" {
		return fmt.Errorf("WC_CK is required")
	}
	if c.WooCommerce.ConsumerSecret == "" {
		return fmt.Errorf("WC_CS is required")
	}
	if c.Webhook.RequireSignature && c.Webhook.Secret == "" {
		return fmt.Errorf("WEBHOOK_SECRET is required when WEBHOOK_REQUIRE_SIGNATURE is enabled")
	}
	return nil
}

// PaymentsURL チャージ作成エンドポイントのURLを返す
func (c *DeUnaConfig) PaymentsURL() string {
	return strings.TrimRight(c.APIBase, "/") + "/payments"
}

// OrderReceivedURL 注文確認ページのURLを返す
func (c *WooCommerceConfig) OrderReceivedURL(orderID string) string {
	return fmt.Sprintf("%s/checkout/order-received/%s/?key=deuna", strings.TrimRight(c.StoreURL, "/"), orderID)
}

// OrderUpdateURL 注文更新エンドポイントのURLを返す
func (c *WooCommerceConfig) OrderUpdateURL(orderID string) string {
	return fmt.Sprintf("%s/wp-json/wc/v3/orders/%s", strings.TrimRight(c.StoreURL, "/"), orderID)
}

// getEnv 環境変数を取得（デフォルト値付き）
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt 環境変数を整数として取得
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool 環境変数を真偽値として取得
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration 環境変数を時間として取得
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
