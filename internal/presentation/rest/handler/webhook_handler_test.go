package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	webhookapp "github.com/la593ec/deuna-backend/internal/application/webhook"
	"github.com/la593ec/deuna-backend/internal/domain/event"
	"github.com/la593ec/deuna-backend/internal/infrastructure/config"
	otelinfra "github.com/la593ec/deuna-backend/internal/infrastructure/observability/otel"
	"github.com/la593ec/deuna-backend/internal/presentation/rest/middleware"
)

func newWebhookHandlerForTest(orders *MockOrderGateway, webhookCfg *config.WebhookConfig) *WebhookHandler {
	tracer := noop.NewTracerProvider().Tracer("test")
	logger := otelinfra.NewLogger(tracer)
	metrics, _ := otelinfra.NewMetrics("test")

	service := webhookapp.NewWebhookApplicationService(orders, webhookCfg, logger, metrics)
	return NewWebhookHandler(service, webhookCfg)
}

func TestWebhookHandler_Receive(t *testing.T) {
	t.Run("正常系: 支払い完了イベントで注文が更新され200を返す", func(t *testing.T) {
		mockOrders := new(MockOrderGateway)
		mockOrders.On("MarkOrderPaid", mock.Anything, "42").Return(nil)

		handler := newWebhookHandlerForTest(mockOrders, &config.WebhookConfig{
			SignatureHeader: "X-DeUna-Signature",
		})

		req := httptest.NewRequest(http.MethodPost, "/deuna/webhook",
			strings.NewReader(`{"reference":"ORDER-42","status":"paid"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		rec := serveWithErrorHandler(t, handler.Receive, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp WebhookResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		mockOrders.AssertExpectations(t)
	})

	t.Run("正常系: 注文更新の失敗でも200を返す", func(t *testing.T) {
		mockOrders := new(MockOrderGateway)
		mockOrders.On("MarkOrderPaid", mock.Anything, "42").Return(assert.AnError)

		handler := newWebhookHandlerForTest(mockOrders, &config.WebhookConfig{
			SignatureHeader: "X-DeUna-Signature",
		})

		req := httptest.NewRequest(http.MethodPost, "/deuna/webhook",
			strings.NewReader(`{"reference":"ORDER-42","status":"paid"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		rec := serveWithErrorHandler(t, handler.Receive, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp WebhookResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
	})

	t.Run("正常系: 空のボディでも200を返す", func(t *testing.T) {
		mockOrders := new(MockOrderGateway)

		handler := newWebhookHandlerForTest(mockOrders, &config.WebhookConfig{
			SignatureHeader: "X-DeUna-Signature",
		})

		req := httptest.NewRequest(http.MethodPost, "/deuna/webhook", nil)

		rec := serveWithErrorHandler(t, handler.Receive, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		mockOrders.AssertNotCalled(t, "MarkOrderPaid", mock.Anything, mock.Anything)
	})

	t.Run("正常系: 正しい署名ヘッダーで処理される", func(t *testing.T) {
		secret := "webhook-secret"
		body := `{"reference":"ORDER-42","status":"paid"}`

		mockOrders := new(MockOrderGateway)
		mockOrders.On("MarkOrderPaid", mock.Anything, "42").Return(nil)

		handler := newWebhookHandlerForTest(mockOrders, &config.WebhookConfig{
			Secret:          secret,
			SignatureHeader: "X-DeUna-Signature",
		})

		req := httptest.NewRequest(http.MethodPost, "/deuna/webhook", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-DeUna-Signature", event.Sign(secret, []byte(body)))

		rec := serveWithErrorHandler(t, handler.Receive, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		mockOrders.AssertExpectations(t)
	})

	t.Run("異常系: 署名不一致は401のINVALID_SIGNATURE", func(t *testing.T) {
		mockOrders := new(MockOrderGateway)

		handler := newWebhookHandlerForTest(mockOrders, &config.WebhookConfig{
			Secret:          "webhook-secret",
			SignatureHeader: "X-DeUna-Signature",
		})

		req := httptest.NewRequest(http.MethodPost, "/deuna/webhook",
			strings.NewReader(`{"reference":"ORDER-42","status":"paid"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-DeUna-Signature", "deadbeef")

		rec := serveWithErrorHandler(t, handler.Receive, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp middleware.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_SIGNATURE", resp.Error)
		mockOrders.AssertNotCalled(t, "MarkOrderPaid", mock.Anything, mock.Anything)
	})

	t.Run("異常系: 壊れたイベントJSONは500のWEBHOOK_ERROR", func(t *testing.T) {
		mockOrders := new(MockOrderGateway)

		handler := newWebhookHandlerForTest(mockOrders, &config.WebhookConfig{
			SignatureHeader: "X-DeUna-Signature",
		})

		req := httptest.NewRequest(http.MethodPost, "/deuna/webhook",
			strings.NewReader(`{"reference":`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		rec := serveWithErrorHandler(t, handler.Receive, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var resp middleware.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "WEBHOOK_ERROR", resp.Error)
	})
}
