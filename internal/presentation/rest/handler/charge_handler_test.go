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

	chargeapp "github.com/la593ec/deuna-backend/internal/application/charge"
	"github.com/la593ec/deuna-backend/internal/domain/charge"
	"github.com/la593ec/deuna-backend/internal/infrastructure/config"
	otelinfra "github.com/la593ec/deuna-backend/internal/infrastructure/observability/otel"
	"github.com/la593ec/deuna-backend/internal/presentation/rest/middleware"
)

func newChargeHandlerForTest(provider *MockProviderGateway) *ChargeHandler {
	tracer := noop.NewTracerProvider().Tracer("test")
	logger := otelinfra.NewLogger(tracer)
	metrics, _ := otelinfra.NewMetrics("test")

	deunaCfg := &config.DeUnaConfig{
		APIBase:     "https://api.deuna.test",
		APIKey:      "test-key",
		MerchantID:  "merchant-1",
		CallbackURL: "https://store.test/deuna/webhook",
	}
	storeCfg := &config.WooCommerceConfig{
		StoreURL:       "https://store.test",
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
	}

	service := chargeapp.NewChargeApplicationService(provider, deunaCfg, storeCfg, logger, metrics)
	return NewChargeHandler(service)
}

// serveWithErrorHandler エラーハンドリングミドルウェアを通してハンドラーを実行する
func serveWithErrorHandler(t *testing.T, handlerFunc echo.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	tracer := noop.NewTracerProvider().Tracer("test")
	logger := otelinfra.NewLogger(tracer)

	wrapped := middleware.ErrorHandlerMiddleware(logger)(handlerFunc)
	require.NoError(t, wrapped(c))
	return rec
}

func TestChargeHandler_CreateCharge(t *testing.T) {
	t.Run("正常系: チャージ作成成功", func(t *testing.T) {
		paymentID := "pay_123"
		paymentURL := "https://pay.deuna.test/pay_123"
		qr := "qr-payload"

		mockProvider := new(MockProviderGateway)
		mockProvider.On("CreateCharge", mock.Anything, mock.MatchedBy(func(req *charge.ProviderCharge) bool {
			return req.Reference == "ORDER-42" && req.Amount == 25.5
		})).Return(&charge.ProviderResult{
			PaymentID:  &paymentID,
			PaymentURL: &paymentURL,
			QRImage:    &qr,
		}, nil)

		handler := newChargeHandlerForTest(mockProvider)

		req := httptest.NewRequest(http.MethodPost, "/deuna/create-charge",
			strings.NewReader(`{"order_id":"42","amount":25.5}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		rec := serveWithErrorHandler(t, handler.CreateCharge, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp CreateChargeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.Equal(t, "pay_123", *resp.PaymentID)
		assert.Equal(t, "https://pay.deuna.test/pay_123", *resp.PaymentURL)
		assert.Equal(t, "qr-payload", *resp.QR)
		assert.Equal(t, "ORDER-42", resp.Reference)
		mockProvider.AssertExpectations(t)
	})

	t.Run("異常系: 必須フィールド欠落は400でプロバイダーを呼ばない", func(t *testing.T) {
		mockProvider := new(MockProviderGateway)
		handler := newChargeHandlerForTest(mockProvider)

		req := httptest.NewRequest(http.MethodPost, "/deuna/create-charge",
			strings.NewReader(`{"amount":25.5}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		rec := serveWithErrorHandler(t, handler.CreateCharge, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp middleware.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "MISSING_FIELDS", resp.Error)
		mockProvider.AssertNotCalled(t, "CreateCharge", mock.Anything, mock.Anything)
	})

	t.Run("異常系: 解釈できないボディも400のMISSING_FIELDS", func(t *testing.T) {
		mockProvider := new(MockProviderGateway)
		handler := newChargeHandlerForTest(mockProvider)

		req := httptest.NewRequest(http.MethodPost, "/deuna/create-charge",
			strings.NewReader(`not-json`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		rec := serveWithErrorHandler(t, handler.CreateCharge, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp middleware.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "MISSING_FIELDS", resp.Error)
	})

	t.Run("異常系: プロバイダーの拒否は400で生のボディを返す", func(t *testing.T) {
		mockProvider := new(MockProviderGateway)
		mockProvider.On("CreateCharge", mock.Anything, mock.Anything).Return(nil,
			&charge.RejectedError{StatusCode: 422, Body: `{"code":"INVALID_MERCHANT"}`})

		handler := newChargeHandlerForTest(mockProvider)

		req := httptest.NewRequest(http.MethodPost, "/deuna/create-charge",
			strings.NewReader(`{"order_id":"42","amount":25.5}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		rec := serveWithErrorHandler(t, handler.CreateCharge, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp middleware.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "DEUNA_CREATE_FAILED", resp.Error)
		assert.Equal(t, `{"code":"INVALID_MERCHANT"}`, resp.Detail)
	})

	t.Run("異常系: プロバイダーへの接続失敗は500のSERVER_ERROR", func(t *testing.T) {
		mockProvider := new(MockProviderGateway)
		mockProvider.On("CreateCharge", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		handler := newChargeHandlerForTest(mockProvider)

		req := httptest.NewRequest(http.MethodPost, "/deuna/create-charge",
			strings.NewReader(`{"order_id":"42","amount":25.5}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		rec := serveWithErrorHandler(t, handler.CreateCharge, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var resp middleware.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "SERVER_ERROR", resp.Error)
	})
}
