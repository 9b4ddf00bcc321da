package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/la593ec/deuna-backend/internal/domain/charge"
	"github.com/la593ec/deuna-backend/internal/domain/event"
	otelinfra "github.com/la593ec/deuna-backend/internal/infrastructure/observability/otel"
)

// ErrorResponse エラーレスポンス
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// ErrorHandlerMiddleware エラーハンドリングミドルウェア
func ErrorHandlerMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			// エラーハンドリング
			return handleError(c, err, logger)
		}
	}
}

// handleError エラーを処理して適切なHTTPレスポンスを返す
func handleError(c echo.Context, err error, logger *otelinfra.Logger) error {
	ctx := c.Request().Context()

	// ドメインエラーの判定と処理
	if errors.Is(err, charge.ErrMissingFields) {
		logger.Warn(ctx, "Missing required fields", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:  "MISSING_FIELDS",
			Detail: "order_id and amount are required",
		})
	}

	var rejected *charge.RejectedError
	if errors.As(err, &rejected) {
		logger.Warn(ctx, "Charge creation rejected by provider", map[string]interface{}{
			"status_code": rejected.StatusCode,
			"body":        rejected.Body,
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:  "DEUNA_CREATE_FAILED",
			Detail: rejected.Body,
		})
	}

	if errors.Is(err, event.ErrInvalidSignature) {
		logger.Warn(ctx, "Invalid webhook signature", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "INVALID_SIGNATURE",
		})
	}

	if errors.Is(err, event.ErrMalformedEvent) {
		logger.Error(ctx, "Failed to process webhook event", err, map[string]interface{}{
			"path": c.Request().URL.Path,
		})
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "WEBHOOK_ERROR",
		})
	}

	// EchoのHTTPエラー（405など、ルーティング段階のエラーを含む）
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		logger.Warn(ctx, "HTTP error", map[string]interface{}{
			"status_code": httpErr.Code,
			"message":     httpErr.Message,
		})
		detail := ""
		if msg, ok := httpErr.Message.(string); ok {
			detail = msg
		}
		return c.JSON(httpErr.Code, ErrorResponse{
			Error:  errorCodeForStatus(httpErr.Code),
			Detail: detail,
		})
	}

	// 予期しないエラー
	logger.Error(ctx, "Internal server error", err, map[string]interface{}{
		"path": c.Request().URL.Path,
	})
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "SERVER_ERROR",
	})
}

// errorCodeForStatus HTTPステータスコードから機械可読なエラーコードを導出する
func errorCodeForStatus(code int) string {
	switch code {
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusInternalServerError:
		return "SERVER_ERROR"
	default:
		return strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))
	}
}
