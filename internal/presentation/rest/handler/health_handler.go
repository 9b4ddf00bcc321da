package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler ヘルスチェックハンドラー
type HealthHandler struct {
	serviceName string
}

// NewHealthHandler 新しいHealthHandlerを作成
func NewHealthHandler(serviceName string) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
	}
}

// Root ヘルスチェックハンドラー
// @Summary ヘルスチェック
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router / [get]
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		OK:      true,
		Service: h.serviceName,
	})
}

// HealthResponse ヘルスチェックレスポンス
type HealthResponse struct {
	OK      bool   `json:"ok" example:"true"`
	Service string `json:"service" example:"deuna-backend"`
}
