package handler

import (
	"fmt"
	"io"
	"net/http"

	webhookapp "github.com/la593ec/deuna-backend/internal/application/webhook"
	"github.com/la593ec/deuna-backend/internal/domain/event"
	"github.com/la593ec/deuna-backend/internal/infrastructure/config"

	"github.com/labstack/echo/v4"
)

// WebhookHandler 決済Webhookハンドラー
type WebhookHandler struct {
	webhookService  *webhookapp.WebhookApplicationService
	signatureHeader string
}

// NewWebhookHandler 新しいWebhookHandlerを作成
func NewWebhookHandler(webhookService *webhookapp.WebhookApplicationService, webhookCfg *config.WebhookConfig) *WebhookHandler {
	return &WebhookHandler{
		webhookService:  webhookService,
		signatureHeader: webhookCfg.SignatureHeader,
	}
}

// Receive 決済イベント受信ハンドラー
// @Summary 決済Webhookを受信
// @Description DeUnaからの決済イベントを受信し、支払い完了ならWooCommerceの注文を更新します
// @Tags deuna
// @Accept json
// @Produce json
// @Success 200 {object} WebhookResponse "受信確認"
// @Failure 401 {object} middleware.ErrorResponse "署名不一致"
// @Failure 405 {object} middleware.ErrorResponse "POST以外のメソッド"
// @Failure 500 {object} middleware.ErrorResponse "イベント処理エラー"
// @Router /deuna/webhook [post]
func (h *WebhookHandler) Receive(c echo.Context) error {
	// 署名検証のために生のボディを読む
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fmt.Errorf("%w: %v", event.ErrMalformedEvent, err)
	}

	resp, err := h.webhookService.HandleEvent(c.Request().Context(), &webhookapp.HandleEventRequest{
		RawBody:   raw,
		Signature: c.Request().Header.Get(h.signatureHeader),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, WebhookResponse{OK: resp.OK})
}
