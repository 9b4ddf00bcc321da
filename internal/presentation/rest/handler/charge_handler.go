package handler

import (
	"net/http"

	chargeapp "github.com/la593ec/deuna-backend/internal/application/charge"

	"github.com/labstack/echo/v4"
)

// ChargeHandler チャージ作成ハンドラー
type ChargeHandler struct {
	chargeService *chargeapp.ChargeApplicationService
}

// NewChargeHandler 新しいChargeHandlerを作成
func NewChargeHandler(chargeService *chargeapp.ChargeApplicationService) *ChargeHandler {
	return &ChargeHandler{
		chargeService: chargeService,
	}
}

// CreateCharge チャージ作成ハンドラー
// @Summary チャージを作成
// @Description DeUnaにチャージを作成し、決済URLとQRペイロードを返します
// @Tags deuna
// @Accept json
// @Produce json
// @Param request body CreateChargeRequest true "チャージ作成リクエスト"
// @Success 200 {object} CreateChargeResponse "チャージ作成成功"
// @Failure 400 {object} middleware.ErrorResponse "必須フィールド欠落またはプロバイダーの拒否"
// @Failure 500 {object} middleware.ErrorResponse "サーバーエラー"
// @Router /deuna/create-charge [post]
func (h *ChargeHandler) CreateCharge(c echo.Context) error {
	var reqBody CreateChargeRequest
	if err := c.Bind(&reqBody); err != nil {
		// 解釈できないボディは空のリクエストとして扱い、必須フィールド検証で弾く
		reqBody = CreateChargeRequest{}
	}

	resp, err := h.chargeService.CreateCharge(c.Request().Context(), &chargeapp.CreateChargeRequest{
		OrderID:       reqBody.OrderID,
		Amount:        reqBody.Amount,
		Currency:      reqBody.Currency,
		CustomerEmail: reqBody.CustomerEmail,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CreateChargeResponse{
		OK:         resp.OK,
		PaymentID:  resp.PaymentID,
		PaymentURL: resp.PaymentURL,
		QR:         resp.QR,
		Reference:  resp.Reference,
	})
}
