package handler

import (
	"net/http"

	"github.com/la593ec/deuna-backend/internal/domain/charge"

	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"
)

// qrImageSize QRコード画像の一辺のピクセル数
const qrImageSize = 256

// QRHandler QRコード描画ハンドラー
type QRHandler struct{}

// NewQRHandler 新しいQRHandlerを作成
func NewQRHandler() *QRHandler {
	return &QRHandler{}
}

// RenderReference 注文参照をQRコードPNGとして描画
// @Summary 注文参照のQRコードを描画
// @Description ORDER-{order_id}形式の参照をPNG画像として返します
// @Tags deuna
// @Produce png
// @Param order_id path string true "注文ID"
// @Success 200 {file} binary "QRコードPNG"
// @Failure 400 {object} middleware.ErrorResponse "注文IDの欠落"
// @Router /deuna/qr/{order_id} [get]
func (h *QRHandler) RenderReference(c echo.Context) error {
	orderID := c.Param("order_id")
	if orderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "order_id is required")
	}

	png, err := qrcode.Encode(charge.ReferencePrefix+orderID, qrcode.Medium, qrImageSize)
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
