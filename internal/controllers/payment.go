package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"nfc-store/internal/dto"
	"nfc-store/internal/integrations/yookassa"
	"nfc-store/internal/services"
	"nfc-store/pkg/api"
	apperrors "nfc-store/pkg/errors"
)

type PaymentController struct {
	paymentService *services.PaymentService
	logger         *zap.Logger
}

func NewPaymentController(paymentService *services.PaymentService, logger *zap.Logger) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		logger:         logger,
	}
}

// POST /api/create-payment
func (c *PaymentController) CreatePayment(ctx echo.Context) error {
	var payload dto.CreatePaymentDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "неверный формат данных", err))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, err.Error(), err))
	}

	result, err := c.paymentService.CreatePayment(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("Ошибка создания платежа", zap.Error(err))
		if errors.Is(err, apperrors.ErrPaymentNotConfigured) {
			return ctx.JSON(http.StatusInternalServerError, map[string]interface{}{
				"ok":    false,
				"error": "YooKassa not configured",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, map[string]bool{"ok": false})
	}

	return ctx.JSON(http.StatusOK, result)
}

// GET /api/payment-status/:paymentId
func (c *PaymentController) PaymentStatus(ctx echo.Context) error {
	result, err := c.paymentService.GetStatus(ctx.Request().Context(), ctx.Param("paymentId"))
	if err != nil {
		c.logger.Error("Ошибка проверки статуса платежа", zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, map[string]bool{"ok": false})
	}

	return ctx.JSON(http.StatusOK, result)
}

// POST /api/yookassa-webhook
//
// Шлюз ретраит всё, что не 200, поэтому на битые уведомления
// тоже отвечаем успехом.
func (c *PaymentController) Webhook(ctx echo.Context) error {
	var notification yookassa.WebhookNotification
	if err := ctx.Bind(&notification); err != nil {
		c.logger.Warn("Невалидное тело вебхука", zap.Error(err))
		return ctx.String(http.StatusOK, "OK")
	}

	c.logger.Info("Получено уведомление от ЮKassa", zap.String("event", notification.Event))

	c.paymentService.HandleWebhook(ctx.Request().Context(), notification)
	return ctx.String(http.StatusOK, "OK")
}
