package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"nfc-store/internal/dto"
	"nfc-store/internal/services"
	"nfc-store/pkg/api"
	apperrors "nfc-store/pkg/errors"
)

type OrderController struct {
	orderService *services.OrderService
	logger       *zap.Logger
}

func NewOrderController(orderService *services.OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{
		orderService: orderService,
		logger:       logger,
	}
}

// POST /api/order
func (c *OrderController) CreateOrder(ctx echo.Context) error {
	var payload dto.CreateOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "неверный формат данных", err))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, err.Error(), err))
	}

	result, err := c.orderService.CreateOrder(ctx.Request().Context(), payload, ctx.RealIP())
	if err != nil {
		c.logger.Error("Ошибка при оформлении заказа", zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, map[string]bool{"ok": false})
	}

	return ctx.JSON(http.StatusOK, result)
}
