package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"nfc-store/internal/dto"
	"nfc-store/internal/services"
	"nfc-store/pkg/api"
	apperrors "nfc-store/pkg/errors"
)

type AdminController struct {
	adminService *services.AdminService
	logger       *zap.Logger
}

func NewAdminController(adminService *services.AdminService, logger *zap.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// POST /api/admin/login
func (c *AdminController) Login(ctx echo.Context) error {
	var payload dto.AdminLoginDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "неверный формат данных", err))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, err.Error(), err))
	}

	token, err := c.adminService.Login(payload)
	if err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusUnauthorized, "неверный логин или пароль", err))
	}

	return api.SuccessOne(ctx, http.StatusOK, "Авторизация успешна", token)
}

// GET /api/admin/orders
func (c *AdminController) GetOrders(ctx echo.Context) error {
	result, err := c.adminService.GetOrders(ctx.Request().Context())
	if err != nil {
		c.logger.Error("Ошибка получения списка заказов", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// GET /api/admin/stats
func (c *AdminController) GetStats(ctx echo.Context) error {
	result, err := c.adminService.GetStats(ctx.Request().Context())
	if err != nil {
		c.logger.Error("Ошибка получения статистики", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// PUT /api/admin/orders/:id
func (c *AdminController) UpdateOrder(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "некорректный ID заказа", err))
	}

	var payload dto.UpdateOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "неверный формат данных", err))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, err.Error(), err))
	}

	if err := c.adminService.UpdateOrder(ctx.Request().Context(), id, payload); err != nil {
		c.logger.Error("Ошибка обновления заказа", zap.Uint64("order_id", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// DELETE /api/admin/orders/:id
func (c *AdminController) DeleteOrder(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "некорректный ID заказа", err))
	}

	if err := c.adminService.DeleteOrder(ctx.Request().Context(), id); err != nil {
		c.logger.Error("Ошибка удаления заказа", zap.Uint64("order_id", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// GET /api/admin/orders/export
func (c *AdminController) ExportOrders(ctx echo.Context) error {
	data, err := c.adminService.ExportOrders(ctx.Request().Context())
	if err != nil {
		c.logger.Error("Ошибка выгрузки заказов", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	fileName := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return ctx.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
