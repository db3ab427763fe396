package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"nfc-store/internal/dto"
	"nfc-store/internal/services"
	"nfc-store/pkg/api"
	apperrors "nfc-store/pkg/errors"
)

type DeliveryController struct {
	deliveryService *services.DeliveryService
	logger          *zap.Logger
}

func NewDeliveryController(deliveryService *services.DeliveryService, logger *zap.Logger) *DeliveryController {
	return &DeliveryController{
		deliveryService: deliveryService,
		logger:          logger,
	}
}

// GET /api/delivery/offices/:postalCode
func (c *DeliveryController) FindOffices(ctx echo.Context) error {
	// индекс не валидируем: провайдеры умеют и неполные запросы
	payload := dto.FindOfficesDTO{
		PostalCode: ctx.Param("postalCode"),
		Latitude:   parseCoordParam(ctx.QueryParam("latitude")),
		Longitude:  parseCoordParam(ctx.QueryParam("longitude")),
	}

	c.logger.Info("Поиск отделений", zap.String("postal_code", payload.PostalCode))

	result := c.deliveryService.FindOffices(ctx.Request().Context(), payload)
	return ctx.JSON(http.StatusOK, result)
}

// GET /api/delivery/offices-by-address
func (c *DeliveryController) FindOfficesByAddress(ctx echo.Context) error {
	payload := dto.FindOfficesDTO{
		Address:   ctx.QueryParam("address"),
		Latitude:  parseCoordParam(ctx.QueryParam("latitude")),
		Longitude: parseCoordParam(ctx.QueryParam("longitude")),
	}

	c.logger.Info("Поиск отделений по адресу", zap.String("address", payload.Address))

	result := c.deliveryService.FindOfficesByAddress(ctx.Request().Context(), payload)
	return ctx.JSON(http.StatusOK, result)
}

// GET /api/delivery/offices/nearby
func (c *DeliveryController) NearbyOffices(ctx echo.Context) error {
	var payload dto.NearbyOfficesDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "неверный формат данных", err))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "нужны координаты", err))
	}

	result := c.deliveryService.NearbyOffices(ctx.Request().Context(), payload)
	return ctx.JSON(http.StatusOK, result)
}

// POST /api/delivery/calculate
func (c *DeliveryController) Calculate(ctx echo.Context) error {
	var payload dto.CalculateDeliveryDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "неверный формат данных", err))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, err.Error(), err))
	}

	quote := c.deliveryService.Quote(ctx.Request().Context(), payload)
	return ctx.JSON(http.StatusOK, quote)
}

// GET /api/delivery/methods
func (c *DeliveryController) Methods(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"ok":      true,
		"methods": c.deliveryService.Methods(),
	})
}

// GET /api/delivery/address-suggestions
func (c *DeliveryController) AddressSuggestions(ctx echo.Context) error {
	payload := dto.SuggestAddressDTO{
		Query: ctx.QueryParam("query"),
	}
	if count := ctx.QueryParam("count"); count != "" {
		if parsed, err := strconv.Atoi(count); err == nil {
			payload.Count = parsed
		}
	}

	result := c.deliveryService.SuggestAddresses(ctx.Request().Context(), payload)
	return ctx.JSON(http.StatusOK, result)
}

func parseCoordParam(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
