package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"nfc-store/internal/dto"
	"nfc-store/internal/services"
)

type PromoController struct {
	promoService *services.PromoService
	logger       *zap.Logger
}

func NewPromoController(promoService *services.PromoService, logger *zap.Logger) *PromoController {
	return &PromoController{
		promoService: promoService,
		logger:       logger,
	}
}

// POST /api/promo/validate
func (c *PromoController) Validate(ctx echo.Context) error {
	var payload dto.ValidatePromoDTO
	if err := ctx.Bind(&payload); err != nil || payload.Code == "" {
		return ctx.JSON(http.StatusOK, dto.PromoResultDTO{Valid: false})
	}

	result := c.promoService.Validate(ctx.Request().Context(), payload, ctx.RealIP())
	return ctx.JSON(http.StatusOK, result)
}
