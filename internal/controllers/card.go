package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"nfc-store/internal/services"
)

type CardController struct {
	cardService *services.CardService
	logger      *zap.Logger
}

func NewCardController(cardService *services.CardService, logger *zap.Logger) *CardController {
	return &CardController{
		cardService: cardService,
		logger:      logger,
	}
}

// GET /api/card/:slug
func (c *CardController) FindCard(ctx echo.Context) error {
	slug := ctx.Param("slug")

	c.logger.Info("Запрос карточки", zap.String("slug", slug))

	result, err := c.cardService.FindCard(slug)
	if err != nil {
		c.logger.Warn("Карточка не найдена", zap.String("slug", slug), zap.Error(err))
		return ctx.JSON(http.StatusNotFound, map[string]interface{}{
			"ok":    false,
			"error": "Card not found",
		})
	}

	return ctx.JSON(http.StatusOK, result)
}
