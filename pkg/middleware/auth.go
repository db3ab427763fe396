// Файл: pkg/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"nfc-store/pkg/api"
	apperrors "nfc-store/pkg/errors"
	"nfc-store/pkg/service"
)

// AuthMiddleware защищает админскую часть API по Bearer-токену.
type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtService service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return api.ErrorResponse(c, apperrors.NewHttpError(http.StatusUnauthorized, "требуется авторизация", apperrors.ErrEmptyAuthHeader))
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return api.ErrorResponse(c, apperrors.NewHttpError(http.StatusUnauthorized, "неверный формат заголовка авторизации", nil))
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("Отклонён админский запрос с невалидным токеном",
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
			)
			return api.ErrorResponse(c, apperrors.NewHttpError(http.StatusUnauthorized, "недопустимый токен", err))
		}

		c.Set("adminRole", claims.Role)
		return next(c)
	}
}
