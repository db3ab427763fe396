package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"nfc-store/internal/dto"
	"nfc-store/internal/repositories"
)

type promoCode struct {
	discount    int
	kind        string // percent | fixed
	description string
}

// Промокоды пока статические; при росте уедут в БД.
var promoCodes = map[string]promoCode{
	"WELCOME10": {discount: 10, kind: "percent", description: "Скидка 10%"},
	"SAVE200":   {discount: 200, kind: "fixed", description: "Скидка 200₽"},
	"FIRST":     {discount: 15, kind: "percent", description: "Скидка 15% на первый заказ"},
	"NFC2025":   {discount: 100, kind: "fixed", description: "Скидка 100₽"},
}

type PromoService struct {
	cache          repositories.CacheRepositoryInterface
	maxAttempts    int64
	attemptsWindow time.Duration
	logger         *zap.Logger
}

func NewPromoService(
	cache repositories.CacheRepositoryInterface,
	maxAttempts int64,
	attemptsWindow time.Duration,
	logger *zap.Logger,
) *PromoService {
	return &PromoService{
		cache:          cache,
		maxAttempts:    maxAttempts,
		attemptsWindow: attemptsWindow,
		logger:         logger,
	}
}

// Validate проверяет промокод. Перебор кодов ограничен по IP;
// при превышении лимита отвечаем как на невалидный код, чтобы
// не подсказывать переборщику, что он упёрся в лимит.
func (s *PromoService) Validate(ctx context.Context, payload dto.ValidatePromoDTO, clientIP string) *dto.PromoResultDTO {
	if !s.allowAttempt(ctx, clientIP) {
		s.logger.Warn("Превышен лимит проверок промокодов", zap.String("ip", clientIP))
		return &dto.PromoResultDTO{Valid: false}
	}

	code := strings.ToUpper(strings.TrimSpace(payload.Code))
	promo, ok := promoCodes[code]
	if !ok {
		s.logger.Debug("Промокод не найден", zap.String("code", code))
		return &dto.PromoResultDTO{Valid: false}
	}

	s.logger.Info("Промокод действителен",
		zap.String("code", code),
		zap.Int("discount", promo.discount),
		zap.String("type", promo.kind),
	)

	return &dto.PromoResultDTO{
		Valid:       true,
		Discount:    promo.discount,
		Type:        promo.kind,
		Description: promo.description,
	}
}

func (s *PromoService) allowAttempt(ctx context.Context, clientIP string) bool {
	if clientIP == "" {
		return true
	}

	key := fmt.Sprintf("promo:attempts:%s", clientIP)

	attempts, err := s.cache.Incr(ctx, key)
	if err != nil {
		// Redis лёг — промокоды важнее лимитера
		s.logger.Warn("Лимитер промокодов недоступен", zap.Error(err))
		return true
	}
	if attempts == 1 {
		if _, err := s.cache.Expire(ctx, key, s.attemptsWindow); err != nil {
			s.logger.Warn("Не удалось установить TTL лимитера", zap.Error(err))
		}
	}

	return attempts <= s.maxAttempts
}
