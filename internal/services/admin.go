package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"nfc-store/internal/dto"
	"nfc-store/internal/entities"
	"nfc-store/internal/repositories"
	apperrors "nfc-store/pkg/errors"
	"nfc-store/pkg/service"
	"nfc-store/pkg/utils"
)

const adminLogin = "admin"

type AdminService struct {
	orderRepository repositories.OrderRepositoryInterface
	jwtService      service.JWTService
	passwordHash    string
	logger          *zap.Logger
}

func NewAdminService(
	orderRepository repositories.OrderRepositoryInterface,
	jwtService service.JWTService,
	passwordHash string,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		orderRepository: orderRepository,
		jwtService:      jwtService,
		passwordHash:    passwordHash,
		logger:          logger,
	}
}

func (s *AdminService) Login(payload dto.AdminLoginDTO) (*dto.TokenDTO, error) {
	if s.passwordHash == "" {
		s.logger.Warn("Попытка входа при выключенной админке")
		return nil, apperrors.ErrInvalidCredentials
	}
	if payload.Login != adminLogin {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(s.passwordHash, payload.Password); err != nil {
		s.logger.Warn("Неверный пароль администратора")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токена: %w", err)
	}

	return &dto.TokenDTO{Token: token}, nil
}

func (s *AdminService) GetOrders(ctx context.Context) (*dto.OrderListDTO, error) {
	orders, err := s.orderRepository.GetOrders(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Запрошен список заказов", zap.Int("count", len(orders)))
	return &dto.OrderListDTO{OK: true, Orders: orders}, nil
}

func (s *AdminService) GetStats(ctx context.Context) (*dto.StatsResponseDTO, error) {
	stats, err := s.orderRepository.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Статистика заказов",
		zap.Uint64("total", stats.Total),
		zap.Uint64("paid", stats.Paid),
	)
	return &dto.StatsResponseDTO{OK: true, Stats: *stats}, nil
}

func (s *AdminService) UpdateOrder(ctx context.Context, id uint64, payload dto.UpdateOrderDTO) error {
	if err := s.orderRepository.UpdateOrder(ctx, id, payload); err != nil {
		return err
	}
	s.logger.Info("Заказ обновлён", zap.Uint64("order_id", id))
	return nil
}

func (s *AdminService) DeleteOrder(ctx context.Context, id uint64) error {
	if err := s.orderRepository.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Заказ удалён", zap.Uint64("order_id", id))
	return nil
}

// ExportOrders выгружает заказы в xlsx для бухгалтерии.
func (s *AdminService) ExportOrders(ctx context.Context) ([]byte, error) {
	orders, err := s.orderRepository.GetOrders(ctx)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	defer file.Close()

	sheet := "Заказы"
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{
		"ID", "Код участника", "Имя", "Email", "Телефон",
		"Статус оплаты", "Способ доставки", "Стоимость доставки",
		"Адрес доставки", "Индекс", "Создан", "Оплачен",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for rowIdx, order := range orders {
		values := []interface{}{
			order.ID,
			order.ParticipantCode.String,
			order.Name.String,
			order.Email.String,
			order.Phone.String,
			order.PaymentStatus.String,
			order.DeliveryMethodName.String,
			order.DeliveryCost,
			order.DeliveryAddress.String,
			order.DeliveryPostalCode.String,
			order.CreatedAt.Format(time.RFC3339),
			formatNullTime(order),
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("ошибка формирования xlsx: %w", err)
	}

	s.logger.Info("Выгружены заказы в xlsx", zap.Int("count", len(orders)))
	return buf.Bytes(), nil
}

func formatNullTime(order entities.Order) string {
	if !order.PaidAt.Valid {
		return ""
	}
	return order.PaidAt.Time.Format(time.RFC3339)
}
