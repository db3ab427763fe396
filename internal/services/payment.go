package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"nfc-store/internal/dto"
	"nfc-store/internal/integrations/yookassa"
	"nfc-store/internal/observability"
	"nfc-store/internal/repositories"
	apperrors "nfc-store/pkg/errors"
)

// Тестовый платёж на 10₽ — привязка карты, возвращается сразу после успеха.
const cardBindingAmount = 10

type PaymentService struct {
	client          *yookassa.Client
	orderRepository repositories.OrderRepositoryInterface
	siteURL         string
	metrics         *observability.Metrics
	logger          *zap.Logger
}

func NewPaymentService(
	client *yookassa.Client,
	orderRepository repositories.OrderRepositoryInterface,
	siteURL string,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		client:          client,
		orderRepository: orderRepository,
		siteURL:         siteURL,
		metrics:         metrics,
		logger:          logger,
	}
}

func (s *PaymentService) CreatePayment(ctx context.Context, payload dto.CreatePaymentDTO) (*dto.PaymentCreatedDTO, error) {
	if !s.client.Configured() {
		return nil, apperrors.ErrPaymentNotConfigured
	}

	isCardBinding := payload.Amount == cardBindingAmount

	description := payload.Description
	if description == "" {
		if isCardBinding {
			description = "Привязка карты (тестовый платёж 10₽)"
		} else {
			description = "Оплата NFC карточки"
		}
	}

	req := yookassa.CreatePaymentRequest{
		Amount: yookassa.Amount{
			Value:    fmt.Sprintf("%.2f", payload.Amount),
			Currency: "RUB",
		},
		Confirmation: yookassa.Confirmation{
			Type:      "redirect",
			ReturnURL: fmt.Sprintf("%s/payment-success?orderId=%d", s.siteURL, payload.OrderID),
		},
		Capture:     true,
		Description: description,
		Metadata: map[string]string{
			"order_id":        strconv.FormatUint(payload.OrderID, 10),
			"is_card_binding": strconv.FormatBool(isCardBinding),
		},
	}

	// Чек не нужен для тестовой привязки
	if payload.Email != "" && !isCardBinding {
		req.Receipt = &yookassa.Receipt{
			Customer: yookassa.ReceiptCustomer{Email: payload.Email},
			Items: []yookassa.ReceiptItem{{
				Description: "NFC карточка с цифровым профилем",
				Quantity:    "1.00",
				Amount:      req.Amount,
				VatCode:     1,
			}},
		}
	}

	payment, err := s.client.CreatePayment(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Платёж создан",
		zap.String("payment_id", payment.ID),
		zap.Uint64("order_id", payload.OrderID),
		zap.Float64("amount", payload.Amount),
	)

	confirmationURL := ""
	if payment.Confirmation != nil {
		confirmationURL = payment.Confirmation.ConfirmationURL
	}

	return &dto.PaymentCreatedDTO{
		OK:              true,
		PaymentID:       payment.ID,
		ConfirmationURL: confirmationURL,
		Status:          payment.Status,
		IsCardBinding:   isCardBinding,
	}, nil
}

func (s *PaymentService) GetStatus(ctx context.Context, paymentID string) (*dto.PaymentStatusDTO, error) {
	if !s.client.Configured() {
		return nil, apperrors.ErrPaymentNotConfigured
	}

	payment, err := s.client.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	return &dto.PaymentStatusDTO{
		OK:     true,
		Status: payment.Status,
		Paid:   payment.Paid,
		Amount: dto.AmountDTO{
			Value:    payment.Amount.Value,
			Currency: payment.Amount.Currency,
		},
		Metadata: payment.Metadata,
	}, nil
}

// HandleWebhook обрабатывает уведомление ЮKassa. Всегда без ошибки
// наружу: шлюз ретраит любые не-200 ответы, а битые уведомления
// ретраем не чинятся.
func (s *PaymentService) HandleWebhook(ctx context.Context, notification yookassa.WebhookNotification) {
	s.metrics.PaymentEvents.WithLabelValues(notification.Event).Inc()

	switch notification.Event {
	case yookassa.EventPaymentSucceeded:
		s.handleSucceeded(ctx, notification.Object)
	case yookassa.EventPaymentCanceled:
		s.handleCanceled(ctx, notification.Object)
	default:
		s.logger.Debug("Необрабатываемое событие вебхука", zap.String("event", notification.Event))
	}
}

func (s *PaymentService) handleSucceeded(ctx context.Context, payment yookassa.Payment) {
	isCardBinding := payment.Metadata["is_card_binding"] == "true"

	s.logger.Info("Платёж прошёл",
		zap.String("payment_id", payment.ID),
		zap.String("order_id", payment.Metadata["order_id"]),
		zap.Bool("is_card_binding", isCardBinding),
	)

	// Привязка карты: сразу возвращаем тестовые 10₽
	if isCardBinding && payment.Amount.Value == "10.00" {
		_, err := s.client.CreateRefund(ctx, yookassa.CreateRefundRequest{
			Amount:    yookassa.Amount{Value: "10.00", Currency: "RUB"},
			PaymentID: payment.ID,
		})
		if err != nil {
			s.logger.Error("Не удалось вернуть платёж привязки карты", zap.Error(err))
		} else {
			s.logger.Info("Платёж привязки карты возвращён", zap.String("payment_id", payment.ID))
		}
	}

	orderID, ok := parseOrderID(payment.Metadata["order_id"])
	if !ok {
		return
	}

	status := yookassa.StatusSucceeded
	paidAt := parseTimeOrNow(payment.PaidAt)
	update := repositories.PaymentUpdate{
		PaymentID:     &payment.ID,
		PaymentStatus: &status,
		IsCardBinding: &isCardBinding,
		PaidAt:        &paidAt,
	}
	if payment.PaymentMethod != nil {
		update.PaymentMethod = &payment.PaymentMethod.Type
	}

	if err := s.orderRepository.UpdateOrderPayment(ctx, orderID, update); err != nil {
		s.logger.Error("Не удалось обновить заказ после оплаты",
			zap.Uint64("order_id", orderID),
			zap.Error(err),
		)
	}
}

func (s *PaymentService) handleCanceled(ctx context.Context, payment yookassa.Payment) {
	s.logger.Info("Платёж отменён",
		zap.String("payment_id", payment.ID),
		zap.String("order_id", payment.Metadata["order_id"]),
	)

	orderID, ok := parseOrderID(payment.Metadata["order_id"])
	if !ok {
		return
	}

	status := yookassa.StatusCanceled
	canceledAt := parseTimeOrNow(payment.CanceledAt)

	err := s.orderRepository.UpdateOrderPayment(ctx, orderID, repositories.PaymentUpdate{
		PaymentID:     &payment.ID,
		PaymentStatus: &status,
		CanceledAt:    &canceledAt,
	})
	if err != nil {
		s.logger.Error("Не удалось обновить заказ после отмены платежа",
			zap.Uint64("order_id", orderID),
			zap.Error(err),
		)
	}
}

// SyncPendingPayments сверяет подвисшие платежи со шлюзом: вебхук мог
// не дойти. Запускается фоновой задачей.
func (s *PaymentService) SyncPendingPayments(ctx context.Context, olderThan time.Duration) error {
	if !s.client.Configured() {
		return nil
	}

	orders, err := s.orderRepository.GetPendingPayments(ctx, olderThan)
	if err != nil {
		return fmt.Errorf("ошибка выборки подвисших платежей: %w", err)
	}

	for _, order := range orders {
		payment, err := s.client.GetPayment(ctx, order.PaymentID.String)
		if err != nil {
			s.logger.Warn("Не удалось проверить статус платежа",
				zap.String("payment_id", order.PaymentID.String),
				zap.Error(err),
			)
			continue
		}

		switch payment.Status {
		case yookassa.StatusSucceeded:
			s.handleSucceeded(ctx, *payment)
		case yookassa.StatusCanceled:
			s.handleCanceled(ctx, *payment)
		}
	}

	if len(orders) > 0 {
		s.logger.Info("Сверка платежей завершена", zap.Int("checked", len(orders)))
	}
	return nil
}

func parseOrderID(raw string) (uint64, bool) {
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func parseTimeOrNow(raw string) time.Time {
	if raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}
