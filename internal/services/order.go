package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"nfc-store/internal/dto"
	"nfc-store/internal/entities"
	"nfc-store/internal/observability"
	"nfc-store/internal/repositories"
	"nfc-store/pkg/telegram"
	"nfc-store/pkg/utils"
)

const cardPrice = 1990

type OrderService struct {
	orderRepository repositories.OrderRepositoryInterface
	cardRepository  repositories.CardRepositoryInterface
	telegramService telegram.ServiceInterface
	telegramChatID  int64
	siteURL         string
	fallbackFile    string
	metrics         *observability.Metrics
	logger          *zap.Logger
}

func NewOrderService(
	orderRepository repositories.OrderRepositoryInterface,
	cardRepository repositories.CardRepositoryInterface,
	telegramService telegram.ServiceInterface,
	telegramChatID int64,
	siteURL string,
	fallbackFile string,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepository: orderRepository,
		cardRepository:  cardRepository,
		telegramService: telegramService,
		telegramChatID:  telegramChatID,
		siteURL:         siteURL,
		fallbackFile:    fallbackFile,
		metrics:         metrics,
		logger:          logger,
	}
}

// CreateOrder оформляет заказ: сохраняет карточку, уведомляет оператора
// в Telegram и пишет заказ в БД. Недоступная БД заказ не теряет —
// запись уходит в файловый журнал, клиент получает тот же ответ.
func (s *OrderService) CreateOrder(ctx context.Context, payload dto.CreateOrderDTO, clientIP string) (*dto.OrderCreatedDTO, error) {
	now := time.Now()
	createdAt := now.UTC().Format(time.RFC3339)

	cardSlug := utils.CardSlug(payload.Name, now)
	participantCode := utils.GenerateParticipantCode()

	if payload.Delivery != nil {
		s.logger.Info("Выбран способ доставки",
			zap.String("method", payload.Delivery.Method),
			zap.Int("cost", payload.Delivery.Cost),
		)
	}

	card := buildCard(payload, cardSlug, participantCode, createdAt)
	if err := s.cardRepository.SaveCard(card); err != nil {
		// заказ важнее карточки, не прерываемся
		s.logger.Error("Не удалось сохранить карточку", zap.Error(err))
	}

	go s.notifyTelegram(payload, card, clientIP, createdAt)

	order := s.buildOrder(payload, participantCode, clientIP, createdAt)

	id, err := s.orderRepository.CreateOrder(ctx, order)
	if err != nil {
		s.logger.Error("БД недоступна, пишу заказ в файловый журнал", zap.Error(err))
		if fallbackErr := s.appendFallback(order); fallbackErr != nil {
			return nil, fallbackErr
		}
		s.metrics.OrdersCreated.Inc()
		return &dto.OrderCreatedDTO{
			OK:              true,
			Fallback:        "fs",
			CardSlug:        cardSlug,
			ParticipantCode: participantCode,
		}, nil
	}

	s.metrics.OrdersCreated.Inc()
	s.logger.Info("Заказ оформлен",
		zap.Uint64("order_id", id),
		zap.String("card_slug", cardSlug),
		zap.String("participant_code", participantCode),
	)

	return &dto.OrderCreatedDTO{
		OK:              true,
		ID:              id,
		CardSlug:        cardSlug,
		ParticipantCode: participantCode,
	}, nil
}

func buildCard(payload dto.CreateOrderDTO, slug, participantCode, createdAt string) entities.Card {
	card := entities.Card{
		ParticipantCode: participantCode,
		Name:            payload.Name,
		Title:           payload.Title,
		Company:         payload.Company,
		Phone:           payload.Phone,
		Email:           payload.Email,
		Telegram:        payload.Telegram,
		VK:              payload.VK,
		Instagram:       payload.Instagram,
		Website:         payload.Website,
		Design:          payload.Design,
		PrimaryColor:    payload.PrimaryColor,
		SecondaryColor:  payload.SecondaryColor,
		TextColor:       payload.TextColor,
		BackgroundStyle: payload.BackgroundStyle,
		BackgroundImage: payload.BackgroundImage,
		Slug:            slug,
		CreatedAt:       createdAt,
	}

	if card.Design == "" {
		card.Design = "cyber"
	}
	if card.PrimaryColor == "" {
		card.PrimaryColor = "#0a0a0a"
	}
	if card.SecondaryColor == "" {
		card.SecondaryColor = "#00ff88"
	}
	if card.TextColor == "" {
		card.TextColor = "#00ff88"
	}
	if card.BackgroundStyle == "" {
		card.BackgroundStyle = "gradient"
	}
	if card.BackgroundImage == "" {
		card.BackgroundImage = "/templates/cyber.svg"
	}

	return card
}

func (s *OrderService) buildOrder(payload dto.CreateOrderDTO, participantCode, clientIP, createdAt string) entities.Order {
	raw, err := json.Marshal(struct {
		dto.CreateOrderDTO
		ParticipantCode string `json:"participantCode"`
		IP              string `json:"ip"`
		CreatedAt       string `json:"createdAt"`
	}{payload, participantCode, clientIP, createdAt})
	if err != nil {
		raw = []byte("{}")
	}

	order := entities.Order{
		ParticipantCode: null.StringFrom(participantCode),
		Name:            null.NewString(payload.Name, payload.Name != ""),
		Email:           null.NewString(payload.Email, payload.Email != ""),
		Phone:           null.NewString(payload.Phone, payload.Phone != ""),
		IP:              null.NewString(clientIP, clientIP != ""),
		Raw:             raw,
	}

	if d := payload.Delivery; d != nil {
		order.DeliveryMethod = null.NewString(d.Method, d.Method != "")
		order.DeliveryMethodName = null.NewString(d.MethodName, d.MethodName != "")
		order.DeliveryCost = d.Cost
		order.DeliveryMinDays = null.NewInt(d.DeliveryMin, d.DeliveryMin > 0)
		order.DeliveryMaxDays = null.NewInt(d.DeliveryMax, d.DeliveryMax > 0)
		order.DeliveryAddress = null.NewString(d.Address, d.Address != "")
		order.DeliveryPostalCode = null.NewString(d.PostalCode, d.PostalCode != "")
	}

	return order
}

// appendFallback дописывает заказ строкой NDJSON в файловый журнал.
func (s *OrderService) appendFallback(order entities.Order) error {
	file, err := os.OpenFile(s.fallbackFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("ошибка открытия файлового журнала заказов: %w", err)
	}
	defer file.Close()

	line, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("ошибка сериализации заказа: %w", err)
	}

	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("ошибка записи в файловый журнал заказов: %w", err)
	}
	return nil
}

// notifyTelegram шлёт оператору заявку и JSON-файл для записи NFC.
// Работает в фоне: сбой уведомления не должен ломать оформление.
func (s *OrderService) notifyTelegram(payload dto.CreateOrderDTO, card entities.Card, clientIP, createdAt string) {
	if s.telegramService == nil || s.telegramChatID == 0 {
		s.logger.Warn("Telegram-бот не настроен, уведомление пропущено")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	message := s.buildTelegramMessage(payload, card, clientIP, createdAt)
	if err := s.telegramService.SendMessage(ctx, s.telegramChatID, message, telegram.WithHTML()); err != nil {
		s.logger.Error("Не удалось отправить уведомление в Telegram", zap.Error(err))
		return
	}

	nfcPayload := struct {
		entities.Card
		NFCURL  string `json:"nfcUrl"`
		OrderID string `json:"orderId"`
	}{
		Card:    card,
		NFCURL:  fmt.Sprintf("%s/card/%s", s.siteURL, card.Slug),
		OrderID: fmt.Sprintf("%s-%d", strings.ReplaceAll(clientIP, ".", "-"), time.Now().UnixMilli()),
	}

	content, err := json.MarshalIndent(nfcPayload, "", "  ")
	if err != nil {
		s.logger.Error("Не удалось сформировать файл для записи NFC", zap.Error(err))
		return
	}

	fileName := fmt.Sprintf("nfc-%s-%d.json",
		strings.ReplaceAll(strings.ToLower(payload.Name), " ", "-"),
		time.Now().UnixMilli(),
	)
	caption := fmt.Sprintf("📄 Файл для записи NFC карточки\n\nЗагрузите на %s/nfc-write", s.siteURL)

	if err := s.telegramService.SendDocument(ctx, s.telegramChatID, fileName, content, caption); err != nil {
		s.logger.Error("Не удалось отправить файл в Telegram", zap.Error(err))
	}
}

func (s *OrderService) buildTelegramMessage(payload dto.CreateOrderDTO, card entities.Card, clientIP, createdAt string) string {
	orEmpty := func(v string) string {
		if v == "" {
			return "Не указано"
		}
		return v
	}

	var delivery strings.Builder
	delivery.WriteString("📦 <b>Доставка:</b>\n")
	if d := payload.Delivery; d != nil {
		methodName := d.MethodName
		if methodName == "" {
			methodName = "Почта России"
		}
		fmt.Fprintf(&delivery, "• Способ: %s\n", methodName)
		if d.Cost > 0 {
			fmt.Fprintf(&delivery, "• Стоимость: %d ₽\n", d.Cost)
		} else {
			delivery.WriteString("• Стоимость: Бесплатно\n")
		}
		fmt.Fprintf(&delivery, "• Срок: %d-%d дней\n", d.DeliveryMin, d.DeliveryMax)
		if d.Address != "" {
			fmt.Fprintf(&delivery, "• Адрес: %s\n", d.Address)
		}
		if d.PostalCode != "" {
			fmt.Fprintf(&delivery, "• Индекс: %s\n", d.PostalCode)
		}
	} else {
		delivery.WriteString("• Почта России (бесплатно)\n")
	}

	ip := clientIP
	if ip == "" {
		ip = "Не определен"
	}

	return strings.TrimSpace(fmt.Sprintf(`
🆕 <b>Новая заявка на NFC карточку!</b>

💰 Ожидает оплаты

🎫 <b>Код участника:</b> <code>%s</code>
(Для идентификации на других сайтах)

👤 <b>Личная информация:</b>
• Имя: %s
• Должность: %s
• Компания: %s

📱 <b>Контакты:</b>
• Телефон: %s
• Email: %s
• Telegram: %s
• VK: %s
• Instagram: %s
• Сайт: %s

🎨 <b>Дизайн:</b>
• Шаблон: %s
• Основной цвет: %s
• Вторичный цвет: %s
• Стиль фона: %s

%s
💰 <b>Оплата:</b>
• Сумма: %d ₽

⏰ <b>Дата заявки:</b> %s
🌐 <b>IP:</b> %s

📱 <b>Для записи на NFC:</b>
Загрузите прикрепленный файл в %s/nfc-write
`,
		card.ParticipantCode,
		orEmpty(payload.Name), orEmpty(payload.Title), orEmpty(payload.Company),
		orEmpty(payload.Phone), orEmpty(payload.Email), orEmpty(payload.Telegram),
		orEmpty(payload.VK), orEmpty(payload.Instagram), orEmpty(payload.Website),
		card.Design, card.PrimaryColor, card.SecondaryColor, card.BackgroundStyle,
		delivery.String(),
		cardPrice,
		createdAt, ip,
		s.siteURL,
	))
}
