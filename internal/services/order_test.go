package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nfc-store/internal/dto"
	"nfc-store/internal/entities"
	"nfc-store/internal/observability"
	"nfc-store/internal/repositories"
)

type fakeOrderRepo struct {
	created []entities.Order
	nextID  uint64
	err     error
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, order entities.Order) (uint64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.created = append(f.created, order)
	f.nextID++
	return f.nextID, nil
}

func (f *fakeOrderRepo) GetOrders(context.Context) ([]entities.Order, error) {
	return f.created, nil
}
func (f *fakeOrderRepo) FindOrder(context.Context, uint64) (*entities.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) UpdateOrder(context.Context, uint64, dto.UpdateOrderDTO) error { return nil }
func (f *fakeOrderRepo) UpdateOrderPayment(context.Context, uint64, repositories.PaymentUpdate) error {
	return nil
}
func (f *fakeOrderRepo) DeleteOrder(context.Context, uint64) error { return nil }
func (f *fakeOrderRepo) GetStats(context.Context) (*dto.StatsDTO, error) {
	return &dto.StatsDTO{}, nil
}
func (f *fakeOrderRepo) GetPendingPayments(context.Context, time.Duration) ([]entities.Order, error) {
	return nil, nil
}

type fakeCardRepo struct {
	saved []entities.Card
	err   error
}

func (f *fakeCardRepo) SaveCard(card entities.Card) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, card)
	return nil
}

func (f *fakeCardRepo) FindCard(string) (*entities.Card, error) { return nil, nil }

func newOrderService(t *testing.T, orders *fakeOrderRepo, cards *fakeCardRepo) *OrderService {
	t.Helper()
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	fallback := filepath.Join(t.TempDir(), "orders.ndjson")
	return NewOrderService(orders, cards, nil, 0, "https://nfc-vl.ru", fallback, metrics, zap.NewNop())
}

func TestCreateOrder(t *testing.T) {
	orders := &fakeOrderRepo{}
	cards := &fakeCardRepo{}
	svc := newOrderService(t, orders, cards)

	result, err := svc.CreateOrder(context.Background(), dto.CreateOrderDTO{
		Name:  "Иван Петров",
		Phone: "+79990000000",
		Delivery: &dto.OrderDeliveryDTO{
			Method:      "parcel",
			MethodName:  "Почта России — Посылка",
			Cost:        363,
			DeliveryMin: 5,
			DeliveryMax: 10,
			PostalCode:  "101000",
		},
	}, "127.0.0.1")
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.EqualValues(t, 1, result.ID)
	assert.Empty(t, result.Fallback)
	assert.Regexp(t, regexp.MustCompile(`^ivan-petrov-\d+$`), result.CardSlug)
	assert.Regexp(t, regexp.MustCompile(`^ARC-[A-Z0-9]{4}-[A-Z0-9]{4}$`), result.ParticipantCode)

	require.Len(t, cards.saved, 1)
	card := cards.saved[0]
	assert.Equal(t, result.CardSlug, card.Slug)
	assert.Equal(t, result.ParticipantCode, card.ParticipantCode)
	// дефолты дизайна
	assert.Equal(t, "cyber", card.Design)
	assert.Equal(t, "#00ff88", card.SecondaryColor)

	require.Len(t, orders.created, 1)
	order := orders.created[0]
	assert.Equal(t, "parcel", order.DeliveryMethod.String)
	assert.Equal(t, 363, order.DeliveryCost)
	assert.Equal(t, "101000", order.DeliveryPostalCode.String)
	assert.Equal(t, "127.0.0.1", order.IP.String)

	require.True(t, order.DeliveryMinDays.Valid)
	assert.Equal(t, 5, order.DeliveryMinDays.Int)
	require.True(t, order.DeliveryMaxDays.Valid)
	assert.Equal(t, 10, order.DeliveryMaxDays.Int)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(order.Raw, &raw))
	assert.Equal(t, result.ParticipantCode, raw["participantCode"])
}

func TestCreateOrderFallbackToFile(t *testing.T) {
	orders := &fakeOrderRepo{err: errors.New("БД недоступна")}
	cards := &fakeCardRepo{}
	svc := newOrderService(t, orders, cards)

	result, err := svc.CreateOrder(context.Background(), dto.CreateOrderDTO{Name: "Анна"}, "10.0.0.1")
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.Equal(t, "fs", result.Fallback)
	assert.Zero(t, result.ID)

	// заказ дописан строкой NDJSON
	data, err := os.ReadFile(svc.fallbackFile)
	require.NoError(t, err)

	var saved entities.Order
	require.NoError(t, json.Unmarshal(data[:len(data)-1], &saved))
	assert.Equal(t, "Анна", saved.Name.String)
}

func TestCreateOrderCardSaveFailureDoesNotBlock(t *testing.T) {
	orders := &fakeOrderRepo{}
	cards := &fakeCardRepo{err: errors.New("диск переполнен")}
	svc := newOrderService(t, orders, cards)

	result, err := svc.CreateOrder(context.Background(), dto.CreateOrderDTO{Name: "Пётр"}, "")
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.EqualValues(t, 1, result.ID)
}

func TestBuildTelegramMessage(t *testing.T) {
	svc := newOrderService(t, &fakeOrderRepo{}, &fakeCardRepo{})

	payload := dto.CreateOrderDTO{
		Name:  "Иван Петров",
		Phone: "+79990000000",
		Delivery: &dto.OrderDeliveryDTO{
			MethodName:  "Почта России — Посылка",
			Cost:        363,
			DeliveryMin: 5,
			DeliveryMax: 10,
			Address:     "Москва, Тверская 1",
			PostalCode:  "101000",
		},
	}
	card := buildCard(payload, "ivan-petrov-1", "ARC-AAAA-1111", "2026-09-01T10:00:00Z")

	message := svc.buildTelegramMessage(payload, card, "127.0.0.1", "2026-09-01T10:00:00Z")

	assert.Contains(t, message, "Новая заявка на NFC карточку")
	assert.Contains(t, message, "<code>ARC-AAAA-1111</code>")
	assert.Contains(t, message, "• Имя: Иван Петров")
	assert.Contains(t, message, "• Email: Не указано")
	assert.Contains(t, message, "• Стоимость: 363 ₽")
	assert.Contains(t, message, "• Срок: 5-10 дней")
	assert.Contains(t, message, "• Индекс: 101000")
}

func TestBuildTelegramMessageWithoutDelivery(t *testing.T) {
	svc := newOrderService(t, &fakeOrderRepo{}, &fakeCardRepo{})

	payload := dto.CreateOrderDTO{Name: "Анна"}
	card := buildCard(payload, "anna-1", "ARC-BBBB-2222", "2026-09-01T10:00:00Z")

	message := svc.buildTelegramMessage(payload, card, "", "2026-09-01T10:00:00Z")

	assert.Contains(t, message, "• Почта России (бесплатно)")
	assert.Contains(t, message, "🌐 <b>IP:</b> Не определен")
}
