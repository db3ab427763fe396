package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"nfc-store/internal/dto"
	"nfc-store/internal/entities"
	apperrors "nfc-store/pkg/errors"
)

const orderColumns = `id, participant_code, name, email, phone, ip,
	payment_id, payment_status, payment_method, is_card_binding, paid_at, canceled_at,
	delivery_method, delivery_method_name, delivery_cost, delivery_min_days, delivery_max_days,
	delivery_address, delivery_postal_code, raw, created_at`

// Лимит выдачи в админке
const adminOrdersLimit = 1000

// PaymentUpdate — частичное обновление платёжных полей заказа.
type PaymentUpdate struct {
	PaymentID     *string
	PaymentStatus *string
	PaymentMethod *string
	IsCardBinding *bool
	PaidAt        *time.Time
	CanceledAt    *time.Time
}

type OrderRepositoryInterface interface {
	CreateOrder(ctx context.Context, order entities.Order) (uint64, error)
	GetOrders(ctx context.Context) ([]entities.Order, error)
	FindOrder(ctx context.Context, id uint64) (*entities.Order, error)
	UpdateOrder(ctx context.Context, id uint64, payload dto.UpdateOrderDTO) error
	UpdateOrderPayment(ctx context.Context, id uint64, update PaymentUpdate) error
	DeleteOrder(ctx context.Context, id uint64) error
	GetStats(ctx context.Context) (*dto.StatsDTO, error)
	GetPendingPayments(ctx context.Context, olderThan time.Duration) ([]entities.Order, error)
}

type OrderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderRepositoryInterface {
	return &OrderRepository{storage: storage, logger: logger}
}

func scanOrder(row pgx.Row) (*entities.Order, error) {
	var o entities.Order

	err := row.Scan(
		&o.ID, &o.ParticipantCode, &o.Name, &o.Email, &o.Phone, &o.IP,
		&o.PaymentID, &o.PaymentStatus, &o.PaymentMethod, &o.IsCardBinding, &o.PaidAt, &o.CanceledAt,
		&o.DeliveryMethod, &o.DeliveryMethodName, &o.DeliveryCost, &o.DeliveryMinDays, &o.DeliveryMaxDays,
		&o.DeliveryAddress, &o.DeliveryPostalCode, &o.Raw, &o.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования order: %w", err)
	}

	return &o, nil
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order entities.Order) (uint64, error) {
	query := `
		INSERT INTO orders (participant_code, name, email, phone, ip,
			delivery_method, delivery_method_name, delivery_cost,
			delivery_min_days, delivery_max_days, delivery_address, delivery_postal_code,
			raw, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING id
	`
	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		order.ParticipantCode, order.Name, order.Email, order.Phone, order.IP,
		order.DeliveryMethod, order.DeliveryMethodName, order.DeliveryCost,
		order.DeliveryMinDays, order.DeliveryMaxDays, order.DeliveryAddress, order.DeliveryPostalCode,
		order.Raw,
	).Scan(&newID)

	return newID, err
}

func (r *OrderRepository) GetOrders(ctx context.Context) ([]entities.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders ORDER BY created_at DESC LIMIT %d`, orderColumns, adminOrdersLimit)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}

	return orders, rows.Err()
}

func (r *OrderRepository) FindOrder(ctx context.Context, id uint64) (*entities.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)
	return scanOrder(r.storage.QueryRow(ctx, query, id))
}

// UpdateOrder обновляет заказ из админки. Набор полей фиксированный,
// отсутствующие в payload поля не трогаются.
func (r *OrderRepository) UpdateOrder(ctx context.Context, id uint64, payload dto.UpdateOrderDTO) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	builder := psql.Update("orders").Where(sq.Eq{"id": id})
	changed := false

	if payload.Name != nil {
		builder = builder.Set("name", *payload.Name)
		changed = true
	}
	if payload.Email != nil {
		builder = builder.Set("email", *payload.Email)
		changed = true
	}
	if payload.Phone != nil {
		builder = builder.Set("phone", *payload.Phone)
		changed = true
	}
	if payload.PaymentStatus != nil {
		builder = builder.Set("payment_status", *payload.PaymentStatus)
		changed = true
	}
	if payload.DeliveryAddress != nil {
		builder = builder.Set("delivery_address", *payload.DeliveryAddress)
		changed = true
	}
	if payload.DeliveryPostalCode != nil {
		builder = builder.Set("delivery_postal_code", *payload.DeliveryPostalCode)
		changed = true
	}

	if !changed {
		return apperrors.ErrBadRequest
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) UpdateOrderPayment(ctx context.Context, id uint64, update PaymentUpdate) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	builder := psql.Update("orders").Where(sq.Eq{"id": id})
	changed := false

	if update.PaymentID != nil {
		builder = builder.Set("payment_id", *update.PaymentID)
		changed = true
	}
	if update.PaymentStatus != nil {
		builder = builder.Set("payment_status", *update.PaymentStatus)
		changed = true
	}
	if update.PaymentMethod != nil {
		builder = builder.Set("payment_method", *update.PaymentMethod)
		changed = true
	}
	if update.IsCardBinding != nil {
		builder = builder.Set("is_card_binding", *update.IsCardBinding)
		changed = true
	}
	if update.PaidAt != nil {
		builder = builder.Set("paid_at", *update.PaidAt)
		changed = true
	}
	if update.CanceledAt != nil {
		builder = builder.Set("canceled_at", *update.CanceledAt)
		changed = true
	}

	if !changed {
		return apperrors.ErrBadRequest
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) DeleteOrder(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetStats считает сводку для дашборда. Выручка: 1990₽ за карточку
// плюс доставка по каждому оплаченному заказу.
func (r *OrderRepository) GetStats(ctx context.Context) (*dto.StatsDTO, error) {
	var stats dto.StatsDTO

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE payment_status = 'succeeded'),
			COUNT(*) FILTER (WHERE payment_status IN ('pending', 'waiting_for_capture') OR payment_status IS NULL),
			COALESCE(SUM(1990 + COALESCE(delivery_cost, 0)) FILTER (WHERE payment_status = 'succeeded'), 0)
		FROM orders
	`
	err := r.storage.QueryRow(ctx, query).Scan(&stats.Total, &stats.Paid, &stats.Pending, &stats.Revenue)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчёта статистики заказов: %w", err)
	}

	return &stats, nil
}

// GetPendingPayments возвращает заказы с незавершённой оплатой для фоновой
// сверки статусов с платёжным шлюзом.
func (r *OrderRepository) GetPendingPayments(ctx context.Context, olderThan time.Duration) ([]entities.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE payment_id IS NOT NULL
		  AND payment_status IN ('pending', 'waiting_for_capture')
		  AND created_at < $1
		ORDER BY created_at
	`, orderColumns)

	rows, err := r.storage.Query(ctx, query, time.Now().Add(-olderThan))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}

	return orders, rows.Err()
}
