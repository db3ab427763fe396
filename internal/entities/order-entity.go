package entities

import (
	"encoding/json"
	"time"

	"github.com/aarondl/null/v8"
)

// Order — заказ NFC-карточки. Платёжные поля и поля доставки заполняются
// по мере прохождения заказа, поэтому nullable.
type Order struct {
	ID              uint64      `json:"id"`
	ParticipantCode null.String `json:"participant_code"`
	Name            null.String `json:"name"`
	Email           null.String `json:"email"`
	Phone           null.String `json:"phone"`
	IP              null.String `json:"ip"`

	PaymentID     null.String `json:"payment_id"`
	PaymentStatus null.String `json:"payment_status"`
	PaymentMethod null.String `json:"payment_method"`
	IsCardBinding bool        `json:"is_card_binding"`
	PaidAt        null.Time   `json:"paid_at"`
	CanceledAt    null.Time   `json:"canceled_at"`

	DeliveryMethod     null.String `json:"delivery_method"`
	DeliveryMethodName null.String `json:"delivery_method_name"`
	DeliveryCost       int         `json:"delivery_cost"`
	DeliveryMinDays    null.Int    `json:"delivery_min_days"`
	DeliveryMaxDays    null.Int    `json:"delivery_max_days"`
	DeliveryAddress    null.String `json:"delivery_address"`
	DeliveryPostalCode null.String `json:"delivery_postal_code"`

	// Полный исходный payload заказа как пришёл от клиента
	Raw json.RawMessage `json:"raw"`

	CreatedAt time.Time `json:"created_at"`
}
