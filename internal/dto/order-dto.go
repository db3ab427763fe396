package dto

// OrderDeliveryDTO — выбранный способ доставки в составе заказа.
type OrderDeliveryDTO struct {
	Method      string `json:"method,omitempty"`
	MethodName  string `json:"methodName,omitempty"`
	Cost        int    `json:"cost,omitempty"`
	DeliveryMin int    `json:"deliveryMin,omitempty"`
	DeliveryMax int    `json:"deliveryMax,omitempty"`
	Address     string `json:"address,omitempty"`
	PostalCode  string `json:"postalCode,omitempty" validate:"omitempty,postalcode"`
}

type CreateOrderDTO struct {
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Title     string `json:"title,omitempty"`
	Company   string `json:"company,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Telegram  string `json:"telegram,omitempty"`
	VK        string `json:"vk,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Website   string `json:"website,omitempty"`

	Design          string `json:"design,omitempty"`
	PrimaryColor    string `json:"primaryColor,omitempty"`
	SecondaryColor  string `json:"secondaryColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	BackgroundStyle string `json:"backgroundStyle,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`

	Delivery *OrderDeliveryDTO `json:"delivery,omitempty"`
	Promo    string            `json:"promo,omitempty"`
}

// OrderCreatedDTO — ответ на оформление заказа. Fallback заполняется,
// когда заказ ушёл в файловый журнал вместо БД.
type OrderCreatedDTO struct {
	OK              bool   `json:"ok"`
	ID              uint64 `json:"id,omitempty"`
	Fallback        string `json:"fallback,omitempty"`
	CardSlug        string `json:"cardSlug"`
	ParticipantCode string `json:"participantCode"`
}

// UpdateOrderDTO — правка заказа из админки, только разрешённые поля.
type UpdateOrderDTO struct {
	Name               *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Email              *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone              *string `json:"phone,omitempty"`
	PaymentStatus      *string `json:"payment_status,omitempty"`
	DeliveryAddress    *string `json:"delivery_address,omitempty"`
	DeliveryPostalCode *string `json:"delivery_postal_code,omitempty" validate:"omitempty,postalcode"`
}
