package dto

import (
	"nfc-store/internal/postoffice"
	"nfc-store/internal/postoffice/dadata"
)

// FindOfficesDTO — параметры поиска отделений. Нужен индекс или адрес;
// координаты пользователя включают ранжирование по удалённости.
type FindOfficesDTO struct {
	PostalCode string   `json:"postalCode,omitempty" query:"postalCode" validate:"omitempty,postalcode"`
	Address    string   `json:"address,omitempty" query:"address"`
	Latitude   *float64 `json:"latitude,omitempty" query:"latitude"`
	Longitude  *float64 `json:"longitude,omitempty" query:"longitude"`
}

type OfficesResponseDTO struct {
	OK      bool                   `json:"ok"`
	Offices []postoffice.Candidate `json:"offices"`
	Source  string                 `json:"source,omitempty"`
	Message string                 `json:"message,omitempty"`
}

type NearbyOfficesDTO struct {
	PostalCode string  `json:"postalCode,omitempty" query:"postalCode" validate:"omitempty,postalcode"`
	Latitude   float64 `json:"latitude" query:"latitude" validate:"required"`
	Longitude  float64 `json:"longitude" query:"longitude" validate:"required"`
	Limit      int     `json:"limit,omitempty" query:"limit"`
}

// Индекс здесь не проверяем на 6 цифр: расчёт не должен отказывать,
// неполный индекс просто уводит на упрощённый калькулятор.
type CalculateDeliveryDTO struct {
	MailType      string `json:"mailType,omitempty" validate:"omitempty,mailtype"`
	Region        string `json:"region,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	WeightGrams   int    `json:"weight,omitempty" validate:"omitempty,gt=0"`
	DeclaredValue int    `json:"declaredValue,omitempty" validate:"omitempty,gte=0"`
}

type QuoteDetailsDTO struct {
	WeightCost    int `json:"weightCost"`
	InsuranceCost int `json:"insuranceCost"`
	Total         int `json:"total"`
}

type DeliveryQuoteDTO struct {
	OK          bool             `json:"ok"`
	Cost        int              `json:"cost"`
	DeliveryMin int              `json:"deliveryMin"`
	DeliveryMax int              `json:"deliveryMax"`
	MailType    string           `json:"mailType,omitempty"`
	Details     *QuoteDetailsDTO `json:"details,omitempty"`
}

type DeliveryMethodDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	BaseCost    int    `json:"baseCost"`
	DeliveryMin int    `json:"deliveryMin"`
	DeliveryMax int    `json:"deliveryMax"`
	Icon        string `json:"icon"`
}

type SuggestAddressDTO struct {
	Query string `json:"query" query:"query"`
	Count int    `json:"count,omitempty" query:"count" validate:"omitempty,gt=0,lte=20"`
}

type AddressSuggestionsDTO struct {
	OK          bool                       `json:"ok"`
	Suggestions []dadata.AddressSuggestion `json:"suggestions"`
}
