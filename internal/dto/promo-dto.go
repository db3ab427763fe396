package dto

type ValidatePromoDTO struct {
	Code string `json:"code" validate:"required,min=2,max=32"`
}

// PromoResultDTO повторяет контракт фронтенда: при невалидном коде
// возвращается только {"valid": false}.
type PromoResultDTO struct {
	Valid       bool   `json:"valid"`
	Discount    int    `json:"discount,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}
