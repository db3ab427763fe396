package dto

type CreatePaymentDTO struct {
	OrderID     uint64  `json:"orderId" validate:"required,gt=0"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description,omitempty"`
	Email       string  `json:"email,omitempty" validate:"omitempty,email"`
}

type PaymentCreatedDTO struct {
	OK              bool   `json:"ok"`
	PaymentID       string `json:"paymentId"`
	ConfirmationURL string `json:"confirmationUrl"`
	Status          string `json:"status"`
	IsCardBinding   bool   `json:"isCardBinding"`
}

type PaymentStatusDTO struct {
	OK       bool              `json:"ok"`
	Status   string            `json:"status"`
	Paid     bool              `json:"paid"`
	Amount   AmountDTO         `json:"amount"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type AmountDTO struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}
