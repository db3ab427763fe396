package dto

import "nfc-store/internal/entities"

type AdminLoginDTO struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenDTO struct {
	Token string `json:"token"`
}

type OrderListDTO struct {
	OK     bool             `json:"ok"`
	Orders []entities.Order `json:"orders"`
}

type StatsDTO struct {
	Total   uint64 `json:"total"`
	Paid    uint64 `json:"paid"`
	Pending uint64 `json:"pending"`
	Revenue int64  `json:"revenue"`
}

type StatsResponseDTO struct {
	OK    bool     `json:"ok"`
	Stats StatsDTO `json:"stats"`
}
