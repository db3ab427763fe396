package dto

import "nfc-store/internal/entities"

type CardResponseDTO struct {
	OK   bool          `json:"ok"`
	Data entities.Card `json:"data"`
}
