package services

import (
	"nfc-store/internal/dto"
	"nfc-store/internal/repositories"
)

type CardService struct {
	cardRepository repositories.CardRepositoryInterface
}

func NewCardService(cardRepository repositories.CardRepositoryInterface) *CardService {
	return &CardService{cardRepository: cardRepository}
}

func (s *CardService) FindCard(slug string) (*dto.CardResponseDTO, error) {
	card, err := s.cardRepository.FindCard(slug)
	if err != nil {
		return nil, err
	}
	return &dto.CardResponseDTO{OK: true, Data: *card}, nil
}
