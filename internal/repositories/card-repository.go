package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"nfc-store/internal/entities"
	apperrors "nfc-store/pkg/errors"
	"nfc-store/pkg/utils"
)

// CardRepositoryInterface — хранилище карточек. Карточки лежат
// JSON-файлами на диске: их мало, а читать их должно быть можно
// даже при лежащей БД.
type CardRepositoryInterface interface {
	SaveCard(card entities.Card) error
	FindCard(slug string) (*entities.Card, error)
}

type CardRepository struct {
	basePath string
	logger   *zap.Logger
}

func NewCardRepository(basePath string, logger *zap.Logger) (CardRepositoryInterface, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию для карточек: %w", err)
	}
	return &CardRepository{basePath: basePath, logger: logger}, nil
}

func (r *CardRepository) SaveCard(card entities.Card) error {
	data, err := json.MarshalIndent(card, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации карточки: %w", err)
	}

	path := filepath.Join(r.basePath, card.Slug+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи карточки '%s': %w", card.Slug, err)
	}

	r.logger.Info("Карточка сохранена",
		zap.String("slug", card.Slug),
		zap.String("participant_code", card.ParticipantCode),
	)
	return nil
}

// FindCard ищет карточку в три прохода: точное имя файла, затем файл
// с этим префиксом, затем транслитерированный вариант слага. Ссылки на
// карточки набирают руками и шарят в мессенджерах, поэтому ищем мягко.
func (r *CardRepository) FindCard(slug string) (*entities.Card, error) {
	entries, err := os.ReadDir(r.basePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения директории карточек: %w", err)
	}

	fileName := r.matchFile(entries, slug)
	if fileName == "" {
		translit := strings.ReplaceAll(utils.Transliterate(strings.ToLower(slug)), " ", "-")
		if translit != slug {
			fileName = r.matchFile(entries, translit)
		}
	}
	if fileName == "" {
		return nil, apperrors.ErrCardNotFound
	}

	data, err := os.ReadFile(filepath.Join(r.basePath, fileName))
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения карточки '%s': %w", fileName, err)
	}

	var card entities.Card
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, fmt.Errorf("ошибка парсинга карточки '%s': %w", fileName, err)
	}

	return &card, nil
}

func (r *CardRepository) matchFile(entries []os.DirEntry, slug string) string {
	exact := slug + ".json"
	for _, entry := range entries {
		if entry.Name() == exact {
			return entry.Name()
		}
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, slug) && strings.HasSuffix(name, ".json") {
			return name
		}
	}
	return ""
}
