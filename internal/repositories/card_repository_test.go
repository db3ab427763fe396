package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nfc-store/internal/entities"
	apperrors "nfc-store/pkg/errors"
)

func newCardRepo(t *testing.T) CardRepositoryInterface {
	t.Helper()
	repo, err := NewCardRepository(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return repo
}

func TestCardRepository_SaveAndFind(t *testing.T) {
	repo := newCardRepo(t)

	card := entities.Card{
		ParticipantCode: "ARC-1111-2222",
		Name:            "Иван Петров",
		Phone:           "+79990000000",
		Design:          "cyber",
		Slug:            "ivan-petrov-1712345678901",
	}
	require.NoError(t, repo.SaveCard(card))

	found, err := repo.FindCard("ivan-petrov-1712345678901")
	require.NoError(t, err)
	assert.Equal(t, card, *found)
}

func TestCardRepository_FindByPrefix(t *testing.T) {
	repo := newCardRepo(t)

	require.NoError(t, repo.SaveCard(entities.Card{
		Name: "Иван Петров",
		Slug: "ivan-petrov-1712345678901",
	}))

	// ссылку часто копируют без таймстампа
	found, err := repo.FindCard("ivan-petrov")
	require.NoError(t, err)
	assert.Equal(t, "ivan-petrov-1712345678901", found.Slug)
}

func TestCardRepository_FindByTransliteratedSlug(t *testing.T) {
	repo := newCardRepo(t)

	require.NoError(t, repo.SaveCard(entities.Card{
		Name: "Иван Петров",
		Slug: "ivan-petrov-1712345678901",
	}))

	found, err := repo.FindCard("Иван Петров")
	require.NoError(t, err)
	assert.Equal(t, "ivan-petrov-1712345678901", found.Slug)
}

func TestCardRepository_NotFound(t *testing.T) {
	repo := newCardRepo(t)

	_, err := repo.FindCard("no-such-card")
	assert.ErrorIs(t, err, apperrors.ErrCardNotFound)
}
