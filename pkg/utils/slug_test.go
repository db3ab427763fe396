package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransliterate(t *testing.T) {
	cases := map[string]string{
		"Иван Петров": "ivan petrov",
		"Щукин":       "schukin",
		"объём":       "obem",
		"John Smith":  "john smith",
		"Юля":         "yulya",
	}

	for in, want := range cases {
		assert.Equal(t, want, Transliterate(in), "входная строка: %q", in)
	}
}

func TestCardSlug(t *testing.T) {
	now := time.UnixMilli(1712345678901)

	assert.Equal(t, "ivan-petrov-1712345678901", CardSlug("Иван Петров", now))
	assert.Equal(t, "user-1712345678901", CardSlug("   ", now))

	// пробелы любой длины сворачиваются в один дефис
	slug := CardSlug("Анна   Мария", now)
	assert.False(t, strings.Contains(slug, " "))
	assert.Equal(t, "anna-mariya-1712345678901", slug)
}
