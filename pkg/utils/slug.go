package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Транслитерация кириллицы в латиницу для слагов карточек.
var translitMap = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch", 'ъ': "",
	'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

var nonSlugChars = regexp.MustCompile(`\s+`)

func Transliterate(text string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(text) {
		if repl, ok := translitMap[r]; ok {
			sb.WriteString(repl)
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// CardSlug строит уникальный слаг карточки: "ivan-petrov-1712345678901".
// Метка времени гарантирует уникальность между заказами с одинаковым именем.
func CardSlug(name string, now time.Time) string {
	base := Transliterate(strings.TrimSpace(name))
	if base == "" {
		base = "user"
	}
	base = nonSlugChars.ReplaceAllString(base, "-")
	return fmt.Sprintf("%s-%d", base, now.UnixMilli())
}
