// Локальная генерация отделений — последний ярус цепочки источников.
// Никуда не ходит по сети и по построению не может отказать: витрина
// обязана показать варианты доставки даже когда все интеграции лежат.
package generated

import (
	"context"
	"fmt"

	"nfc-store/internal/postoffice"
)

type Provider struct{}

func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return postoffice.SourceGenerated
}

// Resolve детерминированно строит три правдоподобных отделения по индексу.
// Запрос без индекса даёт пустой список: генерировать не из чего.
func (p *Provider) Resolve(_ context.Context, query postoffice.Query) ([]postoffice.Candidate, error) {
	code := query.PostalCode
	if code == "" {
		return []postoffice.Candidate{}, nil
	}

	city := cityName(code)
	phone := generatePhone(code)

	offices := []postoffice.Candidate{
		{
			ID:         code + "-main",
			PostalCode: code,
			Address:    fmt.Sprintf("%s, Отделение %s, Главное почтовое отделение", city, code),
			WorkTime:   "Пн-Пт 8:00-20:00, Сб 9:00-18:00, Вс выходной",
			Phone:      phone,
			Services:   []string{"Посылки", "EMS", "Платежи", "Письма"},
		},
		{
			ID:         code + "-1",
			PostalCode: code,
			Address:    fmt.Sprintf("%s, Отделение %s, ул. Центральная", city, code),
			WorkTime:   "Пн-Пт 9:00-19:00, Сб 10:00-16:00, Вс выходной",
			Phone:      phone,
			Services:   []string{"Посылки", "Платежи", "Письма"},
		},
		{
			ID:         code + "-2",
			PostalCode: code,
			Address:    fmt.Sprintf("%s, Отделение %s, пр. Ленина", city, code),
			WorkTime:   "Пн-Пт 8:00-18:00, Сб 9:00-15:00, Вс выходной",
			Phone:      phone,
			Services:   []string{"Посылки", "Письма"},
		},
	}

	return offices, nil
}

func cityName(postalCode string) string {
	if city, ok := cityByPrefix[regionPrefix(postalCode)]; ok {
		return city
	}
	if len(postalCode) >= 2 {
		return "Регион " + postalCode[:2]
	}
	return "Регион " + postalCode
}

func generatePhone(postalCode string) string {
	code, ok := phoneCodeByPrefix[regionPrefix(postalCode)]
	if !ok {
		code = fallbackPhoneCode
	}
	return fmt.Sprintf("+7 (%s) 200-00-00", code)
}

func regionPrefix(postalCode string) string {
	if len(postalCode) < 3 {
		return postalCode
	}
	return postalCode[:3]
}
