// Пакет postoffice описывает источники данных об отделениях Почты России.
//
// Источники выстраиваются в цепочку с фиксированным приоритетом
// (DaData → официальный API → локальная генерация); резолвер доставки
// опрашивает их по очереди, пока кто-то не вернёт хотя бы одно отделение.
package postoffice

import (
	"context"
	"sort"

	"nfc-store/pkg/geo"
)

// Метки происхождения данных.
const (
	SourceDaData    = "dadata-real"
	SourceOfficial  = "official-api"
	SourceGenerated = "generated"
)

// Query — запрос на поиск отделений. Должен содержать индекс или адрес;
// координаты пользователя — необязательное уточнение для ранжирования.
type Query struct {
	PostalCode string
	Address    string
	Latitude   *float64
	Longitude  *float64
}

// Candidate — одно отделение-кандидат. Живёт только в рамках одного
// HTTP-запроса, никуда не сохраняется.
type Candidate struct {
	ID         string   `json:"id"`
	PostalCode string   `json:"postalCode"`
	Address    string   `json:"address"`
	WorkTime   string   `json:"workTime"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Phone      string   `json:"phone,omitempty"`
	Services   []string `json:"services"`
	DistanceKm *float64 `json:"distance"`
}

// Source — один источник отделений.
// Ошибка означает недоступность источника; вызывающая сторона в этом
// случае не должна использовать частичные данные.
type Source interface {
	Name() string
	Resolve(ctx context.Context, query Query) ([]Candidate, error)
}

// AttachDistance проставляет кандидатам расстояние до пользователя.
// Кандидаты без собственных координат остаются с nil-расстоянием.
// Отдельный проход, а не часть сортировки: его же использует поиск
// ближайших отделений.
func AttachDistance(offices []Candidate, userLat, userLon float64) []Candidate {
	for i := range offices {
		if offices[i].Latitude != nil && offices[i].Longitude != nil {
			d := geo.Distance(userLat, userLon, *offices[i].Latitude, *offices[i].Longitude)
			offices[i].DistanceKm = &d
		}
	}
	return offices
}

// SortByDistance сортирует кандидатов по возрастанию расстояния.
// Кандидаты без расстояния уходят в конец, их взаимный порядок сохраняется.
func SortByDistance(offices []Candidate) {
	sort.SliceStable(offices, func(i, j int) bool {
		di, dj := offices[i].DistanceKm, offices[j].DistanceKm
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})
}
