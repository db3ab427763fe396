package geo

import "math"

// Радиус Земли в километрах.
const earthRadiusKm = 6371

// Distance считает расстояние по большому кругу между двумя точками
// (формула гаверсинуса). Результат в километрах.
//
// Единственная реализация на весь проект: её используют и ранжирование
// отделений по удалённости, и поиск ближайших отделений.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRad(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
