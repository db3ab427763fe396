package dadata

import (
	"encoding/json"
	"strconv"

	"nfc-store/internal/postoffice"
)

type suggestRequest struct {
	Query     string            `json:"query"`
	Count     int               `json:"count"`
	Locations []suggestLocation `json:"locations,omitempty"`
}

type suggestLocation struct {
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

type suggestResponse struct {
	Suggestions []suggestion `json:"suggestions"`
}

type suggestion struct {
	Value string         `json:"value"`
	Data  suggestionData `json:"data"`
}

// DaData отдаёт числа и флаги строками ("true", "43.1156").
type suggestionData struct {
	PostalCode string `json:"postal_code"`
	AddressStr string `json:"address_str"`
	City       string `json:"city"`
	Settlement string `json:"settlement"`
	Region     string `json:"region"`
	Area       string `json:"area"`
	Street     string `json:"street"`
	House      string `json:"house"`

	GeoLat string `json:"geo_lat"`
	GeoLon string `json:"geo_lon"`

	// График может прийти строкой или объектом {hours: "..."}
	Schedule json.RawMessage `json:"schedule"`
	WorkTime string          `json:"work_time"`

	Phone string `json:"phone"`

	HasParcels  string `json:"has_parcels"`
	HasEMS      string `json:"has_ems"`
	HasPayment  string `json:"has_payment"`
	HasLetters  string `json:"has_letters"`
	HasPostomat string `json:"has_postomat"`
}

// AddressSuggestion — подсказка адреса для автокомплита в чекауте.
type AddressSuggestion struct {
	Value string                `json:"value"`
	Data  AddressSuggestionData `json:"data"`
}

type AddressSuggestionData struct {
	City       string `json:"city"`
	Street     string `json:"street"`
	House      string `json:"house"`
	PostalCode string `json:"postalCode"`
	Region     string `json:"region"`
	Area       string `json:"area"`
	Latitude   string `json:"latitude"`
	Longitude  string `json:"longitude"`
}

// mapSuggestions приводит ответ DaData к кандидатам.
// Записи без почтового индекса отбрасываются: их нельзя ни показать
// осмысленно, ни сопоставить при оформлении доставки.
func mapSuggestions(suggestions []suggestion) []postoffice.Candidate {
	offices := make([]postoffice.Candidate, 0, len(suggestions))

	for _, item := range suggestions {
		data := item.Data
		if data.PostalCode == "" {
			continue
		}

		address := item.Value
		if address == "" {
			address = data.AddressStr
		}

		workTime := formatSchedule(data.Schedule)
		if workTime == "" {
			workTime = data.WorkTime
		}
		if workTime == "" {
			workTime = "Уточняйте по телефону"
		}

		offices = append(offices, postoffice.Candidate{
			ID:         data.PostalCode,
			PostalCode: data.PostalCode,
			Address:    address,
			WorkTime:   workTime,
			Latitude:   parseCoord(data.GeoLat),
			Longitude:  parseCoord(data.GeoLon),
			Phone:      data.Phone,
			Services:   parseServices(data),
		})
	}

	return offices
}

func formatSchedule(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}

	var asObject struct {
		Hours string `json:"hours"`
	}
	if err := json.Unmarshal(raw, &asObject); err == nil {
		return asObject.Hours
	}

	return ""
}

func parseServices(data suggestionData) []string {
	services := []string{}

	if data.HasParcels == "true" {
		services = append(services, "Посылки")
	}
	if data.HasEMS == "true" {
		services = append(services, "EMS")
	}
	if data.HasPayment == "true" {
		services = append(services, "Платежи")
	}
	if data.HasLetters == "true" {
		services = append(services, "Письма")
	}
	if data.HasPostomat == "true" {
		services = append(services, "Постамат")
	}

	return services
}

func parseCoord(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
