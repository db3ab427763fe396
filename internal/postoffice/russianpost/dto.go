package russianpost

import (
	"encoding/json"
	"fmt"
	"strings"

	"nfc-store/internal/postoffice"
)

type tariffRequest struct {
	IndexTo       string `json:"index-to"`
	MailCategory  string `json:"mail-category"`
	MailType      string `json:"mail-type"`
	Mass          int    `json:"mass"`
	DeclaredValue int    `json:"declared-value"`
}

type tariffResponse struct {
	TotalRate    int `json:"total-rate"`
	DeliveryTime struct {
		MinDays int `json:"min-days"`
		MaxDays int `json:"max-days"`
	} `json:"delivery-time"`
}

type rawOffice struct {
	PostalCode string `json:"postalCode"`
	Index      string `json:"index"`

	Address    string `json:"address"`
	Settlement string `json:"settlement"`
	Street     string `json:"street"`
	House      string `json:"house"`
	Building   string `json:"building"`

	WorkTime  string `json:"workTime"`
	Schedule  string `json:"schedule"`
	WorkHours *struct {
		Weekday  string `json:"weekday"`
		Saturday string `json:"saturday"`
	} `json:"workHours"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	Phone       string   `json:"phone"`
	PhoneNumber string   `json:"phoneNumber"`
	Services    []string `json:"services"`
}

// mapRawOffices нормализует ответ API: он может быть как голым массивом,
// так и обёрткой {"offices": []} / {"items": []}.
func mapRawOffices(raw json.RawMessage) ([]postoffice.Candidate, error) {
	var list []rawOffice
	if err := json.Unmarshal(raw, &list); err != nil {
		var wrapper struct {
			Offices []rawOffice `json:"offices"`
			Items   []rawOffice `json:"items"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, fmt.Errorf("ошибка парсинга списка отделений: %w", err)
		}
		list = wrapper.Offices
		if len(list) == 0 {
			list = wrapper.Items
		}
	}

	offices := make([]postoffice.Candidate, 0, len(list))
	for _, office := range list {
		code := office.PostalCode
		if code == "" {
			code = office.Index
		}
		if code == "" {
			continue
		}

		services := office.Services
		if services == nil {
			services = []string{}
		}

		phone := office.Phone
		if phone == "" {
			phone = office.PhoneNumber
		}

		offices = append(offices, postoffice.Candidate{
			ID:         code,
			PostalCode: code,
			Address:    formatAddress(office, code),
			WorkTime:   formatWorkTime(office),
			Latitude:   office.Latitude,
			Longitude:  office.Longitude,
			Phone:      phone,
			Services:   services,
		})
	}

	return offices, nil
}

func formatAddress(office rawOffice, code string) string {
	if office.Address != "" {
		return office.Address
	}

	parts := []string{}
	if office.Settlement != "" {
		parts = append(parts, office.Settlement)
	}
	if office.Street != "" {
		parts = append(parts, "ул. "+office.Street)
	}
	if office.House != "" {
		parts = append(parts, "д. "+office.House)
	}
	if office.Building != "" {
		parts = append(parts, "корп. "+office.Building)
	}

	if len(parts) == 0 {
		return "Отделение " + code
	}
	return fmt.Sprintf("Отделение %s, %s", code, strings.Join(parts, ", "))
}

func formatWorkTime(office rawOffice) string {
	if office.WorkTime != "" {
		return office.WorkTime
	}
	if office.Schedule != "" {
		return office.Schedule
	}
	if office.WorkHours != nil {
		weekday := office.WorkHours.Weekday
		if weekday == "" {
			weekday = "Пн-Пт 8:00-20:00"
		}
		saturday := office.WorkHours.Saturday
		if saturday == "" {
			saturday = "Сб 9:00-18:00"
		}
		return weekday + ", " + saturday
	}
	return "Пн-Пт 8:00-20:00, Сб 9:00-18:00"
}
