// Провайдер отделений на базе DaData (suggest/postal_unit).
// Единственный источник с реальными координатами и графиком работы.
package dadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"nfc-store/internal/postoffice"
)

const defaultCount = 50

type Provider struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

func New(baseURL, apiKey string, logger *zap.Logger) *Provider {
	return &Provider{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger.Named("dadata_provider"),
	}
}

func (p *Provider) Name() string {
	return postoffice.SourceDaData
}

// Resolve ищет отделения по индексу или адресу.
//
// Шестизначный индекс раскрывается в "регионный" запрос: первые три цифры
// плюс wildcard, иначе DaData вернёт единственное точное совпадение вместо
// всех отделений региона. Более короткие запросы уходят как есть.
func (p *Provider) Resolve(ctx context.Context, query postoffice.Query) ([]postoffice.Candidate, error) {
	q := query.PostalCode
	if q == "" {
		q = query.Address
	}
	if q == "" {
		return nil, nil
	}

	body := suggestRequest{
		Query: q,
		Count: defaultCount,
	}
	if isFullPostalCode(query.PostalCode) {
		prefix := query.PostalCode[:3] + "*"
		body.Query = prefix
		body.Locations = []suggestLocation{{PostalCode: prefix}}
	}

	raw, err := p.suggest(ctx, "/suggest/postal_unit", body)
	if err != nil {
		return nil, err
	}

	offices := mapSuggestions(raw.Suggestions)
	p.logger.Debug("Получены отделения от DaData",
		zap.Int("suggestions", len(raw.Suggestions)),
		zap.Int("offices", len(offices)),
	)
	return offices, nil
}

// SuggestAddresses — автокомплит адресов (suggest/address) для чекаута.
func (p *Provider) SuggestAddresses(ctx context.Context, query string, count int) ([]AddressSuggestion, error) {
	if count <= 0 {
		count = 10
	}

	body := suggestRequest{
		Query:     query,
		Count:     count,
		Locations: []suggestLocation{{Country: "Россия"}},
	}

	raw, err := p.suggest(ctx, "/suggest/address", body)
	if err != nil {
		return nil, err
	}

	suggestions := make([]AddressSuggestion, 0, len(raw.Suggestions))
	for _, s := range raw.Suggestions {
		city := s.Data.City
		if city == "" {
			city = s.Data.Settlement
		}
		suggestions = append(suggestions, AddressSuggestion{
			Value: s.Value,
			Data: AddressSuggestionData{
				City:       city,
				Street:     s.Data.Street,
				House:      s.Data.House,
				PostalCode: s.Data.PostalCode,
				Region:     s.Data.Region,
				Area:       s.Data.Area,
				Latitude:   s.Data.GeoLat,
				Longitude:  s.Data.GeoLon,
			},
		})
	}
	return suggestions, nil
}

func (p *Provider) suggest(ctx context.Context, endpoint string, body suggestRequest) (*suggestResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации запроса DaData: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса DaData: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Token "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса DaData '%s': %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DaData для '%s' вернул статус: %s", endpoint, resp.Status)
	}

	var parsed suggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("ошибка парсинга ответа DaData: %w", err)
	}
	return &parsed, nil
}

func isFullPostalCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
