// Клиент API Почты России (otpravka-api.pochta.ru).
// Документация: https://otpravka.pochta.ru/specification
package russianpost

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"nfc-store/internal/postoffice"
)

type Provider struct {
	httpClient *http.Client
	baseURL    string
	authHeader string
	basicAuth  string
	logger     *zap.Logger
}

func New(baseURL, accessToken, login, password string, logger *zap.Logger) *Provider {
	credentials := base64.StdEncoding.EncodeToString([]byte(login + ":" + password))

	return &Provider{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		authHeader: "AccessToken " + accessToken,
		basicAuth:  "Basic " + credentials,
		logger:     logger.Named("russianpost_provider"),
	}
}

func (p *Provider) Name() string {
	return postoffice.SourceOfficial
}

// Resolve возвращает отделения по индексу получателя.
func (p *Provider) Resolve(ctx context.Context, query postoffice.Query) ([]postoffice.Candidate, error) {
	if query.PostalCode == "" {
		return nil, nil
	}

	raw, err := p.request(ctx, http.MethodGet, "/postoffice/1.0/by-postcode/"+query.PostalCode, nil)
	if err != nil {
		return nil, err
	}

	offices, err := mapRawOffices(raw)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Получены отделения от API Почты России",
		zap.String("postal_code", query.PostalCode),
		zap.Int("offices", len(offices)),
	)
	return offices, nil
}

// TariffRequest — запрос тарифа на отправление.
type TariffRequest struct {
	IndexTo       string
	MailType      string // parcel | ems | courier
	WeightGrams   int
	DeclaredValue int
}

// TariffResult — рассчитанный тариф.
type TariffResult struct {
	Cost        int
	DeliveryMin int
	DeliveryMax int
}

// Tariff делегирует расчёт стоимости тарификатору Почты России.
func (p *Provider) Tariff(ctx context.Context, req TariffRequest) (*TariffResult, error) {
	body := tariffRequest{
		IndexTo:       req.IndexTo,
		MailCategory:  "SIMPLE",
		MailType:      apiMailType(req.MailType),
		Mass:          req.WeightGrams,
		DeclaredValue: req.DeclaredValue,
	}
	if req.DeclaredValue > 0 {
		body.MailCategory = "WITH_DECLARED_VALUE"
	}

	raw, err := p.request(ctx, http.MethodPost, "/1.0/tariff", body)
	if err != nil {
		return nil, err
	}

	var parsed tariffResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("ошибка парсинга ответа тарификатора: %w", err)
	}

	result := &TariffResult{
		Cost:        parsed.TotalRate,
		DeliveryMin: parsed.DeliveryTime.MinDays,
		DeliveryMax: parsed.DeliveryTime.MaxDays,
	}
	if result.DeliveryMin == 0 {
		result.DeliveryMin = 5
	}
	if result.DeliveryMax == 0 {
		result.DeliveryMax = 10
	}
	return result, nil
}

func apiMailType(mailType string) string {
	switch mailType {
	case "ems":
		return "EMS"
	case "courier":
		return "ONLINE_COURIER"
	default:
		return "POSTAL_PARCEL"
	}
}

func (p *Provider) request(ctx context.Context, method, endpoint string, payload interface{}) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("ошибка сериализации запроса: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", p.authHeader)
	req.Header.Set("X-User-Authorization", p.basicAuth)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса '%s': %w", endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа '%s': %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API Почты России для '%s' вернул статус %s: %s", endpoint, resp.Status, string(raw))
	}

	return raw, nil
}
