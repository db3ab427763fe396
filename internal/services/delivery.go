package services

import (
	"context"
	"math"

	"go.uber.org/zap"

	"nfc-store/internal/dto"
	"nfc-store/internal/observability"
	"nfc-store/internal/postoffice"
	"nfc-store/internal/postoffice/dadata"
	"nfc-store/internal/postoffice/russianpost"
)

// Параметры отправления по умолчанию: NFC-карточка весит около 50 грамм,
// объявленная ценность равна цене карточки.
const (
	defaultWeightGrams   = 50
	defaultDeclaredValue = 1990
)

const defaultNearbyLimit = 10

// Базовые тарифы Почты России на 2024 год.
type simpleTariff struct {
	base      int
	perKg     int
	insurance float64
	minDays   int
	maxDays   int
}

var simpleTariffs = map[string]simpleTariff{
	"parcel":  {base: 280, perKg: 60, insurance: 0.04, minDays: 5, maxDays: 10},
	"ems":     {base: 550, perKg: 120, insurance: 0.02, minDays: 2, maxDays: 4},
	"courier": {base: 400, perKg: 90, insurance: 0.03, minDays: 3, maxDays: 5},
}

// TariffClientInterface — тарификатор Почты России. nil, когда полный
// API не настроен: тогда считаем по упрощённым тарифам.
type TariffClientInterface interface {
	Tariff(ctx context.Context, req russianpost.TariffRequest) (*russianpost.TariffResult, error)
}

// AddressSuggesterInterface — автокомплит адресов. nil без ключа DaData.
type AddressSuggesterInterface interface {
	SuggestAddresses(ctx context.Context, query string, count int) ([]dadata.AddressSuggestion, error)
}

type DeliveryService struct {
	sources       []postoffice.Source
	addressSource postoffice.Source
	tariffClient  TariffClientInterface
	suggester     AddressSuggesterInterface
	metrics       *observability.Metrics
	logger        *zap.Logger
}

// NewDeliveryService собирает резолвер доставки. Порядок sources задаёт
// приоритет; последним всегда должен стоять безотказный генератор.
// addressSource, tariffClient и suggester могут быть nil.
func NewDeliveryService(
	sources []postoffice.Source,
	addressSource postoffice.Source,
	tariffClient TariffClientInterface,
	suggester AddressSuggesterInterface,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *DeliveryService {
	return &DeliveryService{
		sources:       sources,
		addressSource: addressSource,
		tariffClient:  tariffClient,
		suggester:     suggester,
		metrics:       metrics,
		logger:        logger,
	}
}

// FindOffices опрашивает источники по приоритету и возвращает отделения
// первого, кто ответил хотя бы одним кандидатом. Ошибка источника — это
// его недоступность: логируем и идём дальше, наружу она не выходит.
func (s *DeliveryService) FindOffices(ctx context.Context, payload dto.FindOfficesDTO) *dto.OfficesResponseDTO {
	query := postoffice.Query{
		PostalCode: payload.PostalCode,
		Address:    payload.Address,
		Latitude:   payload.Latitude,
		Longitude:  payload.Longitude,
	}

	for _, source := range s.sources {
		offices, err := source.Resolve(ctx, query)
		if err != nil {
			s.metrics.SourceFailures.WithLabelValues(source.Name()).Inc()
			s.logger.Warn("Источник отделений недоступен",
				zap.String("source", source.Name()),
				zap.Error(err),
			)
			continue
		}
		if len(offices) == 0 {
			s.logger.Debug("Источник не вернул отделений",
				zap.String("source", source.Name()),
			)
			continue
		}

		s.rankByLocation(offices, query)
		s.metrics.OfficeLookups.WithLabelValues(source.Name()).Inc()

		return &dto.OfficesResponseDTO{
			OK:      true,
			Offices: offices,
			Source:  source.Name(),
		}
	}

	// Сюда попадаем только с пустым запросом: генератор без индекса
	// ничего не строит.
	return &dto.OfficesResponseDTO{OK: true, Offices: []postoffice.Candidate{}}
}

// FindOfficesByAddress ищет отделения по адресной строке через DaData.
// Генерация здесь не подключается: синтетику не к чему привязать,
// пустой список честнее выдуманных адресов.
func (s *DeliveryService) FindOfficesByAddress(ctx context.Context, payload dto.FindOfficesDTO) *dto.OfficesResponseDTO {
	if s.addressSource == nil {
		return &dto.OfficesResponseDTO{
			Offices: []postoffice.Candidate{},
			Message: "DaData API не настроен",
		}
	}

	query := postoffice.Query{
		Address:   payload.Address,
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
	}

	offices, err := s.addressSource.Resolve(ctx, query)
	if err != nil {
		s.metrics.SourceFailures.WithLabelValues(s.addressSource.Name()).Inc()
		s.logger.Warn("Поиск отделений по адресу не удался", zap.Error(err))
		return &dto.OfficesResponseDTO{
			OK:      true,
			Offices: []postoffice.Candidate{},
			Message: "Отделения не найдены",
		}
	}
	if len(offices) == 0 {
		return &dto.OfficesResponseDTO{
			OK:      true,
			Offices: []postoffice.Candidate{},
			Message: "Отделения не найдены",
		}
	}

	s.rankByLocation(offices, query)
	s.metrics.OfficeLookups.WithLabelValues("dadata-address").Inc()

	return &dto.OfficesResponseDTO{
		OK:      true,
		Offices: offices,
		Source:  "dadata-address",
	}
}

// NearbyOffices — те же источники, но с обязательной геолокацией
// и обрезкой до limit ближайших.
func (s *DeliveryService) NearbyOffices(ctx context.Context, payload dto.NearbyOfficesDTO) *dto.OfficesResponseDTO {
	limit := payload.Limit
	if limit <= 0 {
		limit = defaultNearbyLimit
	}

	result := s.FindOffices(ctx, dto.FindOfficesDTO{
		PostalCode: payload.PostalCode,
		Latitude:   &payload.Latitude,
		Longitude:  &payload.Longitude,
	})

	if len(result.Offices) > limit {
		result.Offices = result.Offices[:limit]
	}
	return result
}

func (s *DeliveryService) rankByLocation(offices []postoffice.Candidate, query postoffice.Query) {
	if query.Latitude == nil || query.Longitude == nil {
		return
	}
	postoffice.AttachDistance(offices, *query.Latitude, *query.Longitude)
	postoffice.SortByDistance(offices)
}

// Quote считает стоимость доставки. При настроенном полном API и
// известном индексе спрашиваем тарификатор; не ответил — тихо падаем
// на упрощённые тарифы, чекаут не должен зависеть от внешнего API.
func (s *DeliveryService) Quote(ctx context.Context, payload dto.CalculateDeliveryDTO) *dto.DeliveryQuoteDTO {
	weight := payload.WeightGrams
	if weight <= 0 {
		weight = defaultWeightGrams
	}
	declared := payload.DeclaredValue
	if declared <= 0 {
		declared = defaultDeclaredValue
	}
	mailType := payload.MailType
	if mailType == "" {
		mailType = "parcel"
	}

	if s.tariffClient != nil && payload.PostalCode != "" {
		result, err := s.tariffClient.Tariff(ctx, russianpost.TariffRequest{
			IndexTo:       payload.PostalCode,
			MailType:      mailType,
			WeightGrams:   weight,
			DeclaredValue: declared,
		})
		if err == nil {
			return &dto.DeliveryQuoteDTO{
				OK:          true,
				Cost:        result.Cost,
				DeliveryMin: result.DeliveryMin,
				DeliveryMax: result.DeliveryMax,
				MailType:    mailType,
			}
		}
		s.logger.Warn("Тарификатор недоступен, считаю по упрощённым тарифам", zap.Error(err))
	}

	return s.quoteSimple(mailType, weight, declared)
}

func (s *DeliveryService) quoteSimple(mailType string, weightGrams, declaredValue int) *dto.DeliveryQuoteDTO {
	tariff, ok := simpleTariffs[mailType]
	if !ok {
		tariff = simpleTariffs["parcel"]
	}

	weightCost := float64(tariff.base) + float64(weightGrams)/1000*float64(tariff.perKg)
	insuranceCost := float64(declaredValue) * tariff.insurance
	totalCost := int(math.Round(weightCost + insuranceCost))

	return &dto.DeliveryQuoteDTO{
		OK:          true,
		Cost:        totalCost,
		DeliveryMin: tariff.minDays,
		DeliveryMax: tariff.maxDays,
		MailType:    mailType,
		Details: &dto.QuoteDetailsDTO{
			WeightCost:    int(math.Round(weightCost)),
			InsuranceCost: int(math.Round(insuranceCost)),
			Total:         totalCost,
		},
	}
}

// Methods возвращает доступные способы доставки для чекаута.
func (s *DeliveryService) Methods() []dto.DeliveryMethodDTO {
	return []dto.DeliveryMethodDTO{
		{
			ID:          "russian-post-parcel",
			Name:        "Почта России — Посылка",
			Type:        "parcel",
			Description: "Стандартная доставка посылкой",
			BaseCost:    simpleTariffs["parcel"].base,
			DeliveryMin: simpleTariffs["parcel"].minDays,
			DeliveryMax: simpleTariffs["parcel"].maxDays,
			Icon:        "📦",
		},
		{
			ID:          "russian-post-ems",
			Name:        "Почта России — EMS",
			Type:        "ems",
			Description: "Ускоренная доставка EMS",
			BaseCost:    simpleTariffs["ems"].base,
			DeliveryMin: simpleTariffs["ems"].minDays,
			DeliveryMax: simpleTariffs["ems"].maxDays,
			Icon:        "🚀",
		},
		{
			ID:          "russian-post-courier",
			Name:        "Курьерская доставка",
			Type:        "courier",
			Description: "Доставка курьером до двери",
			BaseCost:    simpleTariffs["courier"].base,
			DeliveryMin: simpleTariffs["courier"].minDays,
			DeliveryMax: simpleTariffs["courier"].maxDays,
			Icon:        "🚚",
		},
	}
}

// SuggestAddresses — автокомплит адресов в чекауте. Короткий запрос
// не отправляем: DaData на нём бесполезна.
func (s *DeliveryService) SuggestAddresses(ctx context.Context, payload dto.SuggestAddressDTO) *dto.AddressSuggestionsDTO {
	if len([]rune(payload.Query)) < 3 {
		return &dto.AddressSuggestionsDTO{OK: true, Suggestions: []dadata.AddressSuggestion{}}
	}
	if s.suggester == nil {
		return &dto.AddressSuggestionsDTO{Suggestions: []dadata.AddressSuggestion{}}
	}

	suggestions, err := s.suggester.SuggestAddresses(ctx, payload.Query, payload.Count)
	if err != nil {
		s.logger.Warn("Подсказки адресов недоступны", zap.Error(err))
		return &dto.AddressSuggestionsDTO{Suggestions: []dadata.AddressSuggestion{}}
	}

	return &dto.AddressSuggestionsDTO{OK: true, Suggestions: suggestions}
}
