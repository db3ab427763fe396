package russianpost

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nfc-store/internal/postoffice"
)

func TestResolveByPostcode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/postoffice/1.0/by-postcode/101000", r.URL.Path)
		require.Equal(t, "AccessToken token-123", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get("X-User-Authorization"))

		w.Write([]byte(`[
			{"postalCode": "101000", "address": "Москва, ул Мясницкая, 26", "latitude": 55.7649, "longitude": 37.6352, "workTime": "Пн-Пт 8-20"},
			{"index": "101001", "settlement": "Москва", "street": "Сретенка", "house": "2"},
			{"address": "без индекса"}
		]`))
	}))
	defer server.Close()

	provider := New(server.URL, "token-123", "login", "password", zap.NewNop())

	offices, err := provider.Resolve(context.Background(), postoffice.Query{PostalCode: "101000"})
	require.NoError(t, err)

	// запись без индекса отброшена
	require.Len(t, offices, 2)
	assert.Equal(t, "101000", offices[0].PostalCode)
	assert.Equal(t, "Москва, ул Мясницкая, 26", offices[0].Address)
	assert.Equal(t, "Пн-Пт 8-20", offices[0].WorkTime)

	// индекс взят из альтернативного поля, адрес собран из частей
	assert.Equal(t, "101001", offices[1].PostalCode)
	assert.Equal(t, "Отделение 101001, Москва, ул. Сретенка, д. 2", offices[1].Address)
	assert.Equal(t, "Пн-Пт 8:00-20:00, Сб 9:00-18:00", offices[1].WorkTime)
}

func TestResolveWrappedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"offices": [{"postalCode": "190000", "address": "СПб"}]}`))
	}))
	defer server.Close()

	provider := New(server.URL, "token", "login", "password", zap.NewNop())

	offices, err := provider.Resolve(context.Background(), postoffice.Query{PostalCode: "190000"})
	require.NoError(t, err)
	require.Len(t, offices, 1)
	assert.Equal(t, "190000", offices[0].PostalCode)
}

func TestResolveEmptyPostalCode(t *testing.T) {
	provider := New("http://127.0.0.1:1", "token", "login", "password", zap.NewNop())

	offices, err := provider.Resolve(context.Background(), postoffice.Query{Address: "только адрес"})
	require.NoError(t, err)
	assert.Nil(t, offices)
}

func TestTariff(t *testing.T) {
	var captured tariffRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/1.0/tariff", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Write([]byte(`{"total-rate": 36300, "delivery-time": {"min-days": 4, "max-days": 8}}`))
	}))
	defer server.Close()

	provider := New(server.URL, "token", "login", "password", zap.NewNop())

	result, err := provider.Tariff(context.Background(), TariffRequest{
		IndexTo:       "101000",
		MailType:      "parcel",
		WeightGrams:   50,
		DeclaredValue: 1990,
	})
	require.NoError(t, err)

	assert.Equal(t, "101000", captured.IndexTo)
	assert.Equal(t, "POSTAL_PARCEL", captured.MailType)
	assert.Equal(t, "WITH_DECLARED_VALUE", captured.MailCategory)
	assert.Equal(t, 50, captured.Mass)

	assert.Equal(t, 36300, result.Cost)
	assert.Equal(t, 4, result.DeliveryMin)
	assert.Equal(t, 8, result.DeliveryMax)
}

func TestTariffDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var captured tariffRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		// без объявленной ценности — простая категория
		assert.Equal(t, "SIMPLE", captured.MailCategory)
		assert.Equal(t, "EMS", captured.MailType)

		w.Write([]byte(`{"total-rate": 55000, "delivery-time": {}}`))
	}))
	defer server.Close()

	provider := New(server.URL, "token", "login", "password", zap.NewNop())

	result, err := provider.Tariff(context.Background(), TariffRequest{
		IndexTo:     "190000",
		MailType:    "ems",
		WeightGrams: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, result.DeliveryMin)
	assert.Equal(t, 10, result.DeliveryMax)
}

func TestApiMailType(t *testing.T) {
	assert.Equal(t, "POSTAL_PARCEL", apiMailType("parcel"))
	assert.Equal(t, "EMS", apiMailType("ems"))
	assert.Equal(t, "ONLINE_COURIER", apiMailType("courier"))
	assert.Equal(t, "POSTAL_PARCEL", apiMailType("что-то ещё"))
}
