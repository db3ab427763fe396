package dadata

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

func TestResolveExpandsFullPostalCode(t *testing.T) {
	var captured suggestRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/suggest/postal_unit", r.URL.Path)
		require.Equal(t, "Token test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"suggestions": []}`))
	}))
	defer server.Close()

	provider := New(server.URL, "test-key", zap.NewNop())

	_, err := provider.Resolve(context.Background(), postoffice.Query{PostalCode: "101000"})
	require.NoError(t, err)

	// полный индекс раскрывается в регион: первые три цифры + wildcard
	assert.Equal(t, "101*", captured.Query)
	require.Len(t, captured.Locations, 1)
	assert.Equal(t, "101*", captured.Locations[0].PostalCode)
}

func TestResolveShortQueryPassedAsIs(t *testing.T) {
	var captured suggestRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"suggestions": []}`))
	}))
	defer server.Close()

	provider := New(server.URL, "test-key", zap.NewNop())

	_, err := provider.Resolve(context.Background(), postoffice.Query{PostalCode: "101"})
	require.NoError(t, err)

	assert.Equal(t, "101", captured.Query)
	assert.Empty(t, captured.Locations)
}

func TestResolveSkipsRecordsWithoutPostalCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"suggestions": [
			{"value": "г Москва, ул Мясницкая", "data": {"postal_code": "101000", "geo_lat": "55.7649", "geo_lon": "37.6352", "has_parcels": "true", "has_ems": "true"}},
			{"value": "без индекса", "data": {"postal_code": ""}},
			{"value": "г Москва, ул Тверская", "data": {"postal_code": "125009"}}
		]}`))
	}))
	defer server.Close()

	provider := New(server.URL, "test-key", zap.NewNop())

	offices, err := provider.Resolve(context.Background(), postoffice.Query{PostalCode: "101000"})
	require.NoError(t, err)

	require.Len(t, offices, 2)
	assert.Equal(t, "101000", offices[0].PostalCode)
	assert.Equal(t, "125009", offices[1].PostalCode)

	require.NotNil(t, offices[0].Latitude)
	assert.InDelta(t, 55.7649, *offices[0].Latitude, 0.0001)
	assert.Equal(t, []string{"Посылки", "EMS"}, offices[0].Services)
}

func TestResolveEmptyQuery(t *testing.T) {
	provider := New("http://127.0.0.1:1", "test-key", zap.NewNop())

	offices, err := provider.Resolve(context.Background(), postoffice.Query{})
	require.NoError(t, err)
	assert.Nil(t, offices)
}

func TestResolveServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	provider := New(server.URL, "bad-key", zap.NewNop())

	_, err := provider.Resolve(context.Background(), postoffice.Query{PostalCode: "101000"})
	assert.Error(t, err)
}

func TestFormatSchedule(t *testing.T) {
	assert.Equal(t, "Пн-Пт 9-18", formatSchedule(json.RawMessage(`"Пн-Пт 9-18"`)))
	assert.Equal(t, "круглосуточно", formatSchedule(json.RawMessage(`{"hours": "круглосуточно"}`)))
	assert.Equal(t, "", formatSchedule(nil))
}

func TestSuggestAddresses(t *testing.T) {
	var captured suggestRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/suggest/address", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"suggestions": [
			{"value": "г Казань, ул Баумана, д 1", "data": {"city": "Казань", "street": "Баумана", "house": "1", "postal_code": "420111", "geo_lat": "55.7887", "geo_lon": "49.1221"}}
		]}`))
	}))
	defer server.Close()

	provider := New(server.URL, "test-key", zap.NewNop())

	suggestions, err := provider.SuggestAddresses(context.Background(), "Казань Баумана", 0)
	require.NoError(t, err)

	require.Len(t, captured.Locations, 1)
	assert.Equal(t, "Россия", captured.Locations[0].Country)
	assert.Equal(t, 10, captured.Count)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "г Казань, ул Баумана, д 1", suggestions[0].Value)
	assert.Equal(t, "Казань", suggestions[0].Data.City)
	assert.Equal(t, "420111", suggestions[0].Data.PostalCode)
}
