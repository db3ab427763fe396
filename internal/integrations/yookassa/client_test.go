package yookassa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreatePayment(t *testing.T) {
	var captured CreatePaymentRequest
	var idempotenceKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payments", r.URL.Path)

		login, password, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "shop-1", login)
		assert.Equal(t, "secret", password)

		idempotenceKey = r.Header.Get("Idempotence-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Write([]byte(`{
			"id": "2d9b0c5e-000f-5000-8000-1db9e7a2b1c3",
			"status": "pending",
			"amount": {"value": "1990.00", "currency": "RUB"},
			"confirmation": {"type": "redirect", "confirmation_url": "https://yoomoney.ru/checkout/payments/v2?orderId=abc"}
		}`))
	}))
	defer server.Close()

	client := New(server.URL, "shop-1", "secret", zap.NewNop())

	payment, err := client.CreatePayment(context.Background(), CreatePaymentRequest{
		Amount:  Amount{Value: "1990.00", Currency: "RUB"},
		Capture: true,
	})
	require.NoError(t, err)

	// ключ идемпотентности обязан быть валидным UUID
	_, err = uuid.Parse(idempotenceKey)
	assert.NoError(t, err)

	assert.Equal(t, "1990.00", captured.Amount.Value)
	assert.Equal(t, "pending", payment.Status)
	require.NotNil(t, payment.Confirmation)
	assert.Contains(t, payment.Confirmation.ConfirmationURL, "yoomoney")
}

func TestCreatePaymentAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type": "error", "code": "invalid_credentials"}`))
	}))
	defer server.Close()

	client := New(server.URL, "shop-1", "bad-secret", zap.NewNop())

	_, err := client.CreatePayment(context.Background(), CreatePaymentRequest{})
	assert.Error(t, err)
}

func TestConfigured(t *testing.T) {
	assert.True(t, New("url", "shop", "secret", zap.NewNop()).Configured())
	assert.False(t, New("url", "", "secret", zap.NewNop()).Configured())
	assert.False(t, New("url", "shop", "", zap.NewNop()).Configured())
}
