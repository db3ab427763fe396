package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"nfc-store/internal/dto"
	"nfc-store/internal/entities"
	apperrors "nfc-store/pkg/errors"
	"nfc-store/pkg/service"
	"nfc-store/pkg/utils"
)

func newAdminService(t *testing.T, password string) *AdminService {
	t.Helper()

	hash := ""
	if password != "" {
		var err error
		hash, err = utils.HashPassword(password)
		require.NoError(t, err)
	}

	jwtService := service.NewJWTService("test-secret", time.Hour)
	return NewAdminService(&fakeOrderRepo{}, jwtService, hash, zap.NewNop())
}

func TestAdminLogin(t *testing.T) {
	svc := newAdminService(t, "correct-horse")

	token, err := svc.Login(dto.AdminLoginDTO{Login: "admin", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
}

func TestAdminLoginWrongPassword(t *testing.T) {
	svc := newAdminService(t, "correct-horse")

	_, err := svc.Login(dto.AdminLoginDTO{Login: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAdminLoginWrongLogin(t *testing.T) {
	svc := newAdminService(t, "correct-horse")

	_, err := svc.Login(dto.AdminLoginDTO{Login: "root", Password: "correct-horse"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAdminLoginDisabled(t *testing.T) {
	svc := newAdminService(t, "")

	_, err := svc.Login(dto.AdminLoginDTO{Login: "admin", Password: "any"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestExportOrdersEmpty(t *testing.T) {
	svc := newAdminService(t, "correct-horse")

	data, err := svc.ExportOrders(context.Background())
	require.NoError(t, err)
	// валидный xlsx начинается с zip-сигнатуры
	require.Greater(t, len(data), 4)
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}

func TestExportOrdersWithData(t *testing.T) {
	repo := &fakeOrderRepo{created: []entities.Order{
		{
			ID:                 7,
			ParticipantCode:    null.StringFrom("ARC-AAAA-1111"),
			Name:               null.StringFrom("Иван Петров"),
			Email:              null.StringFrom("ivan@example.com"),
			PaymentStatus:      null.StringFrom("succeeded"),
			DeliveryMethodName: null.StringFrom("Почта России — Посылка"),
			DeliveryCost:       363,
			DeliveryAddress:    null.StringFrom("Москва, ул. Сретенка, д. 2"),
			DeliveryPostalCode: null.StringFrom("101000"),
			CreatedAt:          time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
	}}

	jwtService := service.NewJWTService("test-secret", time.Hour)
	svc := NewAdminService(repo, jwtService, "", zap.NewNop())

	data, err := svc.ExportOrders(context.Background())
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer file.Close()

	name, err := file.GetCellValue("Заказы", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Иван Петров", name)

	status, err := file.GetCellValue("Заказы", "F2")
	require.NoError(t, err)
	assert.Equal(t, "succeeded", status)

	postal, err := file.GetCellValue("Заказы", "J2")
	require.NoError(t, err)
	assert.Equal(t, "101000", postal)
}
