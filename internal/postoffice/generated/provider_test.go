package generated

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfc-store/internal/postoffice"
)

func TestResolveAlwaysThreeOffices(t *testing.T) {
	provider := New()

	offices, err := provider.Resolve(context.Background(), postoffice.Query{PostalCode: "101000"})
	require.NoError(t, err)
	require.Len(t, offices, 3)

	assert.Equal(t, "101000-main", offices[0].ID)
	assert.Equal(t, "101000-1", offices[1].ID)
	assert.Equal(t, "101000-2", offices[2].ID)

	for _, office := range offices {
		assert.Equal(t, "101000", office.PostalCode)
		assert.Contains(t, office.Address, "Москва")
		assert.NotEmpty(t, office.WorkTime)
		assert.NotEmpty(t, office.Services)
	}

	assert.Equal(t, "+7 (495) 200-00-00", offices[0].Phone)
	assert.Contains(t, offices[0].Address, "Главное почтовое отделение")
}

func TestResolveUnknownRegion(t *testing.T) {
	provider := New()

	offices, err := provider.Resolve(context.Background(), postoffice.Query{PostalCode: "999999"})
	require.NoError(t, err)
	require.Len(t, offices, 3)

	assert.Contains(t, offices[0].Address, "Регион 99")
	assert.Equal(t, "+7 (800) 200-00-00", offices[0].Phone)
}

func TestResolveEmptyPostalCode(t *testing.T) {
	provider := New()

	offices, err := provider.Resolve(context.Background(), postoffice.Query{Address: "адрес без индекса"})
	require.NoError(t, err)
	assert.Empty(t, offices)
}

func TestKnownRegions(t *testing.T) {
	provider := New()

	cases := []struct {
		postalCode string
		city       string
		phone      string
	}{
		{"190031", "Санкт-Петербург", "+7 (812) 200-00-00"},
		{"420111", "Казань", "+7 (843) 200-00-00"},
		{"630099", "Новосибирск", "+7 (383) 200-00-00"},
	}

	for _, tc := range cases {
		offices, err := provider.Resolve(context.Background(), postoffice.Query{PostalCode: tc.postalCode})
		require.NoError(t, err)
		require.NotEmpty(t, offices)
		assert.Contains(t, offices[0].Address, tc.city)
		assert.Equal(t, tc.phone, offices[0].Phone)
	}
}
