package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"nfc-store/internal/dto"
)

type fakeCache struct {
	counters map[string]int64
	err      error
}

func newFakeCache() *fakeCache {
	return &fakeCache{counters: map[string]int64{}}
}

func (f *fakeCache) Set(context.Context, string, interface{}, time.Duration) error { return f.err }
func (f *fakeCache) Get(context.Context, string) (string, error)                   { return "", f.err }
func (f *fakeCache) Del(context.Context, ...string) error                          { return f.err }

func (f *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeCache) Expire(context.Context, string, time.Duration) (bool, error) {
	return true, f.err
}

func newPromoService(cache *fakeCache) *PromoService {
	return NewPromoService(cache, 10, 15*time.Minute, zap.NewNop())
}

func TestValidatePromoKnownCodes(t *testing.T) {
	svc := newPromoService(newFakeCache())

	cases := []struct {
		code     string
		discount int
		kind     string
	}{
		{"WELCOME10", 10, "percent"},
		{"SAVE200", 200, "fixed"},
		{"FIRST", 15, "percent"},
		{"NFC2025", 100, "fixed"},
	}

	for _, tc := range cases {
		result := svc.Validate(context.Background(), dto.ValidatePromoDTO{Code: tc.code}, "127.0.0.1")
		assert.True(t, result.Valid, tc.code)
		assert.Equal(t, tc.discount, result.Discount, tc.code)
		assert.Equal(t, tc.kind, result.Type, tc.code)
		assert.NotEmpty(t, result.Description, tc.code)
	}
}

func TestValidatePromoCaseInsensitive(t *testing.T) {
	svc := newPromoService(newFakeCache())

	result := svc.Validate(context.Background(), dto.ValidatePromoDTO{Code: "welcome10"}, "127.0.0.1")
	assert.True(t, result.Valid)
	assert.Equal(t, 10, result.Discount)
}

func TestValidatePromoUnknownCode(t *testing.T) {
	svc := newPromoService(newFakeCache())

	result := svc.Validate(context.Background(), dto.ValidatePromoDTO{Code: "NOPE"}, "127.0.0.1")
	assert.False(t, result.Valid)
	assert.Zero(t, result.Discount)
}

func TestValidatePromoRateLimited(t *testing.T) {
	cache := newFakeCache()
	svc := newPromoService(cache)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		result := svc.Validate(ctx, dto.ValidatePromoDTO{Code: "WELCOME10"}, "10.0.0.5")
		assert.True(t, result.Valid)
	}

	// одиннадцатая попытка упирается в лимит, даже с валидным кодом
	result := svc.Validate(ctx, dto.ValidatePromoDTO{Code: "WELCOME10"}, "10.0.0.5")
	assert.False(t, result.Valid)

	// другой IP не затронут
	other := svc.Validate(ctx, dto.ValidatePromoDTO{Code: "WELCOME10"}, "10.0.0.6")
	assert.True(t, other.Valid)
}

func TestValidatePromoRedisDownAllows(t *testing.T) {
	svc := newPromoService(&fakeCache{err: errors.New("redis недоступен")})

	result := svc.Validate(context.Background(), dto.ValidatePromoDTO{Code: "SAVE200"}, "127.0.0.1")
	assert.True(t, result.Valid)
}
