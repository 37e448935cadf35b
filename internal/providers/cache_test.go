// internal/providers/cache_test.go
package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	providers []models.Provider
	err       error
	calls     int
}

func (s *countingSource) ListCandidates(_ context.Context, _ models.ServiceType, _ models.City) ([]models.Provider, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.providers, nil
}

func (s *countingSource) Name() string { return "counting" }

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func testPool() []models.Provider {
	rating := 4.7
	return []models.Provider{{
		ID:          "p-1",
		Services:    []models.ServiceType{models.ServiceCleaning},
		Cities:      []models.City{models.CityChandler},
		PricingTier: models.TierBudget,
		Rating:      &rating,
		Status:      models.StatusApproved,
	}}
}

func TestCachedSource_ReadThrough(t *testing.T) {
	mr, rdb := setupMiniredis(t)
	inner := &countingSource{providers: testPool()}
	cached := NewCachedSource(inner, rdb, time.Minute, logger.NewTestLogger(t))
	ctx := context.Background()

	first, err := cached.ListCandidates(ctx, models.ServiceCleaning, models.CityChandler)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)

	key := CacheKey(models.ServiceCleaning, models.CityChandler)
	assert.Equal(t, "providers:cleaning:chandler", key)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	second, err := cached.ListCandidates(ctx, models.ServiceCleaning, models.CityChandler)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls, "second lookup is served from redis")
	assert.Equal(t, first, second)

	require.NoError(t, cached.Invalidate(ctx, models.ServiceCleaning, models.CityChandler))
	assert.False(t, mr.Exists(key))

	_, err = cached.ListCandidates(ctx, models.ServiceCleaning, models.CityChandler)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedSource_Expiry(t *testing.T) {
	mr, rdb := setupMiniredis(t)
	inner := &countingSource{providers: testPool()}
	cached := NewCachedSource(inner, rdb, 30*time.Second, logger.NewTestLogger(t))
	ctx := context.Background()

	_, err := cached.ListCandidates(ctx, models.ServiceCleaning, models.CityChandler)
	require.NoError(t, err)

	mr.FastForward(31 * time.Second)

	_, err = cached.ListCandidates(ctx, models.ServiceCleaning, models.CityChandler)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedSource_Degrades(t *testing.T) {
	t.Run("redis error falls through", func(t *testing.T) {
		mr, rdb := setupMiniredis(t)
		mr.SetError("ERR server unavailable")

		inner := &countingSource{providers: testPool()}
		cached := NewCachedSource(inner, rdb, time.Minute, logger.NewTestLogger(t))

		providers, err := cached.ListCandidates(context.Background(), models.ServiceCleaning, models.CityChandler)
		require.NoError(t, err)
		assert.Len(t, providers, 1)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("corrupt entry is ignored", func(t *testing.T) {
		mr, rdb := setupMiniredis(t)
		require.NoError(t, mr.Set(CacheKey(models.ServiceCleaning, models.CityChandler), "{not json"))

		inner := &countingSource{providers: testPool()}
		cached := NewCachedSource(inner, rdb, time.Minute, logger.NewTestLogger(t))

		providers, err := cached.ListCandidates(context.Background(), models.ServiceCleaning, models.CityChandler)
		require.NoError(t, err)
		assert.Len(t, providers, 1)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("inner error is not cached", func(t *testing.T) {
		mr, rdb := setupMiniredis(t)
		inner := &countingSource{err: errors.New("directory down")}
		cached := NewCachedSource(inner, rdb, time.Minute, logger.NewTestLogger(t))

		_, err := cached.ListCandidates(context.Background(), models.ServiceCleaning, models.CityChandler)
		require.Error(t, err)
		assert.False(t, mr.Exists(CacheKey(models.ServiceCleaning, models.CityChandler)))
	})
}
