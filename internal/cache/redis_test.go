package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/refactor-hub/internal/config"
	"github.com/magabrotheeeer/refactor-hub/internal/models"
)

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	expected := models.QuotaRecord{Identity: "a@x.com", Used: 2, Subscribed: false}
	err := cache.Set("quota:a@x.com", expected, time.Minute)
	require.NoError(t, err)

	var actual models.QuotaRecord
	found, err := cache.Get("quota:a@x.com", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache := setupTestCache(t)

	var out models.QuotaRecord
	found, err := cache.Get("no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	err := cache.Set("quota:a@x.com", models.QuotaRecord{Identity: "a@x.com"}, time.Minute)
	require.NoError(t, err)

	err = cache.Invalidate("quota:a@x.com")
	require.NoError(t, err)

	var out models.QuotaRecord
	found, err := cache.Get("quota:a@x.com", &out)
	require.NoError(t, err)
	assert.False(t, found)
}
