// internal/services/settings_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alluracouro/allura-backend/internal/models"
)

// The fetch path needs a live database; these tests pin down the cache and
// clock behavior, which is where the subtle bugs live.

func TestSettingsCacheHitWithinTTL(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	svc := NewSettingsService(nil, 5*time.Minute, clock)
	cached := []models.SiteSetting{
		{Category: "store", Key: "whatsapp", Value: models.JSONB{"number": "+5511999990000"}},
	}
	svc.cache["store"] = cached
	svc.cachedAt["store"] = now

	// Just under the TTL: still served from cache, the nil db is never touched.
	now = now.Add(5*time.Minute - time.Second)
	got, err := svc.GetCategory("store")
	require.NoError(t, err)
	assert.Equal(t, cached, got)
}

func TestSettingsCacheHandsOutCopies(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc := NewSettingsService(nil, time.Hour, func() time.Time { return now })
	svc.cache["store"] = []models.SiteSetting{
		{Category: "store", Key: "whatsapp", Value: models.JSONB{"number": "+5511999990000"}},
	}
	svc.cachedAt["store"] = now

	got, err := svc.GetCategory("store")
	require.NoError(t, err)

	// Mutating the returned slice must not corrupt the shared cache.
	got[0].Key = "mutated"

	again, err := svc.GetCategory("store")
	require.NoError(t, err)
	assert.Equal(t, "whatsapp", again[0].Key)
}

func TestSettingsCacheExpires(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	svc := NewSettingsService(nil, 5*time.Minute, clock)
	svc.cache["store"] = []models.SiteSetting{{Category: "store", Key: "whatsapp"}}
	svc.cachedAt["store"] = now

	now = now.Add(5 * time.Minute)
	assert.False(t, svc.clock().Sub(svc.cachedAt["store"]) < svc.ttl,
		"entry at exactly the TTL must count as stale")
}

func TestSettingsGetValue(t *testing.T) {
	now := time.Now()
	svc := NewSettingsService(nil, time.Hour, func() time.Time { return now })
	svc.cache["store"] = []models.SiteSetting{
		{Category: "store", Key: "whatsapp", Value: models.JSONB{"number": "+5511999990000"}},
		{Category: "store", Key: "free_shipping", Value: models.JSONB{"threshold": 299.0}},
	}
	svc.cachedAt["store"] = now

	value, err := svc.GetValue("store", "free_shipping")
	require.NoError(t, err)
	assert.Equal(t, models.JSONB{"threshold": 299.0}, value)

	missing, err := svc.GetValue("store", "no_such_key")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSettingsInvalidate(t *testing.T) {
	now := time.Now()
	svc := NewSettingsService(nil, time.Hour, func() time.Time { return now })
	svc.cache["store"] = []models.SiteSetting{{Category: "store", Key: "whatsapp"}}
	svc.cachedAt["store"] = now
	svc.cache["seo"] = []models.SiteSetting{{Category: "seo", Key: "title"}}
	svc.cachedAt["seo"] = now

	svc.Invalidate("store")

	_, ok := svc.cache["store"]
	assert.False(t, ok)
	_, ok = svc.cachedAt["store"]
	assert.False(t, ok)

	// Other categories are untouched.
	_, ok = svc.cache["seo"]
	assert.True(t, ok)
}
