package config

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
    t.Setenv("PORT", "")
    t.Setenv("APP_ENV", "")
    t.Setenv("DATABASE_URL", "")
    t.Setenv("DATABASE_NAME", "")

    cfg := Load()
    assert.Equal(t, "8000", cfg.Port)
    assert.Equal(t, "dev", cfg.Env)
    // Missing database settings are not an error at load time; the
    // store just starts unavailable.
    assert.Empty(t, cfg.DatabaseURL)
    assert.Empty(t, cfg.DatabaseName)
}

func TestLoadFromEnv(t *testing.T) {
    t.Setenv("PORT", "9090")
    t.Setenv("APP_ENV", "prod")
    t.Setenv("DATABASE_URL", "root@tcp(db:3306)")
    t.Setenv("DATABASE_NAME", "foodsaver")

    cfg := Load()
    assert.Equal(t, "9090", cfg.Port)
    assert.Equal(t, "prod", cfg.Env)
    assert.Equal(t, "root@tcp(db:3306)", cfg.DatabaseURL)
    assert.Equal(t, "foodsaver", cfg.DatabaseName)
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
    t.Setenv("RATE_LIMIT_CAPACITY", "-5")
    t.Setenv("RATE_LIMIT_REFILL_TOKENS", "0")
    t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
    t.Setenv("RATE_LIMIT_TTL", "1s")

    cfg := LoadRateLimitConfig()
    assert.Equal(t, 1, cfg.Capacity)
    assert.Equal(t, 1, cfg.RefillTokens)
    assert.Equal(t, 2*time.Second, cfg.RefillInterval)
    // TTL stretched so the bucket survives several refill intervals.
    assert.Equal(t, 10*time.Second, cfg.TTL)
}

func TestLoadCacheConfigDefaults(t *testing.T) {
    t.Setenv("CACHE_ENABLED", "")
    t.Setenv("CACHE_METHODS", "")
    t.Setenv("CACHE_TTL", "")

    cfg := LoadCacheConfig()
    assert.True(t, cfg.Enabled)
    assert.True(t, cfg.Methods["GET"])
    assert.False(t, cfg.Methods["POST"])
    assert.Equal(t, 30*time.Second, cfg.TTL)
}
