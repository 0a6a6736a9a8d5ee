package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/food-waste-saver/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
    hdr := http.Header{}
    hdr.Set("Content-Type", "application/json")
    body := []byte(`[{"id":"1"}]`)

    payload, err := encodePayload(http.StatusOK, hdr, body)
    require.NoError(t, err)

    status, gotHdr, gotBody, ok := decodePayload(payload)
    require.True(t, ok)
    assert.Equal(t, http.StatusOK, status)
    assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
    assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
    _, _, _, ok := decodePayload([]byte("short"))
    assert.False(t, ok)
    _, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 255, 255, 255, 255})
    assert.False(t, ok)
}

func TestCacheKeyStrategies(t *testing.T) {
    cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/offers?city=Berlin", nil)
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/offers")

    key1 := cacheKeyFrom(cfg, c)
    assert.Contains(t, key1, "cache:")

    // Different query, different key.
    req2 := httptest.NewRequest(http.MethodGet, "/offers?city=Hamburg", nil)
    c2 := e.NewContext(req2, httptest.NewRecorder())
    c2.SetPath("/offers")
    assert.NotEqual(t, key1, cacheKeyFrom(cfg, c2))

    // The route-only strategy ignores the query string.
    cfg.KeyStrategy = "route"
    assert.Equal(t, cacheKeyFrom(cfg, c), cacheKeyFrom(cfg, c2))
}

// A disabled or Redis-less cache must be a transparent pass-through.
func TestCacheDisabledPassThrough(t *testing.T) {
    mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/offers", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    called := false
    err := mw(func(c echo.Context) error {
        called = true
        return c.String(http.StatusOK, "ok")
    })(c)
    require.NoError(t, err)
    assert.True(t, called)
    assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestTokenBucketDisabledPassThrough(t *testing.T) {
    mw := NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil)
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/reservations", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    called := false
    err := mw(func(c echo.Context) error {
        called = true
        return c.NoContent(http.StatusCreated)
    })(c)
    require.NoError(t, err)
    assert.True(t, called)
}

func TestBuildRateKey(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/reservations", nil)
    req.RemoteAddr = "10.0.0.1:1234"
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/reservations")

    cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}
    key := buildRateKey(cfg, c)
    assert.Contains(t, key, "rl:ip:10.0.0.1")
    assert.Contains(t, key, "POST /reservations")

    cfg.KeyStrategy = "ip"
    assert.Equal(t, "rl:ip:10.0.0.1", buildRateKey(cfg, c))
}
