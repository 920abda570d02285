package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/config"
	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/utils"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func do(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func rateCfg(capacity int) config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       capacity,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            2 * time.Hour,
		KeyStrategy:    "ip_route",
		Prefix:         "rl",
	}
}

func okHandler(c echo.Context) error { return c.JSON(http.StatusOK, echo.Map{"success": true}) }

func TestTokenBucket_Redis(t *testing.T) {
	e := echo.New()
	e.POST("/api/seat-requests", okHandler, NewTokenBucket(rateCfg(2), newRedis(t), log.Discard()))

	assert.Equal(t, http.StatusOK, do(e, http.MethodPost, "/api/seat-requests").Code)
	rec := do(e, http.MethodPost, "/api/seat-requests")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = do(e, http.MethodPost, "/api/seat-requests")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestTokenBucket_InMemoryFallback(t *testing.T) {
	e := echo.New()
	e.POST("/api/suggestions", okHandler, NewTokenBucket(rateCfg(1), nil, log.Discard()))

	assert.Equal(t, http.StatusOK, do(e, http.MethodPost, "/api/suggestions").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(e, http.MethodPost, "/api/suggestions").Code)
}

func TestTokenBucket_Disabled(t *testing.T) {
	cfg := rateCfg(1)
	cfg.Enabled = false
	e := echo.New()
	e.POST("/api/suggestions", okHandler, NewTokenBucket(cfg, nil, log.Discard()))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(e, http.MethodPost, "/api/suggestions").Code)
	}
}

func TestRedisCache_HitAndInvalidate(t *testing.T) {
	rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute, Prefix: "cache"}

	calls := 0
	list := func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"success": true, "events": []int{calls}})
	}
	e := echo.New()
	e.GET("/api/events", list, NewRedisCache(cfg, rdb, log.Discard()))
	e.POST("/api/events", okHandler, InvalidateCache(cfg, rdb, log.Discard(), nil))

	first := do(e, http.MethodGet, "/api/events")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	second := do(e, http.MethodGet, "/api/events")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	require.Equal(t, http.StatusOK, do(e, http.MethodPost, "/api/events").Code)

	third := do(e, http.MethodGet, "/api/events")
	assert.Equal(t, "MISS", third.Header().Get("X-Cache"))
	assert.Equal(t, 2, calls)
}

func TestRedisCache_SkipsErrors(t *testing.T) {
	rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute, Prefix: "cache"}

	calls := 0
	e := echo.New()
	e.GET("/api/settings", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false})
	}, NewRedisCache(cfg, rdb, log.Discard()))

	do(e, http.MethodGet, "/api/settings")
	do(e, http.MethodGet, "/api/settings")
	assert.Equal(t, 2, calls)
}

func TestCacheGroup(t *testing.T) {
	assert.Equal(t, "events", cacheGroup("/api/events/:id"))
	assert.Equal(t, "stage-settings", cacheGroup("/api/stage-settings"))
	assert.Equal(t, "root", cacheGroup("/api/"))
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"a":1}`))
	require.NoError(t, err)
	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, `{"a":1}`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 1})
	assert.False(t, ok)
}

func TestJWTAuth(t *testing.T) {
	e := echo.New()
	e.GET("/api/me", func(c echo.Context) error {
		sub := c.Get(utils.ContextSubject).(utils.Subject)
		return c.String(http.StatusOK, sub.Username)
	}, JWTAuth("secret"))

	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/api/me").Code)

	tok, err := utils.NewAccessToken("secret", utils.Subject{ID: "1", Username: "root"}, 5)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "root", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestIDAndLogger(t *testing.T) {
	e := echo.New()
	e.Use(RequestID(), RequestLogger(log.Discard()))
	e.GET("/api/health", okHandler)

	rec := do(e, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)
}

func TestCORSPreflight(t *testing.T) {
	e := echo.New()
	e.Pre(CORS([]string{"https://venue.example"}))
	e.GET("/api/events", okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	req.Header.Set("Origin", "https://venue.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "https://venue.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
