package middleware_test

import (
	"cleanbook/config"
	"cleanbook/infras/otel/mocks"
	cacheMocks "cleanbook/shared/cache/mocks"
	"cleanbook/transport/http/middleware"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func limited(t *testing.T, enable bool, setupMock func(c *cacheMocks.MockRedisCache)) http.Handler {
	ctrl := gomock.NewController(t)
	cache := cacheMocks.NewMockRedisCache(ctrl)
	setupMock(cache)

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache)

	return app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func limitedRequest() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/user-bookings", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	req.Header.Set("User-Agent", "cleanbook-test")

	return req
}

func TestRateLimit(t *testing.T) {
	const key = "limiter:203.0.113.7:cleanbook-test"

	tests := []struct {
		name          string
		enable        bool
		setupMock     func(c *cacheMocks.MockRedisCache)
		wantCode      int
		wantRemaining string
	}{
		{
			name:      "disabled",
			setupMock: func(c *cacheMocks.MockRedisCache) {},
			wantCode:  http.StatusNoContent,
		},
		{
			name:   "within limit",
			enable: true,
			setupMock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Increment(gomock.Any(), key, 60).Return(int64(1), nil)
			},
			wantCode:      http.StatusNoContent,
			wantRemaining: "1",
		},
		{
			name:   "over limit",
			enable: true,
			setupMock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Increment(gomock.Any(), key, 60).Return(int64(3), nil)
			},
			wantCode:      http.StatusTooManyRequests,
			wantRemaining: "0",
		},
		{
			name:   "counter store down",
			enable: true,
			setupMock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Increment(gomock.Any(), key, 60).Return(int64(0), errors.New("connection refused"))
			},
			wantCode: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			limited(t, tt.enable, tt.setupMock).ServeHTTP(rec, limitedRequest())

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get("X-RateLimit-Remaining"))
		})
	}
}
