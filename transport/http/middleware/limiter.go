package middleware

import (
	"cleanbook/shared"
	"cleanbook/shared/constant"
	"cleanbook/transport/http/response"
	"net"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownAgent      = "unknown"
)

// RateLimit allows MaxRequests per client in each fixed window. A client is the
// remote host (already resolved by chi's RealIP) plus its user agent. When the
// counter store is unreachable requests pass through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limit := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		if !limit.Enable || limit.MaxRequests <= 0 {
			return next
		}

		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			key := shared.BuildCacheKey(cacheKeyRateLimit, clientHost(request), userAgent(request))

			count, err := a.cache.Increment(request.Context(), key, limit.WindowSeconds)
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				next.ServeHTTP(writer, request)

				return
			}

			header := writer.Header()
			header.Set(constant.RequestHeaderRateLimit, strconv.Itoa(limit.MaxRequests))
			header.Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(limit.MaxRequests)-count), 10))
			header.Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limit.WindowSeconds))

			if count > int64(limit.MaxRequests) {
				response.WithRequestLimitExceeded(writer, limit.WindowSeconds)

				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

func clientHost(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}

	return host
}

func userAgent(request *http.Request) string {
	if agent := request.Header.Get(constant.RequestHeaderUserAgent); agent != "" {
		return agent
	}

	return unknownAgent
}
