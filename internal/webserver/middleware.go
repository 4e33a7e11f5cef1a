package webserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nexcat/catalog/config"
	"github.com/nexcat/catalog/pkg/metrics"
)

// ZapLogger logs every request through the global zap logger and feeds
// the request counter.
func ZapLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			res := c.Response()
			zap.L().Info("http request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()))
			metrics.RecordAPIRequest(req.URL.Path, res.Status)
			return err
		}
	}
}

// RateLimiter enforces the configured request ceiling per client IP
// within the sliding window, rejecting excess requests with 429 before
// any handler runs.
func RateLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	window := time.Duration(cfg.Window) * time.Second
	if window <= 0 {
		window = time.Minute
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = cfg.Requests
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(cfg.Requests) / window.Seconds()),
		Burst:     burst,
		ExpiresIn: 3 * window,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, RestError{
				Code:    "RATE_LIMIT_IDENTITY",
				Message: "Unable to identify client",
			})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, RestError{
				Code:    "RATE_LIMITED",
				Message: "Request limit exceeded, retry later",
			})
		},
	})
}
