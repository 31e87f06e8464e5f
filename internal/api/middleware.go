package api

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/PrayatshuMisra/hacka-nexus/internal/auth"
	"github.com/PrayatshuMisra/hacka-nexus/internal/metrics"
	"github.com/PrayatshuMisra/hacka-nexus/internal/service"
	"github.com/PrayatshuMisra/hacka-nexus/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const userIDKey = "user_id"

// ZapLoggerMiddleware stores a request scoped logger in the request context and
// logs one line per request, tagged with the route and, when known, the caller.
func ZapLoggerMiddleware(l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			res := c.Response()

			reqLogger := l.With(zap.String("request_id", res.Header().Get(echo.HeaderXRequestID)))

			ctx := logger.WithLogger(req.Context(), reqLogger)
			c.SetRequest(req.WithContext(ctx))

			err := next(c)

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("route", c.Path()),
				zap.String("uri", req.RequestURI),
				zap.String("remote_ip", c.RealIP()),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.Int64("bytes_out", res.Size),
			}
			// Set by AuthMiddleware on the club routes.
			if userID, ok := userIDFromContext(c); ok {
				fields = append(fields, zap.Int64("user_id", userID))
			}
			if clubID := c.Param("id"); clubID != "" {
				fields = append(fields, zap.String("club_id", clubID))
			}

			if err != nil {
				fields = append(fields, zap.Error(err))
				reqLogger.Error("request failed", fields...)
			} else {
				reqLogger.Info("request completed", fields...)
			}

			return err
		}
	}
}

func MetricsMiddleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.ObserveHTTP(c.Request().Method, route, status, time.Since(start))
			return err
		}
	}
}

// TaskRateLimiter limits the task route per client IP with a token bucket.
func TaskRateLimiter(rps float64, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, taskFailure{Error: "unable to identify client"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, taskFailure{Error: "rate limit exceeded"})
		},
	})
}

// AuthMiddleware accepts bearer tokens of the given types and stores the caller's user id.
func AuthMiddleware(signer *auth.Signer, allowed ...auth.TokenType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := logger.FromContext(c.Request().Context())

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return unauthorized(c, "missing bearer token")
			}

			claims, err := signer.VerifyToken(token)
			if err != nil {
				l.Warn("token rejected", zap.Error(err))
				return unauthorized(c, "invalid token")
			}

			if !slices.Contains(allowed, claims.Type) {
				return unauthorized(c, "token type not allowed")
			}

			userID, err := claims.UserID()
			if err != nil {
				return unauthorized(c, "token has no user")
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, errorResponse{Error: service.NewError(service.ErrorCodeUnauthorized, msg)})
}

func userIDFromContext(c echo.Context) (int64, bool) {
	id, ok := c.Get(userIDKey).(int64)
	return id, ok
}
