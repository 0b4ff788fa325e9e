package gateway

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gofiber/fiber/v3"
	"github.com/streambox/streambox/constant"
	"github.com/streambox/streambox/log"
)

// Forbidden is the body of requests rejected by the token gate.
const Forbidden = "Forbidden (missing/invalid token)"

// tokenMiddleware rejects requests whose token query parameter differs from token.
// An empty token disables the gate.
func tokenMiddleware(token string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if token == "" {
			return c.Next()
		}

		given := c.Query(constant.TokenParam)
		if subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
			log.Warnf("rejected %s %s: invalid token", c.Method(), c.Path())
			c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return c.Status(fiber.StatusForbidden).SendString(Forbidden)
		}

		return c.Next()
	}
}

func loggingMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		entry := log.WithFields(map[string]any{
			"method":   c.Method(),
			"path":     c.Path(),
			"status":   c.Response().StatusCode(),
			"duration": time.Since(start).String(),
		})
		if entry != nil {
			entry.Info("request")
		}

		return err
	}
}

func metricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := routeLabel(c.Path())
		metrics.GetOrCreateCounter(fmt.Sprintf(`streambox_requests_total{route=%q,status="%d"}`, route, c.Response().StatusCode())).Inc()
		metrics.GetOrCreateHistogram(fmt.Sprintf(`streambox_request_duration_seconds{route=%q}`, route)).UpdateDuration(start)

		return err
	}
}

func routeLabel(path string) string {
	switch {
	case strings.HasPrefix(path, constant.APIPrefix+"/"):
		return "api"
	case path == "/" || path == "/index.html":
		return "ui"
	case path == "/health" || path == "/metrics":
		return strings.TrimPrefix(path, "/")
	default:
		return "other"
	}
}
