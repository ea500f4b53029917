package middleware

import (
	"strconv"
	"time"

	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs every request and records HTTP metrics. Errors from the chain are
// rendered here so the logged status is the one sent to the client.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		if err := c.Next(); err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		duration := time.Since(start)
		status := c.Response().StatusCode()

		route := path
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		metrics.RecordHTTPRequest(method, route, strconv.Itoa(status), duration)

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get(fiber.HeaderUserAgent)),
			zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
		)
		return nil
	}
}
