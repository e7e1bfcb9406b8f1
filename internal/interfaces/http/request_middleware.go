package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/leads-api/pkg/logger"
)

// requestObserver lo implementa *metrics.Collector.
type requestObserver interface {
	ObserveRequest(method, path string, status int, elapsed time.Duration)
}

// RequestMiddleware registra cada petición (log + métricas). Usa la ruta registrada
// como etiqueta para no disparar la cardinalidad con IDs.
func RequestMiddleware(log *logger.Logger, obs requestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler de Fiber fije el status antes de medir
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		path := c.Route().Path

		if obs != nil {
			obs.ObserveRequest(c.Method(), path, status, elapsed)
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.OriginalURL()).
			Str("route", path).
			Int("status", status).
			Dur("elapsed", elapsed).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Msg("http request")
		return nil
	}
}
