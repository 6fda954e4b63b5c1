package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/example/kanban/internal/ctxutil"
)

// requestContext copies the request id assigned by middleware.RequestID into
// the request context so the services can log it.
func requestContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			if requestID != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(ctxutil.WithRequestID(req.Context(), requestID)))
			}
			return next(c)
		}
	}
}

// requestLogger logs one line per request through logrus.
func requestLogger(logger *log.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := log.Fields{
				"method":     v.Method,
				"route":      c.Path(),
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"request_id": v.RequestID,
			}
			if actor := ctxutil.ActorFromContext(c.Request().Context()); actor != "" {
				fields["actor"] = actor
			}
			if stage := errorStage(v.Status); stage != "" {
				fields["error_stage"] = stage
			}
			e := logger.WithFields(fields)
			if v.Error != nil {
				e = e.WithError(v.Error)
			}
			if v.Status >= 500 {
				e.Error("request failed")
			} else {
				e.Info("request handled")
			}
			return nil
		},
	})
}

func errorStage(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return "auth"
	case status == http.StatusRequestEntityTooLarge:
		return "body_limit"
	case status >= 500:
		return "handler"
	case status >= 400:
		return "request"
	default:
		return ""
	}
}

func entry(c echo.Context, logger *log.Logger) *log.Entry {
	ctx := c.Request().Context()
	fields := log.Fields{"path": c.Path()}
	if requestID := ctxutil.RequestIDFromContext(ctx); requestID != "" {
		fields["request_id"] = requestID
	}
	if actor := ctxutil.ActorFromContext(ctx); actor != "" {
		fields["actor"] = actor
	}
	return logger.WithFields(fields)
}
