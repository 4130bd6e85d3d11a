package transport

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RequestLogger writes one log line per request. When the handler returned an
// error the status has not been written yet, so it is resolved the same way
// ErrorHandler will resolve it.
func (s *HTTPServer) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogError:     true,
		LogLatency:   true,
		LogMethod:    true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			status := v.Status
			if v.Error != nil {
				status, _ = s.resolveError(v.Error)
			}

			fields := []interface{}{
				"method", v.Method,
				"uri", v.URI,
				"status", status,
				"latency", v.Latency,
				"request_id", v.RequestID,
				"remote_ip", v.RemoteIP,
			}
			switch {
			case status >= 500:
				s.logger.Errorw("request", append(fields, "error", v.Error)...)
			case status >= 400:
				s.logger.Warnw("request", fields...)
			default:
				s.logger.Infow("request", fields...)
			}
			return nil
		},
	})
}
