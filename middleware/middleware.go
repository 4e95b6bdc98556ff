package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/base/metrics"
)

// GoMiddleware represent the data-struct for middleware
type GoMiddleware struct {
	met metrics.Service
}

// InitMiddleware initialize the middleware
func InitMiddleware() *GoMiddleware {
	return &GoMiddleware{met: metrics.New("http")}
}

// AddContext stores a ctx.Ctx tagged with the request id under "ctx"
func (m *GoMiddleware) AddContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			cont := ctx.WithValue(ctx.From(c.Request().Context()), "requestID", c.Response().Header().Get(echo.HeaderXRequestID))
			c.Set("ctx", cont)
			return next(c)
		}
	}
}

// ResponseLogger logs one line per request, 5xx as error and 4xx as warning
func (m *GoMiddleware) ResponseLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			status := res.Status
			m.met.BumpHistogram("request.time", float64(time.Since(start).Milliseconds()),
				"method", req.Method, "path", c.Path(), "status", strconv.Itoa(status/100)+"xx")

			fields := log.Fields{
				"ms":         time.Since(start).Seconds() * 1000,
				"httpStatus": status,
				"remoteIP":   c.RealIP(),
				"uri":        req.URL.Path,
				"httpMethod": req.Method,
				"size":       res.Size,
				"userAgent":  req.UserAgent(),
			}
			if address, ok := c.Get("address").(string); ok {
				fields["address"] = address
			}
			if id := c.Param("id"); len(id) > 0 {
				fields["sessionId"] = id
			}

			logger := log.Log()
			if cc, ok := c.Get("ctx").(ctx.Ctx); ok {
				logger = cc.Logger
			}
			logger = logger.WithFields(fields)
			switch {
			case status >= 500:
				logger.WithField("nextErr", err).Error("response")
			case status >= 400:
				logger.WithField("nextErr", err).Warn("response")
			default:
				logger.Info("response")
			}
			return nil
		}
	}
}
