package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/checkout/base/ctx"
	hcdomain "github.com/x-xyz/checkout/domain/healthcheck"
)

type healthCheckHandler struct {
	healthCheck hcdomain.HealthCheckUsecase
}

// New will initialize the healthcheck/
func New(e *echo.Echo, us hcdomain.HealthCheckUsecase) {
	handler := &healthCheckHandler{
		healthCheck: us,
	}
	e.GET("/health", handler.check)
}

// check
//
//	@Summary	Health check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	healthcheck.Report
//	@Failure	503	{object}	healthcheck.Report
//	@Router		/health [get]
func (h *healthCheckHandler) check(c echo.Context) error {
	report, err := h.healthCheck.Check(c.Get("ctx").(ctx.Ctx))
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, report)
	}
	return c.JSON(http.StatusOK, report)
}
