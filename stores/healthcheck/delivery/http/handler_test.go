package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/x-xyz/checkout/base/ctx"
	hcdomain "github.com/x-xyz/checkout/domain/healthcheck"
	mHealthcheck "github.com/x-xyz/checkout/domain/healthcheck/mocks"
)

func TestCheck(t *testing.T) {
	uc := &mHealthcheck.HealthCheckUsecase{}
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(e, uc)

	uc.On("Check", mock.Anything).Return(hcdomain.Report{Mongo: "ok", Cache: "ok"}, nil).Once()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"mongo":"ok","cache":"ok"}`, rec.Body.String())

	uc.On("Check", mock.Anything).Return(hcdomain.Report{Mongo: "ok", Cache: "down"}, errors.New("down")).Once()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"mongo":"ok","cache":"down"}`, rec.Body.String())

	uc.AssertExpectations(t)
}
