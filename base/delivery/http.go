package delivery

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/purchase"
	"github.com/x-xyz/checkout/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// StatusOf maps a usecase error to its http status, fallback is used for unclassified errors
func StatusOf(err error, fallback int) int {
	var vErrs validator.ValidationErrors
	switch {
	// expired sessions answer 410 whether or not the status was already written
	case errors.Is(err, purchase.ErrSessionExpired):
		return http.StatusGone
	case errors.Is(err, purchase.ErrSessionFinalized), errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, query.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrBadParamInput),
		errors.Is(err, domain.ErrInvalidNumberFormat),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidChainId),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.As(err, &vErrs):
		return http.StatusBadRequest
	}
	return fallback
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err, status)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
