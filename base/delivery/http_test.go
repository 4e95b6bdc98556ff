package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/purchase"
	"golang.org/x/xerrors"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{purchase.ErrValidation, http.StatusBadRequest},
		{xerrors.Errorf("amount: %w", purchase.ErrValidation), http.StatusBadRequest},
		{purchase.ErrSessionNotFound, http.StatusNotFound},
		{purchase.ErrSessionExpired, http.StatusGone},
		{purchase.ErrSessionFinalized, http.StatusConflict},
		{purchase.ErrExpiredSession, http.StatusGone},
		{purchase.ErrAttestationSubmitted, http.StatusConflict},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.status, StatusOf(c.err, http.StatusInternalServerError), c.err.Error())
	}
}

func TestMakeJsonResp(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, MakeJsonResp(c, http.StatusInternalServerError, purchase.ErrSessionExpired))
	assert.Equal(t, http.StatusGone, rec.Code)

	var resp JsonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, JsonResponseStatusFail, resp.Status)
	assert.Equal(t, purchase.ErrSessionExpired.Error(), resp.Data)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, MakeJsonResp(c, http.StatusOK, map[string]int{"n": 1}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","data":{"n":1}}`, rec.Body.String())
}
