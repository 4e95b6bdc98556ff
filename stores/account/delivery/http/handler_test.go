package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/account"
	mAccount "github.com/x-xyz/checkout/domain/account/mocks"
	mDomain "github.com/x-xyz/checkout/domain/mocks"
	authMiddleware "github.com/x-xyz/checkout/stores/auth/delivery/http/middleware"
)

func TestGetWallet(t *testing.T) {
	auth := &mDomain.AuthUsecase{}
	auth.On("ParseToken", mock.Anything, "tkn").Return("0xabc", nil)
	au := &mAccount.Usecase{}
	au.On("GetWallet", mock.Anything, domain.Address("0xabc")).Return(&account.Wallet{Address: "0xabc", DepositAddress: "0xdef"}, nil).Once()

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(e, au, authMiddleware.New(auth, "https://x.xyz/login"))

	req := httptest.NewRequest(http.MethodGet, "/account/wallet", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer tkn")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","data":{"address":"0xabc","depositAddress":"0xdef"}}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/account/wallet", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "callbackUrl=%2Faccount%2Fwallet")

	au.AssertExpectations(t)
}
