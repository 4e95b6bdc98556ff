package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/delivery"
	"github.com/x-xyz/checkout/domain"
)

type AuthMiddleware struct {
	auth     domain.AuthUsecase
	loginUrl string
}

func New(auth domain.AuthUsecase, loginUrl string) *AuthMiddleware {
	return &AuthMiddleware{
		auth:     auth,
		loginUrl: loginUrl,
	}
}

// RequireBuyer authenticates the bearer token, or answers 401 with a login url
// that brings the buyer back to the requested uri afterwards
func (m *AuthMiddleware) RequireBuyer() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: m.validateAuthToken,
		ErrorHandler: func(err error, c echo.Context) error {
			return delivery.MakeJsonResp(c, http.StatusUnauthorized, LoginRequired{
				LoginUrl: m.LoginUrlFor(c.Request().RequestURI),
			})
		},
	})
}

type LoginRequired struct {
	LoginUrl string `json:"loginUrl"`
}

func (m *AuthMiddleware) LoginUrlFor(callback string) string {
	u, err := url.Parse(m.loginUrl)
	if err != nil {
		return m.loginUrl + "?callbackUrl=" + url.QueryEscape(callback)
	}
	q := u.Query()
	q.Set("callbackUrl", callback)
	u.RawQuery = q.Encode()
	return u.String()
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	ctx := c.Get("ctx").(ctx.Ctx)
	if ads, err := m.auth.ParseToken(ctx, key); err != nil {
		ctx.WithField("err", err).Warn("auth.ParseToken failed")
		return false, err
	} else {
		c.Set("address", domain.Address(ads))
		return true, nil
	}
}
