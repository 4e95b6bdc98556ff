package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/delivery"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/account"
	authMiddleware "github.com/x-xyz/checkout/stores/auth/delivery/http/middleware"
)

type handler struct {
	au account.Usecase
}

func New(e *echo.Echo, au account.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{
		au: au,
	}
	g := e.Group("/account")
	g.GET("/wallet", h.getWallet, authMiddleware.RequireBuyer())
}

// getWallet
//
//	@Summary		Get deposit wallet
//	@Description	Returns the platform deposit address of the signed in buyer
//	@Tags			account
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200	{object}	object{data=account.Wallet}
//	@Failure		401	{object}	object{data=middleware.LoginRequired}
//	@Failure		500
//	@Router			/account/wallet [get]
func (h *handler) getWallet(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := c.Get("address").(domain.Address)

	wallet, err := h.au.GetWallet(ctx, address)
	if err != nil {
		ctx.WithField("err", err).Error("au.GetWallet failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, wallet)
}
