package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/delivery"
	"github.com/x-xyz/checkout/domain"
)

type authHandler struct {
	auth domain.AuthUsecase
}

// New registers the auth routes, /auth/sign is only exposed when devSign is set
func New(e *echo.Echo, auth domain.AuthUsecase, devSign bool) {
	handler := &authHandler{
		auth: auth,
	}
	g := e.Group("/auth")
	g.POST("/login", handler.login)
	g.POST("/verify", handler.verify)
	if devSign {
		g.POST("/sign", handler.sign)
	}
}

// login
//
//	@Summary		Login with wallet
//	@Description	Exchange a personal_sign signature over the login message for an access token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			params	body		domain.LoginParams	true	"params"
//	@Success		201		{object}	object{data=string}
//	@Failure		400
//	@Failure		401
//	@Router			/auth/login [post]
func (h *authHandler) login(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := domain.LoginParams{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	tkn, err := h.auth.Login(ctx, p)
	if errors.Is(err, domain.ErrBadParamInput) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	} else if errors.Is(err, domain.ErrUnauthorized) {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, err)
	} else if err != nil {
		ctx.WithField("err", err).Error("auth.Login failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, tkn)
}

type verifyResult struct {
	Address domain.Address `json:"address"`
}

// verify
//
//	@Summary		Verify access token
//	@Description	Check a token issued by the identity provider and return its address
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			params	body		http.verify.params	true	"params"
//	@Success		200		{object}	object{data=http.verifyResult}
//	@Failure		400
//	@Failure		401
//	@Router			/auth/verify [post]
func (h *authHandler) verify(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Token string `json:"token" validate:"required"` // access token
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	address, err := h.auth.ParseToken(ctx, p.Token)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, verifyResult{Address: domain.Address(address)})
}

// sign
//
//	@Summary		Get access token
//	@Description	Create access token for given address, development only
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			params	body		http.sign.params	true	"params"
//	@Success		201		{object}	object{data=string}
//	@Failure		400
//	@Failure		500
//	@Router			/auth/sign [post]
func (h *authHandler) sign(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Address domain.Address `json:"address" validate:"required,eth_addr" example:"0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"` // account address
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if tkn, err := h.auth.SignToken(ctx, p.Address); err != nil {
		ctx.WithField("err", err).Error("auth.SignToken failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, tkn)
	}
}
