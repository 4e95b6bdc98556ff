package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/delivery"
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/account"
	"github.com/x-xyz/checkout/domain/nftitem"
	"github.com/x-xyz/checkout/domain/purchase"
	authMiddleware "github.com/x-xyz/checkout/stores/auth/delivery/http/middleware"
)

// HeaderWebhookSecret carries the shared secret of the verification authority
const HeaderWebhookSecret = "X-Webhook-Secret"

type handler struct {
	purchase      purchase.Usecase
	account       account.Usecase
	webhookSecret string
}

func New(
	e *echo.Echo,
	purchase purchase.Usecase,
	account account.Usecase,
	authMiddleware *authMiddleware.AuthMiddleware,
	webhookSecret string,
) {
	h := &handler{
		purchase:      purchase,
		account:       account,
		webhookSecret: webhookSecret,
	}

	g := e.Group("/purchase/sessions", authMiddleware.RequireBuyer())
	g.POST("", h.createOrResume)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("/:id/attestation", h.submitAttestation)
	g.POST("/:id/cancel", h.cancel)
	g.POST("/:id/expire", h.expire)

	e.POST("/purchase/webhook/confirm", h.confirm)
}

type createPayload struct {
	ChainId         domain.ChainId `json:"chainId" validate:"required" example:"1"`
	ContractAddress domain.Address `json:"contractAddress" validate:"required,eth_addr" example:"0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"`
	TokenId         domain.TokenId `json:"tokenId" validate:"required" example:"1"`
	Amount          string         `json:"amount" validate:"required" example:"1.0"`
	Currency        string         `json:"currency" validate:"required" example:"ETH"`
}

// createOrResume
//
//	@Summary		Open a purchase session
//	@Description	Returns the active session of the nft for the signed in buyer, or opens a new one
//	@Tags			purchase
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body		http.createPayload	true	"params"
//	@Success		200		{object}	object{data=purchase.Session}
//	@Failure		400
//	@Failure		401		{object}	object{data=middleware.LoginRequired}
//	@Failure		500
//	@Router			/purchase/sessions [post]
func (h *handler) createOrResume(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	buyer := c.Get("address").(domain.Address)

	p := &createPayload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	wallet, err := h.account.GetWallet(ctx, buyer)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"buyer": buyer,
		}).Error("account.GetWallet failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	s, err := h.purchase.CreateOrResume(ctx, purchase.CreateParams{
		Buyer:          buyer,
		DepositAddress: wallet.DepositAddress,
		Nft: nftitem.Id{
			ChainId:         p.ChainId,
			ContractAddress: p.ContractAddress,
			TokenId:         p.TokenId,
		},
		Amount:   p.Amount,
		Currency: p.Currency,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, s)
}

// list
//
//	@Summary		List purchase sessions
//	@Description	Sessions of the signed in buyer, newest first
//	@Tags			purchase
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			status	query		string	false	"comma separated statuses"
//	@Param			offset	query		int		false	"offset"
//	@Param			limit	query		int		false	"limit, at most 100"
//	@Success		200		{object}	object{data=purchase.SearchResult}
//	@Failure		400
//	@Failure		401		{object}	object{data=middleware.LoginRequired}
//	@Router			/purchase/sessions [get]
func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	buyer := c.Get("address").(domain.Address)

	type params struct {
		Status string `query:"status"`
		Offset int    `query:"offset"`
		Limit  int    `query:"limit"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	statuses := []purchase.Status{}
	if len(p.Status) > 0 {
		for _, s := range strings.Split(p.Status, ",") {
			statuses = append(statuses, purchase.Status(strings.ToLower(strings.TrimSpace(s))))
		}
	}

	res, err := h.purchase.List(ctx, purchase.ListParams{
		Buyer:    buyer,
		Statuses: statuses,
		Offset:   p.Offset,
		Limit:    p.Limit,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// get
//
//	@Summary		Get purchase session
//	@Description	Session with the seconds left before it expires
//	@Tags			purchase
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id	path		string	true	"session id"
//	@Success		200	{object}	object{data=purchase.SessionView}
//	@Failure		401	{object}	object{data=middleware.LoginRequired}
//	@Failure		404
//	@Router			/purchase/sessions/{id} [get]
func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	buyer := c.Get("address").(domain.Address)

	res, err := h.purchase.Get(ctx, c.Param("id"), buyer)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

type attestationPayload struct {
	TxHash string `json:"txHash" validate:"required" example:"0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"`
}

// submitAttestation
//
//	@Summary		Submit payment attestation
//	@Description	Records the buyer's transaction hash and forwards it for verification
//	@Tags			purchase
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id		path		string					true	"session id"
//	@Param			params	body		http.attestationPayload	true	"params"
//	@Success		200		{object}	object{data=purchase.Session}
//	@Failure		400
//	@Failure		404
//	@Failure		409		"already submitted, confirmed or cancelled"
//	@Failure		410		"expired"
//	@Router			/purchase/sessions/{id}/attestation [post]
func (h *handler) submitAttestation(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	buyer := c.Get("address").(domain.Address)

	p := &attestationPayload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	s, err := h.purchase.SubmitAttestation(ctx, c.Param("id"), buyer, p.TxHash)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, s)
}

// cancel
//
//	@Summary		Cancel purchase session
//	@Tags			purchase
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id	path		string	true	"session id"
//	@Success		200	{object}	object{data=purchase.Session}
//	@Failure		404
//	@Failure		409
//	@Failure		410
//	@Router			/purchase/sessions/{id}/cancel [post]
func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	buyer := c.Get("address").(domain.Address)

	s, err := h.purchase.Cancel(ctx, c.Param("id"), buyer)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, s)
}

// expire
//
//	@Summary		Expire purchase session
//	@Description	Called when the countdown reaches zero, a session still within its window is returned unchanged
//	@Tags			purchase
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id	path		string	true	"session id"
//	@Success		200	{object}	object{data=purchase.Session}
//	@Failure		404
//	@Router			/purchase/sessions/{id}/expire [post]
func (h *handler) expire(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	buyer := c.Get("address").(domain.Address)
	id := c.Param("id")

	// ownership
	if _, err := h.purchase.Get(ctx, id, buyer); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	s, err := h.purchase.Expire(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, s)
}

// confirm
//
//	@Summary		Verification callback
//	@Description	The verification authority reports the outcome of an attestation
//	@Tags			purchase
//	@Accept			json
//	@Produce		json
//	@Param			X-Webhook-Secret	header		string						true	"shared secret"
//	@Param			params				body		purchase.VerificationResult	true	"params"
//	@Success		200					{object}	object{data=purchase.Session}
//	@Success		202					"rejection acknowledged"
//	@Failure		400
//	@Failure		401
//	@Failure		409
//	@Router			/purchase/webhook/confirm [post]
func (h *handler) confirm(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	secret := c.Request().Header.Get(HeaderWebhookSecret)
	if len(h.webhookSecret) == 0 || subtle.ConstantTimeCompare([]byte(secret), []byte(h.webhookSecret)) != 1 {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrUnauthorized)
	}

	p := &purchase.VerificationResult{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if !p.Confirmed {
		// the session stays awaiting verification until it expires
		ctx.WithFields(log.Fields{
			"sessionId": p.SessionId,
			"txHash":    p.TxHash,
			"reason":    p.Reason,
		}).Warn("attestation rejected")
		return delivery.MakeJsonResp(c, http.StatusAccepted, nil)
	}

	s, err := h.purchase.Confirm(ctx, p.SessionId, p.TxHash)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"sessionId": p.SessionId,
		}).Error("purchase.Confirm failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, s)
}
