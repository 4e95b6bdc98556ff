package domain

import (
	"fmt"

	"github.com/golang-jwt/jwt"
	"github.com/x-xyz/checkout/base/ctx"
)

const loginMessageFormat = "Sign in to X checkout\naddress: %s\nissuedAt: %d"

type JwtCustomClaims struct {
	Address string `json:"data"` // name data for backward compatibility
	jwt.StandardClaims
}

// LoginParams carries a personal_sign signature over LoginMessage
type LoginParams struct {
	Address   Address `json:"address" validate:"required,eth_addr" example:"0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"`
	Message   string  `json:"message" validate:"required"`
	Signature string  `json:"signature" validate:"required"`
}

// LoginMessage is the text a wallet signs to log in
func LoginMessage(address Address, issuedAt int64) string {
	return fmt.Sprintf(loginMessageFormat, address.ToLowerStr(), issuedAt)
}

// ParseLoginMessage is the inverse of LoginMessage
func ParseLoginMessage(msg string) (Address, int64, error) {
	var (
		address  string
		issuedAt int64
	)
	if _, err := fmt.Sscanf(msg, loginMessageFormat, &address, &issuedAt); err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrBadParamInput, err)
	}
	if LoginMessage(Address(address), issuedAt) != msg {
		return "", 0, ErrBadParamInput
	}
	return Address(address), issuedAt, nil
}

type AuthUsecase interface {
	// Login checks a wallet signature and returns an access token for the signer
	Login(ctx ctx.Ctx, params LoginParams) (string, error)
	SignToken(ctx ctx.Ctx, address Address) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (address string, err error)
}
