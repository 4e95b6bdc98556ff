package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/ethereum"
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/account"
)

const (
	tokenTtl = 24 * time.Hour
	// loginSkew bounds how old a signed login message may be
	loginSkew = 5 * time.Minute
)

var timeNow = time.Now

type impl struct {
	jwtSecret []byte
	account   account.Usecase
}

func New(jwtSecret string, account account.Usecase) domain.AuthUsecase {
	return &impl{
		jwtSecret: []byte(jwtSecret),
		account:   account,
	}
}

func (im *impl) Login(ctx ctx.Ctx, params domain.LoginParams) (string, error) {
	address, issuedAt, err := domain.ParseLoginMessage(params.Message)
	if err != nil {
		return "", err
	}
	if address != domain.Address(params.Address.ToLowerStr()) {
		return "", fmt.Errorf("%w: message is for another address", domain.ErrBadParamInput)
	}
	if d := timeNow().Sub(time.Unix(issuedAt, 0)); d > loginSkew || d < -loginSkew {
		return "", fmt.Errorf("%w: login message expired", domain.ErrUnauthorized)
	}

	ok, err := ethereum.ValidateMsgSignature([]byte(params.Message), params.Signature, address.ToLowerStr())
	if err != nil {
		ctx.WithFields(log.Fields{"address": address, "err": err}).Warn("ethereum.ValidateMsgSignature failed")
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: signer mismatch", domain.ErrUnauthorized)
	}
	return im.SignToken(ctx, address)
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address) (string, error) {
	// provisions the account and its deposit address
	if _, err := im.account.GetWallet(ctx, address); err != nil {
		ctx.WithField("err", err).Error("account.GetWallet failed")
		return "", err
	}

	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: timeNow().Add(tokenTtl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})

	if token != nil {
		if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid && claims.Address != "" {
			return claims.Address, nil
		}
	}

	if err == nil {
		return "", domain.ErrUnauthorized
	}
	return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
}
