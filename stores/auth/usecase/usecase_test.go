package usecase_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/ethereum"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/account"
	mAccount "github.com/x-xyz/checkout/domain/account/mocks"
	"github.com/x-xyz/checkout/stores/auth/usecase"
)

func TestSignAndParseToken(t *testing.T) {
	mockAccountUC := &mAccount.Usecase{}

	mockAccountUC.On("GetWallet", mock.Anything, domain.Address("0xABC")).Return(&account.Wallet{}, nil)

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", mockAccountUC)
	tkn, err := u.SignToken(ctx, "0xABC")
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)
	ads, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, "0xabc", ads)
}

func TestParseTokenRejects(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret", &mAccount.Usecase{})

	_, err := u.ParseToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// signed by someone else
	other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.JwtCustomClaims{Address: "0xabc"}).SignedString([]byte("other"))
	assert.NoError(t, err)
	_, err = u.ParseToken(ctx, other)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.JwtCustomClaims{
		Address:        "0xabc",
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Minute).Unix()},
	}).SignedString([]byte("jwt-secret"))
	assert.NoError(t, err)
	_, err = u.ParseToken(ctx, expired)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSignTokenAccountFailure(t *testing.T) {
	mockAccountUC := &mAccount.Usecase{}
	mockAccountUC.On("GetWallet", mock.Anything, domain.Address("0xabc")).Return(nil, domain.ErrInternalServerError)

	_, err := usecase.New("jwt-secret", mockAccountUC).SignToken(ctx.Background(), "0xabc")
	assert.ErrorIs(t, err, domain.ErrInternalServerError)
}

func TestLogin(t *testing.T) {
	privateKey, signer, err := ethereum.GenerateKey()
	require.NoError(t, err)
	address := domain.Address(signer.Hex())
	lower := domain.Address(address.ToLowerStr())

	sign := func(msg string) string {
		sig, err := ethereum.SignMsg(privateKey, []byte(msg))
		require.NoError(t, err)
		return sig
	}

	t.Run("valid signature", func(t *testing.T) {
		mockAccountUC := &mAccount.Usecase{}
		mockAccountUC.On("GetWallet", mock.Anything, lower).Return(&account.Wallet{}, nil).Once()
		u := usecase.New("jwt-secret", mockAccountUC)

		msg := domain.LoginMessage(address, time.Now().Unix())
		tkn, err := u.Login(ctx.Background(), domain.LoginParams{Address: address, Message: msg, Signature: sign(msg)})
		require.NoError(t, err)
		ads, err := u.ParseToken(ctx.Background(), tkn)
		require.NoError(t, err)
		assert.Equal(t, lower.ToLowerStr(), ads)
		mockAccountUC.AssertExpectations(t)
	})

	t.Run("stale message", func(t *testing.T) {
		u := usecase.New("jwt-secret", &mAccount.Usecase{})
		msg := domain.LoginMessage(address, time.Now().Add(-time.Hour).Unix())
		_, err := u.Login(ctx.Background(), domain.LoginParams{Address: address, Message: msg, Signature: sign(msg)})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("signed by someone else", func(t *testing.T) {
		_, other, err := ethereum.GenerateKey()
		require.NoError(t, err)
		u := usecase.New("jwt-secret", &mAccount.Usecase{})
		msg := domain.LoginMessage(domain.Address(other.Hex()), time.Now().Unix())
		_, err = u.Login(ctx.Background(), domain.LoginParams{Address: domain.Address(other.Hex()), Message: msg, Signature: sign(msg)})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("message for another address", func(t *testing.T) {
		u := usecase.New("jwt-secret", &mAccount.Usecase{})
		msg := domain.LoginMessage("0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d", time.Now().Unix())
		_, err := u.Login(ctx.Background(), domain.LoginParams{Address: address, Message: msg, Signature: sign(msg)})
		assert.ErrorIs(t, err, domain.ErrBadParamInput)
	})

	t.Run("malformed signature", func(t *testing.T) {
		u := usecase.New("jwt-secret", &mAccount.Usecase{})
		msg := domain.LoginMessage(address, time.Now().Unix())
		_, err := u.Login(ctx.Background(), domain.LoginParams{Address: address, Message: msg, Signature: "0x1234"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
