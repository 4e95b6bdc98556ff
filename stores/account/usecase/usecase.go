package usecase

import (
	"errors"
	"time"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/account"
)

var timeNow = time.Now

type AccountUseCaseCfg struct {
	Repo account.Repo
	// DepositAddress is assigned to accounts without a dedicated one
	DepositAddress domain.Address
}

type impl struct {
	repo           account.Repo
	depositAddress domain.Address
}

// New creates account usecase
func New(cfg *AccountUseCaseCfg) account.Usecase {
	return &impl{
		repo:           cfg.Repo,
		depositAddress: cfg.DepositAddress.ToLower(),
	}
}

func (im *impl) GetWallet(c ctx.Ctx, address domain.Address) (*account.Wallet, error) {
	address = address.ToLower()
	acc, err := im.getOrCreate(c, address)
	if err != nil {
		return nil, err
	}

	deposit := acc.DepositAddress
	if deposit == "" {
		deposit = im.depositAddress
	}
	if deposit == "" {
		c.WithField("address", address).Error("no deposit address configured")
		return nil, domain.ErrInternalServerError
	}

	return &account.Wallet{
		Address:        acc.Address,
		DepositAddress: deposit,
	}, nil
}

func (im *impl) getOrCreate(c ctx.Ctx, address domain.Address) (*account.Account, error) {
	acc, err := im.repo.Get(c, address)
	if err == nil {
		return acc, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("repo.Get failed")
		return nil, err
	}

	now := timeNow().UTC()
	acc = &account.Account{
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := im.repo.Insert(c, acc); errors.Is(err, domain.ErrConflict) {
		// created by a concurrent request
		return im.repo.Get(c, address)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("repo.Insert failed")
		return nil, err
	}
	return acc, nil
}
