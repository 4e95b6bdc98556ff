package account

import (
	"time"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/domain"
)

type Account struct {
	Address domain.Address `bson:"address"`
	Alias   string         `bson:"alias"`
	// DepositAddress is where the buyer sends payments, empty means the platform default
	DepositAddress domain.Address `bson:"depositAddress"`
	CreatedAt      time.Time      `bson:"createdAt,omitempty"`
	UpdatedAt      time.Time      `bson:"updatedAt,omitempty"`
}

// Wallet is returned by the wallet lookup endpoint
type Wallet struct {
	Address        domain.Address `json:"address"`
	DepositAddress domain.Address `json:"depositAddress"`
}

type Repo interface {
	Get(c ctx.Ctx, address domain.Address) (*Account, error)
	Insert(c ctx.Ctx, account *Account) error
}

type Usecase interface {
	// GetWallet resolves the deposit address of address, creating the account on first use
	GetWallet(c ctx.Ctx, address domain.Address) (*Wallet, error)
}
