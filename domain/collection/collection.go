package collection

import (
	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/domain"
)

type CollectionId struct {
	ChainId domain.ChainId `json:"chainId" bson:"chainId"`
	Address domain.Address `json:"erc721Address" bson:"erc721Address"`
}

type Collection struct {
	ChainId        domain.ChainId `json:"chainId" bson:"chainId"`
	Erc721Address  domain.Address `json:"erc721Address" bson:"erc721Address"`
	CollectionName string         `json:"collectionName" bson:"collectionName"`
	LogoImageUrl   string         `json:"logoImageUrl" bson:"logoImageUrl"`
	// banned or not
	IsAppropriate bool `json:"-" bson:"isAppropriate"`
	IsVerified    bool `json:"isVerified" bson:"isVerified"`
}

func (Collection) EntityKind() domain.EntityKind {
	return domain.EntityKindCollection
}

type Repo interface {
	FindOne(c ctx.Ctx, id CollectionId) (*Collection, error)
}
