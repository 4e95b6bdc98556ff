package nftitem

import (
	"fmt"
	"time"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/domain"
)

type Id struct {
	ChainId         domain.ChainId `json:"chainId" bson:"chainId"`
	ContractAddress domain.Address `json:"contractAddress" bson:"contractAddress"`
	TokenId         domain.TokenId `json:"tokenId" bson:"tokenID"`
}

func (id Id) String() string {
	return fmt.Sprintf("%d:%s:%s", id.ChainId, id.ContractAddress.ToLower(), id.TokenId)
}

func (id Id) Validate() error {
	if id.ChainId <= 0 {
		return domain.ErrInvalidChainId
	}
	if id.ContractAddress.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	if len(id.TokenId) == 0 {
		return domain.ErrBadParamInput
	}
	return nil
}

// NftItem is the read model of an indexed token, maintained by the indexer service
type NftItem struct {
	ChainId         domain.ChainId  `json:"chainId" bson:"chainId"`
	ContractAddress domain.Address  `json:"contractAddress" bson:"contractAddress"`
	TokenId         domain.TokenId  `json:"tokenId" bson:"tokenID"`
	Name            string          `json:"name" bson:"name"`
	ImageUrl        string          `json:"imageUrl" bson:"imageURL"`
	HostedImageUrl  string          `json:"hostedImageUrl" bson:"hostedImageURL"`
	Owner           domain.Address  `json:"owner" bson:"owner"`
	Price           *float64        `json:"price" bson:"price"`
	PaymentToken    *domain.Address `json:"paymentToken" bson:"paymentToken"`
	IsAppropriate   *bool           `json:"isAppropriate" bson:"isAppropriate"`
	ListedAt        *time.Time      `json:"listedAt,omitempty" bson:"listedAt"`
	SaleEndsAt      *time.Time      `json:"saleEndsAt,omitempty" bson:"saleEndsAt"`
}

func (NftItem) EntityKind() domain.EntityKind {
	return domain.EntityKindNftItem
}

// Image prefers the hosted copy
func (i *NftItem) Image() string {
	if len(i.HostedImageUrl) > 0 {
		return i.HostedImageUrl
	}
	return i.ImageUrl
}

// IsListed tells if the item has an active price at t
func (i *NftItem) IsListed(t time.Time) bool {
	if i.Price == nil || *i.Price <= 0 {
		return false
	}
	if i.IsAppropriate != nil && !*i.IsAppropriate {
		return false
	}
	return i.SaleEndsAt == nil || i.SaleEndsAt.After(t)
}

type Repo interface {
	FindOne(c ctx.Ctx, id Id) (*NftItem, error)
}
