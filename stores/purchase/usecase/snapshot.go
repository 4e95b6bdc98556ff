package usecase

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/collection"
	"github.com/x-xyz/checkout/domain/nftitem"
	"github.com/x-xyz/checkout/domain/purchase"
	"golang.org/x/xerrors"
)

// snapshot freezes what the buyer saw of the listing at t
func (im *impl) snapshot(c ctx.Ctx, id nftitem.Id, t time.Time) (*purchase.Snapshot, error) {
	item, err := im.nftitemRepo.FindOne(c, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, xerrors.Errorf("nft %s not found: %w", id, purchase.ErrValidation)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("nftitemRepo.FindOne failed")
		return nil, err
	}

	if !item.IsListed(t) {
		return nil, xerrors.Errorf("nft %s not listed: %w", id, purchase.ErrValidation)
	}

	res := &purchase.Snapshot{
		Name:  item.Name,
		Image: item.Image(),
		Collection: purchase.CollectionRef{
			Address: id.ContractAddress.ToLower(),
		},
		Price: decimal.NewFromFloat(*item.Price).String(),
	}

	col, err := im.collectionRepo.FindOne(c, collection.CollectionId{ChainId: id.ChainId, Address: id.ContractAddress.ToLower()})
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Warn("collectionRepo.FindOne failed")
	} else {
		res.Collection.Name = col.CollectionName
	}

	if item.PaymentToken != nil {
		token, err := im.paytokenRepo.FindOne(c, id.ChainId, item.PaymentToken.ToLower())
		if err != nil {
			c.WithFields(log.Fields{
				"err":   err,
				"token": *item.PaymentToken,
			}).Warn("paytokenRepo.FindOne failed")
			res.Currency = item.PaymentToken.ToLowerStr()
		} else {
			res.Currency = token.Symbol
		}
	}

	return res, nil
}
