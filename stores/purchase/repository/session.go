package repository

import (
	"errors"
	"time"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/nftitem"
	"github.com/x-xyz/checkout/domain/purchase"
	"github.com/x-xyz/checkout/service/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/xerrors"
)

// Indexes of the purchase session collection. The partial unique index on
// activeKey allows one non-terminal session per (buyer, nft).
func Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "activeKey", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"activeKey": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "buyer", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "expiresAt", Value: 1}},
		},
	}
}

func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.EnsureIndexes(c, domain.TablePurchaseSessions, Indexes())
}

type impl struct {
	query query.Mongo
}

func New(query query.Mongo) purchase.Repo {
	return &impl{query}
}

func (im *impl) Insert(ctx ctx.Ctx, s *purchase.Session) error {
	s.Buyer = s.Buyer.ToLower()
	s.Nft.ContractAddress = s.Nft.ContractAddress.ToLower()
	s.DepositAddress = s.DepositAddress.ToLower()
	if s.Status.IsTerminal() {
		s.ActiveKey = ""
	} else {
		s.ActiveKey = purchase.ActiveKeyOf(s.Buyer, s.Nft)
	}

	err := im.query.Insert(ctx, domain.TablePurchaseSessions, s)
	if errors.Is(err, query.ErrDuplicateKey) {
		return purchase.ErrDuplicateActive
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"session": s,
		}).Error("failed to query.Insert")
		return err
	}
	return nil
}

func (im *impl) findOne(ctx ctx.Ctx, selector bson.M) (*purchase.Session, error) {
	res := purchase.Session{}
	err := im.query.FindOne(ctx, domain.TablePurchaseSessions, selector, &res)
	if errors.Is(err, query.ErrNotFound) {
		return nil, purchase.ErrSessionNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("failed to query.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *impl) FindOne(ctx ctx.Ctx, id string) (*purchase.Session, error) {
	return im.findOne(ctx, bson.M{"sessionId": id})
}

func (im *impl) FindActive(ctx ctx.Ctx, buyer domain.Address, nft nftitem.Id) (*purchase.Session, error) {
	return im.findOne(ctx, bson.M{"activeKey": purchase.ActiveKeyOf(buyer, nft)})
}

func selectorOf(opts purchase.FindAllOptions) bson.M {
	selector := bson.M{}

	if opts.Buyer != nil {
		selector["buyer"] = opts.Buyer.ToLower()
	}

	if len(opts.Statuses) > 0 {
		selector["status"] = bson.M{"$in": opts.Statuses}
	}

	return selector
}

func (im *impl) FindAll(ctx ctx.Ctx, options ...purchase.FindAllOptionsFunc) ([]*purchase.Session, error) {
	opts, err := purchase.GetFindAllOptions(options...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to purchase.GetFindAllOptions")
		return nil, err
	}

	offset, limit := 0, 0
	if opts.Offset != nil {
		offset = *opts.Offset
	}
	if opts.Limit != nil {
		limit = *opts.Limit
	}

	selector := selectorOf(opts)
	res := []*purchase.Session{}
	err = im.query.Search(ctx, domain.TablePurchaseSessions, offset, limit, "-createdAt", selector, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": selector,
		}).Error("failed to query.Search")
		return nil, err
	}
	return res, nil
}

func (im *impl) Count(ctx ctx.Ctx, options ...purchase.FindAllOptionsFunc) (int, error) {
	opts, err := purchase.GetFindAllOptions(options...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to purchase.GetFindAllOptions")
		return 0, err
	}

	selector := selectorOf(opts)
	n, err := im.query.Count(ctx, domain.TablePurchaseSessions, selector)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": selector,
		}).Error("failed to query.Count")
		return 0, err
	}
	return n, nil
}

func (im *impl) FindOverdue(ctx ctx.Ctx, now time.Time, limit int) ([]*purchase.Session, error) {
	selector := bson.M{
		"status":    bson.M{"$in": purchase.ActiveStatuses},
		"expiresAt": bson.M{"$lt": now},
	}
	res := []*purchase.Session{}
	err := im.query.Search(ctx, domain.TablePurchaseSessions, 0, limit, "expiresAt", selector, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": selector,
		}).Error("failed to query.Search")
		return nil, err
	}
	return res, nil
}

func transitionSelector(id string, cond purchase.TransitionCond) bson.M {
	selector := bson.M{"sessionId": id}

	selector["status"] = bson.M{"$in": cond.From}

	expiresAt := bson.M{}
	if cond.ExpiredAt != nil {
		expiresAt["$lt"] = *cond.ExpiredAt
	}
	if cond.ValidAt != nil {
		expiresAt["$gte"] = *cond.ValidAt
	}
	if len(expiresAt) > 0 {
		selector["expiresAt"] = expiresAt
	}

	if cond.TxHash != nil {
		selector["txHash"] = *cond.TxHash
	}

	return selector
}

func transitionUpdate(update purchase.TransitionUpdate) bson.M {
	set := bson.M{"status": update.To}

	if update.TxHash != nil {
		set["txHash"] = *update.TxHash
	}

	if update.To == purchase.StatusAwaitingVerification {
		set["submittedAt"] = update.At
	}

	res := bson.M{"$set": set}
	if update.To.IsTerminal() {
		set["finalizedAt"] = update.At
		res["$unset"] = bson.M{"activeKey": ""}
	}
	return res
}

func checkTransition(cond purchase.TransitionCond, update purchase.TransitionUpdate) error {
	if len(cond.From) == 0 {
		return xerrors.Errorf("unguarded transition to %s: %w", update.To, purchase.ErrIllegalTransition)
	}
	for _, from := range cond.From {
		if !from.CanTransitionTo(update.To) {
			return xerrors.Errorf("%s to %s: %w", from, update.To, purchase.ErrIllegalTransition)
		}
	}
	return nil
}

func (im *impl) Transition(ctx ctx.Ctx, id string, cond purchase.TransitionCond, update purchase.TransitionUpdate) (*purchase.Session, error) {
	if err := checkTransition(cond, update); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"sessionId": id,
		}).Error("checkTransition failed")
		return nil, err
	}

	selector := transitionSelector(id, cond)
	updater := transitionUpdate(update)

	res := purchase.Session{}
	err := im.query.FindOneAndPatch(ctx, domain.TablePurchaseSessions, selector, updater, &res)
	if errors.Is(err, query.ErrNotFound) {
		return nil, purchase.ErrTransitionConflict
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
			"update":   updater,
		}).Error("failed to query.FindOneAndPatch")
		return nil, err
	}
	return &res, nil
}
