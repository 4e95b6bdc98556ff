package repository

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/account"
	"github.com/x-xyz/checkout/domain/keys"
	"github.com/x-xyz/checkout/service/cache"
	"github.com/x-xyz/checkout/service/cache/provider"
	"github.com/x-xyz/checkout/service/cache/provider/compound"
	"github.com/x-xyz/checkout/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/checkout/service/cache/provider/redis"
	"github.com/x-xyz/checkout/service/query"
	"github.com/x-xyz/checkout/service/redis"
)

func Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "address", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
}

type impl struct {
	query        query.Mongo
	accountCache cache.Service
}

// New creates new account repo
func New(query query.Mongo, redis redis.Service) account.Repo {
	cacheProviders := []provider.Provider{
		primitive.NewPrimitive(keys.PfxAccount, 16),
	}

	if redis != nil {
		cacheProviders = append(cacheProviders, redisCache.NewRedis(redis))
	}

	return &impl{
		query: query,
		accountCache: cache.New(cache.ServiceConfig{
			Ttl:   time.Hour,
			Pfx:   keys.PfxAccount,
			Cache: compound.NewCompound(cacheProviders),
		}),
	}
}

func (im *impl) Get(c ctx.Ctx, address domain.Address) (*account.Account, error) {
	res := &account.Account{}

	if err := im.accountCache.GetByFunc(c, address.ToLowerStr(), res, func() (interface{}, error) {
		return im.get(c, address)
	}); errors.Is(err, domain.ErrNotFound) {
		return nil, err
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("accountCache.GetByFunc failed")
		return nil, err
	}

	return res, nil
}

func (im *impl) get(c ctx.Ctx, address domain.Address) (*account.Account, error) {
	a := &account.Account{}
	err := im.query.FindOne(c, domain.TableAccounts, bson.M{"address": address.ToLower()}, a)
	if errors.Is(err, query.ErrNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"address": address,
			"err":     err,
		}).Error("find account failed")
		return nil, err
	}
	return a, nil
}

func (im *impl) Insert(c ctx.Ctx, a *account.Account) error {
	a.Address = a.Address.ToLower()
	a.DepositAddress = a.DepositAddress.ToLower()
	if err := im.query.Insert(c, domain.TableAccounts, a); errors.Is(err, query.ErrDuplicateKey) {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{
			"address": a.Address,
			"err":     err,
		}).Error("insert account failed")
		return err
	}
	return nil
}
