package repository

import (
	"errors"
	"time"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/database/mongoclient"
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/collection"
	"github.com/x-xyz/checkout/domain/keys"
	"github.com/x-xyz/checkout/service/cache"
	"github.com/x-xyz/checkout/service/cache/provider"
	"github.com/x-xyz/checkout/service/cache/provider/compound"
	"github.com/x-xyz/checkout/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/checkout/service/cache/provider/redis"
	"github.com/x-xyz/checkout/service/query"
	"github.com/x-xyz/checkout/service/redis"
)

const collectionCacheTtl = 5 * time.Minute

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) collection.Repo {
	return &impl{q}
}

func (im *impl) FindOne(c ctx.Ctx, id collection.CollectionId) (*collection.Collection, error) {
	id.Address = id.Address.ToLower()
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}

	res := &collection.Collection{}
	if err := im.q.FindOne(c, domain.TableCollections, qry, res); errors.Is(err, query.ErrNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

type cachedImpl struct {
	repo  collection.Repo
	cache cache.Service
}

// NewCached serves collection lookups from freecache, then redis, then repo
func NewCached(repo collection.Repo, redis redis.Service) collection.Repo {
	layers := []provider.Provider{primitive.NewPrimitive(keys.PfxCollection, 8)}
	if redis != nil {
		layers = append(layers, redisCache.NewRedis(redis))
	}

	return &cachedImpl{
		repo: repo,
		cache: cache.New(cache.ServiceConfig{
			Ttl:   collectionCacheTtl,
			Pfx:   keys.PfxCollection,
			Cache: compound.NewCompound(layers),
		}),
	}
}

func (im *cachedImpl) FindOne(c ctx.Ctx, id collection.CollectionId) (*collection.Collection, error) {
	key := keys.RedisKey(id.ChainId.String(), id.Address.ToLowerStr())
	res := &collection.Collection{}
	if err := im.cache.GetByFunc(c, key, res, func() (interface{}, error) {
		return im.repo.FindOne(c, id)
	}); err != nil {
		return nil, err
	}
	return res, nil
}
