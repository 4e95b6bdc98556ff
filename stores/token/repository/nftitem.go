package repository

import (
	"errors"
	"strconv"
	"time"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/keys"
	"github.com/x-xyz/checkout/domain/nftitem"
	"github.com/x-xyz/checkout/service/cache"
	compoundcache "github.com/x-xyz/checkout/service/cache/compoundCache"
	"github.com/x-xyz/checkout/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/checkout/service/cache/provider/redis"
	"github.com/x-xyz/checkout/service/query"
	"github.com/x-xyz/checkout/service/redis"
	"go.mongodb.org/mongo-driver/bson"
)

type nftitemImpl struct {
	q            query.Mongo
	nftitemCache cache.Service
}

// NewNftItem reads the items maintained by the indexer. Reads are cached for
// a few seconds locally and longer in redis when one is given.
func NewNftItem(q query.Mongo, redis redis.Service) nftitem.Repo {
	cacheServices := []cache.Service{
		cache.New(cache.ServiceConfig{
			Ttl:   10 * time.Second,
			Pfx:   keys.PfxNftItem,
			Cache: primitive.NewPrimitive(keys.PfxNftItem, 32),
		}),
	}

	if redis != nil {
		cacheServices = append(cacheServices, cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   keys.PfxNftItem,
			Cache: redisCache.NewRedis(redis),
		}))
	}

	return &nftitemImpl{
		q:            q,
		nftitemCache: compoundcache.NewCompoundCache(cacheServices),
	}
}

func (im *nftitemImpl) FindOne(c ctx.Ctx, id nftitem.Id) (*nftitem.NftItem, error) {
	id.ContractAddress = id.ContractAddress.ToLower()
	key := keys.RedisKey(strconv.Itoa(int(id.ChainId)), string(id.ContractAddress), string(id.TokenId))

	res := &nftitem.NftItem{}

	if err := im.nftitemCache.GetByFunc(c, key, res, func() (interface{}, error) {
		return im.findOne(c, id)
	}); err != nil {
		return nil, err
	}

	return res, nil
}

func (im *nftitemImpl) findOne(c ctx.Ctx, id nftitem.Id) (*nftitem.NftItem, error) {
	res := &nftitem.NftItem{}

	if err := im.q.FindOne(c, domain.TableNFTItems, bson.M{
		"chainId":         id.ChainId,
		"contractAddress": id.ContractAddress,
		"tokenID":         id.TokenId,
	}, res); errors.Is(err, query.ErrNotFound) {
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
