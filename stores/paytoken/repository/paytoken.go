package repository

import (
	"errors"
	"time"

	bCtx "github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/database/mongoclient"
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/domain"
	"github.com/x-xyz/checkout/domain/keys"
	"github.com/x-xyz/checkout/service/cache"
	"github.com/x-xyz/checkout/service/cache/provider/primitive"
	"github.com/x-xyz/checkout/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

const payTokenTtl = 5 * time.Minute

type payTokenMongoRepo struct {
	q     query.Mongo
	cache cache.Service
}

// NewPayTokenRepo reads the accepted pay tokens, cached in process since they rarely change
func NewPayTokenRepo(q query.Mongo) domain.PayTokenRepo {
	return &payTokenMongoRepo{
		q: q,
		cache: cache.New(cache.ServiceConfig{
			Ttl:   payTokenTtl,
			Pfx:   keys.PfxPayToken,
			Cache: primitive.NewPrimitive(keys.PfxPayToken, 4),
		}),
	}
}

func (r *payTokenMongoRepo) findOne(ctx bCtx.Ctx, key string, qry bson.M) (*domain.PayToken, error) {
	payToken := &domain.PayToken{}
	if err := r.cache.GetByFunc(ctx, key, payToken, func() (interface{}, error) {
		res := &domain.PayToken{}
		if err := r.q.FindOne(ctx, domain.TablePayTokens, qry, res); errors.Is(err, query.ErrNotFound) {
			return nil, domain.ErrNotFound
		} else if err != nil {
			ctx.WithFields(log.Fields{
				"err":   err,
				"query": qry,
			}).Error("q.FindOne failed")
			return nil, err
		}
		return res, nil
	}); err != nil {
		return nil, err
	}
	return payToken, nil
}

func (r *payTokenMongoRepo) FindOne(ctx bCtx.Ctx, chainId domain.ChainId, tokenAddress domain.Address) (*domain.PayToken, error) {
	qry, err := mongoclient.MakeBsonM(&domain.PayToken{ChainId: chainId, Address: tokenAddress.ToLower()})
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}
	return r.findOne(ctx, keys.RedisKey(chainId.String(), tokenAddress.ToLowerStr()), qry)
}

func (r *payTokenMongoRepo) FindBySymbol(ctx bCtx.Ctx, chainId domain.ChainId, symbol string) (*domain.PayToken, error) {
	symbol = domain.NormalizeCurrency(symbol)
	return r.findOne(ctx, keys.RedisKey(chainId.String(), "symbol", symbol), bson.M{"chainId": chainId, "symbol": symbol})
}
