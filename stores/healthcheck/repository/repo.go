package repository

import (
	"time"

	"github.com/x-xyz/checkout/base/ctx"
	hcdomain "github.com/x-xyz/checkout/domain/healthcheck"
	"github.com/x-xyz/checkout/service/query"
	"github.com/x-xyz/checkout/service/redis"
)

const pingTimeout = 2 * time.Second

type impl struct {
	q          query.Mongo
	redisCache redis.Service
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(
	q query.Mongo,
	redisCache redis.Service,
) hcdomain.HealthCheckRepo {
	return &impl{
		q:          q,
		redisCache: redisCache,
	}
}

func (im *impl) PingDB(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if err := im.q.Ping(ctx); err != nil {
		context.WithField("err", err).Error("ping mongo error")
		return err
	}
	return nil
}

// PingCache is a no-op without redis
func (im *impl) PingCache(context ctx.Ctx) error {
	if im.redisCache == nil {
		return nil
	}
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if err := im.redisCache.Ping(ctx); err != nil {
		context.WithField("err", err).Error("ping redis error")
		return err
	}
	return nil
}
