package usecase

import (
	"errors"

	"github.com/x-xyz/checkout/base/ctx"
	hcdomain "github.com/x-xyz/checkout/domain/healthcheck"
)

type impl struct {
	repo hcdomain.HealthCheckRepo
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo: repo,
	}
}

func statusOf(err error) string {
	if err != nil {
		return hcdomain.StatusDown
	}
	return hcdomain.StatusOk
}

func (im *impl) Check(context ctx.Ctx) (hcdomain.Report, error) {
	dbErr := im.repo.PingDB(context)
	cacheErr := im.repo.PingCache(context)
	if dbErr != nil {
		context.WithField("err", dbErr).Warn("repo.PingDB failed")
	}
	if cacheErr != nil {
		context.WithField("err", cacheErr).Warn("repo.PingCache failed")
	}
	return hcdomain.Report{
		Mongo: statusOf(dbErr),
		Cache: statusOf(cacheErr),
	}, errors.Join(dbErr, cacheErr)
}
