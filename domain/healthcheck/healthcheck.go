package healthcheck

import (
	"github.com/x-xyz/checkout/base/ctx"
)

const (
	StatusOk   = "ok"
	StatusDown = "down"
)

// Report has the status of each dependency
type Report struct {
	Mongo string `json:"mongo"`
	Cache string `json:"cache"`
}

func (r Report) Healthy() bool {
	return r.Mongo == StatusOk && r.Cache == StatusOk
}

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	// Check pings every dependency, err joins the failures
	Check(context ctx.Ctx) (Report, error)
}

// HealthCheckRepo is repository layer of healthCheck
type HealthCheckRepo interface {
	PingDB(context ctx.Ctx) error
	PingCache(context ctx.Ctx) error
}
