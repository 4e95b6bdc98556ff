package sweeper

import (
	"errors"
	"time"

	"github.com/x-xyz/checkout/base/backoff"
	bCtx "github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/env"
	"github.com/x-xyz/checkout/base/goroutine"
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/base/metrics"
	"github.com/x-xyz/checkout/domain/keys"
	"github.com/x-xyz/checkout/domain/purchase"
	"github.com/x-xyz/checkout/service/redis"
)

const (
	defaultInterval = 10 * time.Second
	defaultBatch    = 100
)

var met = metrics.New("sweeper")

type SweeperCfg struct {
	Purchase purchase.Usecase
	// Redis holds the lock that keeps replicas from sweeping at once, nil sweeps unlocked
	Redis    redis.Service
	Backoff  *backoff.Backoff
	Interval time.Duration
	Batch    int
}

// Sweeper expires overdue purchase sessions nobody else expired
type Sweeper struct {
	purchase  purchase.Usecase
	redis     redis.Service
	backoff   *backoff.Backoff
	interval  time.Duration
	batch     int
	stoppedCh chan interface{}
}

func New(cfg *SweeperCfg) *Sweeper {
	s := &Sweeper{
		purchase:  cfg.Purchase,
		redis:     cfg.Redis,
		backoff:   cfg.Backoff,
		interval:  cfg.Interval,
		batch:     cfg.Batch,
		stoppedCh: make(chan interface{}),
	}
	if s.interval <= 0 {
		s.interval = defaultInterval
	}
	if s.batch <= 0 {
		s.batch = defaultBatch
	}
	if s.backoff == nil {
		s.backoff = backoff.NewExponential(time.Second, time.Minute)
	}
	return s
}

// Start runs the loop until ctx is done, a panicking round restarts it
func (s *Sweeper) Start(ctx bCtx.Ctx) {
	go func() {
		defer close(s.stoppedCh)
		for {
			_, panicked := <-goroutine.RecoverableGo(
				func() { s.loop(ctx) },
				goroutine.WithName("sweeper"),
				goroutine.WithAfterRecovered(func(*goroutine.PanicEvent) { met.BumpSum("panic", 1) }),
			)
			if !panicked {
				return
			}
			ctx.Warn("restarting sweeper loop")
			if s.backoff.Backoff(ctx) != nil {
				return
			}
		}
	}()
}

func (s *Sweeper) Wait() {
	<-s.stoppedCh
}

func (s *Sweeper) loop(ctx bCtx.Ctx) {
	nextTick := time.Second * 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(nextTick):
		}

		moved, err := s.SweepOnce(ctx)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"backoff": s.backoff.NextDuration,
			}).Error("SweepOnce failed")
			if s.backoff.Backoff(ctx) != nil {
				// ctx closed
				return
			}
			nextTick = 0
			continue
		}
		s.backoff.Reset()

		if moved >= s.batch {
			// more may be waiting
			nextTick = 0
		} else {
			nextTick = s.interval
		}
	}
}

// SweepOnce expires one batch while holding the sweep lock. It returns zero
// without sweeping when another replica holds the lock.
func (s *Sweeper) SweepOnce(ctx bCtx.Ctx) (int, error) {
	defer met.BumpTime("sweep.time").End()

	if s.redis != nil {
		key := keys.RedisKey(keys.PfxSweeperLock, "purchase")
		if err := s.redis.SetNX(ctx, key, []byte(env.PodName()), s.interval); errors.Is(err, redis.ErrKeyExists) {
			return 0, nil
		} else if err != nil {
			ctx.WithField("err", err).Error("redis.SetNX failed")
			return 0, err
		}
		defer func() {
			if _, err := s.redis.Del(ctx, key); err != nil {
				ctx.WithField("err", err).Warn("redis.Del failed")
			}
		}()
	}

	moved, err := s.purchase.SweepExpired(ctx, s.batch)
	if err != nil {
		return moved, err
	}
	if moved > 0 {
		met.BumpSum("sweep.expired", float64(moved))
		ctx.WithField("expired", moved).Info("swept overdue sessions")
	}
	return moved, nil
}
