package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/x-xyz/checkout/base/countdown"
	"github.com/x-xyz/checkout/domain/purchase"
)

type watch struct {
	clock  *countdown.Clock
	handle *countdown.Handle
}

// scheduler mounts one countdown clock per active session and calls onExpire
// when a clock runs out. The worker sweeper covers sessions it never saw.
type scheduler struct {
	interval time.Duration
	now      func() time.Time
	onExpire func(id string)

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	watches map[string]*watch
	closed  bool
}

func newScheduler(interval time.Duration, now func() time.Time, onExpire func(id string)) *scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &scheduler{
		interval: interval,
		now:      now,
		onExpire: onExpire,
		ctx:      ctx,
		cancel:   cancel,
		watches:  make(map[string]*watch),
	}
}

func (s *scheduler) watch(sess *purchase.Session) {
	if s == nil || sess.Status.IsTerminal() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if _, ok := s.watches[sess.Id]; ok {
		return
	}

	id := sess.Id
	w := &watch{}
	w.clock = countdown.New(
		sess.ExpiresAt,
		countdown.WithInterval(s.interval),
		countdown.WithNow(s.now),
		countdown.WithOnExpire(func() {
			s.mu.Lock()
			if s.watches[id] == w {
				delete(s.watches, id)
			}
			s.mu.Unlock()
			s.onExpire(id)
		}),
	)
	s.watches[id] = w
	w.handle = w.clock.Mount(s.ctx)
}

func (s *scheduler) forget(id string) {
	if s == nil {
		return
	}

	s.mu.Lock()
	w, ok := s.watches[id]
	delete(s.watches, id)
	s.mu.Unlock()

	// stopping outside the lock, the clock goroutine may be waiting for it
	if ok {
		w.handle.Stop()
	}
}

func (s *scheduler) size() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.watches)
}

func (s *scheduler) close() {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.closed = true
	watches := s.watches
	s.watches = make(map[string]*watch)
	s.mu.Unlock()

	s.cancel()
	for _, w := range watches {
		w.handle.Stop()
	}
}
