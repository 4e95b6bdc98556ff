package countdown

import (
	"context"
	"sync"
	"time"
)

const defaultInterval = time.Second

// Ticker is the subset of *time.Ticker a Clock needs
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFactory func(d time.Duration) Ticker

type stdTicker struct {
	t *time.Ticker
}

func (t *stdTicker) C() <-chan time.Time {
	return t.t.C
}

func (t *stdTicker) Stop() {
	t.t.Stop()
}

func newStdTicker(d time.Duration) Ticker {
	return &stdTicker{t: time.NewTicker(d)}
}

type Options struct {
	interval  time.Duration
	now       func() time.Time
	newTicker TickerFactory
	onTick    func(remaining time.Duration)
	onExpire  func()
}

type OptionsFunc func(*Options)

func WithInterval(d time.Duration) OptionsFunc {
	return func(o *Options) {
		if d > 0 {
			o.interval = d
		}
	}
}

func WithNow(now func() time.Time) OptionsFunc {
	return func(o *Options) {
		o.now = now
	}
}

func WithTicker(f TickerFactory) OptionsFunc {
	return func(o *Options) {
		o.newTicker = f
	}
}

// WithOnTick is called with the remaining time on every tick, including the first one at mount
func WithOnTick(f func(remaining time.Duration)) OptionsFunc {
	return func(o *Options) {
		o.onTick = f
	}
}

// WithOnExpire is called once when the remaining time reaches zero
func WithOnExpire(f func()) OptionsFunc {
	return func(o *Options) {
		o.onExpire = f
	}
}

// Clock counts down to a fixed expiry. It can be mounted and unmounted any
// number of times, the expiry signal fires at most once.
type Clock struct {
	expiry time.Time
	opts   Options

	mu   sync.Mutex
	last time.Duration

	once    sync.Once
	expired chan struct{}
}

func New(expiry time.Time, fns ...OptionsFunc) *Clock {
	opts := Options{
		interval:  defaultInterval,
		now:       time.Now,
		newTicker: newStdTicker,
	}
	for _, fn := range fns {
		fn(&opts)
	}
	return &Clock{
		expiry:  expiry,
		opts:    opts,
		last:    -1,
		expired: make(chan struct{}),
	}
}

// Remaining returns max(0, expiry - now). It never increases, even if the
// wall clock steps backwards.
func (c *Clock) Remaining() time.Duration {
	r := c.expiry.Sub(c.opts.now())
	if r < 0 {
		r = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last >= 0 && r > c.last {
		r = c.last
	}
	c.last = r
	return r
}

// Expired is closed once the expiry signal fired
func (c *Clock) Expired() <-chan struct{} {
	return c.expired
}

func (c *Clock) IsExpired() bool {
	select {
	case <-c.expired:
		return true
	default:
		return false
	}
}

func (c *Clock) fire() {
	c.once.Do(func() {
		close(c.expired)
		if c.opts.onExpire != nil {
			c.opts.onExpire()
		}
	})
}

// tick reports whether the clock reached zero
func (c *Clock) tick() bool {
	r := c.Remaining()
	if c.opts.onTick != nil {
		c.opts.onTick(r)
	}
	if r == 0 {
		c.fire()
		return true
	}
	return false
}

// Handle stops one mount of a Clock
type Handle struct {
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Stop ends the mount and waits for its goroutine to return. Safe to call more than once.
func (h *Handle) Stop() {
	h.cancel()
	h.wg.Wait()
}

// Mount starts ticking until ctx is done, the handle is stopped or the clock expires.
// An already expired clock fires right away if it has not fired yet.
func (c *Clock) Mount(ctx context.Context) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel}
	h.wg.Add(1)

	go func() {
		defer h.wg.Done()

		if c.IsExpired() || c.tick() {
			return
		}

		ticker := c.opts.newTicker(c.opts.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				if c.tick() {
					return
				}
			}
		}
	}()

	return h
}
