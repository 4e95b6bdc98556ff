package countdown

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type fakeTicker struct {
	c       chan time.Time
	stopped int32
}

func (t *fakeTicker) C() <-chan time.Time {
	return t.c
}

func (t *fakeTicker) Stop() {
	atomic.StoreInt32(&t.stopped, 1)
}

type fakeNow struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeNow) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeNow) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

type CountdownTestSuite struct {
	suite.Suite

	start   time.Time
	now     *fakeNow
	tickers chan *fakeTicker
}

func (s *CountdownTestSuite) SetupTest() {
	s.start = time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = &fakeNow{now: s.start}
	s.tickers = make(chan *fakeTicker, 8)
}

func (s *CountdownTestSuite) newTicker(time.Duration) Ticker {
	t := &fakeTicker{c: make(chan time.Time)}
	s.tickers <- t
	return t
}

func (s *CountdownTestSuite) nextTicker() *fakeTicker {
	select {
	case t := <-s.tickers:
		return t
	case <-time.After(time.Second):
		s.FailNow("ticker not created")
		return nil
	}
}

func (s *CountdownTestSuite) TestRemaining() {
	c := New(s.start.Add(30*time.Minute), WithNow(s.now.Now))
	s.Equal(30*time.Minute, c.Remaining())

	s.now.Set(s.start.Add(29*time.Minute + 59*time.Second))
	s.Equal(time.Second, c.Remaining())

	// wall clock stepping back does not add time
	s.now.Set(s.start)
	s.Equal(time.Second, c.Remaining())

	s.now.Set(s.start.Add(time.Hour))
	s.Equal(time.Duration(0), c.Remaining())
}

func (s *CountdownTestSuite) TestFiresOnceAcrossRemounts() {
	var fired int32
	var ticks []time.Duration
	var mu sync.Mutex
	c := New(
		s.start.Add(2*time.Second),
		WithNow(s.now.Now),
		WithTicker(s.newTicker),
		WithOnTick(func(r time.Duration) {
			mu.Lock()
			defer mu.Unlock()
			ticks = append(ticks, r)
		}),
		WithOnExpire(func() { atomic.AddInt32(&fired, 1) }),
	)

	h := c.Mount(context.Background())
	t1 := s.nextTicker()
	s.now.Set(s.start.Add(time.Second))
	t1.c <- s.now.Now()
	h.Stop()
	s.Equal(int32(1), atomic.LoadInt32(&t1.stopped))
	s.False(c.IsExpired())

	h = c.Mount(context.Background())
	t2 := s.nextTicker()
	s.now.Set(s.start.Add(3 * time.Second))
	t2.c <- s.now.Now()

	select {
	case <-c.Expired():
	case <-time.After(time.Second):
		s.FailNow("clock did not expire")
	}
	h.Stop()

	// remounting an expired clock does not fire again
	c.Mount(context.Background()).Stop()
	c.Mount(context.Background()).Stop()

	s.Equal(int32(1), atomic.LoadInt32(&fired))
	mu.Lock()
	defer mu.Unlock()
	s.Equal([]time.Duration{2 * time.Second, time.Second, time.Second, 0}, ticks)
}

func (s *CountdownTestSuite) TestMountExpiredFiresImmediately() {
	var fired int32
	c := New(
		s.start.Add(-time.Second),
		WithNow(s.now.Now),
		WithTicker(s.newTicker),
		WithOnExpire(func() { atomic.AddInt32(&fired, 1) }),
	)

	h := c.Mount(context.Background())
	h.Stop()
	s.True(c.IsExpired())
	s.Equal(int32(1), atomic.LoadInt32(&fired))
	s.Len(s.tickers, 0)
}

func (s *CountdownTestSuite) TestContextCancelStopsTicking() {
	ctx, cancel := context.WithCancel(context.Background())
	c := New(s.start.Add(time.Minute), WithNow(s.now.Now), WithTicker(s.newTicker))

	h := c.Mount(ctx)
	t := s.nextTicker()
	cancel()
	h.Stop()
	h.Stop()

	s.Equal(int32(1), atomic.LoadInt32(&t.stopped))
	s.False(c.IsExpired())
}

func TestCountdownTestSuite(t *testing.T) {
	suite.Run(t, new(CountdownTestSuite))
}
