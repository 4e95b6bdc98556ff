package usecase

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/checkout/domain/purchase"
)

type clockNow struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clockNow) get() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clockNow) set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func TestSchedulerFiresOnExpiry(t *testing.T) {
	start := time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC)
	now := &clockNow{now: start}
	fired := make(chan string, 4)
	s := newScheduler(5*time.Millisecond, now.get, func(id string) { fired <- id })
	defer s.close()

	sess := &purchase.Session{Id: "s1", Status: purchase.StatusPending, ExpiresAt: start.Add(purchase.DefaultWindow)}
	s.watch(sess)
	s.watch(sess)
	assert.Equal(t, 1, s.size())

	now.set(start.Add(purchase.DefaultWindow + time.Second))
	select {
	case id := <-fired:
		assert.Equal(t, "s1", id)
	case <-time.After(time.Second):
		require.FailNow(t, "scheduler did not fire")
	}

	assert.Eventually(t, func() bool { return s.size() == 0 }, time.Second, 5*time.Millisecond)
	assert.Len(t, fired, 0)
}

func TestSchedulerForgetAndClose(t *testing.T) {
	start := time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC)
	now := &clockNow{now: start}
	fired := make(chan string, 4)
	s := newScheduler(5*time.Millisecond, now.get, func(id string) { fired <- id })

	s.watch(&purchase.Session{Id: "s1", Status: purchase.StatusPending, ExpiresAt: start.Add(time.Minute)})
	s.watch(&purchase.Session{Id: "s2", Status: purchase.StatusAwaitingVerification, ExpiresAt: start.Add(time.Minute)})
	s.watch(&purchase.Session{Id: "s3", Status: purchase.StatusConfirmed, ExpiresAt: start.Add(time.Minute)})
	assert.Equal(t, 2, s.size())

	s.forget("s1")
	s.forget("unknown")
	assert.Equal(t, 1, s.size())

	s.close()
	assert.Equal(t, 0, s.size())

	// nothing fires once closed
	now.set(start.Add(time.Hour))
	s.watch(&purchase.Session{Id: "s4", Status: purchase.StatusPending, ExpiresAt: start})
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, fired, 0)
}

func TestNilScheduler(t *testing.T) {
	var s *scheduler
	s.watch(&purchase.Session{Id: "s1"})
	s.forget("s1")
	s.close()
	assert.Equal(t, 0, s.size())
}
