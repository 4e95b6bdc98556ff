package primitive

import (
	"math"
	"time"

	"github.com/coocood/freecache"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/service/cache/provider"
)

type impl struct {
	name  string
	cache *freecache.Cache
}

// NewPrimitive is an in-process cache of sizeMB megabytes
func NewPrimitive(name string, sizeMB int) provider.Provider {
	return &impl{name, freecache.NewCache(sizeMB * 1024 * 1024)}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, expireAt, err := im.cache.GetWithExpiration([]byte(key))
	if err == freecache.ErrNotFound {
		return nil, 0, provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).WithField("cache", im.name).Error("cache.Get failed")
		return nil, 0, err
	}

	// freecache returns the expire timestamp, 0 when the entry never expires
	if expireAt == 0 {
		return val, 0, nil
	}
	remaining := time.Until(time.Unix(int64(expireAt), 0))
	if remaining <= 0 {
		return nil, 0, provider.ErrNotFound
	}
	return val, time.Duration(math.Ceil(remaining.Seconds())) * time.Second, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if err := im.cache.Set([]byte(key), value, int(ttl.Seconds())); err != nil {
		c.WithField("err", err).WithField("key", key).WithField("cache", im.name).Error("cache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	im.cache.Del([]byte(key))
	return nil
}
