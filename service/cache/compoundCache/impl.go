package compoundcache

import (
	"errors"
	"reflect"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/service/cache"
)

// impl stacks cache services with their own ttl, nearest first. A read hit on
// a far layer back-fills the nearer ones.
type impl struct {
	layers []cache.Service
}

func NewCompoundCache(layers []cache.Service) cache.Service {
	return &impl{
		layers: layers,
	}
}

func (im *impl) GetByFunc(c ctx.Ctx, key string, container interface{}, getter cache.OneTimeGetter) error {
	err := im.Get(c, key, container)
	if err == nil {
		return nil
	} else if err != cache.ErrNotFound {
		c.WithField("err", err).WithField("key", key).Warn("Get failed, fallback to getter")
	}

	val, err := getter()
	if err != nil {
		return err
	}

	if err := im.Set(c, key, val); err != nil {
		c.WithField("err", err).WithField("key", key).Error("Set failed")
	}

	reflect.ValueOf(container).Elem().Set(reflect.ValueOf(val).Elem())
	return nil
}

func (im *impl) Get(c ctx.Ctx, key string, container interface{}) error {
	var (
		lastErr error
		hitIdx  = -1
	)

	for idx, lyr := range im.layers {
		err := lyr.Get(c, key, container)
		if err == nil {
			hitIdx = idx
			break
		}
		if err != cache.ErrNotFound {
			// a broken layer is skipped, the next one may still answer
			lastErr = err
		}
	}

	if hitIdx == -1 {
		if lastErr != nil {
			return lastErr
		}
		return cache.ErrNotFound
	}

	for idx := 0; idx < hitIdx; idx++ {
		if err := im.layers[idx].Set(c, key, container); err != nil {
			c.WithField("err", err).WithField("key", key).Warn("back-fill failed")
		}
	}

	return nil
}

// Set writes every layer and returns the first failure
func (im *impl) Set(c ctx.Ctx, key string, value interface{}) error {
	var errs []error
	for _, lyr := range im.layers {
		if err := lyr.Set(c, key, value); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	var errs []error
	for _, lyr := range im.layers {
		if err := lyr.Del(c, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
