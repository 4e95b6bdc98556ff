package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/checkout/base/ctx"
)

const (
	// Forever keeps the key without expiration
	Forever = time.Duration(-1)
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = redis.ErrNil
	// ErrKeyExists is returned by SetNX when the key is already set
	ErrKeyExists = errors.New("redis key exists")
)

// Service is the redis commands used by the cache layer, health checks and worker locks
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	// SetNX sets the key only if it does not exist, otherwise returns ErrKeyExists
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, keys ...string) (int, error)
	// TTL returns the remaining seconds, -1 for keys without expiration
	TTL(context ctx.Ctx, key string) (int, error)
	Ping(context ctx.Ctx) error
}
