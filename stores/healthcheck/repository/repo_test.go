package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/x-xyz/checkout/base/ctx"
	mQuery "github.com/x-xyz/checkout/service/query/mocks"
	mRedis "github.com/x-xyz/checkout/service/redis/mocks"
)

func TestPing(t *testing.T) {
	c := ctx.Background()
	q := &mQuery.Mongo{}
	r := &mRedis.Service{}
	q.On("Ping", mock.Anything).Return(nil).Once()
	r.On("Ping", mock.Anything).Return(errors.New("redis down")).Once()

	im := New(q, r)
	assert.NoError(t, im.PingDB(c))
	assert.EqualError(t, im.PingCache(c), "redis down")
	assert.NoError(t, New(q, nil).PingCache(c))

	q.AssertExpectations(t)
	r.AssertExpectations(t)
}
