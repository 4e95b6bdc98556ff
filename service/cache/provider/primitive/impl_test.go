package primitive

import (
	"testing"
	"time"

	"github.com/coocood/freecache"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/service/cache/provider"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	im *impl
}

func (ts *testsuite) SetupTest() {
	ts.im = NewPrimitive("", 1).(*impl)
}

func (ts *testsuite) TearDownTest() {
	ts.im.cache.Clear()
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSet() {
	k := "collection:1:0xabc"
	v := []byte(`{"name":"apes"}`)

	ts.NoError(ts.im.Set(mockCtx, k, v, time.Second))
	r, e := ts.im.cache.Get([]byte(k))
	ts.NoError(e)
	ts.Equal(v, r)

	time.Sleep(2 * time.Second)
	_, e = ts.im.cache.Get([]byte(k))
	ts.Equal(freecache.ErrNotFound, e)
}

func (ts *testsuite) TestGet() {
	cases := []struct {
		Desc string
		Key  string
		Val  string
		Err  error
	}{
		{
			Desc: "Success",
			Key:  "key",
			Val:  "value",
			Err:  nil,
		},
		{
			Desc: "Not found",
			Key:  "missing",
			Err:  provider.ErrNotFound,
		},
	}

	ts.NoError(ts.im.cache.Set([]byte("key"), []byte("value"), 10))

	for _, c := range cases {
		val, ttl, err := ts.im.Get(mockCtx, c.Key)
		ts.Equal(c.Err, err, c.Desc)
		if c.Err == nil {
			ts.Equal(c.Val, string(val), c.Desc)
			ts.True(ttl > 0 && ttl <= 10*time.Second, c.Desc)
		}
	}
}

func (ts *testsuite) TestGetWithoutExpiration() {
	ts.NoError(ts.im.cache.Set([]byte("key"), []byte("value"), 0))
	val, ttl, err := ts.im.Get(mockCtx, "key")
	ts.NoError(err)
	ts.Equal("value", string(val))
	ts.Equal(time.Duration(0), ttl)
}

func (ts *testsuite) TestDel() {
	ts.NoError(ts.im.Set(mockCtx, "key", []byte("value"), time.Minute))
	ts.NoError(ts.im.Del(mockCtx, "key"))
	_, _, err := ts.im.Get(mockCtx, "key")
	ts.Equal(provider.ErrNotFound, err)
}
