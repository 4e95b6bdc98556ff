package metrics

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type metricsSuite struct {
	suite.Suite
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(metricsSuite))
}

func (s *metricsSuite) TestParseTag() {
	s.Equal([]string{"table:purchase_sessions", "func:findone"}, parseTag([]string{"table", "purchase_sessions", "func", "findone"}))
	s.Empty(parseTag(nil))
	s.Panics(func() { parseTag([]string{"odd"}) })
}

func (s *metricsSuite) TestBumpWithoutAgent() {
	met := New("test")
	s.NotPanics(func() {
		met.BumpSum("purchase.count", 1, "status", "pending")
		met.BumpAvg("queue.size", 3)
		met.BumpHistogram("batch.size", 10)
		met.BumpTime("sweep.time").End()
	})
}
