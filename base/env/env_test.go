package env

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPodName(t *testing.T) {
	t.Setenv("PODNAME", "checkout-worker-0")
	assert.Equal(t, "checkout-worker-0", PodName())

	t.Setenv("PODNAME", "")
	host, _ := os.Hostname()
	assert.Equal(t, host, PodName())
}
