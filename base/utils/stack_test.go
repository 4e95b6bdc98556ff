package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack(t *testing.T) {
	full := string(Stack(0))
	assert.True(t, strings.HasPrefix(full, "goroutine "))
	assert.Contains(t, full, "utils.Stack")

	skipped := string(Stack(1))
	assert.NotContains(t, skipped, "utils.Stack(")
	assert.Contains(t, skipped, "TestStack")
}
