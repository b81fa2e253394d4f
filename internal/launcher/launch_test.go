package launcher

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWaitForSaves_ReturnsOnceDrained(t *testing.T) {
	var calls atomic.Int32
	pending := func() []int {
		if calls.Add(1) < 3 {
			return []int{1}
		}
		return nil
	}

	start := time.Now()
	waitForSaves(pending, time.Second)

	assert.Equal(t, int32(3), calls.Load())
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitForSaves_GivesUpAfterTimeout(t *testing.T) {
	pending := func() []int { return []int{1} }

	start := time.Now()
	waitForSaves(pending, 120*time.Millisecond)

	assert.GreaterOrEqual(t, time.Since(start), 120*time.Millisecond)
}
