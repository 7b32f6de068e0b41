package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (c *countingSweeper) Sweep(now time.Time) int {
	c.calls.Add(1)
	return 1
}

func TestScheduler_SweepsPeriodically(t *testing.T) {
	sw := &countingSweeper{}
	s, err := New(sw, time.Second)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return sw.calls.Load() >= 1
	}, 5*time.Second, 50*time.Millisecond)
}

func TestNew_DefaultsShortInterval(t *testing.T) {
	s, err := New(&countingSweeper{}, 0)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, s.interval)
}
