package sched

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestLoop_RunsCallbacksSerially(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := NewLoop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var active, maxActive int32
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		l.After(time.Duration(i)*time.Millisecond, func() {
			n := atomic.AddInt32(&active, 1)
			if n > atomic.LoadInt32(&maxActive) {
				atomic.StoreInt32(&maxActive, n)
			}
			order = append(order, i)
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
			if len(order) == 5 {
				l.Stop()
			}
		})
	}

	require.NoError(t, l.Run(ctx))
	assert.Len(t, order, 5)
	assert.Equal(t, int32(1), maxActive)
}

func TestLoop_StopCancelsPendingTimers(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := NewLoop()
	fired := false
	l.After(time.Hour, func() { fired = true })
	l.Post(func() { l.Stop() })

	require.NoError(t, l.Run(context.Background()))
	assert.False(t, fired)

	// scheduling after stop is a no-op
	l.After(0, func() { fired = true })
	l.Post(func() { fired = true })
	assert.False(t, fired)
}

func TestLoop_ContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	l.After(10*time.Millisecond, cancel)

	err := l.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
