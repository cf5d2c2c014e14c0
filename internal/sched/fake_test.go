package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFake_AdvanceFiresInOrder(t *testing.T) {
	f := NewFake()
	var got []string

	f.After(300*time.Millisecond, func() { got = append(got, "c") })
	f.After(100*time.Millisecond, func() { got = append(got, "a") })
	f.After(100*time.Millisecond, func() { got = append(got, "b") })

	assert.Equal(t, 0, f.Advance(50*time.Millisecond))
	assert.Equal(t, 2, f.Advance(50*time.Millisecond))
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, f.Pending())

	f.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 1100*time.Millisecond, f.Now())
}

func TestFake_ChainedCallbacksWithinWindow(t *testing.T) {
	f := NewFake()
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 5 {
			f.After(10*time.Millisecond, tick)
		}
	}
	f.After(10*time.Millisecond, tick)

	assert.Equal(t, 3, f.Advance(30*time.Millisecond))
	assert.Equal(t, 3, count)
	assert.Equal(t, 2, f.Advance(time.Second))
	assert.Equal(t, 0, f.Pending())
}

func TestFake_Drain(t *testing.T) {
	f := NewFake()
	fired := 0
	f.After(time.Second, func() {
		fired++
		f.After(2*time.Second, func() { fired++ })
	})

	elapsed := f.Drain(10)
	assert.Equal(t, 2, fired)
	assert.Equal(t, 3*time.Second, elapsed)
}

func TestFake_DrainLimit(t *testing.T) {
	f := NewFake()
	var forever func()
	forever = func() { f.After(time.Millisecond, forever) }
	f.After(0, forever)

	f.Drain(100)
	assert.Equal(t, 1, f.Pending(), "a self-rescheduling callback stops at the limit")
}

func TestFunc(t *testing.T) {
	var gotDelay time.Duration
	s := Func(func(d time.Duration, fn func()) {
		gotDelay = d
		fn()
	})
	ran := false
	s.After(time.Minute, func() { ran = true })
	assert.True(t, ran)
	assert.Equal(t, time.Minute, gotDelay)
}
