package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeline_OrdersByTimeThenSchedule(t *testing.T) {
	tl := NewTimeline(0)
	var got []string
	tl.After(200*time.Millisecond, 0, func() { got = append(got, "late") })
	tl.After(0, 0, func() { got = append(got, "first") })
	tl.After(0, 0, func() { got = append(got, "second") })
	tl.After(100*time.Millisecond, 0, func() { got = append(got, "middle") })

	tl.Sleep(time.Second)
	assert.Equal(t, []string{"first", "second", "middle", "late"}, got)
	assert.Equal(t, time.Second, tl.Now())
}

func TestTimeline_CancelOwner(t *testing.T) {
	tl := NewTimeline(0)
	ran := map[string]bool{}
	tl.After(10*time.Millisecond, 5, func() { ran["owned"] = true })
	tl.After(20*time.Millisecond, 6, func() { ran["other"] = true })
	tl.After(30*time.Millisecond, 0, func() { ran["free"] = true })

	tl.CancelOwner(5)
	require.Equal(t, 2, tl.Pending())
	tl.Sleep(time.Second)
	assert.Equal(t, map[string]bool{"other": true, "free": true}, ran)
}

func TestTimeline_FlushRunsOnlyDueWork(t *testing.T) {
	tl := NewTimeline(0)
	var got []int
	tl.After(0, 0, func() {
		got = append(got, 1)
		tl.After(0, 0, func() { got = append(got, 2) })
		tl.After(time.Millisecond, 0, func() { got = append(got, 3) })
	})
	tl.Flush()
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 1, tl.Pending())
	assert.Equal(t, time.Duration(0), tl.Now())
}

func TestTimeline_FlushDepthIsBounded(t *testing.T) {
	tl := NewTimeline(3)
	calls := 0
	var chain func()
	chain = func() {
		calls++
		if calls < 10 {
			tl.After(0, 0, chain)
			tl.Flush()
		}
	}
	tl.After(0, 0, chain)
	tl.Flush()
	assert.Equal(t, 10, calls)
	assert.Equal(t, 0, tl.Pending())
}

func TestTimeline_RunUntil(t *testing.T) {
	tl := NewTimeline(0)
	n := 0
	for i := 1; i <= 3; i++ {
		tl.After(time.Duration(i)*time.Second, 0, func() { n++ })
	}
	assert.True(t, tl.RunUntil(func() bool { return n == 2 }))
	assert.Equal(t, 2*time.Second, tl.Now())
	assert.False(t, tl.RunUntil(func() bool { return n == 5 }))
	assert.Equal(t, 3, n)

	tl.After(time.Second, 0, func() { n++ })
	tl.Clear()
	assert.Equal(t, 0, tl.Pending())
}
