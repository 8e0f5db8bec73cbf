package debouncetest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_Advance(t *testing.T) {
	t.Parallel()

	s := NewScheduler()
	var got []string
	at := func(name string) func() {
		return func() {
			got = append(got, name+"@"+s.Now().String())
		}
	}

	s.AfterFunc(30*time.Millisecond, at("c"))
	s.AfterFunc(10*time.Millisecond, at("a"))
	s.AfterFunc(10*time.Millisecond, at("b"))
	s.AfterFunc(-time.Second, at("now"))
	assert.Equal(t, 4, s.Len())

	s.Advance(0)
	assert.Equal(t, []string{"now@0s"}, got)

	s.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"now@0s", "a@10ms", "b@10ms"}, got)
	assert.Equal(t, 20*time.Millisecond, s.Now())
	assert.Equal(t, 1, s.Len())

	s.Advance(time.Second)
	assert.Equal(t, []string{"now@0s", "a@10ms", "b@10ms", "c@30ms"}, got)
	assert.Equal(t, 1020*time.Millisecond, s.Now())
	assert.Equal(t, 0, s.Len())
}

func TestScheduler_Advance_nested(t *testing.T) {
	t.Parallel()

	s := NewScheduler()
	var fired []time.Duration
	var tick func()
	tick = func() {
		fired = append(fired, s.Now())
		if len(fired) < 5 {
			s.AfterFunc(10*time.Millisecond, tick)
		}
	}

	s.AfterFunc(10*time.Millisecond, tick)
	s.Advance(35 * time.Millisecond)

	assert.Equal(t, []time.Duration{
		10 * time.Millisecond,
		20 * time.Millisecond,
		30 * time.Millisecond,
	}, fired)
	assert.Equal(t, 1, s.Len())
}

func TestTimer_Stop(t *testing.T) {
	t.Parallel()

	s := NewScheduler()
	var n int

	t1 := s.AfterFunc(10*time.Millisecond, func() { n++ })
	t2 := s.AfterFunc(10*time.Millisecond, func() { n++ })

	assert.True(t, t1.Stop())
	assert.False(t, t1.Stop())
	assert.Equal(t, 1, s.Len())

	s.Advance(10 * time.Millisecond)
	assert.Equal(t, 1, n)
	assert.False(t, t2.Stop())
}
