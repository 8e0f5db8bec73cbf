package debounce_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/romdo/go-debounce/v2"
	"github.com/romdo/go-debounce/v2/debouncetest"
)

func TestNewMutable(t *testing.T) {
	t.Parallel()

	s := debouncetest.NewScheduler()
	var got []string
	record := func(name string) func() {
		return func() { got = append(got, name) }
	}

	debounced, cancel := debounce.NewMutable(ms(100), debounce.WithScheduler(s))

	debounced(record("#1"))
	s.Advance(ms(50))
	debounced(record("#2"))
	s.Advance(ms(50))
	debounced(record("#3"))
	s.Advance(ms(100))
	assert.Equal(t, []string{"#3"}, got)

	debounced(record("#4"))
	cancel()
	s.Advance(ms(200))
	assert.Equal(t, []string{"#3"}, got)

	debounced(record("#5"))
	debounced(nil)
	s.Advance(ms(100))
	assert.Equal(t, []string{"#3"}, got)

	debounced(record("#6"))
	s.Advance(ms(100))
	assert.Equal(t, []string{"#3", "#6"}, got)
}

func TestNewMutable_withLeading(t *testing.T) {
	t.Parallel()

	s := debouncetest.NewScheduler()
	var got []string
	debounced, _ := debounce.NewMutable(
		ms(100), debounce.Leading(), debounce.WithScheduler(s),
	)

	debounced(func() { got = append(got, "#1") })
	debounced(func() { got = append(got, "#2") })
	s.Advance(ms(200))

	assert.Equal(t, []string{"#1"}, got)
}

func TestNewMutable_negativeWait(t *testing.T) {
	t.Parallel()

	assert.PanicsWithError(t,
		"debounce: invalid argument: negative wait -1ms",
		func() { debounce.NewMutable(-time.Millisecond) },
	)
}
