package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/prepkit/internal/challenge"
	"github.com/idilsaglam/prepkit/internal/stopwatch"
)

func swOf(f *Frame) *stopwatchWidget { return f.Widget().(*stopwatchWidget) }

func TestStopwatchDropsStaleTicks(t *testing.T) {
	f := newFrame(t, challenge.Stopwatch, challenge.Low, Deps{Tick: 10 * time.Millisecond})
	w := swOf(f)

	require.NotNil(t, send(f, space), "start schedules a tick")
	first := w.gen
	require.NotNil(t, send(f, swTickMsg{gen: first}))
	assert.EqualValues(t, 10, w.Stopwatch().ElapsedMs())

	// pause and resume: the old timer must not advance the watch
	send(f, space)
	send(f, space)
	assert.Nil(t, send(f, swTickMsg{gen: first}))
	assert.EqualValues(t, 10, w.Stopwatch().ElapsedMs())

	send(f, swTickMsg{gen: w.gen})
	assert.EqualValues(t, 20, w.Stopwatch().ElapsedMs())
	assert.Contains(t, f.View(), "00:00.02")
}

func TestStopwatchResetOnlyWhenDirty(t *testing.T) {
	f := newFrame(t, challenge.Stopwatch, challenge.Low, Deps{Tick: 10 * time.Millisecond})
	w := swOf(f)
	gen := w.gen
	send(f, runes("r"))
	assert.Equal(t, gen, w.gen, "idle reset is a no-op")

	send(f, space)
	send(f, swTickMsg{gen: w.gen})
	require.True(t, w.Stopwatch().CanReset())
	send(f, runes("r"))
	assert.False(t, w.Stopwatch().Running())
	assert.Zero(t, w.Stopwatch().ElapsedMs())
}

func TestStopwatchLapLevels(t *testing.T) {
	low := newFrame(t, challenge.Stopwatch, challenge.Low, Deps{})
	send(low, space, runes("l"))
	assert.Empty(t, swOf(low).Stopwatch().Laps())

	mid := newFrame(t, challenge.Stopwatch, challenge.Mid, Deps{Tick: 10 * time.Millisecond})
	send(mid, runes("l"))
	assert.Empty(t, swOf(mid).Stopwatch().Laps(), "lap is disabled while stopped")
	send(mid, space)
	send(mid, swTickMsg{gen: swOf(mid).gen})
	send(mid, runes("l"))
	assert.Len(t, swOf(mid).Stopwatch().Laps(), 1)
	assert.Contains(t, mid.View(), "Lap 1: 00:00.01")
}

func TestStopwatchHardUsesWallClock(t *testing.T) {
	clock := stopwatch.NewManualClock(time.Unix(0, 0))
	f := newFrame(t, challenge.Stopwatch, challenge.Hard, Deps{Clock: clock})
	w := swOf(f)
	assert.Equal(t, stopwatch.Anchored, w.Stopwatch().Mode())

	send(f, space)
	clock.Advance(1500 * time.Millisecond)
	send(f, runes("l"))
	clock.Advance(500 * time.Millisecond)
	send(f, runes("l"))

	laps := w.Stopwatch().Laps()
	require.Len(t, laps, 2)
	assert.EqualValues(t, 1500, laps[0].DeltaMs)
	assert.EqualValues(t, 500, laps[1].DeltaMs)
	v := f.View()
	assert.Contains(t, v, "00:02.00")
	assert.Contains(t, v, "Best lap highlighted in green, worst in red.")
}
