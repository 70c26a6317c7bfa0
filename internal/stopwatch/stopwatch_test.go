package stopwatch

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/prepkit/internal/model"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFormat(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00.00"},
		{50, "00:00.05"},
		{1999, "00:01.99"},
		{61_230, "01:01.23"},
		{3_600_000, "60:00.00"},
		{-5, "00:00.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.ms), "ms=%d", tt.ms)
	}
}

func TestAccumulateAddsOneIntervalPerTick(t *testing.T) {
	clock := NewManualClock(epoch)
	sw := New(Accumulate, clock, 50*time.Millisecond)

	sw.Tick()
	assert.Zero(t, sw.ElapsedMs(), "ticks before start are ignored")

	require.True(t, sw.Start())
	assert.False(t, sw.Start())
	for i := 0; i < 3; i++ {
		// a late timer callback still only adds one interval
		clock.Advance(80 * time.Millisecond)
		sw.Tick()
	}
	assert.Equal(t, int64(150), sw.ElapsedMs())

	require.True(t, sw.Pause())
	sw.Tick()
	assert.Equal(t, int64(150), sw.ElapsedMs())
}

func TestAnchoredTracksWallClock(t *testing.T) {
	clock := NewManualClock(epoch)
	sw := New(Anchored, clock, 50*time.Millisecond)

	sw.Start()
	clock.Advance(1234 * time.Millisecond)
	sw.Tick()
	assert.Equal(t, int64(1234), sw.ElapsedMs())

	clock.Advance(66 * time.Millisecond)
	sw.Pause()
	assert.Equal(t, int64(1300), sw.ElapsedMs())

	// paused time is not counted
	clock.Advance(10 * time.Second)
	assert.Equal(t, int64(1300), sw.ElapsedMs())

	sw.Start()
	clock.Advance(700 * time.Millisecond)
	sw.Pause()
	assert.Equal(t, int64(2000), sw.ElapsedMs())
}

func TestLapAndResetGuards(t *testing.T) {
	sw := New(Accumulate, NewManualClock(epoch), 0)
	assert.Equal(t, DefaultTick, sw.Interval())

	assert.False(t, sw.CanLap())
	assert.False(t, sw.CanReset())
	_, ok := sw.Lap()
	assert.False(t, ok)

	sw.Start()
	assert.True(t, sw.CanLap())
	assert.True(t, sw.CanReset())
	sw.Tick()
	lap, ok := sw.Lap()
	require.True(t, ok)
	assert.Equal(t, model.Lap{ID: 1, AtMs: 50}, lap)

	sw.Pause()
	assert.False(t, sw.CanLap())
	assert.True(t, sw.CanReset())

	sw.Reset()
	assert.False(t, sw.Running())
	assert.Empty(t, sw.Laps())
	assert.Zero(t, sw.ElapsedMs())
	assert.False(t, sw.CanReset())
}

func TestAnchoredLapDeltas(t *testing.T) {
	clock := NewManualClock(epoch)
	sw := New(Anchored, clock, 0)
	sw.Start()

	for _, step := range []time.Duration{400, 250, 900} {
		clock.Advance(step * time.Millisecond)
		_, ok := sw.Lap()
		require.True(t, ok)
	}

	assert.Equal(t, []model.Lap{
		{ID: 1, AtMs: 400, DeltaMs: 400},
		{ID: 2, AtMs: 650, DeltaMs: 250},
		{ID: 3, AtMs: 1550, DeltaMs: 900},
	}, sw.Laps())

	stats := Stats(sw.Laps())
	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.BestID)
	assert.Equal(t, 3, stats.WorstID)

	sw.Reset()
	sw.Start()
	clock.Advance(100 * time.Millisecond)
	lap, _ := sw.Lap()
	assert.Equal(t, int64(100), lap.DeltaMs, "reset forgets the previous lap mark")
}

func TestStatsEmpty(t *testing.T) {
	assert.Nil(t, Stats(nil))
}

func TestStopwatchProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("lap delta is the difference of consecutive totals", prop.ForAll(
		func(steps []int) bool {
			clock := NewManualClock(epoch)
			sw := New(Anchored, clock, 0)
			sw.Start()
			for _, ms := range steps {
				clock.Advance(time.Duration(ms) * time.Millisecond)
				sw.Lap()
			}
			laps := sw.Laps()
			for i, l := range laps {
				want := l.AtMs
				if i > 0 {
					want = l.AtMs - laps[i-1].AtMs
				}
				if l.DeltaMs != want {
					return false
				}
			}
			return len(laps) == len(steps)
		},
		gen.SliceOf(gen.IntRange(0, 5000)),
	))

	properties.Property("anchored elapsed equals running wall time within one tick", prop.ForAll(
		func(runs []int, tickJitter int) bool {
			clock := NewManualClock(epoch)
			sw := New(Anchored, clock, DefaultTick)
			var want time.Duration
			for _, ms := range runs {
				sw.Start()
				run := time.Duration(ms) * time.Millisecond
				for done := time.Duration(0); done < run; {
					step := min(DefaultTick+time.Duration(tickJitter)*time.Millisecond, run-done)
					clock.Advance(step)
					sw.Tick()
					done += step
				}
				sw.Pause()
				want += run
				clock.Advance(time.Second)
			}
			diff := sw.Elapsed() - want
			return diff >= 0 && diff < DefaultTick
		},
		gen.SliceOfN(4, gen.IntRange(0, 2000)),
		gen.IntRange(0, 30),
	))

	properties.TestingRun(t)
}
