// Package stopwatch tracks elapsed time, laps and lap statistics for the
// stopwatch challenge.
package stopwatch

import (
	"fmt"
	"time"

	"github.com/idilsaglam/prepkit/internal/model"
)

// DefaultTick is the polling interval of the UI timer.
const DefaultTick = 50 * time.Millisecond

// Mode selects how elapsed time advances.
type Mode int

const (
	// Accumulate adds one tick interval per tick. Late ticks drift.
	Accumulate Mode = iota
	// Anchored derives elapsed time from a wall-clock anchor.
	Anchored
)

func (m Mode) String() string {
	if m == Anchored {
		return "anchored"
	}
	return "accumulate"
}

// Stopwatch is not safe for concurrent use; the UI loop owns it.
type Stopwatch struct {
	mode    Mode
	clock   Clock
	tick    time.Duration
	running bool
	elapsed time.Duration
	anchor  time.Time
	laps    []model.Lap
	lastLap int64
}

func New(mode Mode, clock Clock, tick time.Duration) *Stopwatch {
	if clock == nil {
		clock = SystemClock{}
	}
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Stopwatch{mode: mode, clock: clock, tick: tick}
}

func (s *Stopwatch) Mode() Mode              { return s.mode }
func (s *Stopwatch) Interval() time.Duration { return s.tick }
func (s *Stopwatch) Running() bool           { return s.running }
func (s *Stopwatch) Laps() []model.Lap       { return append([]model.Lap(nil), s.laps...) }
func (s *Stopwatch) CanLap() bool            { return s.running }
func (s *Stopwatch) ElapsedMs() int64        { return s.Elapsed().Milliseconds() }

// CanReset is false once the watch is idle at zero with no laps.
func (s *Stopwatch) CanReset() bool {
	return s.running || s.elapsed > 0 || len(s.laps) > 0
}

// Elapsed returns the current elapsed time. For an anchored watch that is
// running it is computed from the clock rather than the last tick.
func (s *Stopwatch) Elapsed() time.Duration {
	if s.mode == Anchored && s.running {
		return s.clock.Now().Sub(s.anchor)
	}
	return s.elapsed
}

// Start resumes from the current elapsed time. It reports whether the
// state changed.
func (s *Stopwatch) Start() bool {
	if s.running {
		return false
	}
	s.running = true
	if s.mode == Anchored {
		s.anchor = s.clock.Now().Add(-s.elapsed)
	}
	return true
}

func (s *Stopwatch) Pause() bool {
	if !s.running {
		return false
	}
	if s.mode == Anchored {
		s.elapsed = s.clock.Now().Sub(s.anchor)
		s.anchor = time.Time{}
	}
	s.running = false
	return true
}

func (s *Stopwatch) Toggle() {
	if s.running {
		s.Pause()
		return
	}
	s.Start()
}

// Reset stops the watch and clears time and laps.
func (s *Stopwatch) Reset() {
	s.running = false
	s.elapsed = 0
	s.anchor = time.Time{}
	s.laps = nil
	s.lastLap = 0
}

// Tick advances a running watch by one polling interval.
func (s *Stopwatch) Tick() {
	if !s.running {
		return
	}
	switch s.mode {
	case Anchored:
		s.elapsed = s.clock.Now().Sub(s.anchor)
	default:
		s.elapsed += s.tick
	}
}

// Lap records the current elapsed time. Anchored watches also record the
// delta since the previous lap. Returns false when not running.
func (s *Stopwatch) Lap() (model.Lap, bool) {
	if !s.running {
		return model.Lap{}, false
	}
	at := s.ElapsedMs()
	lap := model.Lap{ID: len(s.laps) + 1, AtMs: at}
	if s.mode == Anchored {
		delta := at
		if len(s.laps) > 0 {
			delta = at - s.lastLap
		}
		lap.DeltaMs = max(0, delta)
	}
	s.lastLap = at
	s.laps = append(s.laps, lap)
	return lap, true
}

// LapStats identifies the fastest and slowest lap by delta.
type LapStats struct {
	BestID  int
	WorstID int
}

// Stats returns nil when there are no laps. Ties keep the earliest lap.
func Stats(laps []model.Lap) *LapStats {
	if len(laps) == 0 {
		return nil
	}
	best, worst := laps[0], laps[0]
	for _, l := range laps[1:] {
		if l.DeltaMs < best.DeltaMs {
			best = l
		}
		if l.DeltaMs > worst.DeltaMs {
			worst = l
		}
	}
	return &LapStats{BestID: best.ID, WorstID: worst.ID}
}

// Format renders milliseconds as mm:ss.cc.
func Format(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSec := ms / 1000
	return fmt.Sprintf("%02d:%02d.%02d", totalSec/60, totalSec%60, (ms%1000)/10)
}
