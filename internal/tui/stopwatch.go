package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/prepkit/internal/challenge"
	"github.com/idilsaglam/prepkit/internal/stopwatch"
	"github.com/idilsaglam/prepkit/internal/ui"
)

// swTickMsg carries the generation it was scheduled in. Start, pause and
// reset bump the generation, so a tick from an earlier run is dropped and
// at most one timer is live at a time.
type swTickMsg struct{ gen int }

type stopwatchWidget struct {
	level challenge.Level
	sw    *stopwatch.Stopwatch
	gen   int

	toggle, lap, reset key.Binding
}

func newStopwatch(level challenge.Level, d Deps) *stopwatchWidget {
	mode := stopwatch.Accumulate
	if level.AtLeast(challenge.Hard) {
		mode = stopwatch.Anchored
	}
	return &stopwatchWidget{
		level:  level,
		sw:     stopwatch.New(mode, d.Clock, d.Tick),
		toggle: key.NewBinding(key.WithKeys(" ", "s"), key.WithHelp("space", "start/pause")),
		lap:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "lap")),
		reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	}
}

func (w *stopwatchWidget) Init() tea.Cmd   { return nil }
func (w *stopwatchWidget) Capturing() bool { return false }

// Stopwatch exposes the engine, mostly for tests.
func (w *stopwatchWidget) Stopwatch() *stopwatch.Stopwatch { return w.sw }

func (w *stopwatchWidget) Keys() []key.Binding {
	ks := []key.Binding{w.toggle}
	if w.level.AtLeast(challenge.Mid) {
		ks = append(ks, w.lap)
	}
	return append(ks, w.reset)
}

func (w *stopwatchWidget) schedule() tea.Cmd {
	gen := w.gen
	return tea.Tick(w.sw.Interval(), func(time.Time) tea.Msg { return swTickMsg{gen: gen} })
}

func (w *stopwatchWidget) Update(msg tea.Msg) (Widget, tea.Cmd) {
	switch msg := msg.(type) {
	case swTickMsg:
		if msg.gen != w.gen || !w.sw.Running() {
			return w, nil
		}
		w.sw.Tick()
		return w, w.schedule()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, w.toggle):
			w.gen++
			if w.sw.Running() {
				w.sw.Pause()
				return w, nil
			}
			w.sw.Start()
			return w, w.schedule()
		case key.Matches(msg, w.lap) && w.level.AtLeast(challenge.Mid):
			w.sw.Lap()
		case key.Matches(msg, w.reset):
			if w.sw.CanReset() {
				w.gen++
				w.sw.Reset()
			}
		}
	}
	return w, nil
}

func (w *stopwatchWidget) View() string {
	t := ui.Current()
	var b strings.Builder

	b.WriteString(t.Title.Render(stopwatch.Format(w.sw.ElapsedMs())))
	b.WriteString("\n\n")

	action := "Start"
	if w.sw.Running() {
		action = "Pause"
	}
	buttons := []string{t.Accent.Render("[" + action + "]")}
	if w.level.AtLeast(challenge.Mid) {
		buttons = append(buttons, button("Lap", w.sw.CanLap()))
	}
	buttons = append(buttons, button("Reset", w.sw.CanReset()))
	b.WriteString(strings.Join(buttons, " "))

	laps := w.sw.Laps()
	if len(laps) == 0 || !w.level.AtLeast(challenge.Mid) {
		return b.String()
	}
	b.WriteString("\n\n" + t.Title.Render("Laps") + "\n")
	if !w.level.AtLeast(challenge.Hard) {
		for i, l := range laps {
			fmt.Fprintf(&b, "%2d. Lap %d: %s\n", i+1, i+1, stopwatch.Format(l.AtMs))
		}
		return strings.TrimRight(b.String(), "\n")
	}

	stats := stopwatch.Stats(laps)
	fmt.Fprintf(&b, "%-4s %-9s %-9s\n", "#", "Split", "Total")
	for i, l := range laps {
		n := fmt.Sprintf("%-4d", i+1)
		switch {
		case len(laps) > 1 && l.ID == stats.BestID:
			n = t.Best.Render(n)
		case len(laps) > 1 && l.ID == stats.WorstID:
			n = t.Worst.Render(n)
		}
		fmt.Fprintf(&b, "%s %-9s %-9s\n", n, stopwatch.Format(l.DeltaMs), stopwatch.Format(l.AtMs))
	}
	b.WriteString(t.Muted.Render("Best lap highlighted in green, worst in red."))
	return b.String()
}

func button(label string, enabled bool) string {
	if enabled {
		return ui.Current().Accent.Render("[" + label + "]")
	}
	return ui.Current().Muted.Render("[" + label + "]")
}
