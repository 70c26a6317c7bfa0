// Package tui holds the Bubble Tea programs for every challenge and the
// frame that wraps them.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/prepkit/internal/api"
	"github.com/idilsaglam/prepkit/internal/challenge"
	"github.com/idilsaglam/prepkit/internal/logging"
	"github.com/idilsaglam/prepkit/internal/state"
	"github.com/idilsaglam/prepkit/internal/stopwatch"
	"github.com/idilsaglam/prepkit/internal/ui"
)

// Widget is one challenge program running inside a Frame.
type Widget interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Widget, tea.Cmd)
	View() string
	// Keys lists the bindings shown in the help line.
	Keys() []key.Binding
	// Capturing is true while an input owns esc (inline add, edit, filter).
	Capturing() bool
}

// Deps are the collaborators a widget may need.
type Deps struct {
	Ctx      context.Context
	API      api.Fetcher
	Store    *state.Store
	Log      *slog.Logger
	Clock    stopwatch.Clock
	Tick     time.Duration
	PageSize int
}

func (d Deps) withDefaults() Deps {
	if d.Ctx == nil {
		d.Ctx = context.Background()
	}
	if d.Store == nil {
		d.Store = state.NewStore(nil)
	}
	if d.Log == nil {
		d.Log = logging.Discard()
	}
	if d.Clock == nil {
		d.Clock = stopwatch.SystemClock{}
	}
	if d.Tick <= 0 {
		d.Tick = stopwatch.DefaultTick
	}
	return d
}

var (
	quitKey   = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	escKey    = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	sourceKey = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "source"))
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Frame draws the title, the active widget or its source, and help.
type Frame struct {
	entry  challenge.Entry
	level  challenge.Level
	widget Widget

	source     viewport.Model
	showSource bool
	help       help.Model

	width, height int
}

// New builds the program for a challenge level.
func New(e challenge.Entry, level challenge.Level, d Deps) (*Frame, error) {
	d = d.withDefaults()
	w, err := newWidget(e.ID, level, d)
	if err != nil {
		return nil, err
	}
	f := &Frame{
		entry:  e,
		level:  level,
		widget: w,
		help:   help.New(),
		width:  defaultWidth,
		height: defaultHeight,
	}
	f.source = viewport.New(defaultWidth-4, defaultHeight-6)
	f.source.SetContent(numbered(Source(e.ID)))
	return f, nil
}

func newWidget(id challenge.ID, level challenge.Level, d Deps) (Widget, error) {
	switch id {
	case challenge.Todo:
		return newTodo(level, d), nil
	case challenge.Stopwatch:
		return newStopwatch(level, d), nil
	case challenge.Users:
		return newUsers(level, d), nil
	case challenge.Country:
		return newCountry(level, d), nil
	case challenge.Map:
		return newProductMap(level), nil
	case challenge.Filter:
		return newFilter(level), nil
	case challenge.CatFacts:
		return newCatFacts(level, d), nil
	}
	return nil, fmt.Errorf("%w: %s", challenge.ErrNotFound, id)
}

// Widget exposes the running widget, mostly for tests.
func (f *Frame) Widget() Widget { return f.widget }

func (f *Frame) Title() string {
	return fmt.Sprintf("%s (%s)", f.entry.Title, f.level.Title())
}

func (f *Frame) Init() tea.Cmd { return f.widget.Init() }

func (f *Frame) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width, f.height = msg.Width, msg.Height
		f.source.Width = max(20, msg.Width-4)
		f.source.Height = max(5, msg.Height-6)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, quitKey):
			return f, tea.Quit
		case key.Matches(msg, sourceKey):
			f.showSource = !f.showSource
			return f, nil
		}
		if f.showSource {
			if key.Matches(msg, escKey) {
				f.showSource = false
				return f, nil
			}
			var cmd tea.Cmd
			f.source, cmd = f.source.Update(msg)
			return f, cmd
		}
		if key.Matches(msg, escKey) && !f.widget.Capturing() {
			return f, tea.Quit
		}
	}
	var cmd tea.Cmd
	f.widget, cmd = f.widget.Update(msg)
	return f, cmd
}

func (f *Frame) View() string {
	t := ui.Current()
	var b strings.Builder
	b.WriteString(t.Title.Render(f.Title()))
	b.WriteString("\n\n")
	if f.showSource {
		b.WriteString(t.Muted.Render("Source: " + SourceFile(f.entry.ID)))
		b.WriteString("\n")
		b.WriteString(f.source.View())
	} else {
		b.WriteString(f.widget.View())
	}
	b.WriteString("\n\n")
	keys := []key.Binding{sourceKey, escKey, quitKey}
	if !f.showSource {
		keys = append(f.widget.Keys(), keys...)
	}
	b.WriteString(f.help.ShortHelpView(keys))
	return ui.PanelString(b.String())
}

// Run starts the program on the terminal and blocks until it quits.
func Run(f *Frame) error {
	_, err := tea.NewProgram(f, tea.WithAltScreen()).Run()
	return err
}
