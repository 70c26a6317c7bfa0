package tui

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/prepkit/internal/api"
	"github.com/idilsaglam/prepkit/internal/challenge"
	"github.com/idilsaglam/prepkit/internal/logging"
	"github.com/idilsaglam/prepkit/internal/model"
	"github.com/idilsaglam/prepkit/internal/ui"
)

const captionWords = 3

type catFactMsg struct {
	fact model.CatFact
	err  error
}

type catImageMsg struct {
	fact string
	img  model.CatImage
	err  error
}

type catFactsWidget struct {
	level challenge.Level
	deps  Deps
	log   *slog.Logger

	next, retry key.Binding
	spin        spinner.Model

	fact    string
	image   string
	loading bool
	err     string
}

func newCatFacts(level challenge.Level, d Deps) *catFactsWidget {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.Current().Accent
	return &catFactsWidget{
		level:   level,
		deps:    d,
		log:     logging.Component(d.Log, "catfacts"),
		spin:    sp,
		loading: true,
		next:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new fact")),
		retry:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
	}
}

// Fact and Image expose what is on screen, mostly for tests.
func (w *catFactsWidget) Fact() string  { return w.fact }
func (w *catFactsWidget) Image() string { return w.image }

func (w *catFactsWidget) fetchFact() tea.Cmd {
	ctx, fetcher := w.deps.Ctx, w.deps.API
	return func() tea.Msg {
		if fetcher == nil {
			return catFactMsg{err: errors.New("no API client configured")}
		}
		f, err := fetcher.CatFact(ctx)
		return catFactMsg{fact: f, err: err}
	}
}

func (w *catFactsWidget) fetchImage(fact string) tea.Cmd {
	ctx, fetcher := w.deps.Ctx, w.deps.API
	words := api.FirstWords(fact, captionWords)
	return func() tea.Msg {
		img, err := fetcher.CatImage(ctx, words)
		return catImageMsg{fact: fact, img: img, err: err}
	}
}

func (w *catFactsWidget) mid() bool { return w.level.AtLeast(challenge.Mid) }

func (w *catFactsWidget) Init() tea.Cmd {
	if w.mid() {
		return tea.Batch(w.fetchFact(), w.spin.Tick)
	}
	return w.fetchFact()
}

func (w *catFactsWidget) Capturing() bool { return false }

func (w *catFactsWidget) Keys() []key.Binding {
	if !w.mid() {
		return nil
	}
	if w.err != "" {
		return []key.Binding{w.retry}
	}
	return []key.Binding{w.next}
}

func (w *catFactsWidget) reload() tea.Cmd {
	w.loading, w.err = true, ""
	w.fact, w.image = "", ""
	return tea.Batch(w.fetchFact(), w.spin.Tick)
}

func (w *catFactsWidget) Update(msg tea.Msg) (Widget, tea.Cmd) {
	switch msg := msg.(type) {
	case catFactMsg:
		if msg.err != nil {
			w.loading = false
			w.fail("fetch cat fact", msg.err)
			return w, nil
		}
		w.fact = msg.fact.Fact
		if w.fact == "" {
			w.loading = false
			return w, nil
		}
		return w, w.fetchImage(w.fact)
	case catImageMsg:
		if msg.fact != w.fact {
			return w, nil
		}
		w.loading = false
		if msg.err != nil {
			w.fail("fetch cat image", msg.err)
			return w, nil
		}
		w.image = msg.img.URL
		return w, nil
	case spinner.TickMsg:
		if !w.loading {
			return w, nil
		}
		var cmd tea.Cmd
		w.spin, cmd = w.spin.Update(msg)
		return w, cmd
	case tea.KeyMsg:
		if !w.mid() || w.loading {
			return w, nil
		}
		if key.Matches(msg, w.next) || (w.err != "" && key.Matches(msg, w.retry)) {
			return w, w.reload()
		}
	}
	return w, nil
}

func (w *catFactsWidget) fail(what string, err error) {
	w.log.Error(what, "error", err)
	if w.mid() {
		w.err = err.Error()
	}
}

func (w *catFactsWidget) View() string {
	t := ui.Current()
	var lines []string
	if w.loading && w.mid() {
		lines = append(lines, w.spin.View()+" Fetching a cat fact...")
	}
	if w.err != "" {
		lines = append(lines, t.Error.Render("Error: "+w.err)+"  "+t.Muted.Render("r to retry"))
	}
	if w.fact != "" {
		lines = append(lines, w.fact)
	}
	if w.fact != "" && w.image != "" {
		lines = append(lines, "", t.Muted.Render("Image: ")+t.Accent.Render(w.image))
	}
	return strings.Join(lines, "\n")
}
