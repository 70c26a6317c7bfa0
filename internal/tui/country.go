package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/idilsaglam/prepkit/internal/api"
	"github.com/idilsaglam/prepkit/internal/challenge"
	"github.com/idilsaglam/prepkit/internal/logging"
	"github.com/idilsaglam/prepkit/internal/model"
	"github.com/idilsaglam/prepkit/internal/query"
	"github.com/idilsaglam/prepkit/internal/state"
	"github.com/idilsaglam/prepkit/internal/ui"
)

var numbers = message.NewPrinter(language.English)

// FormatPopulation groups thousands: 67391582 -> 67,391,582.
func FormatPopulation(n int64) string { return numbers.Sprintf("%d", n) }

type countriesLoadedMsg struct {
	countries []model.Country
	err       error
}

type countrySearchMsg struct {
	name      string
	countries []model.Country
	err       error
}

// savedCountries is where ctrl+s puts the current card. Mid keeps its own
// list, Hard shares the global store.
type savedCountries interface {
	List() []model.Country
	Save(c model.Country) bool
	Remove(name string)
}

type localCountries struct{ list []model.Country }

func (l *localCountries) List() []model.Country { return l.list }

func (l *localCountries) Save(c model.Country) bool {
	var added bool
	l.list, added = state.SaveCountry(l.list, c)
	return added
}

func (l *localCountries) Remove(name string) { l.list = state.RemoveCountry(l.list, name) }

type storeCountries struct{ s *state.Store }

func (s storeCountries) List() []model.Country     { return s.s.SavedCountries() }
func (s storeCountries) Save(c model.Country) bool { return s.s.SaveCountry(c) }
func (s storeCountries) Remove(name string)        { _ = s.s.RemoveCountry(name) }

type countryKeys struct {
	search, clear, save, remove, next, prev, retry key.Binding
}

type countryWidget struct {
	level challenge.Level
	deps  Deps
	log   *slog.Logger
	keys  countryKeys

	input     textinput.Model
	card      *model.Country
	searching bool
	err       string
	status    string

	all        []model.Country
	allLoading bool
	allErr     string
	pager      query.Pager

	saved savedCountries
}

func newCountry(level challenge.Level, d Deps) *countryWidget {
	in := textinput.New()
	in.Prompt = "Country: "
	in.Placeholder = "Enter a country name"
	in.Focus()

	w := &countryWidget{
		level: level,
		deps:  d,
		log:   logging.Component(d.Log, "country"),
		input: in,
		pager: query.NewPager(d.PageSize),
		keys: countryKeys{
			search: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
			clear:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
			save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
			remove: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "remove saved")),
			next:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "next page")),
			prev:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev page")),
			retry:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "retry")),
		},
	}
	switch {
	case level.AtLeast(challenge.Hard):
		w.saved = storeCountries{d.Store}
	case level.AtLeast(challenge.Mid):
		w.saved = &localCountries{}
	}
	w.allLoading = level.AtLeast(challenge.Mid)
	return w
}

// Saved returns the saved list, nil for Low.
func (w *countryWidget) Saved() []model.Country {
	if w.saved == nil {
		return nil
	}
	return w.saved.List()
}

// Card is the country from the last successful search.
func (w *countryWidget) Card() *model.Country { return w.card }

// Listed is the slice of all countries currently on screen.
func (w *countryWidget) Listed() []model.Country {
	term := strings.TrimSpace(w.input.Value())
	if term == "" {
		if w.level.AtLeast(challenge.Hard) {
			return query.Window(w.pager, w.all)
		}
		return w.all
	}
	return query.FilterCountries(w.all, term)
}

func (w *countryWidget) fetchAll() tea.Cmd {
	ctx, fetcher := w.deps.Ctx, w.deps.API
	return func() tea.Msg {
		if fetcher == nil {
			return countriesLoadedMsg{err: errors.New("no API client configured")}
		}
		cs, err := fetcher.AllCountries(ctx)
		return countriesLoadedMsg{countries: cs, err: err}
	}
}

func (w *countryWidget) searchCmd(name string) tea.Cmd {
	ctx, fetcher := w.deps.Ctx, w.deps.API
	return func() tea.Msg {
		if fetcher == nil {
			return countrySearchMsg{name: name, err: errors.New("no API client configured")}
		}
		cs, err := fetcher.CountryByName(ctx, name)
		return countrySearchMsg{name: name, countries: cs, err: err}
	}
}

func (w *countryWidget) Init() tea.Cmd {
	if w.level.AtLeast(challenge.Mid) {
		return tea.Batch(w.fetchAll(), textinput.Blink)
	}
	return textinput.Blink
}

func (w *countryWidget) Capturing() bool { return false }

func (w *countryWidget) Keys() []key.Binding {
	ks := []key.Binding{w.keys.search, w.keys.clear}
	if w.level.AtLeast(challenge.Mid) {
		ks = append(ks, w.keys.save)
	}
	if w.level.AtLeast(challenge.Hard) {
		ks = append(ks, w.keys.remove, w.keys.next, w.keys.prev)
	}
	if w.allErr != "" {
		ks = append(ks, w.keys.retry)
	}
	return ks
}

func (w *countryWidget) Update(msg tea.Msg) (Widget, tea.Cmd) {
	switch msg := msg.(type) {
	case countriesLoadedMsg:
		w.allLoading = false
		if msg.err != nil {
			w.log.Error("fetch all countries", "error", msg.err)
			w.allErr = msg.err.Error()
			return w, nil
		}
		w.all, w.allErr = msg.countries, ""
		w.pager = w.pager.Reset()
		return w, nil
	case countrySearchMsg:
		w.searching = false
		switch {
		case errors.Is(msg.err, api.ErrNotFound) || (msg.err == nil && len(msg.countries) == 0):
			w.card, w.err = nil, fmt.Sprintf("No country named %q", msg.name)
		case msg.err != nil:
			w.log.Error("search country", "name", msg.name, "error", msg.err)
			w.card, w.err = nil, msg.err.Error()
		default:
			c := msg.countries[0]
			w.card, w.err = &c, ""
		}
		return w, nil
	case tea.KeyMsg:
		mid, hard := w.level.AtLeast(challenge.Mid), w.level.AtLeast(challenge.Hard)
		switch {
		case key.Matches(msg, w.keys.retry) && mid:
			if w.allErr == "" || w.allLoading {
				return w, nil
			}
			w.allLoading, w.allErr = true, ""
			return w, w.fetchAll()
		case key.Matches(msg, w.keys.search):
			name := strings.TrimSpace(w.input.Value())
			if name == "" || w.searching {
				return w, nil
			}
			w.searching, w.err, w.status = true, "", ""
			return w, w.searchCmd(name)
		case key.Matches(msg, w.keys.clear):
			w.input.SetValue("")
			w.card, w.err, w.status = nil, "", ""
			w.pager = w.pager.Reset()
			return w, nil
		case key.Matches(msg, w.keys.save) && mid:
			if w.card == nil {
				return w, nil
			}
			if w.saved.Save(*w.card) {
				w.status = "Saved " + w.card.Name.Common
			} else {
				w.status = w.card.Name.Common + " is already saved"
			}
			return w, nil
		case key.Matches(msg, w.keys.remove) && hard:
			w.removeSaved()
			return w, nil
		case key.Matches(msg, w.keys.next) && hard:
			w.pager = w.pager.Next(len(w.all))
			return w, nil
		case key.Matches(msg, w.keys.prev) && hard:
			w.pager = w.pager.Prev()
			return w, nil
		}
	}
	before := w.input.Value()
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	if w.input.Value() != before {
		w.pager = w.pager.Reset()
	}
	return w, cmd
}

// removeSaved drops the card's country when it is saved, otherwise the
// most recently saved one.
func (w *countryWidget) removeSaved() {
	saved := w.saved.List()
	if len(saved) == 0 {
		return
	}
	name := saved[len(saved)-1].Name.Common
	if w.card != nil {
		for _, c := range saved {
			if strings.EqualFold(c.Name.Common, w.card.Name.Common) {
				name = c.Name.Common
				break
			}
		}
	}
	w.saved.Remove(name)
	w.status = "Removed " + name
}

func (w *countryWidget) View() string {
	t := ui.Current()
	var b strings.Builder
	b.WriteString(w.input.View())
	b.WriteString("\n\n")

	switch {
	case w.searching:
		b.WriteString("Searching...\n")
	case w.err != "":
		b.WriteString(t.Error.Render("Error: "+w.err) + "\n")
	case w.card != nil:
		b.WriteString(countryCard(*w.card))
		b.WriteString("\n")
	}
	if w.status != "" {
		b.WriteString(t.Muted.Render(w.status) + "\n")
	}

	if w.saved != nil {
		saved := w.saved.List()
		b.WriteString("\n" + t.Title.Render(fmt.Sprintf("Saved (%d)", len(saved))) + "\n")
		if len(saved) == 0 {
			b.WriteString(t.Muted.Render("Nothing saved yet") + "\n")
		}
		for _, c := range saved {
			b.WriteString("• " + c.Name.Common + "\n")
		}
	}

	if !w.level.AtLeast(challenge.Mid) {
		return strings.TrimRight(b.String(), "\n")
	}

	b.WriteString("\n")
	switch {
	case w.allLoading:
		b.WriteString("Loading countries...")
		return b.String()
	case w.allErr != "":
		b.WriteString(t.Error.Render("Error: " + w.allErr))
		b.WriteString("  " + t.Muted.Render("ctrl+r to retry"))
		return b.String()
	}
	listed := w.Listed()
	if w.level.AtLeast(challenge.Hard) {
		fmt.Fprintf(&b, "%s\n", t.Muted.Render(fmt.Sprintf("Total: %d / listed: %d", len(w.all), len(listed))))
	}
	if len(listed) == 0 {
		b.WriteString(t.Muted.Render("No countries match"))
		return b.String()
	}
	lines := make([]string, len(listed))
	for i, c := range listed {
		lines[i] = fmt.Sprintf("• %s (%s)", c.Name.Common, c.PrimaryCapital())
	}
	b.WriteString(strings.Join(lines, "\n"))
	if w.level.AtLeast(challenge.Hard) && strings.TrimSpace(w.input.Value()) == "" {
		start, end := w.pager.Bounds(len(w.all))
		fmt.Fprintf(&b, "\n%s", t.Muted.Render(fmt.Sprintf("%d-%d of %d", min(start+1, end), end, len(w.all))))
	}
	return b.String()
}

func countryCard(c model.Country) string {
	t := ui.Current()
	lines := []string{
		t.Title.Render(c.Name.Common),
		"Capital:    " + c.Capitals(),
		"Population: " + FormatPopulation(c.Population),
	}
	if c.Flags.SVG != "" {
		lines = append(lines, "Flag:       "+t.Muted.Render(c.Flags.SVG))
	}
	return strings.Join(lines, "\n")
}
