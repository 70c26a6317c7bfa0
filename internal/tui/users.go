package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/prepkit/internal/challenge"
	"github.com/idilsaglam/prepkit/internal/logging"
	"github.com/idilsaglam/prepkit/internal/model"
	"github.com/idilsaglam/prepkit/internal/query"
	"github.com/idilsaglam/prepkit/internal/ui"
)

type usersLoadedMsg struct {
	users []model.User
	err   error
}

type userKeys struct {
	retry, clear, up, down key.Binding
	sortBy                 map[query.SortKey]key.Binding
}

type usersWidget struct {
	level challenge.Level
	deps  Deps
	log   *slog.Logger
	keys  userKeys

	users   []model.User
	loading bool
	err     string

	search textinput.Model
	sort   query.Sort
	table  table.Model

	// derived from users, search and sort on every change
	view []model.User
}

func newUsers(level challenge.Level, d Deps) *usersWidget {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "Search user..."
	if level.AtLeast(challenge.Hard) {
		search.Placeholder = "Search by name, email or username..."
	}
	search.Focus()

	tbl := table.New(
		table.WithColumns(userColumns(query.DefaultSort())),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Selected = ui.Current().Selected
	tbl.SetStyles(styles)

	w := &usersWidget{
		level:   level,
		deps:    d,
		log:     logging.Component(d.Log, "users"),
		loading: true,
		search:  search,
		sort:    query.DefaultSort(),
		table:   tbl,
		keys: userKeys{
			retry: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "retry")),
			clear: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
			up:    key.NewBinding(key.WithKeys("up", "pgup"), key.WithHelp("↑", "up")),
			down:  key.NewBinding(key.WithKeys("down", "pgdown"), key.WithHelp("↓", "down")),
			sortBy: map[query.SortKey]key.Binding{
				query.SortName:     key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "sort name")),
				query.SortEmail:    key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "sort email")),
				query.SortUsername: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "sort username")),
			},
		},
	}
	w.derive()
	return w
}

func userColumns(s query.Sort) []table.Column {
	title := func(k query.SortKey) string {
		if m := s.Marker(k); m != "" {
			return string(k) + " " + m
		}
		return string(k)
	}
	return []table.Column{
		{Title: title(query.SortName), Width: 24},
		{Title: title(query.SortEmail), Width: 26},
		{Title: title(query.SortUsername), Width: 16},
		{Title: "city", Width: 14},
	}
}

func (w *usersWidget) fields() []query.UserField {
	switch {
	case w.level.AtLeast(challenge.Hard):
		return []query.UserField{query.ByName, query.ByEmail, query.ByUsername}
	case w.level.AtLeast(challenge.Mid):
		return []query.UserField{query.ByName, query.ByEmail}
	}
	return []query.UserField{query.ByName}
}

// derive recomputes the filtered (and for Hard, sorted) view.
func (w *usersWidget) derive() {
	w.view = query.FilterUsers(w.users, w.search.Value(), w.fields()...)
	if !w.level.AtLeast(challenge.Hard) {
		return
	}
	w.view = query.SortUsers(w.view, w.sort)
	rows := make([]table.Row, len(w.view))
	for i, u := range w.view {
		rows[i] = table.Row{u.Name, u.Email, u.Username, u.City()}
	}
	w.table.SetColumns(userColumns(w.sort))
	w.table.SetRows(rows)
	if w.table.Cursor() >= len(rows) {
		w.table.SetCursor(max(0, len(rows)-1))
	}
}

// Visible returns the derived list, mostly for tests.
func (w *usersWidget) Visible() []model.User { return w.view }

func (w *usersWidget) fetch() tea.Cmd {
	ctx, fetcher := w.deps.Ctx, w.deps.API
	return func() tea.Msg {
		if fetcher == nil {
			return usersLoadedMsg{err: errors.New("no API client configured")}
		}
		users, err := fetcher.Users(ctx)
		return usersLoadedMsg{users: users, err: err}
	}
}

func (w *usersWidget) Init() tea.Cmd   { return tea.Batch(w.fetch(), textinput.Blink) }
func (w *usersWidget) Capturing() bool { return false }

func (w *usersWidget) Keys() []key.Binding {
	var ks []key.Binding
	if w.level.AtLeast(challenge.Hard) {
		for _, k := range query.SortKeys {
			ks = append(ks, w.keys.sortBy[k])
		}
		ks = append(ks, w.keys.clear)
	}
	if w.err != "" && w.level.AtLeast(challenge.Mid) {
		ks = append(ks, w.keys.retry)
	}
	return ks
}

func (w *usersWidget) Update(msg tea.Msg) (Widget, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		w.loading = false
		if msg.err != nil {
			w.log.Error("fetch users", "error", msg.err)
			if w.level.AtLeast(challenge.Mid) {
				w.err = msg.err.Error()
			}
			return w, nil
		}
		w.err, w.users = "", msg.users
		w.derive()
		return w, nil
	case tea.KeyMsg:
		hard := w.level.AtLeast(challenge.Hard)
		switch {
		case key.Matches(msg, w.keys.retry) && w.level.AtLeast(challenge.Mid):
			if w.loading {
				return w, nil
			}
			w.loading, w.err = true, ""
			return w, w.fetch()
		case key.Matches(msg, w.keys.clear) && hard:
			w.search.SetValue("")
			w.derive()
			return w, nil
		case key.Matches(msg, w.keys.up, w.keys.down) && hard:
			var cmd tea.Cmd
			w.table, cmd = w.table.Update(msg)
			return w, cmd
		case hard:
			for k, b := range w.keys.sortBy {
				if key.Matches(msg, b) {
					w.sort = w.sort.Toggle(k)
					w.derive()
					return w, nil
				}
			}
		}
	}
	before := w.search.Value()
	var cmd tea.Cmd
	w.search, cmd = w.search.Update(msg)
	if w.search.Value() != before {
		w.derive()
	}
	return w, cmd
}

func (w *usersWidget) View() string {
	t := ui.Current()
	var b strings.Builder
	b.WriteString(w.search.View())
	b.WriteString("\n\n")

	switch {
	case w.loading && w.level.AtLeast(challenge.Mid):
		b.WriteString("Loading users...")
		return b.String()
	case w.err != "":
		b.WriteString(t.Error.Render("Error: " + w.err))
		b.WriteString("  " + t.Muted.Render("ctrl+r to retry"))
		return b.String()
	}

	if w.level.AtLeast(challenge.Hard) {
		fmt.Fprintf(&b, "%s %s\n", t.Muted.Render("Results:"), t.Title.Render(fmt.Sprint(len(w.view))))
		if len(w.view) == 0 {
			b.WriteString(t.Muted.Render("No results"))
			return b.String()
		}
		b.WriteString(w.table.View())
		return b.String()
	}

	if len(w.view) == 0 {
		b.WriteString(t.Muted.Render("No users found"))
		return b.String()
	}
	lines := make([]string, len(w.view))
	for i, u := range w.view {
		if w.level.AtLeast(challenge.Mid) {
			lines[i] = "• " + t.Title.Render(u.Name) + " (" + u.Email + ")"
		} else {
			lines[i] = "• " + u.Name
		}
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}
