package tui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/prepkit/internal/challenge"
	"github.com/idilsaglam/prepkit/internal/logging"
	"github.com/idilsaglam/prepkit/internal/model"
	"github.com/idilsaglam/prepkit/internal/state"
	"github.com/idilsaglam/prepkit/internal/ui"
)

// todoBackend owns the list. The local one lives and dies with the widget,
// the store one is the shared global store.
type todoBackend interface {
	List() []model.Todo
	Add(title string) (model.Todo, error)
	Toggle(id int64) error
	Remove(id int64) error
	Edit(id int64, title string) error
	Set(todos []model.Todo)
	Insert(index int, t model.Todo)
}

type localTodos struct {
	todos []model.Todo
	ids   *state.IDSource
}

func (l *localTodos) List() []model.Todo { return l.todos }

func (l *localTodos) Add(title string) (model.Todo, error) {
	next, err := state.AddTodo(l.todos, title, l.ids.Next())
	if err != nil {
		return model.Todo{}, err
	}
	l.todos = next
	return next[len(next)-1], nil
}

func (l *localTodos) Toggle(id int64) error {
	l.todos = state.ToggleTodo(l.todos, id)
	return nil
}

func (l *localTodos) Remove(id int64) error {
	l.todos = state.RemoveTodo(l.todos, id)
	return nil
}

func (l *localTodos) Edit(id int64, title string) error {
	next, err := state.EditTodo(l.todos, id, title)
	if err != nil {
		return err
	}
	l.todos = next
	return nil
}

func (l *localTodos) Set(todos []model.Todo) {
	for _, t := range todos {
		l.ids.Observe(t.ID)
	}
	l.todos = state.SetTodos(todos)
}

func (l *localTodos) Insert(index int, t model.Todo) {
	l.todos = insertTodo(l.todos, index, t)
}

type storeTodos struct{ s *state.Store }

func (b storeTodos) List() []model.Todo                   { return b.s.Todos() }
func (b storeTodos) Add(title string) (model.Todo, error) { return b.s.AddTodo(title) }
func (b storeTodos) Toggle(id int64) error                { return b.s.ToggleTodo(id) }
func (b storeTodos) Remove(id int64) error                { return b.s.RemoveTodo(id) }
func (b storeTodos) Edit(id int64, title string) error    { return b.s.EditTodo(id, title) }
func (b storeTodos) Set(todos []model.Todo)               { b.s.SetTodos(todos) }
func (b storeTodos) Insert(index int, t model.Todo) {
	b.s.SetTodos(insertTodo(b.s.Todos(), index, t))
}

func insertTodo(list []model.Todo, index int, t model.Todo) []model.Todo {
	index = max(0, min(index, len(list)))
	out := make([]model.Todo, 0, len(list)+1)
	out = append(out, list[:index]...)
	out = append(out, t)
	return append(out, list[index:]...)
}

// todoItem adapts a Todo to bubbles/list.Item.
type todoItem struct{ model.Todo }

func (i todoItem) FilterValue() string { return i.Title }

// Single-line delegate: "> ☑ Buy milk".
type todoDelegate struct{}

func (d todoDelegate) Height() int                               { return 1 }
func (d todoDelegate) Spacing() int                              { return 0 }
func (d todoDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d todoDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}
	t := ui.Current()
	box := t.Muted.Render(ui.Checkbox(false))
	text := it.Title
	if it.Completed {
		box = t.Success.Render(ui.Checkbox(true))
		text = t.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+box+" "+text)
}

type todosLoadedMsg struct {
	todos []model.Todo
	err   error
}

type todoKeys struct {
	add, toggle, del, edit, undo, retry, filter key.Binding
}

func newTodoKeys() todoKeys {
	return todoKeys{
		add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		del:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		undo:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		retry:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	}
}

type todoWidget struct {
	level   challenge.Level
	backend todoBackend
	deps    Deps
	log     *slog.Logger
	keys    todoKeys

	list list.Model
	ti   textinput.Model

	adding   bool
	editing  bool
	editID   int64
	inputErr string

	loading bool
	err     string

	undo      *model.Todo
	undoIndex int
}

func newTodo(level challenge.Level, d Deps) *todoWidget {
	var backend todoBackend = &localTodos{ids: state.NewIDSource(nil)}
	if level == challenge.Redux {
		backend = storeTodos{s: d.Store}
	}

	l := list.New(nil, todoDelegate{}, defaultWidth-4, defaultHeight-10)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowPagination(true)
	l.SetShowStatusBar(level.AtLeast(challenge.Hard))
	l.SetFilteringEnabled(level.AtLeast(challenge.Hard))
	l.SetStatusBarItemName("item", "items")
	l.FilterInput.Prompt = "/ "
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)
	l.SetShowFilter(true)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Add a task…"
	ti.CharLimit = 200

	w := &todoWidget{
		level:   level,
		backend: backend,
		deps:    d,
		log:     logging.Component(d.Log, "todo"),
		keys:    newTodoKeys(),
		list:    l,
		ti:      ti,
	}
	w.loading = w.fetches()
	w.refresh()
	return w
}

// fetches reports whether this level loads the remote list on start.
// The store-backed level keeps what the store already holds.
func (w *todoWidget) fetches() bool {
	if w.level == challenge.Redux {
		return len(w.backend.List()) == 0
	}
	return w.level.AtLeast(challenge.Mid)
}

func (w *todoWidget) fetch() tea.Cmd {
	ctx, fetcher := w.deps.Ctx, w.deps.API
	return func() tea.Msg {
		if fetcher == nil {
			return todosLoadedMsg{err: errors.New("no API client configured")}
		}
		todos, err := fetcher.Todos(ctx, 10)
		return todosLoadedMsg{todos: todos, err: err}
	}
}

func (w *todoWidget) Init() tea.Cmd {
	if w.loading {
		return w.fetch()
	}
	return nil
}

func (w *todoWidget) Capturing() bool {
	return w.adding || w.editing || w.list.FilterState() != list.Unfiltered
}

func (w *todoWidget) Keys() []key.Binding {
	ks := []key.Binding{w.keys.add, w.keys.toggle, w.keys.del}
	if w.level.AtLeast(challenge.Mid) {
		ks = append(ks, w.keys.edit)
		if w.err != "" {
			ks = append(ks, w.keys.retry)
		}
	}
	if w.level.AtLeast(challenge.Hard) {
		ks = append(ks, w.keys.undo, w.keys.filter)
	}
	return ks
}

// Todos is the current list, mostly for tests.
func (w *todoWidget) Todos() []model.Todo { return w.backend.List() }

func (w *todoWidget) refresh() tea.Cmd {
	todos := w.backend.List()
	items := make([]list.Item, len(todos))
	for i, t := range todos {
		items[i] = todoItem{t}
	}
	cmd := w.list.SetItems(items)
	if n := len(w.list.VisibleItems()); n > 0 && w.list.Index() >= n {
		w.list.Select(n - 1)
	}
	return cmd
}

func (w *todoWidget) selected() (model.Todo, bool) {
	it, ok := w.list.SelectedItem().(todoItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.Todo, true
}

func (w *todoWidget) indexOf(id int64) int {
	for i, t := range w.backend.List() {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (w *todoWidget) Update(msg tea.Msg) (Widget, tea.Cmd) {
	switch msg := msg.(type) {
	case todosLoadedMsg:
		w.loading = false
		if msg.err != nil {
			if w.level.AtLeast(challenge.Mid) {
				w.err = msg.err.Error()
			}
			w.log.Error("fetch todos", "error", msg.err)
			return w, nil
		}
		w.err = ""
		w.backend.Set(msg.todos)
		w.log.Debug("todos loaded", "count", len(msg.todos))
		return w, w.refresh()
	case tea.WindowSizeMsg:
		w.list.SetSize(max(20, msg.Width-4), max(3, msg.Height-12))
		return w, nil
	case tea.KeyMsg:
		if w.adding || w.editing {
			return w.updateInput(msg)
		}
		if w.list.FilterState() == list.Filtering {
			break
		}
		if cmd, handled := w.handleKey(msg); handled {
			return w, cmd
		}
	}
	var cmd tea.Cmd
	w.list, cmd = w.list.Update(msg)
	return w, cmd
}

func (w *todoWidget) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	midUp := w.level.AtLeast(challenge.Mid)
	hard := w.level.AtLeast(challenge.Hard)

	switch {
	case key.Matches(msg, w.keys.retry) && midUp && w.err != "" && !w.loading:
		w.loading, w.err = true, ""
		return w.fetch(), true
	case w.loading || w.err != "":
		// the list is hidden until the fetch settles
		return nil, key.Matches(msg, w.keys.add, w.keys.toggle, w.keys.del, w.keys.edit, w.keys.undo)
	case key.Matches(msg, w.keys.add):
		w.adding, w.inputErr = true, ""
		w.ti.SetValue("")
		w.ti.Placeholder = "Add a task…"
		return w.ti.Focus(), true
	case key.Matches(msg, w.keys.toggle):
		if t, ok := w.selected(); ok {
			_ = w.backend.Toggle(t.ID)
			return w.refresh(), true
		}
		return nil, true
	case key.Matches(msg, w.keys.del):
		t, ok := w.selected()
		if !ok {
			return nil, true
		}
		if hard {
			tmp := t
			w.undo, w.undoIndex = &tmp, w.indexOf(t.ID)
		}
		_ = w.backend.Remove(t.ID)
		return w.refresh(), true
	case key.Matches(msg, w.keys.edit) && midUp:
		t, ok := w.selected()
		if !ok {
			return nil, true
		}
		w.editing, w.editID, w.inputErr = true, t.ID, ""
		w.ti.SetValue(t.Title)
		w.ti.CursorEnd()
		w.ti.Placeholder = "Edit task…"
		return w.ti.Focus(), true
	case key.Matches(msg, w.keys.undo) && hard:
		if w.undo != nil {
			w.backend.Insert(w.undoIndex, *w.undo)
			w.undo = nil
			return w.refresh(), true
		}
		return nil, true
	}
	return nil, false
}

func (w *todoWidget) updateInput(msg tea.KeyMsg) (Widget, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if w.adding {
			if _, err := w.backend.Add(w.ti.Value()); err != nil {
				w.inputErr = "Title cannot be empty"
				return w, nil
			}
		} else {
			// an empty edit is a cancel
			if err := w.backend.Edit(w.editID, w.ti.Value()); err != nil && !errors.Is(err, state.ErrEmptyTitle) {
				w.inputErr = err.Error()
				return w, nil
			}
		}
		w.closeInput()
		return w, w.refresh()
	case tea.KeyEsc:
		w.closeInput()
		return w, nil
	}
	var cmd tea.Cmd
	w.ti, cmd = w.ti.Update(msg)
	return w, cmd
}

func (w *todoWidget) closeInput() {
	w.adding, w.editing, w.inputErr = false, false, ""
	w.ti.SetValue("")
	w.ti.Blur()
}

func (w *todoWidget) View() string {
	t := ui.Current()
	var b strings.Builder

	if w.level.AtLeast(challenge.Hard) {
		todos := w.backend.List()
		done, pending := state.TodoStats(todos)
		fmt.Fprintf(&b, "%s %d  %s %d  %s %d\n%s\n\n",
			t.Success.Render(t.SymDone), done,
			t.Pending.Render(t.SymPending), pending,
			t.Accent.Render("Total"), len(todos),
			ui.ProgressBar(done, len(todos), 24))
	}

	switch {
	case w.loading:
		b.WriteString("Loading…")
	case w.err != "":
		b.WriteString(t.Error.Render("Error: " + w.err))
		b.WriteString("  " + t.Muted.Render("press r to retry"))
	case len(w.backend.List()) == 0:
		b.WriteString(t.Muted.Render("No items"))
	default:
		b.WriteString(w.list.View())
	}

	if w.adding || w.editing {
		title := "Add new item"
		if w.editing {
			title = "Edit item"
		}
		if w.inputErr != "" {
			title += " - " + t.Error.Render(w.inputErr)
		}
		bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		b.WriteString("\n" + bar.Render(title+"\n"+w.ti.View()))
	}
	return b.String()
}
