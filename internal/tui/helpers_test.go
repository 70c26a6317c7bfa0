package tui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/prepkit/internal/api"
	"github.com/idilsaglam/prepkit/internal/challenge"
	"github.com/idilsaglam/prepkit/internal/model"
)

// fakeAPI serves canned data. A non-nil error field fails that call.
type fakeAPI struct {
	mu sync.Mutex

	todos     []model.Todo
	users     []model.User
	countries []model.Country
	fact      model.CatFact
	image     model.CatImage

	todosErr, usersErr, allErr, factErr error

	calls     map[string]int
	imageWith []string
}

var _ api.Fetcher = (*fakeAPI)(nil)

func (f *fakeAPI) count(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeAPI) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) Todos(context.Context, int) ([]model.Todo, error) {
	f.count("todos")
	return f.todos, f.todosErr
}

func (f *fakeAPI) Users(context.Context) ([]model.User, error) {
	f.count("users")
	return f.users, f.usersErr
}

func (f *fakeAPI) AllCountries(context.Context) ([]model.Country, error) {
	f.count("all")
	return f.countries, f.allErr
}

func (f *fakeAPI) CountryByName(_ context.Context, name string) ([]model.Country, error) {
	f.count("name")
	var out []model.Country
	for _, c := range f.countries {
		if c.Name.Common == name {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, api.ErrNotFound
	}
	return out, nil
}

func (f *fakeAPI) CatFact(context.Context) (model.CatFact, error) {
	f.count("fact")
	return f.fact, f.factErr
}

func (f *fakeAPI) CatImage(_ context.Context, words string) (model.CatImage, error) {
	f.count("image")
	f.mu.Lock()
	f.imageWith = append(f.imageWith, words)
	f.mu.Unlock()
	return f.image, nil
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func keyOf(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func newFrame(t *testing.T, id challenge.ID, level challenge.Level, d Deps) *Frame {
	t.Helper()
	e, err := challenge.Lookup(string(id))
	require.NoError(t, err)
	f, err := New(e, level, d)
	require.NoError(t, err)
	return f
}

func send(f *Frame, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = f.Update(m)
	}
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}
