package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/prepkit/internal/challenge"
	"github.com/idilsaglam/prepkit/internal/model"
	"github.com/idilsaglam/prepkit/internal/state"
	"github.com/idilsaglam/prepkit/internal/ui"
)

func todoOf(f *Frame) *todoWidget { return f.Widget().(*todoWidget) }

func TestTodoAddToggleDelete(t *testing.T) {
	f := newFrame(t, challenge.Todo, challenge.Low, Deps{})
	assert.Contains(t, f.View(), "No items")

	send(f, runes("a"), runes("Buy milk"), keyOf(tea.KeyEnter))
	todos := todoOf(f).Todos()
	require.Len(t, todos, 1)
	assert.Equal(t, "Buy milk", todos[0].Title)
	assert.False(t, todos[0].Completed)

	send(f, space)
	assert.True(t, todoOf(f).Todos()[0].Completed)
	assert.Contains(t, f.View(), "☑")
	assert.True(t, ui.Current().Done.GetStrikethrough())
	assert.Contains(t, f.View(), ui.Current().Done.Render("Buy milk"))

	send(f, runes("d"))
	assert.Empty(t, todoOf(f).Todos())
	assert.Contains(t, f.View(), "No items")
}

func TestTodoRejectsBlankTitle(t *testing.T) {
	f := newFrame(t, challenge.Todo, challenge.Low, Deps{})
	send(f, runes("a"), runes("   "), keyOf(tea.KeyEnter))
	assert.Empty(t, todoOf(f).Todos())
	assert.True(t, todoOf(f).Capturing())
	assert.Contains(t, f.View(), "Title cannot be empty")
}

func TestTodoLowDoesNotFetch(t *testing.T) {
	fake := &fakeAPI{todos: []model.Todo{{ID: 1, Title: "remote"}}}
	f := newFrame(t, challenge.Todo, challenge.Low, Deps{API: fake})
	assert.Nil(t, f.Init())
	assert.Zero(t, fake.Calls("todos"))
}

func TestTodoMidFetchErrorAndRetry(t *testing.T) {
	fake := &fakeAPI{todosErr: errors.New("boom")}
	f := newFrame(t, challenge.Todo, challenge.Mid, Deps{API: fake})
	assert.Contains(t, f.View(), "Loading")

	w := todoOf(f)
	send(f, w.fetch()())
	assert.Contains(t, f.View(), "Error: boom")

	fake.todosErr = nil
	fake.todos = []model.Todo{{ID: 1, Title: "delectus aut autem"}, {ID: 2, Title: "quis ut nam", Completed: true}}
	cmd := send(f, runes("r"))
	require.NotNil(t, cmd)
	send(f, cmd())

	assert.Len(t, w.Todos(), 2)
	assert.NotContains(t, f.View(), "Error")
	assert.Equal(t, 2, fake.Calls("todos"))
}

func TestTodoMidEdit(t *testing.T) {
	fake := &fakeAPI{todos: []model.Todo{{ID: 1, Title: "old"}}}
	f := newFrame(t, challenge.Todo, challenge.Mid, Deps{API: fake})
	w := todoOf(f)
	send(f, w.fetch()())

	send(f, runes("e"))
	require.True(t, w.Capturing())
	assert.Equal(t, "old", w.ti.Value())
	w.ti.SetValue("new title")
	send(f, keyOf(tea.KeyEnter))
	assert.Equal(t, "new title", w.Todos()[0].Title)

	// an empty edit cancels and keeps the title
	send(f, runes("e"))
	w.ti.SetValue("  ")
	send(f, keyOf(tea.KeyEnter))
	assert.False(t, w.Capturing())
	assert.Equal(t, "new title", w.Todos()[0].Title)
}

func TestTodoHardUndoAndCounters(t *testing.T) {
	fake := &fakeAPI{todos: []model.Todo{
		{ID: 1, Title: "one", Completed: true},
		{ID: 2, Title: "two"},
		{ID: 3, Title: "three"},
	}}
	f := newFrame(t, challenge.Todo, challenge.Hard, Deps{API: fake})
	w := todoOf(f)
	send(f, w.fetch()())
	assert.Contains(t, f.View(), "1/3")

	send(f, runes("d"))
	assert.Len(t, w.Todos(), 2)
	send(f, runes("u"))
	require.Len(t, w.Todos(), 3)
	assert.Equal(t, "one", w.Todos()[0].Title)

	// only one level of undo
	send(f, runes("u"))
	assert.Len(t, w.Todos(), 3)
}

func TestTodoReduxSharesStore(t *testing.T) {
	store := state.NewStore(nil)
	_, err := store.AddTodo("from store")
	require.NoError(t, err)

	fake := &fakeAPI{}
	f := newFrame(t, challenge.Todo, challenge.Redux, Deps{API: fake, Store: store})
	assert.Nil(t, f.Init(), "a populated store is not refetched")

	send(f, runes("a"), runes("second"), keyOf(tea.KeyEnter))
	assert.Len(t, store.Todos(), 2)
	assert.True(t, store.Dirty())

	send(f, space)
	assert.True(t, store.Todos()[0].Completed)
}
