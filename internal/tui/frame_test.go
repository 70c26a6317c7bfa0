package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/prepkit/internal/challenge"
)

func TestEveryCatalogueLevelBuilds(t *testing.T) {
	for _, e := range challenge.All() {
		for _, l := range e.Levels {
			f, err := New(e, l, Deps{API: &fakeAPI{}})
			require.NoError(t, err, e.Route(l))
			assert.Contains(t, f.View(), f.Title())
			assert.NotEmpty(t, Source(e.ID), e.ID)
		}
	}
}

func TestUnknownChallenge(t *testing.T) {
	_, err := New(challenge.Entry{ID: "nope"}, challenge.Low, Deps{})
	assert.ErrorIs(t, err, challenge.ErrNotFound)
	assert.Empty(t, Source("nope"))
}

func TestFrameTitleAndSourceToggle(t *testing.T) {
	f := newFrame(t, challenge.Todo, challenge.Hard, Deps{API: &fakeAPI{}})
	assert.Equal(t, "ToDo (Hard)", f.Title())

	send(f, keyOf(tea.KeyTab))
	v := f.View()
	assert.Contains(t, v, "Source: todo.go")
	assert.Contains(t, v, "package tui")

	// esc leaves the source view instead of quitting
	cmd := send(f, keyOf(tea.KeyEsc))
	assert.False(t, isQuit(cmd))
	assert.NotContains(t, f.View(), "Source: todo.go")
}

func TestFrameQuitKeys(t *testing.T) {
	f := newFrame(t, challenge.Stopwatch, challenge.Low, Deps{})
	assert.True(t, isQuit(send(f, keyOf(tea.KeyCtrlC))))
	assert.True(t, isQuit(send(f, keyOf(tea.KeyEsc))))
}

func TestEscClosesInlineEditorFirst(t *testing.T) {
	f := newFrame(t, challenge.Todo, challenge.Low, Deps{})
	send(f, runes("a"))
	require.True(t, f.Widget().Capturing())

	cmd := send(f, keyOf(tea.KeyEsc))
	assert.False(t, isQuit(cmd))
	assert.False(t, f.Widget().Capturing())
}

func TestNumberedPadsLineNumbers(t *testing.T) {
	src := "a\nb\nc\nd\ne\nf\ng\nh\ni\nj\n"
	out := numbered(src)
	assert.Contains(t, out, " 1  a\n")
	assert.Contains(t, out, "10  j\n")
}
