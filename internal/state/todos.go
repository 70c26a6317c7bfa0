package state

import (
	"errors"
	"strings"

	"github.com/idilsaglam/prepkit/internal/model"
)

var (
	ErrEmptyTitle = errors.New("title cannot be empty")
	ErrNotFound   = errors.New("not found")
)

// The reducers below never modify the slice they are given.

// AddTodo appends a new pending to-do with the trimmed title.
func AddTodo(list []model.Todo, title string, id int64) ([]model.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return list, ErrEmptyTitle
	}
	out := make([]model.Todo, 0, len(list)+1)
	out = append(out, list...)
	return append(out, model.Todo{ID: id, Title: title}), nil
}

// ToggleTodo flips Completed on the item with the given id.
func ToggleTodo(list []model.Todo, id int64) []model.Todo {
	out := make([]model.Todo, len(list))
	for i, t := range list {
		if t.ID == id {
			t.Completed = !t.Completed
		}
		out[i] = t
	}
	return out
}

// RemoveTodo drops exactly the item with the given id.
func RemoveTodo(list []model.Todo, id int64) []model.Todo {
	out := make([]model.Todo, 0, len(list))
	for _, t := range list {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// SetTodos replaces the whole list, e.g. after the initial fetch.
func SetTodos(list []model.Todo) []model.Todo {
	out := make([]model.Todo, len(list))
	copy(out, list)
	return out
}

// EditTodo renames the item with the given id.
func EditTodo(list []model.Todo, id int64, title string) ([]model.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return list, ErrEmptyTitle
	}
	out := make([]model.Todo, len(list))
	found := false
	for i, t := range list {
		if t.ID == id {
			t.Title = title
			found = true
		}
		out[i] = t
	}
	if !found {
		return list, ErrNotFound
	}
	return out, nil
}

// FindTodo returns the item with the given id.
func FindTodo(list []model.Todo, id int64) (model.Todo, bool) {
	for _, t := range list {
		if t.ID == id {
			return t, true
		}
	}
	return model.Todo{}, false
}

// TodoStats counts done and pending items.
func TodoStats(list []model.Todo) (done, pending int) {
	for _, t := range list {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
