package state

import (
	"sync"

	"github.com/idilsaglam/prepkit/internal/model"
)

// Snapshot is the serializable content of a Store.
type Snapshot struct {
	Todos     []model.Todo    `json:"todos"`
	Countries []model.Country `json:"countries"`
}

// Store is the process-wide container for the two global collections.
// Every mutation goes through one of the reducers in this package.
type Store struct {
	mu        sync.RWMutex
	todos     []model.Todo
	countries []model.Country
	ids       *IDSource
	dirty     bool
}

func NewStore(ids *IDSource) *Store {
	if ids == nil {
		ids = NewIDSource(nil)
	}
	return &Store{ids: ids}
}

func (s *Store) Todos() []model.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SetTodos(s.todos)
}

func (s *Store) SavedCountries() []model.Country {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SetSavedCountries(s.countries)
}

// AddTodo creates a to-do and returns it.
func (s *Store) AddTodo(title string) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.ids.Next()
	next, err := AddTodo(s.todos, title, id)
	if err != nil {
		return model.Todo{}, err
	}
	s.todos = next
	s.dirty = true
	return next[len(next)-1], nil
}

func (s *Store) ToggleTodo(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := FindTodo(s.todos, id); !ok {
		return ErrNotFound
	}
	s.todos = ToggleTodo(s.todos, id)
	s.dirty = true
	return nil
}

func (s *Store) RemoveTodo(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := FindTodo(s.todos, id); !ok {
		return ErrNotFound
	}
	s.todos = RemoveTodo(s.todos, id)
	s.dirty = true
	return nil
}

func (s *Store) EditTodo(id int64, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := EditTodo(s.todos, id, title)
	if err != nil {
		return err
	}
	s.todos = next
	s.dirty = true
	return nil
}

func (s *Store) SetTodos(list []model.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range list {
		s.ids.Observe(t.ID)
	}
	s.todos = SetTodos(list)
	s.dirty = true
}

// SaveCountry reports false when a country with the same name is saved already.
func (s *Store) SaveCountry(c model.Country) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, added := SaveCountry(s.countries, c)
	if added {
		s.countries = next
		s.dirty = true
	}
	return added
}

// RemoveCountry reports whether anything was removed.
func (s *Store) RemoveCountry(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := RemoveCountry(s.countries, name)
	if len(next) == len(s.countries) {
		return false
	}
	s.countries = next
	s.dirty = true
	return true
}

func (s *Store) SetSavedCountries(list []model.Country) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countries = SetSavedCountries(list)
	s.dirty = true
}

// Dirty reports whether anything changed since the last Restore or MarkClean.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

func (s *Store) MarkClean() {
	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Todos:     SetTodos(s.todos),
		Countries: SetSavedCountries(s.countries),
	}
}

// Restore replaces both collections and clears the dirty flag.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range snap.Todos {
		s.ids.Observe(t.ID)
	}
	s.todos = SetTodos(snap.Todos)
	s.countries = SetSavedCountries(snap.Countries)
	s.dirty = false
}
