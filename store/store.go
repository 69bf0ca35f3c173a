// Package store holds the in-memory task repository used by the HTTP handlers.
//
// Tasks live only for the lifetime of the process. Identifiers are assigned from a counter
// starting at 1 and are never reused, so insertion order and ascending id order coincide.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"TaskAPI/models"
)

var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrTaskNotFound indicates that no task exists for the given id.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)
)

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the time source used to stamp CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store is a concurrency-safe in-memory task repository.
// Writers hold the exclusive lock, readers the shared one, so no caller ever
// observes a partially applied create, update or delete.
type Store struct {
	mu     sync.RWMutex
	tasks  map[int]models.Task
	order  []int // ascending ids; may hold ids that were since deleted
	dead   int   // deleted ids still present in order
	nextID int
	now    func() time.Time
}

// NewStore returns an empty store whose first task will get id 1.
func NewStore(opts ...Option) *Store {
	s := &Store{
		tasks:  make(map[int]models.Task),
		nextID: 1,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores candidate under the next id and returns the stored record.
// Any ID or CreatedAt set on candidate is discarded.
func (s *Store) Create(candidate models.Task) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate.ID = s.nextID
	candidate.CreatedAt = s.now()
	s.tasks[candidate.ID] = candidate
	s.order = append(s.order, candidate.ID)
	s.nextID++
	return candidate
}

// Get returns the task with the given id or ErrTaskNotFound.
func (s *Store) Get(id int) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("get task %d: %w", id, ErrTaskNotFound)
	}
	return task, nil
}

// List returns up to limit tasks in ascending id order, skipping the first skip matches.
// A nil completed matches every task. An offset past the end yields an empty slice.
func (s *Store) List(skip, limit int, completed *bool) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, 0)
	if limit <= 0 {
		return out
	}
	for _, id := range s.order {
		task, ok := s.tasks[id]
		if !ok {
			continue
		}
		if completed != nil && task.Completed != *completed {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		out = append(out, task)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Update applies the supplied fields of update to the task with the given id
// and returns the resulting record.
func (s *Store) Update(id int, update models.TaskUpdate) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("update task %d: %w", id, ErrTaskNotFound)
	}
	update.Apply(&task)
	s.tasks[id] = task
	return task, nil
}

// Delete removes the task with the given id permanently.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("delete task %d: %w", id, ErrTaskNotFound)
	}
	delete(s.tasks, id)
	s.dead++
	if s.dead > len(s.tasks) {
		s.compact()
	}
	return nil
}

// Search returns every task whose title or description contains query, ignoring case.
func (s *Store) Search(query string) []models.Task {
	needle := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, 0)
	for _, id := range s.order {
		task, ok := s.tasks[id]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(task.Title), needle) ||
			strings.Contains(strings.ToLower(task.Description), needle) {
			out = append(out, task)
		}
	}
	return out
}

// Count returns the number of stored tasks.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// compact drops deleted ids from order. Callers must hold the write lock.
func (s *Store) compact() {
	live := make([]int, 0, len(s.tasks))
	for _, id := range s.order {
		if _, ok := s.tasks[id]; ok {
			live = append(live, id)
		}
	}
	s.order = live
	s.dead = 0
}
