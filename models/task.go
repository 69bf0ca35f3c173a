// Package models contains the data models for the application to be used in request handling.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// ErrNullValue is returned when a partial update explicitly sends null for a field.
var ErrNullValue = errors.New("field may not be null")

// Task represents a task in the system.
// Task has the following properties:
// - ID: The unique identifier of the task, assigned by the store.
// - Title: The title of the task.
// - Bar, Foo: Opaque text fields stored and returned unchanged.
// - Description: The description of the task.
// - Completed: Whether the task is done.
// - CreatedAt: When the store accepted the task.
type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Bar         string    `json:"bar"`
	Foo         string    `json:"foo"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// Optional holds a value that may or may not have been supplied by the client.
// An absent JSON key leaves Set false; any present value, including false or "", sets it.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Get returns the value and whether it was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return ErrNullValue
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Set = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// TaskUpdate is a partial change to a stored task. Only fields that are Set are applied.
type TaskUpdate struct {
	Title       Optional[string]
	Description Optional[string]
	Completed   Optional[bool]
}

// Apply copies every supplied field of u onto task. ID and CreatedAt are never touched.
func (u TaskUpdate) Apply(task *Task) {
	if v, ok := u.Title.Get(); ok {
		task.Title = v
	}
	if v, ok := u.Description.Get(); ok {
		task.Description = v
	}
	if v, ok := u.Completed.Get(); ok {
		task.Completed = v
	}
}
