// Package commands contains the commands for the application to be used for request inputs.
package commands

import "TaskAPI/models"

// CreateTaskCommand represents a command to create a task.
// Pointer fields tell a missing key apart from an empty value; an explicit
// null for completed is rejected while decoding.
type CreateTaskCommand struct {
	Title       *string               `json:"title" validate:"required"`
	Bar         *string               `json:"bar" validate:"required"`
	Foo         *string               `json:"foo" validate:"required"`
	Description *string               `json:"description" validate:"required"`
	Completed   models.Optional[bool] `json:"completed"`
}

// Task converts the command into a task candidate for the store.
// Call it only after the command passed validation.
func (c CreateTaskCommand) Task() models.Task {
	completed, _ := c.Completed.Get()
	return models.Task{
		Title:       deref(c.Title),
		Bar:         deref(c.Bar),
		Foo:         deref(c.Foo),
		Description: deref(c.Description),
		Completed:   completed,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
