package commands

import "TaskAPI/models"

// UpdateTaskCommand represents a command to partially update a task.
// Keys left out of the request body stay unset and leave the stored value alone.
type UpdateTaskCommand struct {
	Title       models.Optional[string] `json:"title"`
	Description models.Optional[string] `json:"description"`
	Completed   models.Optional[bool]   `json:"completed"`
}

// Update converts the command into the store's partial update.
func (c UpdateTaskCommand) Update() models.TaskUpdate {
	return models.TaskUpdate{
		Title:       c.Title,
		Description: c.Description,
		Completed:   c.Completed,
	}
}
