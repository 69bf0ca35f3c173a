package commands

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TaskAPI/models"
)

func TestCreateTaskCommandDropsClientIDAndTimestamp(t *testing.T) {
	body := `{"id": 999, "created_at": "1999-01-01T00:00:00Z", "title": "Buy milk",
		"description": "semi-skimmed", "foo": "x", "bar": "y"}`

	var cmd CreateTaskCommand
	require.NoError(t, json.Unmarshal([]byte(body), &cmd))

	assert.Equal(t, models.Task{Title: "Buy milk", Description: "semi-skimmed", Foo: "x", Bar: "y"}, cmd.Task())
}

func TestCreateTaskCommandCompleted(t *testing.T) {
	var cmd CreateTaskCommand
	require.NoError(t, json.Unmarshal([]byte(`{"title": "t", "description": "d", "foo": "", "bar": "", "completed": true}`), &cmd))

	task := cmd.Task()
	assert.True(t, task.Completed)
	assert.Equal(t, "", task.Foo)
}

func TestCreateTaskCommandRejectsNullCompleted(t *testing.T) {
	var cmd CreateTaskCommand
	err := json.Unmarshal([]byte(`{"title": "t", "description": "d", "foo": "f", "bar": "b", "completed": null}`), &cmd)
	assert.ErrorIs(t, err, models.ErrNullValue)
}

func TestUpdateTaskCommandKeepsTriState(t *testing.T) {
	var cmd UpdateTaskCommand
	require.NoError(t, json.Unmarshal([]byte(`{"completed": false, "id": 5}`), &cmd))

	update := cmd.Update()
	assert.False(t, update.Title.Set)
	assert.False(t, update.Description.Set)
	assert.Equal(t, models.Some(false), update.Completed)
}

func TestParseListTasksQuery(t *testing.T) {
	completed := true

	tests := []struct {
		name    string
		raw     string
		want    ListTasksQuery
		wantErr string
	}{
		{name: "defaults", raw: "", want: ListTasksQuery{Skip: 0, Limit: DefaultListLimit}},
		{name: "explicit values", raw: "skip=5&limit=20&completed=true", want: ListTasksQuery{Skip: 5, Limit: 20, Completed: &completed}},
		{name: "bad skip", raw: "skip=abc", wantErr: "skip must be an integer"},
		{name: "bad limit", raw: "limit=1.5", wantErr: "limit must be an integer"},
		{name: "bad completed", raw: "completed=maybe", wantErr: "completed must be a boolean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.raw)
			require.NoError(t, err)

			got, err := ParseListTasksQuery(values)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSearchTasksQuery(t *testing.T) {
	assert.Equal(t, SearchTasksQuery{Q: "milk"}, ParseSearchTasksQuery(url.Values{"q": {"milk"}}))
	assert.Equal(t, SearchTasksQuery{}, ParseSearchTasksQuery(url.Values{}))
}
