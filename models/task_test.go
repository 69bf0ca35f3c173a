package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type optionalPayload struct {
	Title     Optional[string] `json:"title"`
	Completed Optional[bool]   `json:"completed"`
}

func TestOptionalDistinguishesAbsentFromFalse(t *testing.T) {
	var p optionalPayload
	require.NoError(t, json.Unmarshal([]byte(`{"completed": false}`), &p))

	assert.False(t, p.Title.Set, "absent key must stay unset")
	v, ok := p.Completed.Get()
	assert.True(t, ok, "explicit false must be set")
	assert.False(t, v)
}

func TestOptionalEmptyStringIsSet(t *testing.T) {
	var p optionalPayload
	require.NoError(t, json.Unmarshal([]byte(`{"title": ""}`), &p))

	v, ok := p.Title.Get()
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestOptionalRejectsNull(t *testing.T) {
	var p optionalPayload
	err := json.Unmarshal([]byte(`{"completed": null}`), &p)
	assert.ErrorIs(t, err, ErrNullValue)
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var p optionalPayload
	err := json.Unmarshal([]byte(`{"completed": "yes"}`), &p)
	assert.Error(t, err)
	assert.False(t, p.Completed.Set)
}

func TestOptionalMarshal(t *testing.T) {
	out, err := json.Marshal(optionalPayload{Completed: Some(true)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title": null, "completed": true}`, string(out))
}

func TestTaskUpdateApply(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	base := Task{ID: 4, Title: "Buy milk", Description: "2 litres", Foo: "f", Bar: "b", Completed: true, CreatedAt: created}

	tests := []struct {
		name   string
		update TaskUpdate
		want   Task
	}{
		{
			name:   "empty update changes nothing",
			update: TaskUpdate{},
			want:   base,
		},
		{
			name:   "completed false is applied",
			update: TaskUpdate{Completed: Some(false)},
			want:   Task{ID: 4, Title: "Buy milk", Description: "2 litres", Foo: "f", Bar: "b", Completed: false, CreatedAt: created},
		},
		{
			name:   "title and description only",
			update: TaskUpdate{Title: Some("Buy bread"), Description: Some("wholegrain")},
			want:   Task{ID: 4, Title: "Buy bread", Description: "wholegrain", Foo: "f", Bar: "b", Completed: true, CreatedAt: created},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base
			tt.update.Apply(&got)
			assert.Equal(t, tt.want, got)
		})
	}
}
