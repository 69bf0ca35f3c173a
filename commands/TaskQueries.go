package commands

import (
	"errors"
	"net/url"
	"strconv"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// ListTasksQuery holds the pagination and filter parameters of a task listing.
type ListTasksQuery struct {
	Skip      int   `query:"skip" validate:"gte=0"`
	Limit     int   `query:"limit" validate:"gte=1,lte=100"`
	Completed *bool `query:"completed"`
}

// ParseListTasksQuery reads skip, limit and completed from the URL query.
// Missing parameters take their defaults; values that do not parse are errors.
func ParseListTasksQuery(values url.Values) (ListTasksQuery, error) {
	q := ListTasksQuery{Limit: DefaultListLimit}

	if raw := values.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil {
			return q, errors.New("skip must be an integer")
		}
		q.Skip = skip
	}
	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return q, errors.New("limit must be an integer")
		}
		q.Limit = limit
	}
	if raw := values.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return q, errors.New("completed must be a boolean")
		}
		q.Completed = &completed
	}
	return q, nil
}

// SearchTasksQuery holds the text a task search matches against.
type SearchTasksQuery struct {
	Q string `query:"q" validate:"required,min=3"`
}

// ParseSearchTasksQuery reads q from the URL query.
func ParseSearchTasksQuery(values url.Values) SearchTasksQuery {
	return SearchTasksQuery{Q: values.Get("q")}
}
