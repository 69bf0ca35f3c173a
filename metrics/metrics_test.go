package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersInstruments(t *testing.T) {
	reg := prometheus.NewRegistry()
	stored := 3
	m := New(reg, func() int { return stored })

	m.EndpointCalls.WithLabelValues("GET /tasks").Inc()
	m.Errors.WithLabelValues("GET /tasks/{id}").Inc()
	m.RequestDuration.WithLabelValues("GET /tasks").Observe(0.01)

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	expected := `
# HELP taskapi_tasks_stored Number of tasks currently held in memory.
# TYPE taskapi_tasks_stored gauge
taskapi_tasks_stored 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "taskapi_tasks_stored"))

	stored = 5
	assert.Equal(t, float64(5), testutil.ToFloat64(m.TasksStored))
}

func TestNewPanicsOnDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	count := func() int { return 0 }
	New(reg, count)
	assert.Panics(t, func() { New(reg, count) })
}
