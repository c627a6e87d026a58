package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.IncrementResolution("clean")
	m.IncrementResolution("clean")
	m.IncrementSubmission("rejected_fraud")
	m.IncrementImport("started")
	m.ObserveImportDuration(1500 * time.Millisecond)
	m.SessionStarted()
	m.SessionStarted()
	m.SessionStopped()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("clean")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("rejected_fraud")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Imports.WithLabelValues("started")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveSessions))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementResolution("clean")
		m.IncrementScreeningHit("money_laundering")
		m.IncrementImport("completed")
		m.ObserveImportDuration(time.Second)
		m.IncrementSubmission("accepted")
		m.SessionStarted()
		m.SessionStopped()
	})
}
