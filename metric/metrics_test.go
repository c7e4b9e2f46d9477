package metric

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NilRegistry(t *testing.T) {
	m, err := New(nil)
	require.NoError(t, err)
	assert.Nil(t, m)

	// nil metrics must be safe to use
	m.RecordExport("predicate", 10, time.Millisecond, nil)
	m.RecordFallback("cyVisualProperties")
	m.RecordClass(true)
	m.RecordUpload("ndex", nil)
}

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.RecordExport("predicate", 19, 2*time.Millisecond, nil)
	m.RecordExport("predicate", 5, time.Millisecond, errors.New("boom"))
	m.RecordFallback("cyVisualProperties")
	m.RecordFallback("cyVisualProperties")
	m.RecordClass(true)
	m.RecordClass(false)
	m.RecordUpload("ndex", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues("predicate", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues("predicate", "error")))
	assert.Equal(t, 19.0, testutil.ToFloat64(m.triplesEmitted.WithLabelValues("predicate")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.aspectFallbacks.WithLabelValues("cyVisualProperties")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ontologyClasses.WithLabelValues("skipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploads.WithLabelValues("ndex", "ok")))
}

func TestNew_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}
