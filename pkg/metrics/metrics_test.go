package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewRecorder(reg)
	require.NoError(t, err)

	r.ObservePlanning(20*time.Millisecond, 12, 3)
	r.ObservePlanning(time.Millisecond, 0, 0)
	r.ObserveFailure(OutcomeTimeout)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues(OutcomeEmpty)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues(OutcomeTimeout)))
	assert.Equal(t, 1, testutil.CollectAndCount(r.duration))
}

func TestNewRecorder_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewRecorder(reg)
	require.NoError(t, err)
	second, err := NewRecorder(reg)
	require.NoError(t, err)

	second.ObserveFailure(OutcomeInvalid)
	assert.Equal(t, 1.0, testutil.ToFloat64(first.requests.WithLabelValues(OutcomeInvalid)))
}
