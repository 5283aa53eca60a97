package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementInitiated()
	m.IncrementRejected(ReasonInvalidFormat)
	m.IncrementRejected(ReasonInvalidFormat)
	m.ObserveExecution("completed", time.Now())
	m.SetBackendTier("durable", "postgres")
	m.SetBackendTier("fallback", "memory")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Initiated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Rejected.WithLabelValues(ReasonInvalidFormat)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Finished.WithLabelValues("completed")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.BackendTier))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BackendTier.WithLabelValues("fallback", "memory")))
}
