package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementCreated("bags")
	m.IncrementCreated("bags")
	m.IncrementUpdated("shelves")
	m.IncrementDeleted("boxes")
	m.IncrementLogin(LoginFailed)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecordsCreated.WithLabelValues("bags")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RecordsCreated.WithLabelValues("shelves")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsUpdated.WithLabelValues("shelves")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsDeleted.WithLabelValues("boxes")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues(LoginFailed)))
}
