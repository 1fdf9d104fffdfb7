package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Login outcomes.
const (
	LoginSucceeded = "succeeded"
	LoginFailed    = "failed"
	LoginLocked    = "locked"
)

type Metrics struct {
	RecordsCreated *prometheus.CounterVec
	RecordsUpdated *prometheus.CounterVec
	RecordsDeleted *prometheus.CounterVec
	LoginAttempts  *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RecordsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "custody_records_created_total",
			Help: "Total number of custody records created",
		}, []string{"resource"}),
		RecordsUpdated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "custody_records_updated_total",
			Help: "Total number of custody records updated",
		}, []string{"resource"}),
		RecordsDeleted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "custody_records_deleted_total",
			Help: "Total number of custody records deleted",
		}, []string{"resource"}),
		LoginAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "custody_officer_login_attempts_total",
			Help: "Total number of officer login attempts by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncrementCreated(resource string) {
	m.RecordsCreated.WithLabelValues(resource).Inc()
}

func (m *Metrics) IncrementUpdated(resource string) {
	m.RecordsUpdated.WithLabelValues(resource).Inc()
}

func (m *Metrics) IncrementDeleted(resource string) {
	m.RecordsDeleted.WithLabelValues(resource).Inc()
}

func (m *Metrics) IncrementLogin(outcome string) {
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}
