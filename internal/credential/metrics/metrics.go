package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the credential-path Prometheus metrics. All methods are
// nil-safe so tests can run without a registry.
type Metrics struct {
	Issued        prometheus.Counter
	Conflicts     prometheus.Counter
	Verifications *prometheus.CounterVec
	IssueDuration prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		Issued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "credforge_credentials_issued_total",
			Help: "Total number of credentials issued",
		}),
		Conflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "credforge_issuance_conflicts_total",
			Help: "Total number of issuance requests rejected as duplicates",
		}),
		Verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "credforge_verifications_total",
			Help: "Total number of verification lookups by result",
		}, []string{"result"}),
		IssueDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "credforge_issue_duration_seconds",
			Help:    "Duration of credential issuance including the store insert",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementIssued() {
	if m != nil {
		m.Issued.Inc()
	}
}

func (m *Metrics) IncrementConflicts() {
	if m != nil {
		m.Conflicts.Inc()
	}
}

func (m *Metrics) IncrementVerifications(result string) {
	if m != nil {
		m.Verifications.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) ObserveIssueDuration(start time.Time) {
	if m != nil {
		m.IssueDuration.Observe(time.Since(start).Seconds())
	}
}
