// Package metric holds the Prometheus collectors for CX exports and
// ontology conversions. A nil *Metrics is valid and records nothing.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the converter's Prometheus collectors.
type Metrics struct {
	exports         *prometheus.CounterVec   // By policy and result (ok/error)
	triplesEmitted  *prometheus.CounterVec   // By policy
	exportDuration  *prometheus.HistogramVec // By policy
	aspectFallbacks *prometheus.CounterVec   // By aspect name
	ontologyClasses *prometheus.CounterVec   // By result (converted/skipped)
	uploads         *prometheus.CounterVec   // By target and result
}

// New creates the collectors and registers them with reg. A nil reg
// disables metrics and returns nil.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}

	m := &Metrics{
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cxrdf",
			Name:      "exports_total",
			Help:      "Total number of CX to RDF exports",
		}, []string{"policy", "result"}),

		triplesEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cxrdf",
			Name:      "triples_emitted_total",
			Help:      "Total number of triples produced by exports",
		}, []string{"policy"}),

		exportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cxrdf",
			Name:      "export_duration_seconds",
			Help:      "Export duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"policy"}),

		aspectFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cxrdf",
			Name:      "aspect_fallbacks_total",
			Help:      "Aspects exported structurally because the policy has no handler",
		}, []string{"kind"}), // kind: a registered CX aspect name or "unknown"

		ontologyClasses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cxrdf",
			Name:      "ontology_classes_total",
			Help:      "Ontology classes seen by the OWL to CX converter",
		}, []string{"result"}), // result: converted, skipped

		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cxrdf",
			Name:      "uploads_total",
			Help:      "CX documents uploaded to a network store",
		}, []string{"target", "result"}),
	}

	collectors := []prometheus.Collector{
		m.exports,
		m.triplesEmitted,
		m.exportDuration,
		m.aspectFallbacks,
		m.ontologyClasses,
		m.uploads,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// RecordExport records one finished export.
func (m *Metrics) RecordExport(policy string, triples int, duration time.Duration, err error) {
	if m == nil {
		return
	}

	m.exports.WithLabelValues(policy, result(err)).Inc()
	m.exportDuration.WithLabelValues(policy).Observe(duration.Seconds())
	if err == nil {
		m.triplesEmitted.WithLabelValues(policy).Add(float64(triples))
	}
}

// RecordFallback records an aspect exported through the structural fallback.
// kind must come from a bounded set; pass "unknown" for unregistered aspect
// names rather than the name itself.
func (m *Metrics) RecordFallback(kind string) {
	if m == nil {
		return
	}
	m.aspectFallbacks.WithLabelValues(kind).Inc()
}

// RecordClass records an ontology class as converted or skipped.
func (m *Metrics) RecordClass(converted bool) {
	if m == nil {
		return
	}
	status := "skipped"
	if converted {
		status = "converted"
	}
	m.ontologyClasses.WithLabelValues(status).Inc()
}

// RecordUpload records an upload attempt to target.
func (m *Metrics) RecordUpload(target string, err error) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(target, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
