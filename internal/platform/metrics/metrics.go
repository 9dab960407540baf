// Package metrics exposes Prometheus instruments for the domain services.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quote_lab"

// Recorder counts successful write operations per resource.
// It satisfies app.MutationRecorder.
type Recorder struct {
	mutations *prometheus.CounterVec
}

// NewRecorder creates a Recorder and registers its collectors with reg.
// A nil reg falls back to prometheus.DefaultRegisterer so the counters
// show up on /-/metrics.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_mutations_total",
		Help:      "Number of successful create, update and delete operations by resource.",
	}, []string{"resource", "operation"})

	if err := reg.Register(mutations); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, err
		}

		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}

		mutations = existing
	}

	return &Recorder{mutations: mutations}, nil
}

// RecordMutation increments the counter for resource and operation.
func (r *Recorder) RecordMutation(resource, operation string) {
	r.mutations.WithLabelValues(resource, operation).Inc()
}
