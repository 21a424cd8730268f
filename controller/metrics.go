/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package controller

import (
	stderrors "errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts controller operations by entity, operation and outcome.
type Metrics struct {
	operations *prometheus.CounterVec
}

// NewMetrics registers the operation counter on reg. Controllers for several
// entity types may share one registerer; an existing counter is reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "entitycrud",
		Name:      "operations_total",
		Help:      "Controller operations by entity, operation and outcome.",
	}, []string{"entity", "operation", "outcome"})

	if err := reg.Register(counter); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !stderrors.As(err, &already) {
			return nil, err
		}
		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		counter = existing
	}
	return &Metrics{operations: counter}, nil
}

func (m *Metrics) observe(entity, operation string, outcome Outcome) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(entity, operation, string(outcome)).Inc()
}
