package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels of the realizations counter.
const (
	OutcomeOK        = "ok"
	OutcomeAuthoring = "authoring_error"
	OutcomeTrial     = "trial_error"
	OutcomeOther     = "error"
)

// Metrics holds the realization collectors.
type Metrics struct {
	Realizations *prometheus.CounterVec
	Segments     *prometheus.CounterVec
	Duration     *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Realizations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kinetree_realizations_total",
				Help: "Total number of template realizations by outcome",
			},
			[]string{"template", "outcome"},
		),
		Segments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kinetree_segments_realized_total",
				Help: "Total number of segments turned into numeric data",
			},
			[]string{"template"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kinetree_realize_duration_seconds",
				Help:    "Duration of template realizations",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"template"},
		),
	}
	if reg == nil {
		return m, nil
	}
	var err error
	if m.Realizations, err = register(reg, m.Realizations); err != nil {
		return nil, err
	}
	if m.Segments, err = register(reg, m.Segments); err != nil {
		return nil, err
	}
	if m.Duration, err = register(reg, m.Duration); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg. When an equal collector is already registered it is
// returned instead, so every Metrics on one registry shares the same series.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var already prometheus.AlreadyRegisteredError
	if !errors.As(err, &already) {
		return c, err
	}
	existing, ok := already.ExistingCollector.(C)
	if !ok {
		return c, fmt.Errorf("collector already registered with type %T: %w", already.ExistingCollector, err)
	}
	return existing, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSegmentRealized: func(_ context.Context, e *domain.SegmentEvent) {
			m.Segments.WithLabelValues(e.Template).Inc()
		},
		OnRealizeEnd: func(_ context.Context, e *domain.RealizeEvent) {
			m.Realizations.WithLabelValues(e.Template, Outcome(e.Err)).Inc()
			m.Duration.WithLabelValues(e.Template).Observe(e.Duration.Seconds())
		},
	}
}

// Outcome classifies a realization error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case domain.IsAuthoringError(err):
		return OutcomeAuthoring
	case domain.IsTrialError(err):
		return OutcomeTrial
	}
	return OutcomeOther
}
