package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RotationMetrics records reconciliation outcomes per calendar mutation.
type RotationMetrics struct {
	duration  *prometheus.HistogramVec
	effects   *prometheus.CounterVec
	conflicts *prometheus.CounterVec
	rejected  *prometheus.CounterVec
}

// NewRotationMetrics registers the rotation metrics on the provided registerer.
func NewRotationMetrics(reg prometheus.Registerer) *RotationMetrics {
	if reg == nil {
		return &RotationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rotation_mutation_duration_seconds",
		Help:    "Duration of calendar mutations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	effects := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rotation_effects_total",
		Help: "Applied reconciliation effects by kind.",
	}, []string{"operation", "effect"})
	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rotation_conflicts_total",
		Help: "Mutations refused because another branch holds the staff member.",
	}, []string{"operation"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rotation_rejections_total",
		Help: "Mutations rejected by validation, by reason.",
	}, []string{"operation", "reason"})
	reg.MustRegister(duration, effects, conflicts, rejected)
	return &RotationMetrics{
		duration:  duration,
		effects:   effects,
		conflicts: conflicts,
		rejected:  rejected,
	}
}

// ObserveDuration records how long the named mutation took.
func (r *RotationMetrics) ObserveDuration(operation string, duration time.Duration) {
	if r == nil || r.duration == nil {
		return
	}
	r.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncEffect counts an applied effect ("create", "update", "delete", "noop").
func (r *RotationMetrics) IncEffect(operation, effect string) {
	if r == nil || r.effects == nil {
		return
	}
	r.effects.WithLabelValues(normalizeLabel(operation), normalizeLabel(effect)).Inc()
}

// IncConflict counts an exclusivity refusal for the named mutation.
func (r *RotationMetrics) IncConflict(operation string) {
	if r == nil || r.conflicts == nil {
		return
	}
	r.conflicts.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncRejection counts a validation rejection for the named mutation.
func (r *RotationMetrics) IncRejection(operation, reason string) {
	if r == nil || r.rejected == nil {
		return
	}
	r.rejected.WithLabelValues(normalizeLabel(operation), normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
