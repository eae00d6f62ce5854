package experiment

import (
	"strconv"

	"github.com/limaJavier/minorembed/pkg/embedding"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pkg/errors"
)

const (
	EngineLabel = "engine"
	StateLabel  = "state"
	KindLabel   = "kind"
	SharedLabel = "shared"
)

// Metrics aggregates the outcomes of a batch on a private registry
type Metrics struct {
	registry *prometheus.Registry

	experiments   *prometheus.CounterVec
	solveSeconds  *prometheus.HistogramVec
	encodeSeconds prometheus.Histogram
	clauses       *prometheus.CounterVec
	variables     prometheus.Counter
}

func NewMetrics() *Metrics {
	metrics := &Metrics{
		registry: prometheus.NewRegistry(),
		experiments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minorembed_experiments_total",
				Help: "Experiments processed, by engine and final solve state",
			},
			[]string{EngineLabel, StateLabel, SharedLabel},
		),
		solveSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "minorembed_solve_duration_seconds",
				Help:    "Wall time of bounded solves",
				Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
			},
			[]string{EngineLabel},
		),
		encodeSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "minorembed_encode_duration_seconds",
				Help:    "Time spent building and writing the clause set",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
		),
		clauses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minorembed_clauses_total",
				Help: "Clauses emitted, by family",
			},
			[]string{KindLabel},
		),
		variables: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "minorembed_variables_total",
				Help: "Assignment variables emitted",
			},
		),
	}

	metrics.registry.MustRegister(
		metrics.experiments,
		metrics.solveSeconds,
		metrics.encodeSeconds,
		metrics.clauses,
		metrics.variables,
	)
	return metrics
}

// Observe records one experiment. attempt.Instance is nil when the experiment failed before encoding.
func (metrics *Metrics) Observe(experiment Experiment, attempt embedding.Attempt, state string) {
	metrics.experiments.WithLabelValues(experiment.Engine, state, strconv.FormatBool(experiment.AllowSharedPhysicalQubits)).Inc()

	if attempt.Instance == nil {
		return
	}
	metrics.encodeSeconds.Observe(attempt.EncodingTime.Seconds())
	metrics.variables.Add(float64(attempt.Instance.Variables()))
	for kind, count := range attempt.Instance.KindCounts() {
		metrics.clauses.WithLabelValues(kind.String()).Add(float64(count))
	}
	metrics.solveSeconds.WithLabelValues(experiment.Engine).Observe(attempt.Result.Elapsed.Seconds())
}

// WriteFile writes every series in the Prometheus text format
func (metrics *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, metrics.registry); err != nil {
		return errors.Wrap(err, "cannot write metrics")
	}
	return nil
}
