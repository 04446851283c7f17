package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	InferenceLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chartsignal",
			Subsystem: "inference",
			Name:      "latency_seconds",
			Help:      "Latency of a single model inference",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"model"},
	)

	InferenceFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chartsignal",
			Subsystem: "inference",
			Name:      "failures_total",
			Help:      "Inferences that degraded to an empty result",
		},
		[]string{"model"},
	)

	ClassificationsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chartsignal",
			Name:      "classifications_dropped_total",
			Help:      "Classification requests refused because one was already in flight",
		},
	)

	Recommendations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chartsignal",
			Name:      "recommendations_total",
			Help:      "Recommendations produced by outcome",
		},
		[]string{"recommendation"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(InferenceLatency, InferenceFailures, ClassificationsDropped, Recommendations)
	})
}
