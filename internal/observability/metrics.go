package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce      sync.Once
	authoringCreated  *prometheus.CounterVec
	authoringFailures *prometheus.CounterVec
	judgeCalls        *prometheus.CounterVec
	judgeLatency      prometheus.Histogram
	requestsTotal     *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors for the service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		authoringCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "examide_authoring_created_total",
			Help: "Questions committed through the authoring protocols.",
		}, []string{"kind"})

		authoringFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "examide_authoring_rollbacks_total",
			Help: "Authoring transactions that were rolled back.",
		}, []string{"kind"})

		judgeCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "examide_judge_calls_total",
			Help: "Calls issued to the external judge service.",
		}, []string{"outcome"})

		judgeLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "examide_judge_latency_seconds",
			Help:    "Latency distribution for judge evaluations.",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		})

		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "examide_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		prometheus.MustRegister(authoringCreated, authoringFailures, judgeCalls, judgeLatency, requestsTotal)
	})
}

// AuthoringCreated exposes the counter for committed authoring operations.
func AuthoringCreated() *prometheus.CounterVec {
	RegisterMetrics()
	return authoringCreated
}

// AuthoringFailures exposes the counter for rolled-back authoring operations.
func AuthoringFailures() *prometheus.CounterVec {
	RegisterMetrics()
	return authoringFailures
}

// JudgeCalls exposes the counter for judge evaluations.
func JudgeCalls() *prometheus.CounterVec {
	RegisterMetrics()
	return judgeCalls
}

// JudgeLatency exposes the latency histogram for judge evaluations.
func JudgeLatency() prometheus.Histogram {
	RegisterMetrics()
	return judgeLatency
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}
