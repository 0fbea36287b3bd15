// Package metrics exposes the progress of searches as Prometheus metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/askiada/go-almanac/pkg/search/model"
)

// PrometheusCollector is a search option recording batches, seeds and results.
//
// The outstanding batches gauge is only meaningful while a search runs: a failed search leaves it as it was
// and the next search of the same mode resets it.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	searchesStarted    *prometheus.CounterVec
	searchesFinished   *prometheus.CounterVec
	batchesDispatched  *prometheus.CounterVec
	batchesCompleted   *prometheus.CounterVec
	seedsEvaluated     *prometheus.CounterVec
	batchDuration      *prometheus.HistogramVec
	lowestLocation     *prometheus.GaugeVec
	batchesOutstanding *prometheus.GaugeVec
}

var _ model.SearchOption = (*PrometheusCollector)(nil)

// NewPrometheus creates a collector registering its metrics on reg (prometheus.DefaultRegisterer if nil) under
// namespace ("almanac" if empty).
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	if namespace == "" {
		namespace = "almanac"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.searchesStarted = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "started_total",
			Help:      "Total searches started by mode.",
		}, []string{"mode"})

		p.searchesFinished = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "finished_total",
			Help:      "Total searches finished successfully by mode.",
		}, []string{"mode"})

		p.batchesDispatched = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "batches_dispatched_total",
			Help:      "Total batches pushed to the workers by mode.",
		}, []string{"mode"})

		p.batchesCompleted = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "batches_completed_total",
			Help:      "Total batch results received by the collector by mode.",
		}, []string{"mode"})

		p.seedsEvaluated = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "seeds_evaluated_total",
			Help:      "Total seeds translated into a location by mode.",
		}, []string{"mode"})

		p.batchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "batch_duration_seconds",
			Help:      "Time spent by a worker evaluating one batch.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms .. ~3.3s
		}, []string{"mode"})

		p.lowestLocation = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "lowest_location",
			Help:      "Lowest location found by the last finished search by mode.",
		}, []string{"mode"})

		p.batchesOutstanding = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "batches_outstanding",
			Help:      "Batches dispatched whose result has not been collected yet by the running search, by mode.",
		}, []string{"mode"})

		p.reg.MustRegister(p.searchesStarted)
		p.reg.MustRegister(p.searchesFinished)
		p.reg.MustRegister(p.batchesDispatched)
		p.reg.MustRegister(p.batchesCompleted)
		p.reg.MustRegister(p.seedsEvaluated)
		p.reg.MustRegister(p.batchDuration)
		p.reg.MustRegister(p.lowestLocation)
		p.reg.MustRegister(p.batchesOutstanding)
	})
}

func (p *PrometheusCollector) New(search *model.SearchInfo) error {
	p.ensureRegistered()
	p.searchesStarted.WithLabelValues(string(search.Mode)).Inc()
	p.batchesOutstanding.WithLabelValues(string(search.Mode)).Set(0)

	return nil
}

func (p *PrometheusCollector) OnDispatch(search *model.SearchInfo, _ model.BatchInfo) error {
	p.ensureRegistered()
	mode := string(search.Mode)
	p.batchesDispatched.WithLabelValues(mode).Inc()
	p.batchesOutstanding.WithLabelValues(mode).Inc()

	return nil
}

func (p *PrometheusCollector) OnResult(search *model.SearchInfo, result model.ResultInfo) error {
	p.ensureRegistered()

	mode := string(search.Mode)
	p.batchesCompleted.WithLabelValues(mode).Inc()
	p.seedsEvaluated.WithLabelValues(mode).Add(float64(result.Batch.Seeds()))
	p.batchDuration.WithLabelValues(mode).Observe(result.Elapsed.Seconds())
	p.batchesOutstanding.WithLabelValues(mode).Dec()

	return nil
}

func (p *PrometheusCollector) Finish(search *model.SearchInfo, best model.ResultInfo) error {
	p.ensureRegistered()

	mode := string(search.Mode)
	p.searchesFinished.WithLabelValues(mode).Inc()
	p.lowestLocation.WithLabelValues(mode).Set(float64(best.Location))

	return nil
}
