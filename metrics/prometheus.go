// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/log"
)

const namespace = "yieldfarm_metrics"

var logger = log.WithContext("pkg", "metrics")

// InitializePrometheusMetrics swaps the prometheus backend in. Once enabled
// it stays enabled; repeated calls keep the existing registry.
func InitializePrometheusMetrics() {
	if _, ok := metrics.(*prometheusMetrics); !ok {
		metrics = &prometheusMetrics{}
	}
}

// prometheusMetrics keeps one meter per name; the maps make repeated
// GetOrCreate calls with the same name safe from any goroutine.
type prometheusMetrics struct {
	counters    sync.Map
	counterVecs sync.Map
	gauges      sync.Map
	histVecs    sync.Map
}

func (p *prometheusMetrics) GetOrCreateCountMeter(name string) CountMeter {
	loaded, ok := p.counters.Load(name)
	if !ok {
		meter := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
		})
		register(meter, name)
		loaded, _ = p.counters.LoadOrStore(name, &promCounter{meter})
	}
	return loaded.(CountMeter)
}

func (p *prometheusMetrics) GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter {
	loaded, ok := p.counterVecs.Load(name)
	if !ok {
		meter := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
		}, labels)
		register(meter, name)
		loaded, _ = p.counterVecs.LoadOrStore(name, &promCounterVec{meter})
	}
	return loaded.(CountVecMeter)
}

func (p *prometheusMetrics) GetOrCreateGaugeMeter(name string) GaugeMeter {
	loaded, ok := p.gauges.Load(name)
	if !ok {
		meter := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
		})
		register(meter, name)
		loaded, _ = p.gauges.LoadOrStore(name, &promGauge{meter})
	}
	return loaded.(GaugeMeter)
}

func (p *prometheusMetrics) GetOrCreateHistogramVecMeter(name string, labels []string, buckets []int64) HistogramVecMeter {
	loaded, ok := p.histVecs.Load(name)
	if !ok {
		floatBuckets := make([]float64, len(buckets))
		for i, b := range buckets {
			floatBuckets[i] = float64(b)
		}
		meter := prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   floatBuckets,
		}, labels)
		register(meter, name)
		loaded, _ = p.histVecs.LoadOrStore(name, &promHistogramVec{meter})
	}
	return loaded.(HistogramVecMeter)
}

func (p *prometheusMetrics) GetOrCreateHandler() http.Handler {
	return promhttp.Handler()
}

func register(c prometheus.Collector, name string) {
	if err := prometheus.Register(c); err != nil {
		logger.Warn("unable to register metric", "name", name, "err", err)
	}
}

type promCounter struct {
	counter prometheus.Counter
}

func (c *promCounter) Add(i int64) {
	c.counter.Add(float64(i))
}

type promCounterVec struct {
	counter *prometheus.CounterVec
}

func (c *promCounterVec) AddWithLabel(i int64, labels map[string]string) {
	c.counter.With(labels).Add(float64(i))
}

type promGauge struct {
	gauge prometheus.Gauge
}

func (g *promGauge) Add(i int64) {
	g.gauge.Add(float64(i))
}

func (g *promGauge) Set(i int64) {
	g.gauge.Set(float64(i))
}

type promHistogramVec struct {
	histogram *prometheus.HistogramVec
}

func (h *promHistogramVec) ObserveWithLabels(i int64, labels map[string]string) {
	h.histogram.With(labels).Observe(float64(i))
}
