// Package metrics exposes Prometheus metrics for transfers and temperature alerts.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the panel's metrics. A nil *Collector is valid and records
// nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	TransfersStarted  prometheus.Counter
	TransfersFinished *prometheus.CounterVec
	Alerts            prometheus.Counter
	LastReading       prometheus.Gauge
	StoreRuns         *prometheus.CounterVec
}

// NewCollector registers the panel metrics against reg, or the default
// registerer when reg is nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	started := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "transfers_started_total",
		Help: "Number of transfers started by a fetch.",
	})
	started, err := registerCounter(reg, started, "transfers_started_total")
	if err != nil {
		return nil, err
	}

	finished := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transfers_finished_total",
		Help: "Number of transfers that ended, by reason (arrived, collided, restarted).",
	}, []string{"reason"})
	finished, err = registerCounterVec(reg, finished, "transfers_finished_total")
	if err != nil {
		return nil, err
	}

	alerts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "temperature_alerts_total",
		Help: "Number of readings above the alert threshold.",
	})
	alerts, err = registerCounter(reg, alerts, "temperature_alerts_total")
	if err != nil {
		return nil, err
	}

	reading := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "temperature_last_reading_degrees",
		Help: "Most recent sampled temperature.",
	})
	reading, err = registerGauge(reg, reading, "temperature_last_reading_degrees")
	if err != nil {
		return nil, err
	}

	store := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_runs_total",
		Help: "Store process invocations, by result (ok, error).",
	}, []string{"result"})
	store, err = registerCounterVec(reg, store, "store_runs_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:          gatherer,
		TransfersStarted:  started,
		TransfersFinished: finished,
		Alerts:            alerts,
		LastReading:       reading,
		StoreRuns:         store,
	}, nil
}

// Handler serves the collector's gatherer in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// IncStarted counts a started transfer.
func (c *Collector) IncStarted() {
	if c == nil {
		return
	}
	c.TransfersStarted.Inc()
}

// IncFinished counts a finished transfer.
func (c *Collector) IncFinished(reason string) {
	if c == nil {
		return
	}
	c.TransfersFinished.WithLabelValues(reason).Inc()
}

// ObserveReading records a sampled reading and whether it alerted.
func (c *Collector) ObserveReading(value float64, alert bool) {
	if c == nil {
		return
	}
	c.LastReading.Set(value)
	if alert {
		c.Alerts.Inc()
	}
}

// IncStore counts a store run.
func (c *Collector) IncStore(err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.StoreRuns.WithLabelValues(result).Inc()
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
