// Package metrics exposes market state as Prometheus gauges, written to a
// textfile for the node exporter's textfile collector.
package metrics

import (
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/talgya/market-sim/internal/engine"
)

const namespace = "marketsim"

// Collector holds the market gauges in a private registry.
type Collector struct {
	registry *prometheus.Registry

	price            prometheus.Gauge
	concentration    prometheus.Gauge
	totalMarketValue prometheus.Gauge
	period           prometheus.Gauge
	periodsTotal     prometheus.Counter

	firmCapital    *prometheus.GaugeVec
	firmInventory  *prometheus.GaugeVec
	firmCapacity   *prometheus.GaugeVec
	firmProduction *prometheus.GaugeVec
	skippedTotal   *prometheus.CounterVec
}

// NewCollector creates a collector with every metric registered.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		price: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "price",
			Help:      "Market clearing price of the last period",
		}),
		concentration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hhi",
			Help:      "Herfindahl-Hirschman index of current stock",
		}),
		totalMarketValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_market_value",
			Help:      "Sales value of the last period",
		}),
		period: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "period",
			Help:      "Next period to be simulated",
		}),
		periodsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "periods_simulated_total",
			Help:      "Periods simulated by this process",
		}),

		firmCapital: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "firm",
			Name:      "capital",
			Help:      "Firm capital after the last period",
		}, []string{"firm"}),
		firmInventory: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "firm",
			Name:      "inventory",
			Help:      "Units in firm inventory",
		}, []string{"firm"}),
		firmCapacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "firm",
			Name:      "capacity",
			Help:      "Firm production capacity",
		}, []string{"firm"}),
		firmProduction: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "firm",
			Name:      "production",
			Help:      "Units the firm decided to produce last period",
		}, []string{"firm"}),
		skippedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "firm",
			Name:      "unaffordable_production_total",
			Help:      "Periods in which the firm could not pay for its production",
		}, []string{"firm"}),
	}

	c.registry.MustRegister(
		c.price,
		c.concentration,
		c.totalMarketValue,
		c.period,
		c.periodsTotal,
		c.firmCapital,
		c.firmInventory,
		c.firmCapacity,
		c.firmProduction,
		c.skippedTotal,
	)
	return c
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Observe records the outcome of one period and the market it left behind.
func (c *Collector) Observe(res engine.PeriodResult, m *engine.Market) {
	c.price.Set(res.ClearingPrice)
	c.concentration.Set(m.Concentration())
	c.totalMarketValue.Set(m.TotalMarketValue)
	c.period.Set(float64(m.CurrentPeriod))
	c.periodsTotal.Inc()

	for _, fp := range res.Firms {
		c.firmProduction.WithLabelValues(fp.Name).Set(fp.Decided)
		if !fp.Executed {
			c.skippedTotal.WithLabelValues(fp.Name).Inc()
		}
	}
	for _, f := range m.Firms {
		c.firmCapital.WithLabelValues(f.Name).Set(f.Capital)
		c.firmInventory.WithLabelValues(f.Name).Set(f.Inventory.Stock())
		c.firmCapacity.WithLabelValues(f.Name).Set(f.Production.Capacity)
	}
}

// WriteTextfile writes the current values in the text exposition format.
// The file is replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, c.registry)
}
