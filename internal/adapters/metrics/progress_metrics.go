package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/hideout-go/internal/application/progress/queries"
	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
)

// ProgressMetricsCollector exposes the latest pooled demand and station
// readiness per profile as gauges
type ProgressMetricsCollector struct {
	outstandingItems *prometheus.GaugeVec
	neededCost       *prometheus.GaugeVec
	stations         *prometheus.GaugeVec
}

// NewProgressMetricsCollector creates a new progress metrics collector
func NewProgressMetricsCollector() *ProgressMetricsCollector {
	return &ProgressMetricsCollector{
		outstandingItems: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "needs",
				Name:      "outstanding_items",
				Help:      "Distinct items still needed by a profile in a view mode",
			},
			[]string{"profile", "view_mode"},
		),
		neededCost: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "needs",
				Name:      "cost_roubles",
				Help:      "Market cost of the outstanding items of a profile",
			},
			[]string{"profile", "view_mode", "game_mode"},
		),
		stations: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "stations",
				Name:      "by_readiness",
				Help:      "Number of stations of a profile per readiness state",
			},
			[]string{"profile", "readiness"},
		),
	}
}

// Register registers all progress metrics with the Prometheus registry
func (c *ProgressMetricsCollector) Register() error {
	return registerAll(c.outstandingItems, c.neededCost, c.stations)
}

// RecordPooledNeeds records the result of a pooled needs query
func (c *ProgressMetricsCollector) RecordPooledNeeds(resp *queries.GetPooledNeedsResponse) {
	mode := string(resp.ViewMode)
	c.outstandingItems.WithLabelValues(resp.ProfileName, mode).Set(float64(resp.OutstandingItems))
	c.neededCost.WithLabelValues(resp.ProfileName, mode, string(resp.GameMode)).Set(float64(resp.TotalNeededCost))
}

// RecordStationStatus records how many stations sit in each readiness state
func (c *ProgressMetricsCollector) RecordStationStatus(resp *queries.GetStationStatusResponse) {
	if resp.Partial {
		return
	}
	counts := map[hideout.Readiness]int{
		hideout.ReadinessReady:   0,
		hideout.ReadinessMissing: 0,
		hideout.ReadinessIllegal: 0,
		hideout.ReadinessMaxed:   0,
	}
	for _, s := range resp.Stations {
		counts[s.Readiness]++
	}
	for readiness, n := range counts {
		c.stations.WithLabelValues(resp.ProfileName, string(readiness)).Set(float64(n))
	}
}
