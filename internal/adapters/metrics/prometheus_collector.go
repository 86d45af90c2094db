package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	// Namespace for all metrics
	namespace = "hideout"
	// Subsystem for application metrics
	subsystem = "app"
)

// Registry is the global Prometheus registry for all metrics.
// It stays nil while metrics are disabled.
var Registry *prometheus.Registry

// InitRegistry initializes the Prometheus registry with the Go runtime and
// process collectors. Should be called once at startup if metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// registerAll registers collectors, doing nothing while metrics are disabled
func registerAll(cs ...prometheus.Collector) error {
	if Registry == nil {
		return nil
	}
	for _, c := range cs {
		if err := Registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}
