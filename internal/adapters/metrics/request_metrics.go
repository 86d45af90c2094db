package metrics

import (
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/internal/domain/market"
	"github.com/andrescamacho/hideout-go/internal/domain/progress"
	"github.com/andrescamacho/hideout-go/internal/domain/shared"
)

// Outcome labels
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// RequestMetricsCollector times every command and query sent through the mediator
type RequestMetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
}

// NewRequestMetricsCollector creates a new request metrics collector
func NewRequestMetricsCollector() *RequestMetricsCollector {
	return &RequestMetricsCollector{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Time spent handling a command or query, including the profile load and save",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1.0},
			},
			[]string{"request", "kind"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Commands and queries handled, by outcome",
			},
			[]string{"request", "kind", "outcome"},
		),
	}
}

// Register registers the request metrics with the Prometheus registry
func (c *RequestMetricsCollector) Register() error {
	return registerAll(c.requestDuration, c.requestsTotal)
}

// Observe records one handled request
func (c *RequestMetricsCollector) Observe(requestName string, elapsed time.Duration, err error) {
	kind := RequestKind(requestName)
	c.requestDuration.WithLabelValues(requestName, kind).Observe(elapsed.Seconds())
	c.requestsTotal.WithLabelValues(requestName, kind, Outcome(err)).Inc()
}

// RequestKind is "command" or "query" by naming convention, else "other"
func RequestKind(requestName string) string {
	switch {
	case strings.HasSuffix(requestName, "Command"):
		return "command"
	case strings.HasSuffix(requestName, "Query"):
		return "query"
	default:
		return "other"
	}
}

// Outcome buckets a handler error into a low-cardinality label
func Outcome(err error) string {
	var validationErrs shared.ValidationErrors
	var validationErr *shared.ValidationError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, progress.ErrProfileNotFound),
		errors.Is(err, hideout.ErrStationNotFound),
		errors.Is(err, hideout.ErrRequirementNotFound):
		return OutcomeNotFound
	case errors.Is(err, progress.ErrProfileExists):
		return OutcomeConflict
	case errors.As(err, &validationErrs),
		errors.As(err, &validationErr),
		errors.Is(err, hideout.ErrInvalidViewMode),
		errors.Is(err, hideout.ErrInvalidEdition),
		errors.Is(err, market.ErrInvalidGameMode),
		errors.Is(err, progress.ErrInvalidProfileName),
		errors.Is(err, progress.ErrInvalidItemSize),
		errors.Is(err, progress.ErrUnsupportedSchemaVersion):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
