package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/hideout-go/internal/application/common"
	"github.com/andrescamacho/hideout-go/internal/application/mediator"
	"github.com/andrescamacho/hideout-go/internal/application/progress/queries"
)

// PrometheusMiddleware times every command and query and counts them by
// outcome. Request names drop their package prefix, so
// "*commands.SetStationLevelCommand" is recorded as "SetStationLevelCommand".
func PrometheusMiddleware(collector *RequestMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)

		collector.Observe(common.RequestName(request), time.Since(start), err)
		return response, err
	}
}

// ProgressMiddleware feeds query results into the progress gauges
func ProgressMiddleware(collector *ProgressMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		response, err := next(ctx, request)
		if collector == nil || err != nil {
			return response, err
		}

		switch resp := response.(type) {
		case *queries.GetPooledNeedsResponse:
			collector.RecordPooledNeeds(resp)
		case *queries.GetStationStatusResponse:
			collector.RecordStationStatus(resp)
		}
		return response, err
	}
}
