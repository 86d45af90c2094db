package common

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/hideout-go/internal/application/mediator"
	"github.com/andrescamacho/hideout-go/internal/domain/shared"
)

var requestValidator = validator.New()

// RequestName returns the bare type name of a request, e.g. "SetStationLevelCommand"
func RequestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}
	name := reflect.TypeOf(request).String()
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.TrimPrefix(name, "*")
}

// ValidationMiddleware rejects requests whose `validate` struct tags fail
func ValidationMiddleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if err := ValidateRequest(request); err != nil {
			return nil, err
		}
		return next(ctx, request)
	}
}

// ValidateRequest validates a request struct; non-struct requests pass
func ValidateRequest(request mediator.Request) error {
	v := reflect.ValueOf(request)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	err := requestValidator.Struct(request)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(shared.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, shared.NewValidationError(fe.Field(), "failed "+fe.Tag()+" validation"))
	}
	return out
}

// LoggingMiddleware logs every request with its duration through the context logger
func LoggingMiddleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		logger := LoggerFromContext(ctx)
		start := time.Now()

		response, err := next(ctx, request)

		metadata := map[string]interface{}{
			"request":     RequestName(request),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log("warn", "request failed", metadata)
		} else {
			logger.Log("debug", "request handled", metadata)
		}
		return response, err
	}
}
