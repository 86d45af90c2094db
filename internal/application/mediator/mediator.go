package mediator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// Request is a command (mutates a profile) or a query (reads one)
type Request interface{}

// Response is whatever the request's handler returns
type Response interface{}

// RequestHandler handles exactly one request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc adapts a function to RequestHandler
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Handle calls f
func (f HandlerFunc) Handle(ctx context.Context, request Request) (Response, error) {
	return f(ctx, request)
}

// Middleware wraps every Send, e.g. validation, logging or metrics
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// ErrNoHandler is returned by Send for a request type nobody registered
var ErrNoHandler = errors.New("no handler registered")

// Mediator dispatches requests to their handlers
type Mediator interface {
	Send(ctx context.Context, request Request) (Response, error)
	Register(requestType reflect.Type, handler RequestHandler) error
	Use(middleware Middleware)
}

type mediator struct {
	handlers    map[reflect.Type]RequestHandler
	middlewares []Middleware
}

// NewMediator creates a new mediator instance
func NewMediator() Mediator {
	return &mediator{
		handlers: make(map[reflect.Type]RequestHandler),
	}
}

// Register registers a handler for a specific request type
func (m *mediator) Register(requestType reflect.Type, handler RequestHandler) error {
	if requestType == nil {
		return fmt.Errorf("request type cannot be nil")
	}

	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	if _, exists := m.handlers[requestType]; exists {
		return fmt.Errorf("handler already registered for type %s", requestType)
	}

	m.handlers[requestType] = handler
	return nil
}

// Use appends a middleware. Middlewares run in registration order, the
// first registered being the outermost.
func (m *mediator) Use(middleware Middleware) {
	m.middlewares = append(m.middlewares, middleware)
}

// Send dispatches a request through the middleware chain to its handler
func (m *mediator) Send(ctx context.Context, request Request) (Response, error) {
	if request == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}

	requestType := reflect.TypeOf(request)
	handler, ok := m.handlers[requestType]
	if !ok {
		return nil, fmt.Errorf("%w for type %s", ErrNoHandler, requestType)
	}

	next := HandlerFunc(handler.Handle)
	for i := len(m.middlewares) - 1; i >= 0; i-- {
		mw := m.middlewares[i]
		inner := next
		next = func(ctx context.Context, req Request) (Response, error) {
			return mw(ctx, req, inner)
		}
	}

	return next(ctx, request)
}

// RegisterHandler registers a handler with the request type inferred from T
func RegisterHandler[T Request](m Mediator, handler RequestHandler) error {
	var zero T
	return m.Register(reflect.TypeOf(zero), handler)
}
