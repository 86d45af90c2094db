package mediator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hideout-go/internal/application/mediator"
)

type pingQuery struct{ Value string }

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	q := request.(*pingQuery)
	return "pong:" + q.Value, nil
}

func TestMediator_SendDispatchesToHandler(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	resp, err := m.Send(context.Background(), &pingQuery{Value: "a"})

	require.NoError(t, err)
	assert.Equal(t, "pong:a", resp)
}

func TestMediator_DuplicateRegistration(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	err := mediator.RegisterHandler[*pingQuery](m, pingHandler{})

	assert.Error(t, err)
}

func TestMediator_UnknownRequest(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), &pingQuery{})

	assert.ErrorIs(t, err, mediator.ErrNoHandler)
	assert.ErrorContains(t, err, "pingQuery")
}

func TestMediator_HandlerFunc(t *testing.T) {
	m := mediator.NewMediator()
	handler := mediator.HandlerFunc(func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return len(request.(*pingQuery).Value), nil
	})
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, handler))

	resp, err := m.Send(context.Background(), &pingQuery{Value: "abc"})

	require.NoError(t, err)
	assert.Equal(t, 3, resp)
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	var calls []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, req mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			calls = append(calls, name+":before")
			resp, err := next(ctx, req)
			calls = append(calls, name+":after")
			return resp, err
		}
	}
	m.Use(trace("outer"))
	m.Use(trace("inner"))

	_, err := m.Send(context.Background(), &pingQuery{})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, calls)
}

func TestMediator_MiddlewareCanShortCircuit(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))
	denied := errors.New("denied")
	m.Use(func(ctx context.Context, req mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		return nil, denied
	})

	_, err := m.Send(context.Background(), &pingQuery{})

	assert.ErrorIs(t, err, denied)
}
