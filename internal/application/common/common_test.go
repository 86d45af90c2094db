package common_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hideout-go/internal/application/common"
	"github.com/andrescamacho/hideout-go/internal/application/mediator"
	"github.com/andrescamacho/hideout-go/internal/domain/progress"
	"github.com/andrescamacho/hideout-go/internal/domain/shared"
	"github.com/andrescamacho/hideout-go/test/helpers"
)

type renameCommand struct {
	ProfileRef string `validate:"required"`
	NewName    string `validate:"required,max=8"`
}

type recordingLogger struct {
	levels   []string
	messages []string
	metadata []map[string]interface{}
}

func (l *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.levels = append(l.levels, level)
	l.messages = append(l.messages, message)
	l.metadata = append(l.metadata, metadata)
}

func passThrough(ctx context.Context, r mediator.Request) (mediator.Response, error) {
	return "done", nil
}

func TestRequestName(t *testing.T) {
	assert.Equal(t, "renameCommand", common.RequestName(&renameCommand{}))
	assert.Equal(t, "renameCommand", common.RequestName(renameCommand{}))
	assert.Equal(t, "UnknownRequest", common.RequestName(nil))
}

func TestValidationMiddleware_RejectsEveryFailedField(t *testing.T) {
	mw := common.ValidationMiddleware()
	called := false
	next := func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
		called = true
		return nil, nil
	}

	_, err := mw(context.Background(), &renameCommand{NewName: "far-too-long"}, next)

	require.Error(t, err)
	assert.False(t, called, "handler must not run")
	var verrs shared.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, "ProfileRef", verrs[0].Field)
	assert.Equal(t, "failed required validation", verrs[0].Message)
	assert.Equal(t, "NewName", verrs[1].Field)
}

func TestValidationMiddleware_PassesValidAndNonStructRequests(t *testing.T) {
	mw := common.ValidationMiddleware()

	resp, err := mw(context.Background(), &renameCommand{ProfileRef: "main", NewName: "alt"}, passThrough)
	require.NoError(t, err)
	assert.Equal(t, "done", resp)

	resp, err = mw(context.Background(), "ping", passThrough)
	require.NoError(t, err)
	assert.Equal(t, "done", resp)

	var nilCmd *renameCommand
	_, err = mw(context.Background(), nilCmd, passThrough)
	assert.NoError(t, err)
}

func TestLoggingMiddleware_UsesContextLogger(t *testing.T) {
	logger := &recordingLogger{}
	ctx := common.WithLogger(context.Background(), logger)
	mw := common.LoggingMiddleware()

	_, err := mw(ctx, &renameCommand{}, passThrough)
	require.NoError(t, err)
	_, err = mw(ctx, &renameCommand{}, func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
		return nil, progress.ErrProfileNotFound
	})
	require.Error(t, err)

	require.Len(t, logger.levels, 2)
	assert.Equal(t, []string{"debug", "warn"}, logger.levels)
	assert.Equal(t, "renameCommand", logger.metadata[0]["request"])
	assert.Equal(t, "profile not found", logger.metadata[1]["error"])
}

func TestLoggerFromContext_FallsBackToNoOp(t *testing.T) {
	logger := common.LoggerFromContext(context.Background())
	require.NotNil(t, logger)
	logger.Log("info", "dropped", nil)
}

func TestSlogLogger_MapsLevelsAndMetadata(t *testing.T) {
	var buf bytes.Buffer
	logger := common.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	logger.Log("info", "hidden", nil)
	logger.Log("warning", "station locked", map[string]interface{}{"station": "workbench"})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="station locked"`)
	assert.Contains(t, out, "station=workbench")
}

func TestProfileResolver(t *testing.T) {
	repo := helpers.NewMockProfileRepository()
	p, err := progress.NewProfile("main", progress.DefaultPreferences())
	require.NoError(t, err)
	repo.AddProfile(p)
	resolver := common.NewProfileResolver(repo)
	ctx := context.Background()

	byID, err := resolver.Resolve(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, "main", byID.Name())

	byName, err := resolver.Resolve(ctx, "  main ")
	require.NoError(t, err)
	assert.Equal(t, p.ID(), byName.ID())

	_, err = resolver.Resolve(ctx, "ghost")
	assert.ErrorIs(t, err, progress.ErrProfileNotFound)

	_, err = resolver.Resolve(ctx, "")
	assert.Error(t, err)
}
