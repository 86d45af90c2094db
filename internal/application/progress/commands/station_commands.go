package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/hideout-go/internal/application/common"
	"github.com/andrescamacho/hideout-go/internal/application/mediator"
	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/internal/domain/progress"
	"github.com/andrescamacho/hideout-go/internal/domain/shared"
)

// SetStationLevelCommand records the built level of a station
type SetStationLevelCommand struct {
	ProfileRef string `validate:"required"`
	StationRef string `validate:"required"` // station id or normalized name
	Level      int
}

// SetStationLevelResponse reports the level actually stored after clamping
type SetStationLevelResponse struct {
	StationID string
	Level     int
	Clamped   bool
}

// SetStationLevelHandler handles the SetStationLevel command
type SetStationLevelHandler struct {
	mutator         profileMutator
	stationProvider hideout.StationProvider
}

// NewSetStationLevelHandler creates a new SetStationLevelHandler
func NewSetStationLevelHandler(
	profileRepo progress.ProfileRepository,
	stationProvider hideout.StationProvider,
	clock shared.Clock,
) *SetStationLevelHandler {
	return &SetStationLevelHandler{
		mutator:         newProfileMutator(profileRepo, clock),
		stationProvider: stationProvider,
	}
}

// Handle executes the SetStationLevel command
func (h *SetStationLevelHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SetStationLevelCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SetStationLevelCommand")
	}

	stations, err := h.stationProvider.Stations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stations: %w", err)
	}
	station, err := hideout.ResolveStation(stations, cmd.StationRef)
	if err != nil {
		return nil, err
	}

	var stored int
	_, err = h.mutator.mutate(ctx, cmd.ProfileRef, func(p *progress.Profile) error {
		var err error
		stored, err = p.SetStationLevel(station, cmd.Level)
		return err
	})
	if err != nil {
		return nil, err
	}

	if stored != cmd.Level {
		common.LoggerFromContext(ctx).Log("warn", "station level clamped", map[string]interface{}{
			"station":   station.NormalizedName,
			"requested": cmd.Level,
			"stored":    stored,
		})
	}

	return &SetStationLevelResponse{
		StationID: station.ID,
		Level:     stored,
		Clamped:   stored != cmd.Level,
	}, nil
}

// SetStationHiddenCommand hides or shows a station. A nil Hidden toggles it.
type SetStationHiddenCommand struct {
	ProfileRef string `validate:"required"`
	StationRef string `validate:"required"`
	Hidden     *bool
}

// SetStationHiddenResponse reports the resulting hidden flag
type SetStationHiddenResponse struct {
	StationID string
	Hidden    bool
}

// SetStationHiddenHandler handles the SetStationHidden command
type SetStationHiddenHandler struct {
	mutator         profileMutator
	stationProvider hideout.StationProvider
}

// NewSetStationHiddenHandler creates a new SetStationHiddenHandler
func NewSetStationHiddenHandler(
	profileRepo progress.ProfileRepository,
	stationProvider hideout.StationProvider,
	clock shared.Clock,
) *SetStationHiddenHandler {
	return &SetStationHiddenHandler{
		mutator:         newProfileMutator(profileRepo, clock),
		stationProvider: stationProvider,
	}
}

// Handle executes the SetStationHidden command
func (h *SetStationHiddenHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SetStationHiddenCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SetStationHiddenCommand")
	}

	stations, err := h.stationProvider.Stations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stations: %w", err)
	}
	station, err := hideout.ResolveStation(stations, cmd.StationRef)
	if err != nil {
		return nil, err
	}

	var hidden bool
	_, err = h.mutator.mutate(ctx, cmd.ProfileRef, func(p *progress.Profile) error {
		if cmd.Hidden == nil {
			var err error
			hidden, err = p.ToggleStationHidden(station.ID)
			return err
		}
		hidden = *cmd.Hidden
		return p.SetStationHidden(station.ID, hidden)
	})
	if err != nil {
		return nil, err
	}

	return &SetStationHiddenResponse{StationID: station.ID, Hidden: hidden}, nil
}

// SetRequirementCompletedCommand marks one item requirement as done without
// touching station levels. A nil Completed toggles it.
type SetRequirementCompletedCommand struct {
	ProfileRef    string `validate:"required"`
	RequirementID string `validate:"required"`
	Completed     *bool
}

// SetRequirementCompletedResponse reports the resulting completion flag
type SetRequirementCompletedResponse struct {
	RequirementID string
	StationID     string
	Level         int
	Completed     bool
}

// SetRequirementCompletedHandler handles the SetRequirementCompleted command
type SetRequirementCompletedHandler struct {
	mutator         profileMutator
	stationProvider hideout.StationProvider
}

// NewSetRequirementCompletedHandler creates a new SetRequirementCompletedHandler
func NewSetRequirementCompletedHandler(
	profileRepo progress.ProfileRepository,
	stationProvider hideout.StationProvider,
	clock shared.Clock,
) *SetRequirementCompletedHandler {
	return &SetRequirementCompletedHandler{
		mutator:         newProfileMutator(profileRepo, clock),
		stationProvider: stationProvider,
	}
}

// Handle executes the SetRequirementCompleted command
func (h *SetRequirementCompletedHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SetRequirementCompletedCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SetRequirementCompletedCommand")
	}

	stations, err := h.stationProvider.Stations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stations: %w", err)
	}
	loc, found := hideout.FindRequirement(stations, cmd.RequirementID)
	if !found {
		return nil, fmt.Errorf("%w: %q", hideout.ErrRequirementNotFound, cmd.RequirementID)
	}

	var completed bool
	_, err = h.mutator.mutate(ctx, cmd.ProfileRef, func(p *progress.Profile) error {
		if cmd.Completed == nil {
			var err error
			completed, err = p.ToggleRequirement(cmd.RequirementID)
			return err
		}
		completed = *cmd.Completed
		return p.SetRequirementCompleted(cmd.RequirementID, completed)
	})
	if err != nil {
		return nil, err
	}

	return &SetRequirementCompletedResponse{
		RequirementID: cmd.RequirementID,
		StationID:     loc.Station.ID,
		Level:         loc.Level,
		Completed:     completed,
	}, nil
}
