package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/hideout-go/internal/application/common"
	"github.com/andrescamacho/hideout-go/internal/application/mediator"
	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/internal/domain/market"
	"github.com/andrescamacho/hideout-go/internal/domain/progress"
	"github.com/andrescamacho/hideout-go/internal/domain/shared"
)

// ApplyEditionCommand selects the game edition and raises edition floors
type ApplyEditionCommand struct {
	ProfileRef string `validate:"required"`
	Edition    string `validate:"required"`
}

// ApplyEditionResponse reports the edition and whether any level was raised
type ApplyEditionResponse struct {
	Edition       hideout.Edition
	Changed       bool
	StationLevels map[string]int
}

// ApplyEditionHandler handles the ApplyEdition command
type ApplyEditionHandler struct {
	mutator         profileMutator
	stationProvider hideout.StationProvider
}

// NewApplyEditionHandler creates a new ApplyEditionHandler
func NewApplyEditionHandler(
	profileRepo progress.ProfileRepository,
	stationProvider hideout.StationProvider,
	clock shared.Clock,
) *ApplyEditionHandler {
	return &ApplyEditionHandler{
		mutator:         newProfileMutator(profileRepo, clock),
		stationProvider: stationProvider,
	}
}

// Handle executes the ApplyEdition command
func (h *ApplyEditionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ApplyEditionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ApplyEditionCommand")
	}

	edition, err := hideout.ParseEdition(cmd.Edition)
	if err != nil {
		return nil, err
	}
	stations, err := h.stationProvider.Stations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stations: %w", err)
	}

	var changed bool
	p, err := h.mutator.mutate(ctx, cmd.ProfileRef, func(p *progress.Profile) error {
		changed = p.ApplyEdition(stations, edition)
		return nil
	})
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("info", "edition applied", map[string]interface{}{
		"profile_id": p.ID(),
		"edition":    string(edition),
		"changed":    changed,
	})

	return &ApplyEditionResponse{
		Edition:       edition,
		Changed:       changed,
		StationLevels: p.StationLevels(),
	}, nil
}

// UpdatePreferencesCommand changes view preferences. Nil fields are left as is.
type UpdatePreferencesCommand struct {
	ProfileRef string `validate:"required"`
	ViewMode   *string
	ShowHidden *bool
	ItemSize   *string
	GameMode   *string
}

// UpdatePreferencesResponse reports the preferences after the update
type UpdatePreferencesResponse struct {
	Preferences progress.Preferences
}

// UpdatePreferencesHandler handles the UpdatePreferences command
type UpdatePreferencesHandler struct {
	mutator profileMutator
}

// NewUpdatePreferencesHandler creates a new UpdatePreferencesHandler
func NewUpdatePreferencesHandler(profileRepo progress.ProfileRepository, clock shared.Clock) *UpdatePreferencesHandler {
	return &UpdatePreferencesHandler{mutator: newProfileMutator(profileRepo, clock)}
}

// Handle executes the UpdatePreferences command
func (h *UpdatePreferencesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpdatePreferencesCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpdatePreferencesCommand")
	}

	// Parse everything before loading so a bad value changes nothing.
	var (
		viewMode hideout.ViewMode
		itemSize progress.ItemSize
		gameMode market.GameMode
		err      error
	)
	if cmd.ViewMode != nil {
		if viewMode, err = hideout.ParseViewMode(*cmd.ViewMode); err != nil {
			return nil, err
		}
	}
	if cmd.ItemSize != nil {
		if itemSize, err = progress.ParseItemSize(*cmd.ItemSize); err != nil {
			return nil, err
		}
	}
	if cmd.GameMode != nil {
		if gameMode, err = market.ParseGameMode(*cmd.GameMode); err != nil {
			return nil, err
		}
	}

	p, err := h.mutator.mutate(ctx, cmd.ProfileRef, func(p *progress.Profile) error {
		if cmd.ViewMode != nil {
			p.SetViewMode(viewMode)
		}
		if cmd.ShowHidden != nil {
			p.SetShowHidden(*cmd.ShowHidden)
		}
		if cmd.ItemSize != nil {
			p.SetItemSize(itemSize)
		}
		if cmd.GameMode != nil {
			p.SetGameMode(gameMode)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &UpdatePreferencesResponse{Preferences: p.Preferences()}, nil
}

// SetTraderLevelCommand records a trader loyalty level; 0 forgets it
type SetTraderLevelCommand struct {
	ProfileRef string `validate:"required"`
	Trader     string `validate:"required"`
	Level      int    `validate:"min=0,max=4"`
}

// SetSkillLevelCommand records a skill level; 0 forgets it
type SetSkillLevelCommand struct {
	ProfileRef string `validate:"required"`
	Skill      string `validate:"required"`
	Level      int    `validate:"min=0,max=51"`
}

// AttributeLevelResponse reports a stored trader or skill level
type AttributeLevelResponse struct {
	Name  string
	Level int
}

// SetAttributeLevelHandler handles SetTraderLevel and SetSkillLevel commands
type SetAttributeLevelHandler struct {
	mutator profileMutator
}

// NewSetAttributeLevelHandler creates a new SetAttributeLevelHandler
func NewSetAttributeLevelHandler(profileRepo progress.ProfileRepository, clock shared.Clock) *SetAttributeLevelHandler {
	return &SetAttributeLevelHandler{mutator: newProfileMutator(profileRepo, clock)}
}

// Handle executes the SetTraderLevel or SetSkillLevel command
func (h *SetAttributeLevelHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch cmd := request.(type) {
	case *SetTraderLevelCommand:
		_, err := h.mutator.mutate(ctx, cmd.ProfileRef, func(p *progress.Profile) error {
			return p.SetTraderLevel(cmd.Trader, cmd.Level)
		})
		if err != nil {
			return nil, err
		}
		return &AttributeLevelResponse{Name: cmd.Trader, Level: cmd.Level}, nil
	case *SetSkillLevelCommand:
		_, err := h.mutator.mutate(ctx, cmd.ProfileRef, func(p *progress.Profile) error {
			return p.SetSkillLevel(cmd.Skill, cmd.Level)
		})
		if err != nil {
			return nil, err
		}
		return &AttributeLevelResponse{Name: cmd.Skill, Level: cmd.Level}, nil
	default:
		return nil, fmt.Errorf("invalid request type: expected *SetTraderLevelCommand or *SetSkillLevelCommand")
	}
}
