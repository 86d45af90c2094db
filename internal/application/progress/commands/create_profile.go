package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/hideout-go/internal/application/common"
	"github.com/andrescamacho/hideout-go/internal/application/mediator"
	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/internal/domain/market"
	"github.com/andrescamacho/hideout-go/internal/domain/progress"
	"github.com/andrescamacho/hideout-go/internal/domain/shared"
)

// CreateProfileCommand creates a new progress profile
type CreateProfileCommand struct {
	Name     string `validate:"required"`
	Edition  string // display name or slug; empty means Standard
	GameMode string // regular or pve; empty means regular
}

// CreateProfileResponse represents the result of creating a profile
type CreateProfileResponse struct {
	Profile *progress.Profile
}

// CreateProfileHandler handles the CreateProfile command
type CreateProfileHandler struct {
	profileRepo     progress.ProfileRepository
	stationProvider hideout.StationProvider
	clock           shared.Clock
}

// NewCreateProfileHandler creates a new CreateProfileHandler
func NewCreateProfileHandler(
	profileRepo progress.ProfileRepository,
	stationProvider hideout.StationProvider,
	clock shared.Clock,
) *CreateProfileHandler {
	clock = shared.ClockOrSystem(clock)
	return &CreateProfileHandler{
		profileRepo:     profileRepo,
		stationProvider: stationProvider,
		clock:           clock,
	}
}

// Handle executes the CreateProfile command
func (h *CreateProfileHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateProfileCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateProfileCommand")
	}

	if _, err := h.profileRepo.FindByName(ctx, cmd.Name); err == nil {
		return nil, fmt.Errorf("%w: %s", progress.ErrProfileExists, cmd.Name)
	} else if !errors.Is(err, progress.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}

	prefs := progress.DefaultPreferences()
	if cmd.Edition != "" {
		edition, err := hideout.ParseEdition(cmd.Edition)
		if err != nil {
			return nil, err
		}
		prefs.Edition = edition
	}
	if cmd.GameMode != "" {
		mode, err := market.ParseGameMode(cmd.GameMode)
		if err != nil {
			return nil, err
		}
		prefs.GameMode = mode
	}

	p, err := progress.NewProfile(cmd.Name, prefs)
	if err != nil {
		return nil, err
	}

	stations, err := h.stationProvider.Stations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stations: %w", err)
	}
	p.ApplyEdition(stations, prefs.Edition)
	p.Touch(h.clock.Now())

	if err := h.profileRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	common.LoggerFromContext(ctx).Log("info", "profile created", map[string]interface{}{
		"profile_id": p.ID(),
		"name":       p.Name(),
		"edition":    string(prefs.Edition),
	})

	return &CreateProfileResponse{Profile: p}, nil
}

// RenameProfileCommand changes a profile's display name
type RenameProfileCommand struct {
	ProfileRef string `validate:"required"`
	NewName    string `validate:"required"`
}

// RenameProfileHandler handles the RenameProfile command
type RenameProfileHandler struct {
	mutator profileMutator
}

// NewRenameProfileHandler creates a new RenameProfileHandler
func NewRenameProfileHandler(profileRepo progress.ProfileRepository, clock shared.Clock) *RenameProfileHandler {
	return &RenameProfileHandler{mutator: newProfileMutator(profileRepo, clock)}
}

// Handle executes the RenameProfile command
func (h *RenameProfileHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RenameProfileCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RenameProfileCommand")
	}

	if existing, err := h.mutator.profileRepo.FindByName(ctx, cmd.NewName); err == nil {
		if existing.ID() != cmd.ProfileRef && existing.Name() != cmd.ProfileRef {
			return nil, fmt.Errorf("%w: %s", progress.ErrProfileExists, cmd.NewName)
		}
	}

	p, err := h.mutator.mutate(ctx, cmd.ProfileRef, func(p *progress.Profile) error {
		return p.Rename(cmd.NewName)
	})
	if err != nil {
		return nil, err
	}
	return &CreateProfileResponse{Profile: p}, nil
}

// DeleteProfileCommand removes a profile and all of its progress
type DeleteProfileCommand struct {
	ProfileRef string `validate:"required"`
}

// DeleteProfileResponse represents the result of deleting a profile
type DeleteProfileResponse struct {
	ProfileID string
}

// DeleteProfileHandler handles the DeleteProfile command
type DeleteProfileHandler struct {
	resolver    *common.ProfileResolver
	profileRepo progress.ProfileRepository
}

// NewDeleteProfileHandler creates a new DeleteProfileHandler
func NewDeleteProfileHandler(profileRepo progress.ProfileRepository) *DeleteProfileHandler {
	return &DeleteProfileHandler{
		resolver:    common.NewProfileResolver(profileRepo),
		profileRepo: profileRepo,
	}
}

// Handle executes the DeleteProfile command
func (h *DeleteProfileHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DeleteProfileCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DeleteProfileCommand")
	}

	p, err := h.resolver.Resolve(ctx, cmd.ProfileRef)
	if err != nil {
		return nil, err
	}
	if err := h.profileRepo.Delete(ctx, p.ID()); err != nil {
		return nil, fmt.Errorf("failed to delete profile: %w", err)
	}

	common.LoggerFromContext(ctx).Log("info", "profile deleted", map[string]interface{}{
		"profile_id": p.ID(),
	})
	return &DeleteProfileResponse{ProfileID: p.ID()}, nil
}
