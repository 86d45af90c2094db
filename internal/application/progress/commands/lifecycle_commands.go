package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/hideout-go/internal/application/common"
	"github.com/andrescamacho/hideout-go/internal/application/mediator"
	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/internal/domain/progress"
	"github.com/andrescamacho/hideout-go/internal/domain/shared"
)

// ResetProgressCommand clears all progress of a profile. Preferences are
// kept and the edition floors are re-applied.
type ResetProgressCommand struct {
	ProfileRef string `validate:"required"`
}

// ResetProgressResponse represents the profile after reset
type ResetProgressResponse struct {
	Profile *progress.Profile
}

// ResetProgressHandler handles the ResetProgress command
type ResetProgressHandler struct {
	mutator         profileMutator
	stationProvider hideout.StationProvider
}

// NewResetProgressHandler creates a new ResetProgressHandler
func NewResetProgressHandler(
	profileRepo progress.ProfileRepository,
	stationProvider hideout.StationProvider,
	clock shared.Clock,
) *ResetProgressHandler {
	return &ResetProgressHandler{
		mutator:         newProfileMutator(profileRepo, clock),
		stationProvider: stationProvider,
	}
}

// Handle executes the ResetProgress command
func (h *ResetProgressHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ResetProgressCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ResetProgressCommand")
	}

	stations, err := h.stationProvider.Stations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stations: %w", err)
	}

	p, err := h.mutator.mutate(ctx, cmd.ProfileRef, func(p *progress.Profile) error {
		p.Reset(stations)
		return nil
	})
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("info", "profile progress reset", map[string]interface{}{
		"profile_id": p.ID(),
	})
	return &ResetProgressResponse{Profile: p}, nil
}

// ImportProgressCommand restores a profile from an export document of any
// supported schema version.
type ImportProgressCommand struct {
	Data []byte `validate:"required"`
	// ProfileName imports the document as a copy under a new name and id;
	// empty keeps the exported name and id
	ProfileName string
	// Overwrite replaces an existing profile with the same name or id
	Overwrite bool
}

// ImportProgressResponse represents the imported profile
type ImportProgressResponse struct {
	Profile       *progress.Profile
	SchemaVersion int
	Replaced      bool
}

// ImportProgressHandler handles the ImportProgress command
type ImportProgressHandler struct {
	profileRepo     progress.ProfileRepository
	stationProvider hideout.StationProvider
	clock           shared.Clock
}

// NewImportProgressHandler creates a new ImportProgressHandler
func NewImportProgressHandler(
	profileRepo progress.ProfileRepository,
	stationProvider hideout.StationProvider,
	clock shared.Clock,
) *ImportProgressHandler {
	clock = shared.ClockOrSystem(clock)
	return &ImportProgressHandler{
		profileRepo:     profileRepo,
		stationProvider: stationProvider,
		clock:           clock,
	}
}

// Handle executes the ImportProgress command
func (h *ImportProgressHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportProgressCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportProgressCommand")
	}

	doc, err := progress.ParseExportDocument(cmd.Data)
	if err != nil {
		return nil, err
	}

	snapshot := doc.Profile
	if cmd.ProfileName != "" && cmd.ProfileName != snapshot.Name {
		snapshot.ID = uuid.NewString()
		snapshot.Name = cmd.ProfileName
	}
	p, err := progress.FromSnapshot(snapshot)
	if err != nil {
		return nil, err
	}

	stations, err := h.stationProvider.Stations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stations: %w", err)
	}

	replacedID, replaced, err := h.findConflict(ctx, p, cmd.Overwrite)
	if err != nil {
		return nil, err
	}

	p.ApplyEdition(stations, p.Preferences().Edition)
	p.Touch(h.clock.Now())

	if replacedID != "" {
		err = h.profileRepo.Replace(ctx, replacedID, p)
	} else {
		err = h.profileRepo.Save(ctx, p)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	common.LoggerFromContext(ctx).Log("info", "profile imported", map[string]interface{}{
		"profile_id":     p.ID(),
		"name":           p.Name(),
		"schema_version": doc.SchemaVersion,
		"replaced":       replaced,
	})

	return &ImportProgressResponse{
		Profile:       p,
		SchemaVersion: doc.SchemaVersion,
		Replaced:      replaced,
	}, nil
}

// findConflict looks for stored profiles the import would overwrite. It
// returns the id of a same-name profile stored under a different id, which
// must be replaced, and whether anything is overwritten at all. Without
// overwrite any conflict is an error.
func (h *ImportProgressHandler) findConflict(ctx context.Context, p *progress.Profile, overwrite bool) (string, bool, error) {
	replaced := false

	byID, err := h.profileRepo.FindByID(ctx, p.ID())
	switch {
	case err == nil:
		if !overwrite {
			return "", false, fmt.Errorf("%w: id %s (%s)", progress.ErrProfileExists, p.ID(), byID.Name())
		}
		replaced = true
	case !errors.Is(err, progress.ErrProfileNotFound):
		return "", false, fmt.Errorf("failed to check existing profile: %w", err)
	}

	byName, err := h.profileRepo.FindByName(ctx, p.Name())
	switch {
	case err == nil:
		if byName.ID() == p.ID() {
			return "", replaced, nil
		}
		if !overwrite {
			return "", false, fmt.Errorf("%w: %s", progress.ErrProfileExists, p.Name())
		}
		return byName.ID(), true, nil
	case !errors.Is(err, progress.ErrProfileNotFound):
		return "", false, fmt.Errorf("failed to check existing profile: %w", err)
	}

	return "", replaced, nil
}
