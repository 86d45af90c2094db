package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/hideout-go/internal/application/common"
	"github.com/andrescamacho/hideout-go/internal/application/mediator"
	"github.com/andrescamacho/hideout-go/internal/domain/progress"
	"github.com/andrescamacho/hideout-go/internal/domain/shared"
)

// GetProfileQuery loads one profile by id or name
type GetProfileQuery struct {
	ProfileRef string `validate:"required"`
}

// GetProfileResponse carries the profile snapshot
type GetProfileResponse struct {
	Profile progress.Snapshot
}

// GetProfileHandler handles the GetProfile query
type GetProfileHandler struct {
	resolver *common.ProfileResolver
}

// NewGetProfileHandler creates a new GetProfileHandler
func NewGetProfileHandler(profileRepo progress.ProfileRepository) *GetProfileHandler {
	return &GetProfileHandler{resolver: common.NewProfileResolver(profileRepo)}
}

// Handle executes the GetProfile query
func (h *GetProfileHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetProfileQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetProfileQuery")
	}

	p, err := h.resolver.Resolve(ctx, query.ProfileRef)
	if err != nil {
		return nil, err
	}
	return &GetProfileResponse{Profile: p.Snapshot()}, nil
}

// ListProfilesQuery lists every stored profile
type ListProfilesQuery struct{}

// ProfileSummary is the list view of a profile
type ProfileSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Edition   string `json:"edition"`
	GameMode  string `json:"gameMode"`
	Stations  int    `json:"stations"`
	UpdatedAt string `json:"updatedAt"`
}

// ListProfilesResponse lists profiles sorted by name
type ListProfilesResponse struct {
	Profiles []ProfileSummary
}

// ListProfilesHandler handles the ListProfiles query
type ListProfilesHandler struct {
	profileRepo progress.ProfileRepository
}

// NewListProfilesHandler creates a new ListProfilesHandler
func NewListProfilesHandler(profileRepo progress.ProfileRepository) *ListProfilesHandler {
	return &ListProfilesHandler{profileRepo: profileRepo}
}

// Handle executes the ListProfiles query
func (h *ListProfilesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListProfilesQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListProfilesQuery")
	}

	profiles, err := h.profileRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	summaries := make([]ProfileSummary, 0, len(profiles))
	for _, p := range profiles {
		prefs := p.Preferences()
		updated := ""
		if !p.UpdatedAt().IsZero() {
			updated = p.UpdatedAt().Format("2006-01-02 15:04:05")
		}
		summaries = append(summaries, ProfileSummary{
			ID:        p.ID(),
			Name:      p.Name(),
			Edition:   string(prefs.Edition),
			GameMode:  string(prefs.GameMode),
			Stations:  len(p.StationLevels()),
			UpdatedAt: updated,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })

	return &ListProfilesResponse{Profiles: summaries}, nil
}

// ExportProgressQuery serializes a profile into a portable document
type ExportProgressQuery struct {
	ProfileRef string `validate:"required"`
}

// ExportProgressResponse carries the export document
type ExportProgressResponse struct {
	Document progress.ExportDocument
}

// ExportProgressHandler handles the ExportProgress query
type ExportProgressHandler struct {
	resolver *common.ProfileResolver
	clock    shared.Clock
}

// NewExportProgressHandler creates a new ExportProgressHandler
func NewExportProgressHandler(profileRepo progress.ProfileRepository, clock shared.Clock) *ExportProgressHandler {
	clock = shared.ClockOrSystem(clock)
	return &ExportProgressHandler{
		resolver: common.NewProfileResolver(profileRepo),
		clock:    clock,
	}
}

// Handle executes the ExportProgress query
func (h *ExportProgressHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ExportProgressQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ExportProgressQuery")
	}

	p, err := h.resolver.Resolve(ctx, query.ProfileRef)
	if err != nil {
		return nil, err
	}
	return &ExportProgressResponse{Document: progress.NewExportDocument(p, h.clock.Now())}, nil
}
