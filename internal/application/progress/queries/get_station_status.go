package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/hideout-go/internal/application/common"
	"github.com/andrescamacho/hideout-go/internal/application/mediator"
	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/internal/domain/progress"
)

// GetStationStatusQuery reports lock and readiness state for stations
type GetStationStatusQuery struct {
	ProfileRef string `validate:"required"`
	// StationRef limits the result to one station (id or normalized name)
	StationRef string
}

// StationStatus is the evaluated state of one station
type StationStatus struct {
	StationID         string                            `json:"stationId"`
	Name              string                            `json:"name"`
	NormalizedName    string                            `json:"normalizedName"`
	CurrentLevel      int                               `json:"currentLevel"`
	MaxLevel          int                               `json:"maxLevel"`
	Hidden            bool                              `json:"hidden"`
	Locked            bool                              `json:"locked"`
	Readiness         hideout.Readiness                 `json:"readiness"`
	Reasons           []string                          `json:"reasons"`
	UnmetPrerequisite []hideout.StationLevelRequirement `json:"unmetPrerequisites"`
	Shortfalls        []hideout.ItemShortfall           `json:"shortfalls,omitempty"`
}

// GetStationStatusResponse lists station states sorted by name
type GetStationStatusResponse struct {
	ProfileID   string          `json:"profileId"`
	ProfileName string          `json:"profileName"`
	Stations    []StationStatus `json:"stations"`
	// Partial is set when the query was limited to one station
	Partial bool `json:"partial,omitempty"`
}

// GetStationStatusHandler handles the GetStationStatus query
type GetStationStatusHandler struct {
	resolver        *common.ProfileResolver
	stationProvider hideout.StationProvider
}

// NewGetStationStatusHandler creates a new GetStationStatusHandler
func NewGetStationStatusHandler(
	profileRepo progress.ProfileRepository,
	stationProvider hideout.StationProvider,
) *GetStationStatusHandler {
	return &GetStationStatusHandler{
		resolver:        common.NewProfileResolver(profileRepo),
		stationProvider: stationProvider,
	}
}

// Handle executes the GetStationStatus query
func (h *GetStationStatusHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetStationStatusQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetStationStatusQuery")
	}

	p, err := h.resolver.Resolve(ctx, query.ProfileRef)
	if err != nil {
		return nil, err
	}

	stations, err := h.stationProvider.Stations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stations: %w", err)
	}

	targets := stations
	if query.StationRef != "" {
		station, err := hideout.ResolveStation(stations, query.StationRef)
		if err != nil {
			return nil, err
		}
		targets = []hideout.Station{*station}
	}

	levels := p.StationLevels()
	response := &GetStationStatusResponse{
		ProfileID:   p.ID(),
		ProfileName: p.Name(),
		Stations:    make([]StationStatus, 0, len(targets)),
		Partial:     query.StationRef != "",
	}
	for _, station := range targets {
		assessment, err := hideout.ClassifyReadiness(p.ReadinessInput(station, stations))
		if err != nil {
			return nil, fmt.Errorf("failed to classify %s: %w", station.NormalizedName, err)
		}

		unmet := hideout.UnmetPrerequisites(station, stations, levels)
		if unmet == nil {
			unmet = []hideout.StationLevelRequirement{}
		}

		response.Stations = append(response.Stations, StationStatus{
			StationID:         station.ID,
			Name:              station.Name,
			NormalizedName:    station.NormalizedName,
			CurrentLevel:      levels[station.ID],
			MaxLevel:          station.MaxLevel(),
			Hidden:            p.IsHidden(station.ID),
			Locked:            hideout.IsStationLocked(station, stations, levels),
			Readiness:         assessment.Readiness,
			Reasons:           assessment.Reasons,
			UnmetPrerequisite: unmet,
			Shortfalls:        assessment.Shortfalls,
		})
	}

	sort.SliceStable(response.Stations, func(i, j int) bool {
		return response.Stations[i].Name < response.Stations[j].Name
	})

	return response, nil
}
