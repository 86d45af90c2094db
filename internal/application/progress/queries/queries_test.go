package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hideout-go/internal/application/progress/queries"
	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/internal/domain/market"
	"github.com/andrescamacho/hideout-go/internal/domain/progress"
	"github.com/andrescamacho/hideout-go/internal/domain/shared"
	"github.com/andrescamacho/hideout-go/test/helpers"
)

func seedProfile(t *testing.T, repo *helpers.MockProfileRepository, mutate func(p *progress.Profile)) *progress.Profile {
	t.Helper()
	p, err := progress.NewProfile("main", progress.DefaultPreferences())
	require.NoError(t, err)
	p.ApplyEdition(helpers.SampleStations(), hideout.EditionStandard)
	if mutate != nil {
		mutate(p)
	}
	repo.AddProfile(p)
	return p
}

func itemIDs(lines []queries.NeedLine) []string {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.Item.ID)
	}
	return ids
}

func TestGetPooledNeeds_NextLevel(t *testing.T) {
	repo := helpers.NewMockProfileRepository()
	stations := helpers.NewMockStationProvider(helpers.SampleStations())
	prices := helpers.NewMockPriceRepository()
	prices.SetPrice(market.Price{NormalizedName: "bolts", GameMode: market.GameModeRegular, Avg24hPrice: 1000, TraderPrice: 400})
	prices.SetPrice(market.Price{NormalizedName: "screws", GameMode: market.GameModeRegular, Avg24hPrice: 300, TraderPrice: 100})

	seedProfile(t, repo, func(p *progress.Profile) {
		_, _ = p.SetItemCounts("bolts", 1, 1)
		_, _ = p.SetItemCounts("screws", 6, 1)
	})

	h := queries.NewGetPooledNeedsHandler(repo, stations, stations, prices)
	resp, err := h.Handle(context.Background(), &queries.GetPooledNeedsQuery{ProfileRef: "main"})
	require.NoError(t, err)

	result := resp.(*queries.GetPooledNeedsResponse)
	assert.Equal(t, hideout.ViewModeNextLevel, result.ViewMode)
	assert.Equal(t, []string{"bolts", "candle", "roubles", "screws"}, itemIDs(result.Items))

	bolts := result.Items[0]
	assert.Equal(t, 3, bolts.Required, "generator 1 and vents 1 pool into one entry")
	assert.Equal(t, 1, bolts.Needs.NeededTotal)
	assert.Equal(t, 1000, bolts.NeededCost)
	assert.Equal(t, 0, bolts.Excess)

	screws := result.Items[3]
	assert.True(t, screws.Needs.Satisfied())
	assert.Equal(t, 2, screws.Excess)
	assert.Equal(t, 200, screws.ExcessValue)
	assert.Zero(t, screws.NeededCost)

	candle := result.Items[1]
	assert.Nil(t, candle.Price)
	assert.Equal(t, 1, candle.RequiredFir)

	assert.Equal(t, 3, result.OutstandingItems)
	assert.Equal(t, 1000, result.TotalNeededCost)
}

func TestGetPooledNeeds_OutstandingOnlyAndViewModeOverride(t *testing.T) {
	repo := helpers.NewMockProfileRepository()
	stations := helpers.NewMockStationProvider(helpers.SampleStations())
	seedProfile(t, repo, func(p *progress.Profile) {
		_, _ = p.SetItemCounts("screws", 5, 0)
	})

	h := queries.NewGetPooledNeedsHandler(repo, stations, nil, nil)
	resp, err := h.Handle(context.Background(), &queries.GetPooledNeedsQuery{
		ProfileRef:      "main",
		ViewMode:        "all",
		OutstandingOnly: true,
	})
	require.NoError(t, err)

	result := resp.(*queries.GetPooledNeedsResponse)
	assert.Equal(t, hideout.ViewModeAll, result.ViewMode)
	assert.NotContains(t, itemIDs(result.Items), "screws")
	assert.Contains(t, itemIDs(result.Items), "wires")

	for _, line := range result.Items {
		if line.Item.ID == "roubles" {
			assert.Equal(t, 2500000+8500000+20000000, line.Required)
		}
	}
}

func TestGetPooledNeeds_HiddenAndCompleted(t *testing.T) {
	repo := helpers.NewMockProfileRepository()
	stations := helpers.NewMockStationProvider(helpers.SampleStations())
	seedProfile(t, repo, func(p *progress.Profile) {
		require.NoError(t, p.SetStationHidden(helpers.StationID("stash"), true))
		require.NoError(t, p.SetRequirementCompleted("workbench-1-screws", true))
	})

	h := queries.NewGetPooledNeedsHandler(repo, stations, stations, nil)
	resp, err := h.Handle(context.Background(), &queries.GetPooledNeedsQuery{ProfileRef: "main"})
	require.NoError(t, err)

	assert.Equal(t, []string{"bolts", "candle"}, itemIDs(resp.(*queries.GetPooledNeedsResponse).Items))
}

func TestGetPooledNeeds_InvalidViewMode(t *testing.T) {
	repo := helpers.NewMockProfileRepository()
	stations := helpers.NewMockStationProvider(helpers.SampleStations())
	seedProfile(t, repo, nil)

	h := queries.NewGetPooledNeedsHandler(repo, stations, nil, nil)
	_, err := h.Handle(context.Background(), &queries.GetPooledNeedsQuery{ProfileRef: "main", ViewMode: "someday"})

	assert.ErrorIs(t, err, hideout.ErrInvalidViewMode)
}

func TestGetStationStatus(t *testing.T) {
	repo := helpers.NewMockProfileRepository()
	stations := helpers.NewMockStationProvider(helpers.SampleStations())
	p := seedProfile(t, repo, func(p *progress.Profile) {
		_, _ = p.SetItemCounts("bolts", 1, 0)
	})

	h := queries.NewGetStationStatusHandler(repo, stations)
	resp, err := h.Handle(context.Background(), &queries.GetStationStatusQuery{ProfileRef: p.ID()})
	require.NoError(t, err)

	byName := make(map[string]queries.StationStatus)
	for _, s := range resp.(*queries.GetStationStatusResponse).Stations {
		byName[s.NormalizedName] = s
	}
	require.Len(t, byName, 5)

	workbench := byName["workbench"]
	assert.True(t, workbench.Locked)
	assert.Equal(t, hideout.ReadinessMissing, workbench.Readiness)
	assert.Equal(t, []hideout.StationLevelRequirement{{StationNormalizedName: "generator", Level: 1}}, workbench.UnmetPrerequisite)

	vents := byName["vents"]
	assert.False(t, vents.Locked)
	assert.Equal(t, hideout.ReadinessReady, vents.Readiness)

	stash := byName["stash"]
	assert.Equal(t, 1, stash.CurrentLevel)
	assert.Equal(t, 4, stash.MaxLevel)
}

func TestGetStationStatus_SingleStation(t *testing.T) {
	repo := helpers.NewMockProfileRepository()
	stations := helpers.NewMockStationProvider(helpers.SampleStations())
	seedProfile(t, repo, func(p *progress.Profile) {
		_, _ = p.SetStationLevel(helpers.SampleStation("vents"), 1)
	})

	h := queries.NewGetStationStatusHandler(repo, stations)
	resp, err := h.Handle(context.Background(), &queries.GetStationStatusQuery{ProfileRef: "main", StationRef: "vents"})
	require.NoError(t, err)

	result := resp.(*queries.GetStationStatusResponse)
	require.Len(t, result.Stations, 1)
	assert.Equal(t, hideout.ReadinessMaxed, result.Stations[0].Readiness)
	assert.False(t, result.Stations[0].Locked)
}

func TestExportProgressAndListProfiles(t *testing.T) {
	repo := helpers.NewMockProfileRepository()
	p := seedProfile(t, repo, nil)
	clock := shared.NewFixedClock(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	resp, err := queries.NewExportProgressHandler(repo, clock).Handle(context.Background(), &queries.ExportProgressQuery{ProfileRef: "main"})
	require.NoError(t, err)

	doc := resp.(*queries.ExportProgressResponse).Document
	assert.Equal(t, progress.SchemaVersion, doc.SchemaVersion)
	assert.Equal(t, clock.Now(), doc.ExportedAt)
	assert.Equal(t, p.ID(), doc.Profile.ID)
	assert.NotEmpty(t, doc.ExportID)

	listResp, err := queries.NewListProfilesHandler(repo).Handle(context.Background(), &queries.ListProfilesQuery{})
	require.NoError(t, err)
	profiles := listResp.(*queries.ListProfilesResponse).Profiles
	require.Len(t, profiles, 1)
	assert.Equal(t, "main", profiles[0].Name)
	assert.Equal(t, "Standard", profiles[0].Edition)

	getResp, err := queries.NewGetProfileHandler(repo).Handle(context.Background(), &queries.GetProfileQuery{ProfileRef: "main"})
	require.NoError(t, err)
	assert.Equal(t, p.ID(), getResp.(*queries.GetProfileResponse).Profile.ID)
}
