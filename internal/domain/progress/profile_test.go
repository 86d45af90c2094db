package progress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/internal/domain/progress"
	"github.com/andrescamacho/hideout-go/test/helpers"
)

func newProfile(t *testing.T) *progress.Profile {
	t.Helper()
	p, err := progress.NewProfile("main", progress.Preferences{})
	require.NoError(t, err)
	return p
}

func TestNewProfile_Defaults(t *testing.T) {
	p := newProfile(t)

	assert.NotEmpty(t, p.ID())
	assert.Equal(t, "main", p.Name())
	assert.Equal(t, progress.DefaultPreferences(), p.Preferences())
	assert.Equal(t, 0, p.StationLevel("anything"))
	assert.Equal(t, hideout.ItemCount{}, p.ItemCount("anything"))
}

func TestNewProfile_BlankName(t *testing.T) {
	_, err := progress.NewProfile("   ", progress.Preferences{})
	assert.ErrorIs(t, err, progress.ErrInvalidProfileName)
}

func TestProfile_SetStationLevelClamps(t *testing.T) {
	p := newProfile(t)
	generator := helpers.SampleStation("generator")

	stored, err := p.SetStationLevel(generator, 9)
	require.NoError(t, err)
	assert.Equal(t, 2, stored)

	stored, err = p.SetStationLevel(generator, -4)
	require.NoError(t, err)
	assert.Equal(t, 0, stored)
	assert.NotContains(t, p.StationLevels(), generator.ID)

	_, err = p.SetStationLevel(nil, 1)
	assert.ErrorIs(t, err, progress.ErrInvalidStationID)
	_, err = p.SetStationLevel(&hideout.Station{}, 1)
	assert.ErrorIs(t, err, progress.ErrInvalidStationID)
}

func TestProfile_SetStationLevelKeepsEditionFloor(t *testing.T) {
	tests := []struct {
		name      string
		edition   hideout.Edition
		station   string
		requested int
		expected  int
	}{
		{"stash below edge of darkness floor", hideout.EditionEdgeOfDarkness, "stash", 0, 4},
		{"stash negative under prepare for escape", hideout.EditionPrepareForEscape, "stash", -1, 3},
		{"stash above floor kept", hideout.EditionLeftBehind, "stash", 3, 3},
		{"cultist circle under unheard", hideout.EditionUnheard, "cultist-circle", 0, 1},
		{"cultist circle without floor", hideout.EditionStandard, "cultist-circle", 0, 0},
		{"station without floor", hideout.EditionEdgeOfDarkness, "generator", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProfile(t)
			p.ApplyEdition(helpers.SampleStations(), tt.edition)
			station := helpers.SampleStation(tt.station)

			stored, err := p.SetStationLevel(station, tt.requested)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, stored)
			assert.Equal(t, tt.expected, p.StationLevel(station.ID))
		})
	}
}

func TestProfile_ItemCountsNeverNegative(t *testing.T) {
	p := newProfile(t)

	c, err := p.AdjustItemCounts("bolts", 3, 1)
	require.NoError(t, err)
	assert.Equal(t, hideout.ItemCount{Have: 3, HaveFir: 1}, c)

	c, err = p.AdjustItemCounts("bolts", -10, 2)
	require.NoError(t, err)
	assert.Equal(t, hideout.ItemCount{Have: 0, HaveFir: 3}, c)

	c, err = p.SetItemCounts("bolts", -1, -1)
	require.NoError(t, err)
	assert.Equal(t, hideout.ItemCount{}, c)
	assert.NotContains(t, p.ItemCounts(), "bolts")
}

func TestProfile_Toggles(t *testing.T) {
	p := newProfile(t)

	hidden, err := p.ToggleStationHidden("vents")
	require.NoError(t, err)
	assert.True(t, hidden)
	assert.True(t, p.IsHidden("vents"))

	hidden, err = p.ToggleStationHidden("vents")
	require.NoError(t, err)
	assert.False(t, hidden)

	done, err := p.ToggleRequirement("req-1")
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, p.IsRequirementCompleted("req-1"))

	_, err = p.ToggleRequirement("")
	assert.ErrorIs(t, err, progress.ErrInvalidRequirementID)
}

func TestProfile_ApplyEditionIdempotent(t *testing.T) {
	p := newProfile(t)
	stations := helpers.SampleStations()
	stash := helpers.StationID("stash")

	assert.True(t, p.ApplyEdition(stations, hideout.EditionEdgeOfDarkness))
	assert.False(t, p.ApplyEdition(stations, hideout.EditionEdgeOfDarkness))
	assert.Equal(t, 4, p.StationLevel(stash))
	assert.Equal(t, hideout.EditionEdgeOfDarkness, p.Preferences().Edition)
}

func TestProfile_ApplyEditionKeepsManualLevel(t *testing.T) {
	p := newProfile(t)
	stations := helpers.SampleStations()
	stash := helpers.StationID("stash")

	_, err := p.SetStationLevel(helpers.SampleStation("stash"), 4)
	require.NoError(t, err)

	assert.False(t, p.ApplyEdition(stations, hideout.EditionEdgeOfDarkness))
	assert.Equal(t, 4, p.StationLevel(stash))
}

func TestProfile_ResetReappliesEdition(t *testing.T) {
	p := newProfile(t)
	stations := helpers.SampleStations()
	p.ApplyEdition(stations, hideout.EditionUnheard)
	_, _ = p.SetStationLevel(helpers.SampleStation("generator"), 2)
	_, _ = p.AdjustItemCounts("bolts", 4, 0)
	_ = p.SetRequirementCompleted("req", true)

	p.Reset(stations)

	assert.Equal(t, map[string]int{
		helpers.StationID("stash"):          4,
		helpers.StationID("cultist-circle"): 1,
	}, p.StationLevels())
	assert.Empty(t, p.ItemCounts())
	assert.Empty(t, p.CompletedRequirements())
	assert.Equal(t, hideout.EditionUnheard, p.Preferences().Edition)
}

func TestProfile_AccessorsReturnCopies(t *testing.T) {
	p := newProfile(t)
	vents := helpers.SampleStation("vents")
	_, _ = p.SetStationLevel(vents, 1)

	levels := p.StationLevels()
	levels[vents.ID] = 99

	assert.Equal(t, 1, p.StationLevel(vents.ID))
}

func TestProfile_SnapshotRoundTrip(t *testing.T) {
	p := newProfile(t)
	_, _ = p.SetStationLevel(helpers.SampleStation("vents"), 1)
	_ = p.SetStationHidden("workbench", true)
	_ = p.SetTraderLevel("mechanic", 2)
	_, _ = p.AdjustItemCounts("bolts", 1, 2)

	restored, err := progress.FromSnapshot(p.Snapshot())

	require.NoError(t, err)
	assert.Equal(t, p.Snapshot(), restored.Snapshot())
}

func TestFromSnapshot_ClampsNegativeValues(t *testing.T) {
	restored, err := progress.FromSnapshot(progress.Snapshot{
		ID:            "id-1",
		Name:          "imported",
		StationLevels: map[string]int{"vents": -2},
		ItemCounts:    map[string]hideout.ItemCount{"bolts": {Have: -5, HaveFir: 2}},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, restored.StationLevel("vents"))
	assert.Equal(t, hideout.ItemCount{Have: 0, HaveFir: 2}, restored.ItemCount("bolts"))
}

func TestProfile_PoolInputUsesPreferences(t *testing.T) {
	p := newProfile(t)
	p.SetShowHidden(true)
	_ = p.SetStationHidden(helpers.StationID("workbench"), true)

	pooled := hideout.PooledByItem(hideout.PoolItems(p.PoolInput(helpers.SampleStations(), hideout.ViewModeNextLevel)))

	assert.Equal(t, 5, pooled["screws"].Count)
}
