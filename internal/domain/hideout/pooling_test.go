package hideout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/test/helpers"
)

func TestPoolItems_SingleRequirementNextLevel(t *testing.T) {
	// Arrange
	stations := []hideout.Station{
		helpers.CreateTestStation("vents",
			helpers.CreateTestLevel(1, helpers.CreateTestRequirement("r1", "bolts", 7, false)),
		),
	}

	// Act
	pooled := hideout.PoolItems(hideout.PoolInput{
		Stations: stations,
		ViewMode: hideout.ViewModeNextLevel,
	})

	// Assert
	assert.Equal(t, []hideout.PooledItem{{ItemID: "bolts", Count: 7, FirCount: 0}}, pooled)
}

func TestPoolItems_DeduplicatesAcrossStations(t *testing.T) {
	stations := []hideout.Station{
		helpers.CreateTestStation("a", helpers.CreateTestLevel(1, helpers.CreateTestRequirement("a1", "x", 3, false))),
		helpers.CreateTestStation("b", helpers.CreateTestLevel(1, helpers.CreateTestRequirement("b1", "x", 5, false))),
	}

	pooled := hideout.PoolItems(hideout.PoolInput{Stations: stations, ViewMode: hideout.ViewModeNextLevel})

	require.Len(t, pooled, 1)
	assert.Equal(t, "x", pooled[0].ItemID)
	assert.Equal(t, 8, pooled[0].Count)
}

func TestPoolItems_FirIsSubsetOfCount(t *testing.T) {
	stations := []hideout.Station{
		helpers.CreateTestStation("a",
			helpers.CreateTestLevel(1,
				helpers.CreateTestRequirement("a1", "wires", 2, true),
				helpers.CreateTestRequirement("a2", "wires", 4, false),
			),
		),
	}

	pooled := hideout.PoolItems(hideout.PoolInput{Stations: stations, ViewMode: hideout.ViewModeNextLevel})

	require.Len(t, pooled, 1)
	assert.Equal(t, 6, pooled[0].Count)
	assert.Equal(t, 2, pooled[0].FirCount)
	assert.LessOrEqual(t, pooled[0].FirCount, pooled[0].Count)
}

func TestPoolItems_ViewModes(t *testing.T) {
	stations := helpers.SampleStations()
	levels := map[string]int{helpers.StationID("generator"): 0}

	tests := []struct {
		name     string
		mode     hideout.ViewMode
		expected map[string]int
	}{
		{
			name: "next level only",
			mode: hideout.ViewModeNextLevel,
			expected: map[string]int{
				"bolts":   3, // generator 1 + vents 1
				"screws":  5,
				"candle":  1,
				"roubles": 0,
			},
		},
		{
			name: "all future levels",
			mode: hideout.ViewModeAll,
			expected: map[string]int{
				"bolts":   3,
				"wires":   3,
				"screws":  5,
				"candle":  1,
				"roubles": 2500000 + 8500000 + 20000000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pooled := hideout.PooledByItem(hideout.PoolItems(hideout.PoolInput{
				Stations:      stations,
				StationLevels: levels,
				ViewMode:      tt.mode,
			}))

			for itemID, count := range tt.expected {
				assert.Equal(t, count, pooled[itemID].Count, itemID)
			}
		})
	}
}

func TestPoolItems_HiddenStations(t *testing.T) {
	stations := helpers.SampleStations()
	hidden := map[string]bool{helpers.StationID("workbench"): true}

	withoutHidden := hideout.PooledByItem(hideout.PoolItems(hideout.PoolInput{
		Stations:       stations,
		HiddenStations: hidden,
		ViewMode:       hideout.ViewModeNextLevel,
	}))
	assert.NotContains(t, withoutHidden, "screws")

	shown := hideout.PooledByItem(hideout.PoolItems(hideout.PoolInput{
		Stations:       stations,
		HiddenStations: hidden,
		ShowHidden:     true,
		ViewMode:       hideout.ViewModeNextLevel,
	}))
	assert.Equal(t, 5, shown["screws"].Count)
}

func TestPoolItems_CompletedRequirementExcluded(t *testing.T) {
	stations := helpers.SampleStations()
	levels := map[string]int{helpers.StationID("generator"): 1}

	before := hideout.PooledByItem(hideout.PoolItems(hideout.PoolInput{
		Stations:      stations,
		StationLevels: levels,
		ViewMode:      hideout.ViewModeNextLevel,
	}))
	require.Equal(t, 3, before["wires"].Count)

	after := hideout.PooledByItem(hideout.PoolItems(hideout.PoolInput{
		Stations:              stations,
		StationLevels:         levels,
		ViewMode:              hideout.ViewModeNextLevel,
		CompletedRequirements: map[string]bool{"generator-2-wires": true},
	}))

	assert.NotContains(t, after, "wires")
	assert.Equal(t, 1, levels[helpers.StationID("generator")])
}

func TestPoolItems_MaxedStationContributesNothing(t *testing.T) {
	stations := []hideout.Station{
		helpers.CreateTestStation("vents", helpers.CreateTestLevel(1, helpers.CreateTestRequirement("r1", "bolts", 1, false))),
	}

	pooled := hideout.PoolItems(hideout.PoolInput{
		Stations:      stations,
		StationLevels: map[string]int{helpers.StationID("vents"): 1},
		ViewMode:      hideout.ViewModeAll,
	})

	assert.Empty(t, pooled)
}

func TestPoolItems_Idempotent(t *testing.T) {
	in := hideout.PoolInput{
		Stations:      helpers.SampleStations(),
		StationLevels: map[string]int{helpers.StationID("stash"): 1},
		ViewMode:      hideout.ViewModeAll,
	}

	assert.Equal(t, hideout.PoolItems(in), hideout.PoolItems(in))
}

func TestParseViewMode(t *testing.T) {
	mode, err := hideout.ParseViewMode("all")
	require.NoError(t, err)
	assert.Equal(t, hideout.ViewModeAll, mode)

	mode, err = hideout.ParseViewMode("next-level")
	require.NoError(t, err)
	assert.Equal(t, hideout.ViewModeNextLevel, mode)

	_, err = hideout.ParseViewMode("someday")
	assert.ErrorIs(t, err, hideout.ErrInvalidViewMode)
}
