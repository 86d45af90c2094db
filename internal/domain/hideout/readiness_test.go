package hideout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/test/helpers"
)

func classify(t *testing.T, stations []hideout.Station, name string, in hideout.ReadinessInput) hideout.ReadinessAssessment {
	t.Helper()
	station, ok := hideout.FindStation(stations, name)
	require.True(t, ok)
	in.Station = *station
	in.Stations = stations

	assessment, err := hideout.ClassifyReadiness(in)
	require.NoError(t, err)
	return assessment
}

func TestClassifyReadiness_ReadyWhenItemsCovered(t *testing.T) {
	stations := helpers.SampleStations()

	assessment := classify(t, stations, "vents", hideout.ReadinessInput{
		ItemCounts: map[string]hideout.ItemCount{"bolts": {Have: 1}},
	})

	assert.Equal(t, hideout.ReadinessReady, assessment.Readiness)
	assert.Empty(t, assessment.Shortfalls)
	assert.Equal(t, 1, assessment.NextLevel)
}

func TestClassifyReadiness_MissingItems(t *testing.T) {
	stations := helpers.SampleStations()

	assessment := classify(t, stations, "generator", hideout.ReadinessInput{
		StationLevels: map[string]int{helpers.StationID("generator"): 1, helpers.StationID("vents"): 1},
		ItemCounts:    map[string]hideout.ItemCount{"wires": {Have: 10}},
	})

	assert.Equal(t, hideout.ReadinessMissing, assessment.Readiness)
	require.Len(t, assessment.Shortfalls, 1)
	assert.Equal(t, "wires", assessment.Shortfalls[0].ItemID)
	assert.Equal(t, 3, assessment.Shortfalls[0].Needs.NeededFir)
}

func TestClassifyReadiness_CompletedRequirementCountsAsCovered(t *testing.T) {
	stations := helpers.SampleStations()

	assessment := classify(t, stations, "generator", hideout.ReadinessInput{
		StationLevels:         map[string]int{helpers.StationID("generator"): 1, helpers.StationID("vents"): 1},
		CompletedRequirements: map[string]bool{"generator-2-wires": true},
	})

	assert.Equal(t, hideout.ReadinessReady, assessment.Readiness)
}

func TestClassifyReadiness_MissingStationPrerequisite(t *testing.T) {
	stations := helpers.SampleStations()

	assessment := classify(t, stations, "workbench", hideout.ReadinessInput{
		ItemCounts: map[string]hideout.ItemCount{"screws": {Have: 5}},
	})

	assert.Equal(t, hideout.ReadinessMissing, assessment.Readiness)
	assert.Contains(t, assessment.Reasons, "requires generator level 1")
}

func TestClassifyReadiness_TraderLevels(t *testing.T) {
	stations := []hideout.Station{
		helpers.CreateTestStation("intelligence-center",
			helpers.WithTraderPrereq(helpers.CreateTestLevel(1), "mechanic", 2)),
	}

	unknown := classify(t, stations, "intelligence-center", hideout.ReadinessInput{})
	assert.Equal(t, hideout.ReadinessReady, unknown.Readiness)

	low := classify(t, stations, "intelligence-center", hideout.ReadinessInput{
		TraderLevels: map[string]int{"mechanic": 1},
	})
	assert.Equal(t, hideout.ReadinessMissing, low.Readiness)
}

func TestClassifyReadiness_Maxed(t *testing.T) {
	stations := helpers.SampleStations()

	assessment := classify(t, stations, "vents", hideout.ReadinessInput{
		StationLevels: map[string]int{helpers.StationID("vents"): 1},
	})

	assert.Equal(t, hideout.ReadinessMaxed, assessment.Readiness)
}

func TestClassifyReadiness_Illegal(t *testing.T) {
	stations := helpers.SampleStations()

	t.Run("level above maximum", func(t *testing.T) {
		assessment := classify(t, stations, "vents", hideout.ReadinessInput{
			StationLevels: map[string]int{helpers.StationID("vents"): 5},
		})
		assert.Equal(t, hideout.ReadinessIllegal, assessment.Readiness)
	})

	t.Run("built without prerequisite", func(t *testing.T) {
		assessment := classify(t, stations, "workbench", hideout.ReadinessInput{
			StationLevels: map[string]int{helpers.StationID("workbench"): 1},
		})
		assert.Equal(t, hideout.ReadinessIllegal, assessment.Readiness)
		assert.Equal(t, []string{"level 1 built but generator is below level 1"}, assessment.Reasons)
	})
}
