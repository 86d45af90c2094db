package hideout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/test/helpers"
)

func TestIsStationLocked_MaxedStationNeverLocked(t *testing.T) {
	stations := helpers.SampleStations()
	generator, _ := hideout.FindStation(stations, "generator")

	locked := hideout.IsStationLocked(*generator, stations, map[string]int{
		helpers.StationID("generator"): 2,
	})

	assert.False(t, locked)
}

func TestIsStationLocked_UnmetPrerequisite(t *testing.T) {
	stations := []hideout.Station{
		helpers.CreateTestStation("station-x",
			helpers.CreateTestLevel(1),
			helpers.CreateTestLevel(2),
		),
		helpers.CreateTestStation("medstation",
			helpers.WithStationPrereq(helpers.CreateTestLevel(1), "station-x", 2),
		),
	}
	levels := map[string]int{helpers.StationID("station-x"): 1}

	assert.True(t, hideout.IsStationLocked(stations[1], stations, levels))

	levels[helpers.StationID("station-x")] = 2
	assert.False(t, hideout.IsStationLocked(stations[1], stations, levels))
}

func TestIsStationLocked_AllPrerequisitesRequired(t *testing.T) {
	level := helpers.WithStationPrereq(helpers.CreateTestLevel(1), "a", 1)
	level = helpers.WithStationPrereq(level, "b", 1)
	stations := []hideout.Station{
		helpers.CreateTestStation("a", helpers.CreateTestLevel(1)),
		helpers.CreateTestStation("b", helpers.CreateTestLevel(1)),
		helpers.CreateTestStation("c", level),
	}

	locked := hideout.IsStationLocked(stations[2], stations, map[string]int{helpers.StationID("a"): 1})
	unmet := hideout.UnmetPrerequisites(stations[2], stations, map[string]int{helpers.StationID("a"): 1})

	assert.True(t, locked)
	assert.Equal(t, []hideout.StationLevelRequirement{{StationNormalizedName: "b", Level: 1}}, unmet)
}

func TestIsStationLocked_UnknownPrerequisiteStationIsSatisfied(t *testing.T) {
	station := helpers.CreateTestStation("library",
		helpers.WithStationPrereq(helpers.CreateTestLevel(1), "does-not-exist", 3),
	)

	assert.False(t, hideout.IsStationLocked(station, []hideout.Station{station}, nil))
}
