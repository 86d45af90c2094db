package helpers

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
)

// CreateTestStation builds a station whose id is "<normalizedName>-id"
func CreateTestStation(normalizedName string, levels ...hideout.StationLevel) hideout.Station {
	return hideout.Station{
		ID:             normalizedName + "-id",
		Name:           titleCase(normalizedName),
		NormalizedName: normalizedName,
		Levels:         levels,
	}
}

// StationID returns the id CreateTestStation assigns to normalizedName
func StationID(normalizedName string) string {
	return normalizedName + "-id"
}

// CreateTestLevel builds a station level with the given item requirements
func CreateTestLevel(level int, reqs ...hideout.ItemRequirement) hideout.StationLevel {
	return hideout.StationLevel{
		ID:               fmt.Sprintf("level-%d-%d", level, len(reqs)),
		Level:            level,
		ConstructionTime: 3600 * level,
		ItemRequirements: reqs,
	}
}

// WithStationPrereq adds a station level prerequisite to a level
func WithStationPrereq(level hideout.StationLevel, normalizedName string, minLevel int) hideout.StationLevel {
	level.StationLevelRequirements = append(level.StationLevelRequirements, hideout.StationLevelRequirement{
		StationNormalizedName: normalizedName,
		Level:                 minLevel,
	})
	return level
}

// WithTraderPrereq adds a trader loyalty prerequisite to a level
func WithTraderPrereq(level hideout.StationLevel, trader string, minLevel int) hideout.StationLevel {
	level.TraderRequirements = append(level.TraderRequirements, hideout.TraderRequirement{
		TraderNormalizedName: trader,
		TraderName:           titleCase(trader),
		Level:                minLevel,
	})
	return level
}

// CreateTestRequirement builds a canonical item requirement
func CreateTestRequirement(id, itemID string, count int, fir bool) hideout.ItemRequirement {
	return hideout.ItemRequirement{
		ID: id,
		Item: hideout.Item{
			ID:             itemID,
			Name:           titleCase(itemID),
			NormalizedName: itemID,
		},
		Count:       count,
		FoundInRaid: fir,
	}
}

// SampleStations returns a small hideout with cross-station prerequisites:
//
//	stash          1..4, no requirements beyond roubles
//	generator      1 (bolts x2), 2 (wires x3 FIR, requires vents 1)
//	vents          1 (bolts x1)
//	workbench      1 (screws x5, requires generator 1)
//	cultist-circle 1 (candle x1 FIR)
func SampleStations() []hideout.Station {
	return []hideout.Station{
		CreateTestStation("stash",
			CreateTestLevel(1),
			CreateTestLevel(2, CreateTestRequirement("stash-2-roubles", "roubles", 2500000, false)),
			CreateTestLevel(3, CreateTestRequirement("stash-3-roubles", "roubles", 8500000, false)),
			CreateTestLevel(4, CreateTestRequirement("stash-4-roubles", "roubles", 20000000, false)),
		),
		CreateTestStation("generator",
			CreateTestLevel(1, CreateTestRequirement("generator-1-bolts", "bolts", 2, false)),
			WithStationPrereq(
				CreateTestLevel(2, CreateTestRequirement("generator-2-wires", "wires", 3, true)),
				"vents", 1),
		),
		CreateTestStation("vents",
			CreateTestLevel(1, CreateTestRequirement("vents-1-bolts", "bolts", 1, false)),
		),
		CreateTestStation("workbench",
			WithStationPrereq(
				CreateTestLevel(1, CreateTestRequirement("workbench-1-screws", "screws", 5, false)),
				"generator", 1),
		),
		CreateTestStation("cultist-circle",
			CreateTestLevel(1, CreateTestRequirement("cultist-circle-1-candle", "candle", 1, true)),
		),
	}
}

// SampleStation returns one station of SampleStations by normalized name
func SampleStation(normalizedName string) *hideout.Station {
	station, ok := hideout.FindStation(SampleStations(), normalizedName)
	if !ok {
		panic("no sample station " + normalizedName)
	}
	return station
}

func titleCase(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
