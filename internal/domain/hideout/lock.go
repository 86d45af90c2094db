package hideout

// IsStationLocked reports whether the station's next level is blocked by an
// unmet station prerequisite. A station without next-level data (maxed, or
// a gap in upstream data) is never locked.
func IsStationLocked(station Station, stations []Station, stationLevels map[string]int) bool {
	return len(UnmetPrerequisites(station, stations, stationLevels)) > 0
}

// UnmetPrerequisites lists the next-level station prerequisites that the
// current levels do not satisfy. Prerequisites naming an unknown station are
// treated as satisfied.
func UnmetPrerequisites(station Station, stations []Station, stationLevels map[string]int) []StationLevelRequirement {
	next, ok := station.LevelData(stationLevels[station.ID] + 1)
	if !ok {
		return nil
	}
	return unmetStationRequirements(next.StationLevelRequirements, stations, stationLevels)
}

func unmetStationRequirements(reqs []StationLevelRequirement, stations []Station, stationLevels map[string]int) []StationLevelRequirement {
	var unmet []StationLevelRequirement
	for _, req := range reqs {
		prereq, found := FindStation(stations, req.StationNormalizedName)
		if !found {
			continue
		}
		if stationLevels[prereq.ID] < req.Level {
			unmet = append(unmet, req)
		}
	}
	return unmet
}
