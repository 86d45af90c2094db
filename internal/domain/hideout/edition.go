package hideout

import (
	"fmt"
	"strings"
)

// Edition is the purchased game edition, which grants station level floors.
type Edition string

const (
	EditionStandard         Edition = "Standard"
	EditionLeftBehind       Edition = "Left Behind"
	EditionPrepareForEscape Edition = "Prepare for Escape"
	EditionEdgeOfDarkness   Edition = "Edge of Darkness"
	EditionUnheard          Edition = "Unheard"
)

const (
	StashNormalizedName         = "stash"
	CultistCircleNormalizedName = "cultist-circle"
)

var stashFloors = map[Edition]int{
	EditionStandard:         1,
	EditionLeftBehind:       2,
	EditionPrepareForEscape: 3,
	EditionEdgeOfDarkness:   4,
	EditionUnheard:          4,
}

// Editions lists every known edition in ascending order.
func Editions() []Edition {
	return []Edition{
		EditionStandard,
		EditionLeftBehind,
		EditionPrepareForEscape,
		EditionEdgeOfDarkness,
		EditionUnheard,
	}
}

// ParseEdition accepts an edition's display name or its slug
// ("edge-of-darkness"), case-insensitively.
func ParseEdition(s string) (Edition, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, e := range Editions() {
		name := strings.ToLower(string(e))
		if key == name || key == strings.ReplaceAll(name, " ", "-") {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidEdition, s)
}

// EditionFloor returns the minimum level the edition grants the station.
func EditionFloor(normalizedName string, edition Edition) int {
	switch normalizedName {
	case StashNormalizedName:
		return stashFloors[edition]
	case CultistCircleNormalizedName:
		if edition == EditionUnheard {
			return 1
		}
	}
	return 0
}

// ApplyEditionFloors raises every station to at least its edition floor.
// Levels already at or above the floor are left alone, so applying the same
// edition twice is a no-op. The input map is not modified.
func ApplyEditionFloors(stations []Station, stationLevels map[string]int, edition Edition) (map[string]int, bool) {
	levels := make(map[string]int, len(stationLevels))
	for id, lvl := range stationLevels {
		levels[id] = lvl
	}

	changed := false
	for _, s := range stations {
		floor := EditionFloor(s.NormalizedName, edition)
		if floor > levels[s.ID] {
			levels[s.ID] = floor
			changed = true
		}
	}
	return levels, changed
}
