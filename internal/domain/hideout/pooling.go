package hideout

import (
	"fmt"
	"sort"
)

// ViewMode selects which future levels contribute to pooled demand.
type ViewMode string

const (
	ViewModeNextLevel ViewMode = "nextLevel"
	ViewModeAll       ViewMode = "all"
)

// ParseViewMode converts user input to a ViewMode.
func ParseViewMode(s string) (ViewMode, error) {
	switch s {
	case string(ViewModeNextLevel), "next", "next-level":
		return ViewModeNextLevel, nil
	case string(ViewModeAll):
		return ViewModeAll, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, s)
	}
}

// PooledItem is the deduplicated demand for one item. FirCount is the
// FIR-tagged portion of Count, so FirCount <= Count always holds.
type PooledItem struct {
	ItemID   string
	Count    int
	FirCount int
}

// PoolInput carries the read-only state pooling depends on. Missing map
// keys read as zero values.
type PoolInput struct {
	Stations              []Station
	StationLevels         map[string]int
	HiddenStations        map[string]bool
	ShowHidden            bool
	ViewMode              ViewMode
	CompletedRequirements map[string]bool
}

// PoolItems aggregates item demand across all visible stations' target
// levels. Requirements individually marked complete are skipped. The result
// is sorted by item id so identical input yields identical output.
func PoolItems(in PoolInput) []PooledItem {
	totals := make(map[string]*PooledItem)

	for i := range in.Stations {
		station := &in.Stations[i]
		if in.HiddenStations[station.ID] && !in.ShowHidden {
			continue
		}

		currentLevel := in.StationLevels[station.ID]
		for _, level := range SelectLevels(station, currentLevel, in.ViewMode) {
			for _, req := range level.ItemRequirements {
				if in.CompletedRequirements[req.ID] {
					continue
				}

				entry, ok := totals[req.Item.ID]
				if !ok {
					entry = &PooledItem{ItemID: req.Item.ID}
					totals[req.Item.ID] = entry
				}
				entry.Count += req.Count
				if req.FoundInRaid {
					entry.FirCount += req.Count
				}
			}
		}
	}

	pooled := make([]PooledItem, 0, len(totals))
	for _, entry := range totals {
		pooled = append(pooled, *entry)
	}
	sort.Slice(pooled, func(i, j int) bool {
		return pooled[i].ItemID < pooled[j].ItemID
	})
	return pooled
}

// SelectLevels returns the levels of station that are targeted from
// currentLevel under mode. Unknown modes behave like ViewModeNextLevel.
func SelectLevels(station *Station, currentLevel int, mode ViewMode) []StationLevel {
	var selected []StationLevel
	for _, level := range station.Levels {
		switch mode {
		case ViewModeAll:
			if level.Level > currentLevel {
				selected = append(selected, level)
			}
		default:
			if level.Level == currentLevel+1 {
				selected = append(selected, level)
			}
		}
	}
	return selected
}

// PooledByItem indexes pooled demand by item id.
func PooledByItem(pooled []PooledItem) map[string]PooledItem {
	byItem := make(map[string]PooledItem, len(pooled))
	for _, p := range pooled {
		byItem[p.ItemID] = p
	}
	return byItem
}
