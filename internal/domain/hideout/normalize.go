package hideout

import "sort"

const (
	foundInRaidAttribute = "found_in_raid"
	foundInRaidValue     = "true"
)

// RawAttribute is a free-form requirement attribute as delivered upstream.
type RawAttribute struct {
	Type  string
	Name  string
	Value string
}

// RawItemRequirement is an item requirement before normalization. Either
// Count or the legacy Quantity may be absent.
type RawItemRequirement struct {
	ID         string
	Item       Item
	Count      *int
	Quantity   *int
	Attributes []RawAttribute
}

// NormalizeItemRequirement resolves the count fallback chain and the FIR
// attribute once, so pooling only ever sees canonical fields.
// Count wins over Quantity; a requirement with neither contributes 0.
func NormalizeItemRequirement(raw RawItemRequirement) ItemRequirement {
	count := 0
	switch {
	case raw.Count != nil:
		count = *raw.Count
	case raw.Quantity != nil:
		count = *raw.Quantity
	}
	if count < 0 {
		count = 0
	}

	return ItemRequirement{
		ID:          raw.ID,
		Item:        raw.Item,
		Count:       count,
		FoundInRaid: IsFoundInRaid(raw.Attributes),
	}
}

// IsFoundInRaid reports whether the attributes mark a requirement as FIR-only.
func IsFoundInRaid(attrs []RawAttribute) bool {
	for _, a := range attrs {
		if a.Name == foundInRaidAttribute && a.Value == foundInRaidValue {
			return true
		}
	}
	return false
}

// SortLevels orders a station's levels ascending in place.
func SortLevels(s *Station) {
	sort.SliceStable(s.Levels, func(i, j int) bool {
		return s.Levels[i].Level < s.Levels[j].Level
	})
}
