package hideout

import "fmt"

// Station is a hideout module upgradable through discrete integer levels.
// Level 0 is the implicit "not built" state and never appears in Levels.
type Station struct {
	ID             string
	Name           string
	NormalizedName string
	Levels         []StationLevel // ascending by Level
}

// StationLevel holds everything required to build one level of a station.
type StationLevel struct {
	ID                       string
	Level                    int
	ConstructionTime         int // seconds
	ItemRequirements         []ItemRequirement
	StationLevelRequirements []StationLevelRequirement
	SkillRequirements        []SkillRequirement
	TraderRequirements       []TraderRequirement
}

// Item is the catalog entry referenced by a requirement.
type Item struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ShortName      string `json:"shortName,omitempty"`
	NormalizedName string `json:"normalizedName"`
	IconLink       string `json:"iconLink,omitempty"`
	Category       string `json:"category,omitempty"`
}

// ItemRequirement is a canonical item requirement. ID is globally unique
// across all stations and levels.
type ItemRequirement struct {
	ID          string
	Item        Item
	Count       int
	FoundInRaid bool
}

// StationLevelRequirement requires another station to be at least Level.
type StationLevelRequirement struct {
	StationNormalizedName string `json:"station"`
	Level                 int    `json:"level"`
}

// SkillRequirement requires a player skill at Level or above.
type SkillRequirement struct {
	Name  string
	Level int
}

// TraderRequirement requires a trader loyalty level.
type TraderRequirement struct {
	TraderNormalizedName string
	TraderName           string
	Level                int
}

// ItemCount is the owned inventory of one item, split by FIR provenance.
type ItemCount struct {
	Have    int `json:"have"`
	HaveFir int `json:"haveFir"`
}

// Total returns all owned units regardless of provenance.
func (c ItemCount) Total() int {
	return c.Have + c.HaveFir
}

// LevelData returns the level entry for level, if the station defines it.
func (s *Station) LevelData(level int) (*StationLevel, bool) {
	for i := range s.Levels {
		if s.Levels[i].Level == level {
			return &s.Levels[i], true
		}
	}
	return nil, false
}

// MaxLevel returns the highest defined level, or 0 for a station without levels.
func (s *Station) MaxLevel() int {
	highest := 0
	for _, l := range s.Levels {
		if l.Level > highest {
			highest = l.Level
		}
	}
	return highest
}

// FindStation resolves a station by its normalized name.
func FindStation(stations []Station, normalizedName string) (*Station, bool) {
	for i := range stations {
		if stations[i].NormalizedName == normalizedName {
			return &stations[i], true
		}
	}
	return nil, false
}

// FindStationByID resolves a station by its id.
func FindStationByID(stations []Station, id string) (*Station, bool) {
	for i := range stations {
		if stations[i].ID == id {
			return &stations[i], true
		}
	}
	return nil, false
}

// ResolveStation finds a station by id, falling back to its normalized name.
func ResolveStation(stations []Station, ref string) (*Station, error) {
	if s, ok := FindStationByID(stations, ref); ok {
		return s, nil
	}
	if s, ok := FindStation(stations, ref); ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrStationNotFound, ref)
}

// RequirementLocation points at one item requirement inside the snapshot.
type RequirementLocation struct {
	Station     *Station
	Level       int
	Requirement ItemRequirement
}

// FindRequirement locates an item requirement by its id.
func FindRequirement(stations []Station, reqID string) (RequirementLocation, bool) {
	for i := range stations {
		for _, l := range stations[i].Levels {
			for _, req := range l.ItemRequirements {
				if req.ID == reqID {
					return RequirementLocation{Station: &stations[i], Level: l.Level, Requirement: req}, true
				}
			}
		}
	}
	return RequirementLocation{}, false
}

// Catalog indexes every item referenced by the given stations' requirements.
// Snapshots often embed a trimmed item on some requirements, so repeated
// entries fill in whatever fields the earlier ones left empty.
func Catalog(stations []Station) map[string]Item {
	items := make(map[string]Item)
	for _, s := range stations {
		for _, l := range s.Levels {
			for _, req := range l.ItemRequirements {
				items[req.Item.ID] = mergeItem(items[req.Item.ID], req.Item)
			}
		}
	}
	return items
}

func mergeItem(known, other Item) Item {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&known.ID, other.ID)
	fill(&known.Name, other.Name)
	fill(&known.ShortName, other.ShortName)
	fill(&known.NormalizedName, other.NormalizedName)
	fill(&known.IconLink, other.IconLink)
	fill(&known.Category, other.Category)
	return known
}
