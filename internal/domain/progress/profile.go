package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/internal/domain/market"
)

// SchemaVersion is the current version of the persisted profile shape.
// Version 1 stored a boolean compactMode instead of ItemSize.
const SchemaVersion = 2

// Profile is one user's hideout progress. It is mutated only through its
// methods; each method is a single atomic step with last-writer-wins
// semantics once persisted.
type Profile struct {
	id                    string
	name                  string
	stationLevels         map[string]int
	hiddenStations        map[string]bool
	completedRequirements map[string]bool
	itemCounts            map[string]hideout.ItemCount
	traderLevels          map[string]int
	skillLevels           map[string]int
	preferences           Preferences
	updatedAt             time.Time
}

// Snapshot is the plain, serializable shape of a Profile.
type Snapshot struct {
	ID                    string                       `json:"id"`
	Name                  string                       `json:"name"`
	StationLevels         map[string]int               `json:"stationLevels"`
	HiddenStations        map[string]bool              `json:"hiddenStations"`
	CompletedRequirements map[string]bool              `json:"completedRequirements"`
	ItemCounts            map[string]hideout.ItemCount `json:"itemCounts"`
	TraderLevels          map[string]int               `json:"traderLevels,omitempty"`
	SkillLevels           map[string]int               `json:"skillLevels,omitempty"`
	Preferences           Preferences                  `json:"preferences"`
	UpdatedAt             time.Time                    `json:"updatedAt"`
}

// NewProfile creates an empty profile with a fresh id.
func NewProfile(name string, prefs Preferences) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidProfileName
	}

	return &Profile{
		id:                    uuid.NewString(),
		name:                  name,
		stationLevels:         make(map[string]int),
		hiddenStations:        make(map[string]bool),
		completedRequirements: make(map[string]bool),
		itemCounts:            make(map[string]hideout.ItemCount),
		traderLevels:          make(map[string]int),
		skillLevels:           make(map[string]int),
		preferences:           prefs.withDefaults(),
	}, nil
}

// FromSnapshot rebuilds a profile, clamping any negative values it finds.
func FromSnapshot(s Snapshot) (*Profile, error) {
	if s.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidSnapshot)
	}
	if strings.TrimSpace(s.Name) == "" {
		return nil, ErrInvalidProfileName
	}

	p := &Profile{
		id:                    s.ID,
		name:                  s.Name,
		stationLevels:         make(map[string]int, len(s.StationLevels)),
		hiddenStations:        make(map[string]bool, len(s.HiddenStations)),
		completedRequirements: make(map[string]bool, len(s.CompletedRequirements)),
		itemCounts:            make(map[string]hideout.ItemCount, len(s.ItemCounts)),
		traderLevels:          make(map[string]int, len(s.TraderLevels)),
		skillLevels:           make(map[string]int, len(s.SkillLevels)),
		preferences:           s.Preferences.withDefaults(),
		updatedAt:             s.UpdatedAt,
	}
	for id, lvl := range s.StationLevels {
		p.stationLevels[id] = max(0, lvl)
	}
	for id, hidden := range s.HiddenStations {
		if hidden {
			p.hiddenStations[id] = true
		}
	}
	for id, done := range s.CompletedRequirements {
		if done {
			p.completedRequirements[id] = true
		}
	}
	for id, c := range s.ItemCounts {
		p.setItemCounts(id, c.Have, c.HaveFir)
	}
	for k, v := range s.TraderLevels {
		p.traderLevels[k] = max(0, v)
	}
	for k, v := range s.SkillLevels {
		p.skillLevels[k] = max(0, v)
	}
	return p, nil
}

// Snapshot returns a deep copy of the profile's state.
func (p *Profile) Snapshot() Snapshot {
	return Snapshot{
		ID:                    p.id,
		Name:                  p.name,
		StationLevels:         p.StationLevels(),
		HiddenStations:        p.HiddenStations(),
		CompletedRequirements: p.CompletedRequirements(),
		ItemCounts:            p.ItemCounts(),
		TraderLevels:          copyMap(p.traderLevels),
		SkillLevels:           copyMap(p.skillLevels),
		Preferences:           p.preferences,
		UpdatedAt:             p.updatedAt,
	}
}

func (p *Profile) ID() string               { return p.id }
func (p *Profile) Name() string             { return p.name }
func (p *Profile) Preferences() Preferences { return p.preferences }
func (p *Profile) UpdatedAt() time.Time     { return p.updatedAt }

// StationLevel returns the recorded level, defaulting to 0.
func (p *Profile) StationLevel(stationID string) int { return p.stationLevels[stationID] }

func (p *Profile) StationLevels() map[string]int             { return copyMap(p.stationLevels) }
func (p *Profile) HiddenStations() map[string]bool           { return copyMap(p.hiddenStations) }
func (p *Profile) CompletedRequirements() map[string]bool    { return copyMap(p.completedRequirements) }
func (p *Profile) ItemCounts() map[string]hideout.ItemCount  { return copyMap(p.itemCounts) }
func (p *Profile) TraderLevels() map[string]int              { return copyMap(p.traderLevels) }
func (p *Profile) SkillLevels() map[string]int               { return copyMap(p.skillLevels) }
func (p *Profile) IsHidden(stationID string) bool            { return p.hiddenStations[stationID] }
func (p *Profile) IsRequirementCompleted(reqID string) bool  { return p.completedRequirements[reqID] }
func (p *Profile) ItemCount(itemID string) hideout.ItemCount { return p.itemCounts[itemID] }

// Touch records the time of the last mutation.
func (p *Profile) Touch(now time.Time) { p.updatedAt = now }

// Rename changes the display name.
func (p *Profile) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidProfileName
	}
	p.name = name
	return nil
}

// SetStationLevel records a station level clamped to the station's range.
// The lower bound is the floor the profile's edition grants, so an edition
// level can never be unset. Returns the level actually stored.
func (p *Profile) SetStationLevel(station *hideout.Station, level int) (int, error) {
	if station == nil || station.ID == "" {
		return 0, ErrInvalidStationID
	}
	maxLevel := station.MaxLevel()
	floor := min(hideout.EditionFloor(station.NormalizedName, p.preferences.Edition), maxLevel)
	level = min(max(floor, level), maxLevel)
	if level == 0 {
		delete(p.stationLevels, station.ID)
	} else {
		p.stationLevels[station.ID] = level
	}
	return level, nil
}

// SetStationHidden excludes or re-includes a station in pooled demand.
func (p *Profile) SetStationHidden(stationID string, hidden bool) error {
	if stationID == "" {
		return ErrInvalidStationID
	}
	if hidden {
		p.hiddenStations[stationID] = true
	} else {
		delete(p.hiddenStations, stationID)
	}
	return nil
}

// ToggleStationHidden flips the hidden flag and returns the new value.
func (p *Profile) ToggleStationHidden(stationID string) (bool, error) {
	hidden := !p.hiddenStations[stationID]
	return hidden, p.SetStationHidden(stationID, hidden)
}

// SetRequirementCompleted marks a single requirement as satisfied without
// changing any station level.
func (p *Profile) SetRequirementCompleted(reqID string, completed bool) error {
	if reqID == "" {
		return ErrInvalidRequirementID
	}
	if completed {
		p.completedRequirements[reqID] = true
	} else {
		delete(p.completedRequirements, reqID)
	}
	return nil
}

// ToggleRequirement flips the completion flag and returns the new value.
func (p *Profile) ToggleRequirement(reqID string) (bool, error) {
	completed := !p.completedRequirements[reqID]
	return completed, p.SetRequirementCompleted(reqID, completed)
}

// AdjustItemCounts adds deltas to the owned counts. Results below zero are
// clamped to zero.
func (p *Profile) AdjustItemCounts(itemID string, deltaHave, deltaHaveFir int) (hideout.ItemCount, error) {
	if itemID == "" {
		return hideout.ItemCount{}, ErrInvalidItemID
	}
	cur := p.itemCounts[itemID]
	return p.setItemCounts(itemID, cur.Have+deltaHave, cur.HaveFir+deltaHaveFir), nil
}

// SetItemCounts overwrites the owned counts, clamped to zero.
func (p *Profile) SetItemCounts(itemID string, have, haveFir int) (hideout.ItemCount, error) {
	if itemID == "" {
		return hideout.ItemCount{}, ErrInvalidItemID
	}
	return p.setItemCounts(itemID, have, haveFir), nil
}

func (p *Profile) setItemCounts(itemID string, have, haveFir int) hideout.ItemCount {
	c := hideout.ItemCount{Have: max(0, have), HaveFir: max(0, haveFir)}
	if c.Total() == 0 {
		delete(p.itemCounts, itemID)
	} else {
		p.itemCounts[itemID] = c
	}
	return c
}

// ApplyEdition records the edition and raises edition floors. Levels the
// user already set at or above a floor are kept. Returns whether any level
// changed.
func (p *Profile) ApplyEdition(stations []hideout.Station, edition hideout.Edition) bool {
	p.preferences.Edition = edition
	levels, changed := hideout.ApplyEditionFloors(stations, p.stationLevels, edition)
	if changed {
		p.stationLevels = levels
	}
	return changed
}

func (p *Profile) SetViewMode(mode hideout.ViewMode) { p.preferences.ViewMode = mode }
func (p *Profile) SetShowHidden(show bool)           { p.preferences.ShowHidden = show }
func (p *Profile) SetItemSize(size ItemSize)         { p.preferences.ItemSize = size }
func (p *Profile) SetGameMode(mode market.GameMode)  { p.preferences.GameMode = mode }

// SetTraderLevel records a trader loyalty level; 0 forgets it.
func (p *Profile) SetTraderLevel(trader string, level int) error {
	return setKnownLevel(p.traderLevels, trader, level)
}

// SetSkillLevel records a skill level; 0 forgets it.
func (p *Profile) SetSkillLevel(skill string, level int) error {
	return setKnownLevel(p.skillLevels, skill, level)
}

func setKnownLevel(levels map[string]int, key string, level int) error {
	if key == "" {
		return ErrInvalidAttributeName
	}
	if level <= 0 {
		delete(levels, key)
		return nil
	}
	levels[key] = level
	return nil
}

// Reset clears all progress and re-applies the edition floors. Preferences
// are kept.
func (p *Profile) Reset(stations []hideout.Station) {
	p.stationLevels = make(map[string]int)
	p.hiddenStations = make(map[string]bool)
	p.completedRequirements = make(map[string]bool)
	p.itemCounts = make(map[string]hideout.ItemCount)
	p.traderLevels = make(map[string]int)
	p.skillLevels = make(map[string]int)
	p.ApplyEdition(stations, p.preferences.Edition)
}

// PoolInput exposes the slices of state pooling needs as plain arguments.
func (p *Profile) PoolInput(stations []hideout.Station, mode hideout.ViewMode) hideout.PoolInput {
	return hideout.PoolInput{
		Stations:              stations,
		StationLevels:         p.StationLevels(),
		HiddenStations:        p.HiddenStations(),
		ShowHidden:            p.preferences.ShowHidden,
		ViewMode:              mode,
		CompletedRequirements: p.CompletedRequirements(),
	}
}

// ReadinessInput exposes the state readiness classification needs.
func (p *Profile) ReadinessInput(station hideout.Station, stations []hideout.Station) hideout.ReadinessInput {
	return hideout.ReadinessInput{
		Station:               station,
		Stations:              stations,
		StationLevels:         p.StationLevels(),
		CompletedRequirements: p.CompletedRequirements(),
		ItemCounts:            p.ItemCounts(),
		TraderLevels:          p.TraderLevels(),
		SkillLevels:           p.SkillLevels(),
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
