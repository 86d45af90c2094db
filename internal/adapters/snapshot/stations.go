package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
)

type rawEnvelope struct {
	Data struct {
		HideoutStations []rawStation `json:"hideoutStations"`
	} `json:"data"`
}

type rawStation struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	NormalizedName string     `json:"normalizedName"`
	Levels         []rawLevel `json:"levels"`
}

type rawLevel struct {
	ID                       string                  `json:"id"`
	Level                    int                     `json:"level"`
	ConstructionTime         int                     `json:"constructionTime"`
	ItemRequirements         []rawItemRequirement    `json:"itemRequirements"`
	StationLevelRequirements []rawStationRequirement `json:"stationLevelRequirements"`
	SkillRequirements        []rawSkillRequirement   `json:"skillRequirements"`
	TraderRequirements       []rawTraderRequirement  `json:"traderRequirements"`
}

type rawItem struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ShortName      string `json:"shortName"`
	NormalizedName string `json:"normalizedName"`
	IconLink       string `json:"iconLink"`
	Category       *struct {
		Name string `json:"name"`
	} `json:"category"`
}

type rawItemRequirement struct {
	ID         string         `json:"id"`
	Item       rawItem        `json:"item"`
	Count      *int           `json:"count"`
	Quantity   *int           `json:"quantity"`
	Attributes []rawAttribute `json:"attributes"`
}

type rawAttribute struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type rawStationRequirement struct {
	Station struct {
		NormalizedName string `json:"normalizedName"`
	} `json:"station"`
	Level int `json:"level"`
}

type rawSkillRequirement struct {
	Name  string `json:"name"`
	Skill *struct {
		Name string `json:"name"`
	} `json:"skill"`
	Level int `json:"level"`
}

type rawTraderRequirement struct {
	Trader struct {
		Name           string `json:"name"`
		NormalizedName string `json:"normalizedName"`
	} `json:"trader"`
	Level *int `json:"level"`
	Value *int `json:"value"`
}

// DecodeStations parses a station snapshot. Both the GraphQL envelope
// {"data":{"hideoutStations":[...]}} and a bare array are accepted. Item
// counts and FIR flags are normalized, levels sorted ascending and stations
// sorted by name.
func DecodeStations(r io.Reader) ([]hideout.Station, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read station snapshot: %w", err)
	}

	var raw []rawStation
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode station array: %w", err)
		}
	} else {
		var env rawEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("failed to decode station snapshot: %w", err)
		}
		raw = env.Data.HideoutStations
	}

	stations := make([]hideout.Station, 0, len(raw))
	for _, rs := range raw {
		if rs.ID == "" || rs.NormalizedName == "" {
			return nil, fmt.Errorf("station %q is missing id or normalizedName", rs.Name)
		}
		stations = append(stations, convertStation(rs))
	}

	sort.SliceStable(stations, func(i, j int) bool { return stations[i].Name < stations[j].Name })
	return stations, nil
}

func convertStation(rs rawStation) hideout.Station {
	station := hideout.Station{
		ID:             rs.ID,
		Name:           rs.Name,
		NormalizedName: rs.NormalizedName,
		Levels:         make([]hideout.StationLevel, 0, len(rs.Levels)),
	}

	for _, rl := range rs.Levels {
		level := hideout.StationLevel{
			ID:               rl.ID,
			Level:            rl.Level,
			ConstructionTime: rl.ConstructionTime,
		}
		for _, req := range rl.ItemRequirements {
			level.ItemRequirements = append(level.ItemRequirements, hideout.NormalizeItemRequirement(convertItemRequirement(req)))
		}
		for _, req := range rl.StationLevelRequirements {
			level.StationLevelRequirements = append(level.StationLevelRequirements, hideout.StationLevelRequirement{
				StationNormalizedName: req.Station.NormalizedName,
				Level:                 req.Level,
			})
		}
		for _, req := range rl.SkillRequirements {
			name := req.Name
			if req.Skill != nil && req.Skill.Name != "" {
				name = req.Skill.Name
			}
			level.SkillRequirements = append(level.SkillRequirements, hideout.SkillRequirement{Name: name, Level: req.Level})
		}
		for _, req := range rl.TraderRequirements {
			lvl := 0
			switch {
			case req.Level != nil:
				lvl = *req.Level
			case req.Value != nil:
				lvl = *req.Value
			}
			level.TraderRequirements = append(level.TraderRequirements, hideout.TraderRequirement{
				TraderNormalizedName: req.Trader.NormalizedName,
				TraderName:           req.Trader.Name,
				Level:                lvl,
			})
		}
		station.Levels = append(station.Levels, level)
	}

	hideout.SortLevels(&station)
	return station
}

func convertItemRequirement(req rawItemRequirement) hideout.RawItemRequirement {
	item := hideout.Item{
		ID:             req.Item.ID,
		Name:           req.Item.Name,
		ShortName:      req.Item.ShortName,
		NormalizedName: req.Item.NormalizedName,
		IconLink:       req.Item.IconLink,
	}
	if req.Item.Category != nil {
		item.Category = req.Item.Category.Name
	}

	attrs := make([]hideout.RawAttribute, 0, len(req.Attributes))
	for _, a := range req.Attributes {
		attrs = append(attrs, hideout.RawAttribute{Type: a.Type, Name: a.Name, Value: a.Value})
	}

	return hideout.RawItemRequirement{
		ID:         req.ID,
		Item:       item,
		Count:      req.Count,
		Quantity:   req.Quantity,
		Attributes: attrs,
	}
}

// FileStationProvider serves a station snapshot read from a JSON file. The
// file is read on first use and kept in memory; it also serves as the item
// catalog.
type FileStationProvider struct {
	path string

	mu       sync.RWMutex
	stations []hideout.Station
	items    map[string]hideout.Item
	loaded   bool
}

// NewFileStationProvider creates a provider for the snapshot at path
func NewFileStationProvider(path string) *FileStationProvider {
	return &FileStationProvider{path: path}
}

// Stations returns the snapshot, loading it on first call
func (p *FileStationProvider) Stations(ctx context.Context) ([]hideout.Station, error) {
	if err := p.ensureLoaded(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stations, nil
}

// Item resolves an item referenced by any requirement
func (p *FileStationProvider) Item(ctx context.Context, itemID string) (hideout.Item, bool, error) {
	if err := p.ensureLoaded(); err != nil {
		return hideout.Item{}, false, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	item, ok := p.items[itemID]
	return item, ok, nil
}

// Reload re-reads the snapshot file
func (p *FileStationProvider) Reload() error {
	f, err := os.Open(p.path)
	if err != nil {
		return fmt.Errorf("failed to open station snapshot: %w", err)
	}
	defer f.Close()

	stations, err := DecodeStations(f)
	if err != nil {
		return fmt.Errorf("%s: %w", p.path, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.stations = stations
	p.items = hideout.Catalog(stations)
	p.loaded = true
	return nil
}

func (p *FileStationProvider) ensureLoaded() error {
	p.mu.RLock()
	loaded := p.loaded
	p.mu.RUnlock()
	if loaded {
		return nil
	}
	return p.Reload()
}
