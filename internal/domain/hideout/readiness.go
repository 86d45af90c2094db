package hideout

import "fmt"

// Readiness classifies a station's next upgrade.
type Readiness string

const (
	// ReadinessReady means every requirement of the next level is covered.
	ReadinessReady Readiness = "ready"
	// ReadinessMissing means at least one requirement is outstanding.
	ReadinessMissing Readiness = "missing"
	// ReadinessIllegal means the recorded progress cannot exist in game.
	ReadinessIllegal Readiness = "illegal"
	// ReadinessMaxed means the station has no next level to classify.
	ReadinessMaxed Readiness = "maxed"
)

// ReadinessInput is the state a readiness assessment is derived from.
// Trader and skill levels missing from their maps are unknown and do not
// block readiness.
type ReadinessInput struct {
	Station               Station
	Stations              []Station
	StationLevels         map[string]int
	CompletedRequirements map[string]bool
	ItemCounts            map[string]ItemCount
	TraderLevels          map[string]int
	SkillLevels           map[string]int
}

// ItemShortfall is an item still needed for the next level.
type ItemShortfall struct {
	ItemID string        `json:"itemId"`
	Needs  NeedBreakdown `json:"needs"`
}

// ReadinessAssessment explains a readiness classification.
type ReadinessAssessment struct {
	StationID    string
	CurrentLevel int
	NextLevel    int
	Readiness    Readiness
	Reasons      []string
	Shortfalls   []ItemShortfall
}

// ClassifyReadiness evaluates the station's next upgrade. Item coverage is
// derived only from PoolItems over the station's own next level and
// ComputeNeeds against owned counts.
func ClassifyReadiness(in ReadinessInput) (ReadinessAssessment, error) {
	station := in.Station
	current := in.StationLevels[station.ID]
	assessment := ReadinessAssessment{
		StationID:    station.ID,
		CurrentLevel: current,
		NextLevel:    current + 1,
		Reasons:      make([]string, 0),
	}

	if reasons := illegalReasons(station, in.Stations, in.StationLevels); len(reasons) > 0 {
		assessment.Readiness = ReadinessIllegal
		assessment.Reasons = reasons
		return assessment, nil
	}

	next, ok := station.LevelData(current + 1)
	if !ok {
		assessment.NextLevel = current
		assessment.Readiness = ReadinessMaxed
		return assessment, nil
	}

	for _, req := range unmetStationRequirements(next.StationLevelRequirements, in.Stations, in.StationLevels) {
		assessment.Reasons = append(assessment.Reasons,
			fmt.Sprintf("requires %s level %d", req.StationNormalizedName, req.Level))
	}
	for _, req := range next.TraderRequirements {
		if lvl, known := in.TraderLevels[req.TraderNormalizedName]; known && lvl < req.Level {
			assessment.Reasons = append(assessment.Reasons,
				fmt.Sprintf("requires trader %s loyalty level %d", req.TraderNormalizedName, req.Level))
		}
	}
	for _, req := range next.SkillRequirements {
		if lvl, known := in.SkillLevels[req.Name]; known && lvl < req.Level {
			assessment.Reasons = append(assessment.Reasons,
				fmt.Sprintf("requires skill %s level %d", req.Name, req.Level))
		}
	}

	pooled := PoolItems(PoolInput{
		Stations:              []Station{station},
		StationLevels:         map[string]int{station.ID: current},
		ShowHidden:            true,
		ViewMode:              ViewModeNextLevel,
		CompletedRequirements: in.CompletedRequirements,
	})
	for _, p := range pooled {
		needs, err := ComputeItemNeeds(p, in.ItemCounts[p.ItemID])
		if err != nil {
			return ReadinessAssessment{}, fmt.Errorf("reconcile %s: %w", p.ItemID, err)
		}
		if !needs.Satisfied() {
			assessment.Shortfalls = append(assessment.Shortfalls, ItemShortfall{ItemID: p.ItemID, Needs: needs})
		}
	}
	if len(assessment.Shortfalls) > 0 {
		assessment.Reasons = append(assessment.Reasons,
			fmt.Sprintf("%d item requirement(s) outstanding", len(assessment.Shortfalls)))
	}

	if len(assessment.Reasons) > 0 {
		assessment.Readiness = ReadinessMissing
	} else {
		assessment.Readiness = ReadinessReady
	}
	return assessment, nil
}

// illegalReasons detects progress that cannot be reached in game: a level
// above the highest defined one, or a built level whose own station
// prerequisites are not met.
func illegalReasons(station Station, stations []Station, stationLevels map[string]int) []string {
	current := stationLevels[station.ID]
	var reasons []string

	if current < 0 {
		return []string{fmt.Sprintf("level %d is negative", current)}
	}
	if maxLevel := station.MaxLevel(); current > maxLevel {
		return []string{fmt.Sprintf("level %d exceeds maximum level %d", current, maxLevel)}
	}

	for lvl := 1; lvl <= current; lvl++ {
		built, ok := station.LevelData(lvl)
		if !ok {
			continue
		}
		for _, req := range unmetStationRequirements(built.StationLevelRequirements, stations, stationLevels) {
			reasons = append(reasons,
				fmt.Sprintf("level %d built but %s is below level %d", lvl, req.StationNormalizedName, req.Level))
		}
	}
	return reasons
}
