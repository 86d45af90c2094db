package steps

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/test/helpers"
)

type hideoutContext struct {
	stations              []hideout.Station
	stationLevels         map[string]int
	hiddenStations        map[string]bool
	completedRequirements map[string]bool
	itemCounts            map[string]hideout.ItemCount
	traderLevels          map[string]int
	showHidden            bool
	viewMode              hideout.ViewMode

	pooled       []hideout.PooledItem
	secondPooled []hideout.PooledItem

	needs       hideout.NeedBreakdown
	needsErr    error
	needsInputs [4]int

	assessment hideout.ReadinessAssessment

	editionChanged bool
}

func (hc *hideoutContext) reset() {
	hc.stations = nil
	hc.stationLevels = make(map[string]int)
	hc.hiddenStations = make(map[string]bool)
	hc.completedRequirements = make(map[string]bool)
	hc.itemCounts = make(map[string]hideout.ItemCount)
	hc.traderLevels = make(map[string]int)
	hc.showHidden = false
	hc.viewMode = hideout.ViewModeNextLevel
	hc.pooled = nil
	hc.secondPooled = nil
	hc.needs = hideout.NeedBreakdown{}
	hc.needsErr = nil
	hc.needsInputs = [4]int{}
	hc.assessment = hideout.ReadinessAssessment{}
	hc.editionChanged = false
}

func (hc *hideoutContext) station(name string) (*hideout.Station, error) {
	station, ok := hideout.FindStation(hc.stations, name)
	if !ok {
		return nil, fmt.Errorf("station %q is not defined in this scenario", name)
	}
	return station, nil
}

func (hc *hideoutContext) poolInput() hideout.PoolInput {
	return hideout.PoolInput{
		Stations:              hc.stations,
		StationLevels:         hc.stationLevels,
		HiddenStations:        hc.hiddenStations,
		ShowHidden:            hc.showHidden,
		ViewMode:              hc.viewMode,
		CompletedRequirements: hc.completedRequirements,
	}
}

// Given steps

// aHideoutWithStations builds stations from rows of
// | station | level | item | count | fir | requires | trader |
// Requirement ids are "<station>-<level>-<item>". A row without an item only
// declares the level.
func (hc *hideoutContext) aHideoutWithStations(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("station table needs a header and at least one row")
	}

	header := make(map[string]int)
	for i, cell := range table.Rows[0].Cells {
		header[cell.Value] = i
	}
	cell := func(row *messages.PickleTableRow, column string) string {
		i, ok := header[column]
		if !ok || i >= len(row.Cells) {
			return ""
		}
		return strings.TrimSpace(row.Cells[i].Value)
	}

	order := make([]string, 0)
	levels := make(map[string]map[int]*hideout.StationLevel)

	for _, row := range table.Rows[1:] {
		name := cell(row, "station")
		levelNum, err := strconv.Atoi(cell(row, "level"))
		if err != nil {
			return fmt.Errorf("invalid level for %s: %w", name, err)
		}

		if _, ok := levels[name]; !ok {
			levels[name] = make(map[int]*hideout.StationLevel)
			order = append(order, name)
		}
		level, ok := levels[name][levelNum]
		if !ok {
			built := helpers.CreateTestLevel(levelNum)
			level = &built
			levels[name][levelNum] = level
		}

		if item := cell(row, "item"); item != "" {
			count, err := strconv.Atoi(cell(row, "count"))
			if err != nil {
				return fmt.Errorf("invalid count for %s: %w", item, err)
			}
			fir := cell(row, "fir") == "true"
			reqID := fmt.Sprintf("%s-%d-%s", name, levelNum, item)
			level.ItemRequirements = append(level.ItemRequirements, helpers.CreateTestRequirement(reqID, item, count, fir))
		}

		if requires := cell(row, "requires"); requires != "" {
			prereqName, prereqLevel, err := parseNameLevel(requires)
			if err != nil {
				return err
			}
			*level = helpers.WithStationPrereq(*level, prereqName, prereqLevel)
		}

		if trader := cell(row, "trader"); trader != "" {
			traderName, traderLevel, err := parseNameLevel(trader)
			if err != nil {
				return err
			}
			*level = helpers.WithTraderPrereq(*level, traderName, traderLevel)
		}
	}

	hc.stations = make([]hideout.Station, 0, len(order))
	for _, name := range order {
		stationLevels := make([]hideout.StationLevel, 0, len(levels[name]))
		for n := 1; n <= len(levels[name]); n++ {
			level, ok := levels[name][n]
			if !ok {
				return fmt.Errorf("station %s skips level %d", name, n)
			}
			stationLevels = append(stationLevels, *level)
		}
		hc.stations = append(hc.stations, helpers.CreateTestStation(name, stationLevels...))
	}
	return nil
}

func parseNameLevel(s string) (string, int, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return "", 0, fmt.Errorf("expected \"<name> <level>\", got %q", s)
	}
	level, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", 0, fmt.Errorf("invalid level in %q: %w", s, err)
	}
	return fields[0], level, nil
}

func (hc *hideoutContext) stationIsAtLevel(name string, level int) error {
	station, err := hc.station(name)
	if err != nil {
		return err
	}
	hc.stationLevels[station.ID] = level
	return nil
}

func (hc *hideoutContext) stationIsHidden(name string) error {
	station, err := hc.station(name)
	if err != nil {
		return err
	}
	hc.hiddenStations[station.ID] = true
	return nil
}

func (hc *hideoutContext) hiddenStationsAreShown() error {
	hc.showHidden = true
	return nil
}

func (hc *hideoutContext) theViewModeIs(mode string) error {
	hc.viewMode = hideout.ViewMode(mode)
	return nil
}

func (hc *hideoutContext) requirementIsCompleted(reqID string) error {
	hc.completedRequirements[reqID] = true
	return nil
}

func (hc *hideoutContext) iOwnItems(have int, item string, haveFir int) error {
	hc.itemCounts[item] = hideout.ItemCount{Have: have, HaveFir: haveFir}
	return nil
}

func (hc *hideoutContext) traderIsAtLevel(trader string, level int) error {
	hc.traderLevels[trader] = level
	return nil
}

// When steps

func (hc *hideoutContext) iPoolTheRequirements() error {
	hc.pooled = hideout.PoolItems(hc.poolInput())
	return nil
}

func (hc *hideoutContext) iPoolTheRequirementsTwice() error {
	hc.pooled = hideout.PoolItems(hc.poolInput())
	hc.secondPooled = hideout.PoolItems(hc.poolInput())
	return nil
}

func (hc *hideoutContext) iComputeNeeds(required, requiredFir, haveNonFir, haveFir int) error {
	hc.needsInputs = [4]int{required, requiredFir, haveNonFir, haveFir}
	hc.needs, hc.needsErr = hideout.ComputeNeeds(required, requiredFir, haveNonFir, haveFir)
	return nil
}

func (hc *hideoutContext) iClassifyStation(name string) error {
	station, err := hc.station(name)
	if err != nil {
		return err
	}
	hc.assessment, err = hideout.ClassifyReadiness(hideout.ReadinessInput{
		Station:               *station,
		Stations:              hc.stations,
		StationLevels:         hc.stationLevels,
		CompletedRequirements: hc.completedRequirements,
		ItemCounts:            hc.itemCounts,
		TraderLevels:          hc.traderLevels,
		SkillLevels:           map[string]int{},
	})
	return err
}

func (hc *hideoutContext) iApplyTheEdition(edition string) error {
	parsed, err := hideout.ParseEdition(edition)
	if err != nil {
		return err
	}
	hc.stationLevels, hc.editionChanged = hideout.ApplyEditionFloors(hc.stations, hc.stationLevels, parsed)
	return nil
}

// Then steps

func (hc *hideoutContext) thePooledDemandShouldBe(item string, count, firCount int) error {
	entry, ok := hideout.PooledByItem(hc.pooled)[item]
	if !ok {
		return fmt.Errorf("expected %q to be pooled, got %+v", item, hc.pooled)
	}
	if entry.Count != count || entry.FirCount != firCount {
		return fmt.Errorf("expected %q pooled as %d (%d FIR), got %d (%d FIR)",
			item, count, firCount, entry.Count, entry.FirCount)
	}
	return nil
}

func (hc *hideoutContext) itemShouldNotBePooled(item string) error {
	if entry, ok := hideout.PooledByItem(hc.pooled)[item]; ok {
		return fmt.Errorf("expected %q not to be pooled, got %+v", item, entry)
	}
	return nil
}

func (hc *hideoutContext) eachItemShouldAppearOnce() error {
	seen := make(map[string]bool)
	for _, entry := range hc.pooled {
		if seen[entry.ItemID] {
			return fmt.Errorf("item %q pooled more than once", entry.ItemID)
		}
		seen[entry.ItemID] = true
		if entry.FirCount > entry.Count {
			return fmt.Errorf("item %q has more FIR demand than demand", entry.ItemID)
		}
	}
	return nil
}

func (hc *hideoutContext) bothPoolsShouldBeIdentical() error {
	if !reflect.DeepEqual(hc.pooled, hc.secondPooled) {
		return fmt.Errorf("pooling is not deterministic: %+v vs %+v", hc.pooled, hc.secondPooled)
	}
	return nil
}

// thePooledTotalShouldEqualTheSelectedRequirements recomputes the expected
// total directly from the selected levels
func (hc *hideoutContext) thePooledTotalShouldEqualTheSelectedRequirements() error {
	expected := 0
	for i := range hc.stations {
		station := &hc.stations[i]
		if hc.hiddenStations[station.ID] && !hc.showHidden {
			continue
		}
		for _, level := range hideout.SelectLevels(station, hc.stationLevels[station.ID], hc.viewMode) {
			for _, req := range level.ItemRequirements {
				if !hc.completedRequirements[req.ID] {
					expected += req.Count
				}
			}
		}
	}

	actual := 0
	for _, entry := range hc.pooled {
		actual += entry.Count
	}
	if actual != expected {
		return fmt.Errorf("expected pooled total %d, got %d", expected, actual)
	}
	return nil
}

func (hc *hideoutContext) nothingShouldBePooled() error {
	if len(hc.pooled) != 0 {
		return fmt.Errorf("expected an empty pool, got %+v", hc.pooled)
	}
	return nil
}

func (hc *hideoutContext) theNeedsShouldBe(total, fir, nonFir int) error {
	if hc.needsErr != nil {
		return fmt.Errorf("unexpected error: %w", hc.needsErr)
	}
	if hc.needs.NeededTotal != total || hc.needs.NeededFir != fir || hc.needs.NeededNonFir != nonFir {
		return fmt.Errorf("expected needs %d (FIR %d, non-FIR %d), got %+v", total, fir, nonFir, hc.needs)
	}
	return nil
}

func (hc *hideoutContext) theFirReservedShouldBe(reserved int) error {
	if hc.needs.HaveFirReserved != reserved {
		return fmt.Errorf("expected %d FIR reserved, got %d", reserved, hc.needs.HaveFirReserved)
	}
	return nil
}

func (hc *hideoutContext) owningMoreShouldNotIncreaseTheNeeds(extra int) error {
	in := hc.needsInputs
	for _, variant := range [][4]int{
		{in[0], in[1], in[2] + extra, in[3]},
		{in[0], in[1], in[2], in[3] + extra},
	} {
		more, err := hideout.ComputeNeeds(variant[0], variant[1], variant[2], variant[3])
		if err != nil {
			return err
		}
		if more.NeededTotal > hc.needs.NeededTotal || more.NeededFir > hc.needs.NeededFir {
			return fmt.Errorf("owning more increased needs: %+v -> %+v", hc.needs, more)
		}
	}
	return nil
}

func (hc *hideoutContext) needsShouldFailWithAContractViolation() error {
	var violation *hideout.ContractViolationError
	if !errors.As(hc.needsErr, &violation) {
		return fmt.Errorf("expected a contract violation, got %v", hc.needsErr)
	}
	return nil
}

func (hc *hideoutContext) stationShouldBeLocked(name string) error {
	station, err := hc.station(name)
	if err != nil {
		return err
	}
	if !hideout.IsStationLocked(*station, hc.stations, hc.stationLevels) {
		return fmt.Errorf("expected %s to be locked", name)
	}
	return nil
}

func (hc *hideoutContext) stationShouldBeUnlocked(name string) error {
	station, err := hc.station(name)
	if err != nil {
		return err
	}
	if hideout.IsStationLocked(*station, hc.stations, hc.stationLevels) {
		return fmt.Errorf("expected %s to be unlocked, blocked by %+v",
			name, hideout.UnmetPrerequisites(*station, hc.stations, hc.stationLevels))
	}
	return nil
}

func (hc *hideoutContext) theReadinessShouldBe(expected string) error {
	if string(hc.assessment.Readiness) != expected {
		return fmt.Errorf("expected readiness %s, got %s (%v)", expected, hc.assessment.Readiness, hc.assessment.Reasons)
	}
	return nil
}

func (hc *hideoutContext) theShortfallShouldInclude(item string, needed int) error {
	for _, s := range hc.assessment.Shortfalls {
		if s.ItemID == item {
			if s.Needs.NeededTotal != needed {
				return fmt.Errorf("expected %d %s short, got %d", needed, item, s.Needs.NeededTotal)
			}
			return nil
		}
	}
	return fmt.Errorf("expected a shortfall for %s, got %+v", item, hc.assessment.Shortfalls)
}

func (hc *hideoutContext) stationShouldBeAtLevel(name string, level int) error {
	station, err := hc.station(name)
	if err != nil {
		return err
	}
	if got := hc.stationLevels[station.ID]; got != level {
		return fmt.Errorf("expected %s at level %d, got %d", name, level, got)
	}
	return nil
}

func (hc *hideoutContext) theEditionShouldChangeLevels(changed string) error {
	want := changed == "change"
	if hc.editionChanged != want {
		return fmt.Errorf("expected edition application changed=%v, got %v", want, hc.editionChanged)
	}
	return nil
}

func InitializeHideoutScenario(ctx *godog.ScenarioContext) {
	hc := &hideoutContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		hc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a hideout with stations:$`, hc.aHideoutWithStations)
	ctx.Step(`^station "([^"]*)" is at level (\d+)$`, hc.stationIsAtLevel)
	ctx.Step(`^station "([^"]*)" is hidden$`, hc.stationIsHidden)
	ctx.Step(`^hidden stations are shown$`, hc.hiddenStationsAreShown)
	ctx.Step(`^the view mode is "([^"]*)"$`, hc.theViewModeIs)
	ctx.Step(`^requirement "([^"]*)" is completed$`, hc.requirementIsCompleted)
	ctx.Step(`^I own (\d+) "([^"]*)" and (\d+) found in raid$`, hc.iOwnItems)
	ctx.Step(`^trader "([^"]*)" is at level (\d+)$`, hc.traderIsAtLevel)

	// When steps
	ctx.Step(`^I pool the requirements$`, hc.iPoolTheRequirements)
	ctx.Step(`^I pool the requirements twice$`, hc.iPoolTheRequirementsTwice)
	ctx.Step(`^I compute needs for (-?\d+) required with (-?\d+) FIR against (-?\d+) non-FIR and (-?\d+) FIR owned$`, hc.iComputeNeeds)
	ctx.Step(`^I classify station "([^"]*)"$`, hc.iClassifyStation)
	ctx.Step(`^I apply the "([^"]*)" edition$`, hc.iApplyTheEdition)

	// Then steps
	ctx.Step(`^the pooled demand for "([^"]*)" should be (\d+) with (\d+) FIR$`, hc.thePooledDemandShouldBe)
	ctx.Step(`^"([^"]*)" should not be pooled$`, hc.itemShouldNotBePooled)
	ctx.Step(`^each item should appear once$`, hc.eachItemShouldAppearOnce)
	ctx.Step(`^both pools should be identical$`, hc.bothPoolsShouldBeIdentical)
	ctx.Step(`^the pooled total should equal the selected requirements$`, hc.thePooledTotalShouldEqualTheSelectedRequirements)
	ctx.Step(`^nothing should be pooled$`, hc.nothingShouldBePooled)
	ctx.Step(`^the needs should be (\d+) with (\d+) FIR and (\d+) non-FIR$`, hc.theNeedsShouldBe)
	ctx.Step(`^(\d+) FIR should be reserved$`, hc.theFirReservedShouldBe)
	ctx.Step(`^owning (\d+) more should not increase the needs$`, hc.owningMoreShouldNotIncreaseTheNeeds)
	ctx.Step(`^needs computation should fail with a contract violation$`, hc.needsShouldFailWithAContractViolation)
	ctx.Step(`^station "([^"]*)" should be locked$`, hc.stationShouldBeLocked)
	ctx.Step(`^station "([^"]*)" should be unlocked$`, hc.stationShouldBeUnlocked)
	ctx.Step(`^the readiness should be "([^"]*)"$`, hc.theReadinessShouldBe)
	ctx.Step(`^the shortfall should include (\d+) "([^"]*)"$`, func(needed int, item string) error {
		return hc.theShortfallShouldInclude(item, needed)
	})
	ctx.Step(`^station "([^"]*)" should be at level (\d+)$`, hc.stationShouldBeAtLevel)
	ctx.Step(`^the edition should (change|not change) any level$`, hc.theEditionShouldChangeLevels)
}
