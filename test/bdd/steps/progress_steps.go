package steps

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/hideout-go/internal/adapters/persistence"
	"github.com/andrescamacho/hideout-go/internal/application/common"
	"github.com/andrescamacho/hideout-go/internal/application/mediator"
	"github.com/andrescamacho/hideout-go/internal/application/progress/commands"
	"github.com/andrescamacho/hideout-go/internal/application/progress/queries"
	"github.com/andrescamacho/hideout-go/internal/application/setup"
	"github.com/andrescamacho/hideout-go/test/helpers"
)

type progressContext struct {
	mediator    mediator.Mediator
	profileRepo *persistence.GormProfileRepository
	profileName string

	lastErr     error
	needs       *queries.GetPooledNeedsResponse
	levelResult *commands.SetStationLevelResponse
	exported    []byte
}

func (pc *progressContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}

	pc.profileRepo = persistence.NewGormProfileRepository(helpers.SharedTestDB)
	stations := helpers.NewMockStationProvider(helpers.SampleStations())
	prices := persistence.NewGormMarketPriceRepository(helpers.SharedTestDB)

	registry := setup.NewHandlerRegistry(pc.profileRepo, stations, stations, prices, nil)
	registry.Use(common.ValidationMiddleware())

	med, err := registry.CreateConfiguredMediator()
	if err != nil {
		return err
	}

	pc.mediator = med
	pc.profileName = ""
	pc.lastErr = nil
	pc.needs = nil
	pc.levelResult = nil
	pc.exported = nil
	return nil
}

// Given steps

func (pc *progressContext) aProfileWithEdition(name, edition string) error {
	_, err := pc.mediator.Send(context.Background(), &commands.CreateProfileCommand{Name: name, Edition: edition})
	if err != nil {
		return err
	}
	pc.profileName = name
	return nil
}

// When steps

func (pc *progressContext) iSetStationToLevel(station string, level int) error {
	resp, err := pc.mediator.Send(context.Background(), &commands.SetStationLevelCommand{
		ProfileRef: pc.profileName,
		StationRef: station,
		Level:      level,
	})
	pc.lastErr = err
	if err == nil {
		pc.levelResult = resp.(*commands.SetStationLevelResponse)
	}
	return nil
}

func (pc *progressContext) iOwn(have int, item string, haveFir int) error {
	_, err := pc.mediator.Send(context.Background(), &commands.SetItemCountsCommand{
		ProfileRef: pc.profileName,
		ItemID:     item,
		Have:       have,
		HaveFir:    haveFir,
	})
	return err
}

func (pc *progressContext) iMarkRequirementCompleted(reqID string) error {
	completed := true
	_, err := pc.mediator.Send(context.Background(), &commands.SetRequirementCompletedCommand{
		ProfileRef:    pc.profileName,
		RequirementID: reqID,
		Completed:     &completed,
	})
	return err
}

func (pc *progressContext) iHideStation(station string) error {
	hidden := true
	_, err := pc.mediator.Send(context.Background(), &commands.SetStationHiddenCommand{
		ProfileRef: pc.profileName,
		StationRef: station,
		Hidden:     &hidden,
	})
	return err
}

func (pc *progressContext) iRequestPooledNeeds(mode string) error {
	resp, err := pc.mediator.Send(context.Background(), &queries.GetPooledNeedsQuery{
		ProfileRef: pc.profileName,
		ViewMode:   mode,
	})
	if err != nil {
		return err
	}
	pc.needs = resp.(*queries.GetPooledNeedsResponse)
	return nil
}

func (pc *progressContext) iRequestPooledNeedsDefault() error {
	return pc.iRequestPooledNeeds("")
}

func (pc *progressContext) iExportTheProfile() error {
	resp, err := pc.mediator.Send(context.Background(), &queries.ExportProgressQuery{ProfileRef: pc.profileName})
	if err != nil {
		return err
	}
	pc.exported, err = json.Marshal(resp.(*queries.ExportProgressResponse).Document)
	return err
}

func (pc *progressContext) iImportItAs(name string) error {
	_, err := pc.mediator.Send(context.Background(), &commands.ImportProgressCommand{
		Data:        pc.exported,
		ProfileName: name,
	})
	pc.lastErr = err
	return nil
}

func (pc *progressContext) iImportItAgain() error {
	_, err := pc.mediator.Send(context.Background(), &commands.ImportProgressCommand{Data: pc.exported})
	pc.lastErr = err
	return nil
}

func (pc *progressContext) iResetTheProgress() error {
	_, err := pc.mediator.Send(context.Background(), &commands.ResetProgressCommand{ProfileRef: pc.profileName})
	return err
}

// Then steps

func (pc *progressContext) needLine(item string) (*queries.NeedLine, bool) {
	for i := range pc.needs.Items {
		if pc.needs.Items[i].Item.ID == item {
			return &pc.needs.Items[i], true
		}
	}
	return nil, false
}

func (pc *progressContext) theNeedsShouldList(item string, needed, required int) error {
	line, ok := pc.needLine(item)
	if !ok {
		return fmt.Errorf("expected %q in needs, got %d items", item, len(pc.needs.Items))
	}
	if line.Needs.NeededTotal != needed || line.Required != required {
		return fmt.Errorf("expected %q to need %d of %d, got %d of %d",
			item, needed, required, line.Needs.NeededTotal, line.Required)
	}
	return nil
}

func (pc *progressContext) theNeedsShouldNotList(item string) error {
	if _, ok := pc.needLine(item); ok {
		return fmt.Errorf("expected %q not to be listed", item)
	}
	return nil
}

func (pc *progressContext) theStoredLevelShouldBe(name, station string, level int) error {
	p, err := pc.profileRepo.FindByName(context.Background(), name)
	if err != nil {
		return err
	}
	if got := p.StationLevel(helpers.StationID(station)); got != level {
		return fmt.Errorf("expected stored %s level %d for %s, got %d", station, level, name, got)
	}
	return nil
}

func (pc *progressContext) theStoredCountShouldBe(name, item string, have, haveFir int) error {
	p, err := pc.profileRepo.FindByName(context.Background(), name)
	if err != nil {
		return err
	}
	got := p.ItemCount(item)
	if got.Have != have || got.HaveFir != haveFir {
		return fmt.Errorf("expected %s to own %d (+%d FIR) %s, got %+v", name, have, haveFir, item, got)
	}
	return nil
}

func (pc *progressContext) theLevelShouldBeClamped(level int) error {
	if pc.lastErr != nil {
		return fmt.Errorf("unexpected error: %w", pc.lastErr)
	}
	if !pc.levelResult.Clamped || pc.levelResult.Level != level {
		return fmt.Errorf("expected level clamped to %d, got %+v", level, pc.levelResult)
	}
	return nil
}

func (pc *progressContext) theCommandShouldFailWith(message string) error {
	if pc.lastErr == nil {
		return fmt.Errorf("expected an error containing %q", message)
	}
	if !containsFold(pc.lastErr.Error(), message) {
		return fmt.Errorf("expected error containing %q, got %q", message, pc.lastErr.Error())
	}
	return nil
}

func InitializeProgressScenario(ctx *godog.ScenarioContext) {
	pc := &progressContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, pc.reset()
	})

	// Given steps
	ctx.Step(`^a profile "([^"]*)" with the "([^"]*)" edition$`, pc.aProfileWithEdition)

	// When steps
	ctx.Step(`^I set station "([^"]*)" to level (-?\d+)$`, pc.iSetStationToLevel)
	ctx.Step(`^I record (\d+) "([^"]*)" and (\d+) found in raid$`, pc.iOwn)
	ctx.Step(`^I mark requirement "([^"]*)" completed$`, pc.iMarkRequirementCompleted)
	ctx.Step(`^I hide station "([^"]*)"$`, pc.iHideStation)
	ctx.Step(`^I request pooled needs$`, pc.iRequestPooledNeedsDefault)
	ctx.Step(`^I request pooled needs in "([^"]*)" mode$`, pc.iRequestPooledNeeds)
	ctx.Step(`^I export the profile$`, pc.iExportTheProfile)
	ctx.Step(`^I import it as "([^"]*)"$`, pc.iImportItAs)
	ctx.Step(`^I import it again$`, pc.iImportItAgain)
	ctx.Step(`^I reset the progress$`, pc.iResetTheProgress)

	// Then steps
	ctx.Step(`^the needs should list "([^"]*)" needing (\d+) of (\d+)$`, pc.theNeedsShouldList)
	ctx.Step(`^the needs should not list "([^"]*)"$`, pc.theNeedsShouldNotList)
	ctx.Step(`^profile "([^"]*)" should have "([^"]*)" stored at level (\d+)$`, pc.theStoredLevelShouldBe)
	ctx.Step(`^profile "([^"]*)" should own (\d+) "([^"]*)" and (\d+) found in raid$`, func(name string, have int, item string, haveFir int) error {
		return pc.theStoredCountShouldBe(name, item, have, haveFir)
	})
	ctx.Step(`^the level should be clamped to (\d+)$`, pc.theLevelShouldBeClamped)
	ctx.Step(`^the command should fail with "([^"]*)"$`, pc.theCommandShouldFailWith)
}
