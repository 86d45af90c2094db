package bdd

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/hideout-go/test/bdd/steps"
	"github.com/andrescamacho/hideout-go/test/helpers"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/domain", "features/application"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// Domain scenarios: pooling, needs, locks, readiness and editions
	steps.InitializeHideoutScenario(sc)
	// Application scenarios run against the shared GORM database
	steps.InitializeProgressScenario(sc)
}

func TestMain(m *testing.M) {
	// One migrated in-memory database for the whole suite; scenarios truncate it
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic("Failed to initialize shared test database: " + err.Error())
	}
	code := m.Run()
	_ = helpers.CloseSharedTestDB()
	os.Exit(code)
}
