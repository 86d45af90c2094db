package setup

import (
	marketCommands "github.com/andrescamacho/hideout-go/internal/application/market/commands"
	"github.com/andrescamacho/hideout-go/internal/application/mediator"
	progressCommands "github.com/andrescamacho/hideout-go/internal/application/progress/commands"
	progressQueries "github.com/andrescamacho/hideout-go/internal/application/progress/queries"
	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/internal/domain/market"
	"github.com/andrescamacho/hideout-go/internal/domain/progress"
	"github.com/andrescamacho/hideout-go/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	profileRepo     progress.ProfileRepository
	stationProvider hideout.StationProvider
	catalog         hideout.ItemCatalog
	priceRepo       market.PriceRepository
	clock           shared.Clock
	middlewares     []mediator.Middleware
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// catalog and priceRepo may be nil; needs are then reported without names or prices.
func NewHandlerRegistry(
	profileRepo progress.ProfileRepository,
	stationProvider hideout.StationProvider,
	catalog hideout.ItemCatalog,
	priceRepo market.PriceRepository,
	clock shared.Clock,
) *HandlerRegistry {
	clock = shared.ClockOrSystem(clock)

	return &HandlerRegistry{
		profileRepo:     profileRepo,
		stationProvider: stationProvider,
		catalog:         catalog,
		priceRepo:       priceRepo,
		clock:           clock,
	}
}

// Use queues a middleware for every mediator the registry configures.
// Middlewares keep their registration order, the first being the outermost.
func (r *HandlerRegistry) Use(middleware mediator.Middleware) *HandlerRegistry {
	r.middlewares = append(r.middlewares, middleware)
	return r
}

// RegisterProgressHandlers registers profile, station, item and lifecycle handlers
func (r *HandlerRegistry) RegisterProgressHandlers(m mediator.Mediator) error {
	attributeHandler := progressCommands.NewSetAttributeLevelHandler(r.profileRepo, r.clock)

	registrations := []error{
		mediator.RegisterHandler[*progressCommands.CreateProfileCommand](m,
			progressCommands.NewCreateProfileHandler(r.profileRepo, r.stationProvider, r.clock)),
		mediator.RegisterHandler[*progressCommands.RenameProfileCommand](m,
			progressCommands.NewRenameProfileHandler(r.profileRepo, r.clock)),
		mediator.RegisterHandler[*progressCommands.DeleteProfileCommand](m,
			progressCommands.NewDeleteProfileHandler(r.profileRepo)),
		mediator.RegisterHandler[*progressCommands.SetStationLevelCommand](m,
			progressCommands.NewSetStationLevelHandler(r.profileRepo, r.stationProvider, r.clock)),
		mediator.RegisterHandler[*progressCommands.SetStationHiddenCommand](m,
			progressCommands.NewSetStationHiddenHandler(r.profileRepo, r.stationProvider, r.clock)),
		mediator.RegisterHandler[*progressCommands.SetRequirementCompletedCommand](m,
			progressCommands.NewSetRequirementCompletedHandler(r.profileRepo, r.stationProvider, r.clock)),
		mediator.RegisterHandler[*progressCommands.AdjustItemCountsCommand](m,
			progressCommands.NewAdjustItemCountsHandler(r.profileRepo, r.clock)),
		mediator.RegisterHandler[*progressCommands.SetItemCountsCommand](m,
			progressCommands.NewSetItemCountsHandler(r.profileRepo, r.clock)),
		mediator.RegisterHandler[*progressCommands.ApplyEditionCommand](m,
			progressCommands.NewApplyEditionHandler(r.profileRepo, r.stationProvider, r.clock)),
		mediator.RegisterHandler[*progressCommands.UpdatePreferencesCommand](m,
			progressCommands.NewUpdatePreferencesHandler(r.profileRepo, r.clock)),
		mediator.RegisterHandler[*progressCommands.SetTraderLevelCommand](m, attributeHandler),
		mediator.RegisterHandler[*progressCommands.SetSkillLevelCommand](m, attributeHandler),
		mediator.RegisterHandler[*progressCommands.ResetProgressCommand](m,
			progressCommands.NewResetProgressHandler(r.profileRepo, r.stationProvider, r.clock)),
		mediator.RegisterHandler[*progressCommands.ImportProgressCommand](m,
			progressCommands.NewImportProgressHandler(r.profileRepo, r.stationProvider, r.clock)),

		mediator.RegisterHandler[*progressQueries.GetPooledNeedsQuery](m,
			progressQueries.NewGetPooledNeedsHandler(r.profileRepo, r.stationProvider, r.catalog, r.priceRepo)),
		mediator.RegisterHandler[*progressQueries.GetStationStatusQuery](m,
			progressQueries.NewGetStationStatusHandler(r.profileRepo, r.stationProvider)),
		mediator.RegisterHandler[*progressQueries.GetProfileQuery](m,
			progressQueries.NewGetProfileHandler(r.profileRepo)),
		mediator.RegisterHandler[*progressQueries.ListProfilesQuery](m,
			progressQueries.NewListProfilesHandler(r.profileRepo)),
		mediator.RegisterHandler[*progressQueries.ExportProgressQuery](m,
			progressQueries.NewExportProgressHandler(r.profileRepo, r.clock)),
	}

	for _, err := range registrations {
		if err != nil {
			return err
		}
	}
	return nil
}

// RegisterMarketHandlers registers price import handlers
func (r *HandlerRegistry) RegisterMarketHandlers(m mediator.Mediator) error {
	return mediator.RegisterHandler[*marketCommands.ImportMarketPricesCommand](m,
		marketCommands.NewImportMarketPricesHandler(r.priceRepo, r.clock))
}

// CreateConfiguredMediator creates a new mediator with all handlers and queued middlewares
//
// Market handlers are only registered when a price repository is available.
func (r *HandlerRegistry) CreateConfiguredMediator() (mediator.Mediator, error) {
	m := mediator.NewMediator()

	for _, mw := range r.middlewares {
		m.Use(mw)
	}

	if err := r.RegisterProgressHandlers(m); err != nil {
		return nil, err
	}

	if r.priceRepo != nil {
		if err := r.RegisterMarketHandlers(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}
