package queries

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/andrescamacho/hideout-go/internal/application/common"
	"github.com/andrescamacho/hideout-go/internal/application/mediator"
	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/internal/domain/market"
	"github.com/andrescamacho/hideout-go/internal/domain/progress"
)

// GetPooledNeedsQuery computes the items a profile still has to collect
type GetPooledNeedsQuery struct {
	ProfileRef string `validate:"required"`
	// ViewMode overrides the profile preference when set
	ViewMode string
	// OutstandingOnly drops items whose demand is already covered
	OutstandingOnly bool
}

// NeedLine is one pooled item reconciled against owned stock and priced
type NeedLine struct {
	Item        hideout.Item          `json:"item"`
	Required    int                   `json:"required"`
	RequiredFir int                   `json:"requiredFir"`
	Owned       hideout.ItemCount     `json:"owned"`
	Needs       hideout.NeedBreakdown `json:"needs"`
	Price       *market.Price         `json:"price,omitempty"`
	NeededCost  int                   `json:"neededCost"`
	Excess      int                   `json:"excess"`
	ExcessValue int                   `json:"excessValue"`
}

// GetPooledNeedsResponse is the reconciled shopping list of a profile
type GetPooledNeedsResponse struct {
	ProfileID        string           `json:"profileId"`
	ProfileName      string           `json:"profileName"`
	ViewMode         hideout.ViewMode `json:"viewMode"`
	GameMode         market.GameMode  `json:"gameMode"`
	Items            []NeedLine       `json:"items"`
	OutstandingItems int              `json:"outstandingItems"`
	TotalNeededCost  int              `json:"totalNeededCost"`
}

// GetPooledNeedsHandler handles the GetPooledNeeds query
type GetPooledNeedsHandler struct {
	resolver        *common.ProfileResolver
	stationProvider hideout.StationProvider
	catalog         hideout.ItemCatalog
	priceRepo       market.PriceRepository
}

// NewGetPooledNeedsHandler creates a new GetPooledNeedsHandler. catalog and
// priceRepo are optional; without them names come from the station snapshot
// and lines are unpriced.
func NewGetPooledNeedsHandler(
	profileRepo progress.ProfileRepository,
	stationProvider hideout.StationProvider,
	catalog hideout.ItemCatalog,
	priceRepo market.PriceRepository,
) *GetPooledNeedsHandler {
	return &GetPooledNeedsHandler{
		resolver:        common.NewProfileResolver(profileRepo),
		stationProvider: stationProvider,
		catalog:         catalog,
		priceRepo:       priceRepo,
	}
}

// Handle executes the GetPooledNeeds query
func (h *GetPooledNeedsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetPooledNeedsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPooledNeedsQuery")
	}

	p, err := h.resolver.Resolve(ctx, query.ProfileRef)
	if err != nil {
		return nil, err
	}
	prefs := p.Preferences()

	viewMode := prefs.ViewMode
	if query.ViewMode != "" {
		if viewMode, err = hideout.ParseViewMode(query.ViewMode); err != nil {
			return nil, err
		}
	}

	stations, err := h.stationProvider.Stations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stations: %w", err)
	}

	prices, err := h.loadPrices(ctx, prefs.GameMode)
	if err != nil {
		return nil, err
	}

	snapshotItems := hideout.Catalog(stations)
	owned := p.ItemCounts()
	pooled := hideout.PoolItems(p.PoolInput(stations, viewMode))

	response := &GetPooledNeedsResponse{
		ProfileID:   p.ID(),
		ProfileName: p.Name(),
		ViewMode:    viewMode,
		GameMode:    prefs.GameMode,
		Items:       make([]NeedLine, 0, len(pooled)),
	}

	for _, item := range pooled {
		have := owned[item.ItemID]
		needs, err := hideout.ComputeItemNeeds(item, have)
		if err != nil {
			return nil, fmt.Errorf("failed to reconcile %s: %w", item.ItemID, err)
		}
		if query.OutstandingOnly && needs.Satisfied() {
			continue
		}

		catalogItem, err := h.resolveItem(ctx, item.ItemID, snapshotItems)
		if err != nil {
			return nil, err
		}

		line := NeedLine{
			Item:        catalogItem,
			Required:    item.Count,
			RequiredFir: item.FirCount,
			Owned:       have,
			Needs:       needs,
			Excess:      max(0, have.Total()-item.Count),
		}
		if price, ok := prices[catalogItem.NormalizedName]; ok {
			line.Price = &price
			line.NeededCost = needs.NeededTotal * price.BuyPrice()
			line.ExcessValue = line.Excess * price.TraderPrice
		}

		if !needs.Satisfied() {
			response.OutstandingItems++
		}
		response.TotalNeededCost += line.NeededCost
		response.Items = append(response.Items, line)
	}

	sort.SliceStable(response.Items, func(i, j int) bool {
		a, b := response.Items[i].Item, response.Items[j].Item
		if na, nb := strings.ToLower(a.Name), strings.ToLower(b.Name); na != nb {
			return na < nb
		}
		return a.ID < b.ID
	})

	return response, nil
}

func (h *GetPooledNeedsHandler) loadPrices(ctx context.Context, mode market.GameMode) (map[string]market.Price, error) {
	if h.priceRepo == nil {
		return nil, nil
	}
	prices, err := h.priceRepo.FindByMode(ctx, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s prices: %w", mode, err)
	}
	return prices, nil
}

// resolveItem prefers the catalog, then the item embedded in the snapshot,
// and finally a bare entry named after the id.
func (h *GetPooledNeedsHandler) resolveItem(ctx context.Context, itemID string, snapshotItems map[string]hideout.Item) (hideout.Item, error) {
	if h.catalog != nil {
		item, found, err := h.catalog.Item(ctx, itemID)
		if err != nil {
			return hideout.Item{}, fmt.Errorf("failed to resolve item %s: %w", itemID, err)
		}
		if found {
			return item, nil
		}
	}
	if item, ok := snapshotItems[itemID]; ok {
		return item, nil
	}
	return hideout.Item{ID: itemID, Name: itemID}, nil
}
