package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/hideout-go/internal/application/common"
	"github.com/andrescamacho/hideout-go/internal/application/mediator"
	"github.com/andrescamacho/hideout-go/internal/domain/market"
	"github.com/andrescamacho/hideout-go/internal/domain/shared"
)

// ImportMarketPricesCommand replaces the price partition of one game mode
type ImportMarketPricesCommand struct {
	GameMode string `validate:"required,oneof=regular pve"`
	Prices   []market.Price
}

// ImportMarketPricesResponse reports how many prices were stored
type ImportMarketPricesResponse struct {
	GameMode market.GameMode
	Imported int
	Skipped  int
}

// ImportMarketPricesHandler handles the ImportMarketPrices command
type ImportMarketPricesHandler struct {
	priceRepo market.PriceRepository
	clock     shared.Clock
}

// NewImportMarketPricesHandler creates a new ImportMarketPricesHandler
func NewImportMarketPricesHandler(priceRepo market.PriceRepository, clock shared.Clock) *ImportMarketPricesHandler {
	clock = shared.ClockOrSystem(clock)
	return &ImportMarketPricesHandler{
		priceRepo: priceRepo,
		clock:     clock,
	}
}

// Handle executes the ImportMarketPrices command
func (h *ImportMarketPricesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportMarketPricesCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportMarketPricesCommand")
	}

	mode, err := market.ParseGameMode(cmd.GameMode)
	if err != nil {
		return nil, err
	}

	logger := common.LoggerFromContext(ctx)
	now := h.clock.Now()

	// Later entries for the same item win.
	byName := make(map[string]market.Price, len(cmd.Prices))
	skipped := 0
	for _, raw := range cmd.Prices {
		updatedAt := raw.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = now
		}
		price, err := market.NewPrice(raw.NormalizedName, mode, raw.Avg24hPrice, raw.Low24hPrice, raw.TraderName, raw.TraderPrice, updatedAt)
		if err != nil {
			skipped++
			logger.Log("warn", "skipping invalid price", map[string]interface{}{
				"item":  raw.NormalizedName,
				"error": err.Error(),
			})
			continue
		}
		byName[price.NormalizedName] = *price
	}

	prices := make([]market.Price, 0, len(byName))
	for _, p := range byName {
		prices = append(prices, p)
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i].NormalizedName < prices[j].NormalizedName })

	if err := h.priceRepo.ReplaceMode(ctx, mode, prices); err != nil {
		return nil, fmt.Errorf("failed to store %s prices: %w", mode, err)
	}

	logger.Log("info", "market prices imported", map[string]interface{}{
		"game_mode": string(mode),
		"imported":  len(prices),
		"skipped":   skipped,
	})

	return &ImportMarketPricesResponse{
		GameMode: mode,
		Imported: len(prices),
		Skipped:  skipped,
	}, nil
}
