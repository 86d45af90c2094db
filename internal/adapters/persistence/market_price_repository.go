package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/hideout-go/internal/domain/market"
)

// GormMarketPriceRepository implements PriceRepository using GORM
type GormMarketPriceRepository struct {
	db *gorm.DB
}

// NewGormMarketPriceRepository creates a new GORM market price repository
func NewGormMarketPriceRepository(db *gorm.DB) *GormMarketPriceRepository {
	return &GormMarketPriceRepository{db: db}
}

// FindByMode returns every price of a game mode keyed by normalized name
func (r *GormMarketPriceRepository) FindByMode(ctx context.Context, mode market.GameMode) (map[string]market.Price, error) {
	var models []MarketPriceModel
	result := r.db.WithContext(ctx).Where("game_mode = ?", string(mode)).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load %s prices: %w", mode, result.Error)
	}

	prices := make(map[string]market.Price, len(models))
	for _, m := range models {
		prices[m.NormalizedName] = market.Price{
			NormalizedName: m.NormalizedName,
			GameMode:       market.GameMode(m.GameMode),
			Avg24hPrice:    m.Avg24hPrice,
			Low24hPrice:    m.Low24hPrice,
			TraderName:     m.TraderName,
			TraderPrice:    m.TraderPrice,
			UpdatedAt:      m.UpdatedAt,
		}
	}
	return prices, nil
}

// ReplaceMode atomically replaces the whole partition for mode
func (r *GormMarketPriceRepository) ReplaceMode(ctx context.Context, mode market.GameMode, prices []market.Price) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_mode = ?", string(mode)).Delete(&MarketPriceModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear %s prices: %w", mode, err)
		}
		if len(prices) == 0 {
			return nil
		}

		models := make([]MarketPriceModel, 0, len(prices))
		for _, p := range prices {
			models = append(models, MarketPriceModel{
				GameMode:       string(mode),
				NormalizedName: p.NormalizedName,
				Avg24hPrice:    p.Avg24hPrice,
				Low24hPrice:    p.Low24hPrice,
				TraderName:     p.TraderName,
				TraderPrice:    p.TraderPrice,
				UpdatedAt:      p.UpdatedAt,
			})
		}
		if err := tx.CreateInBatches(models, 200).Error; err != nil {
			return fmt.Errorf("failed to store %s prices: %w", mode, err)
		}
		return nil
	})
}
