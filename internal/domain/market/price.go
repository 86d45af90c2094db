package market

import (
	"context"
	"fmt"
	"time"
)

// GameMode partitions market prices; the two modes have independent economies.
type GameMode string

const (
	GameModeRegular GameMode = "regular"
	GameModePVE     GameMode = "pve"
)

// ParseGameMode converts user input to a GameMode.
func ParseGameMode(s string) (GameMode, error) {
	switch GameMode(s) {
	case GameModeRegular, GameModePVE:
		return GameMode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidGameMode, s)
	}
}

// Price is a market price snapshot for one item in one game mode.
type Price struct {
	NormalizedName string    `json:"normalizedName"`
	GameMode       GameMode  `json:"gameMode"`
	Avg24hPrice    int       `json:"avg24hPrice"`
	Low24hPrice    int       `json:"low24hPrice"`
	TraderName     string    `json:"traderName"`
	TraderPrice    int       `json:"traderPrice"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewPrice validates and builds a price.
func NewPrice(normalizedName string, mode GameMode, avg24h, low24h int, traderName string, traderPrice int, updatedAt time.Time) (*Price, error) {
	if normalizedName == "" {
		return nil, ErrInvalidItemName
	}
	if _, err := ParseGameMode(string(mode)); err != nil {
		return nil, err
	}
	if avg24h < 0 || low24h < 0 || traderPrice < 0 {
		return nil, ErrInvalidPrice
	}

	return &Price{
		NormalizedName: normalizedName,
		GameMode:       mode,
		Avg24hPrice:    avg24h,
		Low24hPrice:    low24h,
		TraderName:     traderName,
		TraderPrice:    traderPrice,
		UpdatedAt:      updatedAt,
	}, nil
}

// BuyPrice is the price used to cost items still to be acquired.
// Falls back to the 24h low when no average is known.
func (p Price) BuyPrice() int {
	if p.Avg24hPrice > 0 {
		return p.Avg24hPrice
	}
	return p.Low24hPrice
}

// PriceRepository stores price snapshots partitioned by game mode.
type PriceRepository interface {
	// FindByMode returns every price of a game mode keyed by normalized name.
	FindByMode(ctx context.Context, mode GameMode) (map[string]Price, error)
	// ReplaceMode atomically replaces the whole partition for mode.
	ReplaceMode(ctx context.Context, mode GameMode, prices []Price) error
}
