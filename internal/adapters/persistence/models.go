package persistence

import (
	"time"
)

// ProfileModel represents the profiles table
type ProfileModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	Name          string    `gorm:"column:name;uniqueIndex;not null"`
	SchemaVersion int       `gorm:"column:schema_version;not null;default:2"`
	Edition       string    `gorm:"column:edition;not null"`
	ViewMode      string    `gorm:"column:view_mode;not null"`
	ShowHidden    bool      `gorm:"column:show_hidden;not null;default:false"`
	ItemSize      string    `gorm:"column:item_size;not null"`
	GameMode      string    `gorm:"column:game_mode;not null"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}

// StationProgressModel represents the profile_stations table.
// A row exists when a station is built past level 0 or hidden.
type StationProgressModel struct {
	ProfileID string `gorm:"column:profile_id;primaryKey"`
	StationID string `gorm:"column:station_id;primaryKey"`
	Level     int    `gorm:"column:level;not null;default:0"`
	Hidden    bool   `gorm:"column:hidden;not null;default:false"`
}

func (StationProgressModel) TableName() string {
	return "profile_stations"
}

// CompletedRequirementModel represents the profile_completed_requirements table
type CompletedRequirementModel struct {
	ProfileID     string `gorm:"column:profile_id;primaryKey"`
	RequirementID string `gorm:"column:requirement_id;primaryKey"`
}

func (CompletedRequirementModel) TableName() string {
	return "profile_completed_requirements"
}

// ItemCountModel represents the profile_item_counts table
type ItemCountModel struct {
	ProfileID string `gorm:"column:profile_id;primaryKey"`
	ItemID    string `gorm:"column:item_id;primaryKey"`
	Have      int    `gorm:"column:have;not null;default:0"`
	HaveFir   int    `gorm:"column:have_fir;not null;default:0"`
}

func (ItemCountModel) TableName() string {
	return "profile_item_counts"
}

// Kinds stored in profile_levels
const (
	levelKindTrader = "trader"
	levelKindSkill  = "skill"
)

// ProfileLevelModel represents the profile_levels table (trader loyalty and skill levels)
type ProfileLevelModel struct {
	ProfileID string `gorm:"column:profile_id;primaryKey"`
	Kind      string `gorm:"column:kind;primaryKey"` // trader or skill
	Name      string `gorm:"column:name;primaryKey"`
	Level     int    `gorm:"column:level;not null"`
}

func (ProfileLevelModel) TableName() string {
	return "profile_levels"
}

// MarketPriceModel represents the market_prices table, partitioned by game mode
type MarketPriceModel struct {
	GameMode       string    `gorm:"column:game_mode;primaryKey"`
	NormalizedName string    `gorm:"column:normalized_name;primaryKey"`
	Avg24hPrice    int       `gorm:"column:avg_24h_price;not null;default:0"`
	Low24hPrice    int       `gorm:"column:low_24h_price;not null;default:0"`
	TraderName     string    `gorm:"column:trader_name"`
	TraderPrice    int       `gorm:"column:trader_price;not null;default:0"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (MarketPriceModel) TableName() string {
	return "market_prices"
}

// AllModels lists every model for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&ProfileModel{},
		&StationProgressModel{},
		&CompletedRequirementModel{},
		&ItemCountModel{},
		&ProfileLevelModel{},
		&MarketPriceModel{},
	}
}
