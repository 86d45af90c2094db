package config

// HideoutConfig holds the station snapshot source and per-run defaults
type HideoutConfig struct {
	// JSON station snapshot ({"data":{"hideoutStations":[...]}} or a bare array)
	StationsFile string `mapstructure:"stations_file" validate:"required"`

	// Profile used when a command does not name one
	Profile string `mapstructure:"profile"`

	// Edition given to newly created profiles
	Edition string `mapstructure:"edition"`

	// Game mode given to newly created profiles: regular or pve
	GameMode string `mapstructure:"game_mode" validate:"omitempty,oneof=regular pve"`

	// View mode used when a profile has none: nextLevel or all
	ViewMode string `mapstructure:"view_mode" validate:"omitempty,oneof=nextLevel all"`
}
