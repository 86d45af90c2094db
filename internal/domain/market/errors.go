package market

import "errors"

var (
	// ErrInvalidGameMode is returned when a game mode is not regular or pve
	ErrInvalidGameMode = errors.New("invalid game mode")

	// ErrInvalidItemName is returned when a price has no normalized item name
	ErrInvalidItemName = errors.New("invalid item name")

	// ErrInvalidPrice is returned when a price is negative
	ErrInvalidPrice = errors.New("invalid price")
)
