package progress

import (
	"fmt"

	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/internal/domain/market"
)

// ItemSize is the display density of item cards.
type ItemSize string

const (
	ItemSizeSmall  ItemSize = "small"
	ItemSizeMedium ItemSize = "medium"
	ItemSizeLarge  ItemSize = "large"
)

// ParseItemSize converts user input to an ItemSize.
func ParseItemSize(s string) (ItemSize, error) {
	switch ItemSize(s) {
	case ItemSizeSmall, ItemSizeMedium, ItemSizeLarge:
		return ItemSize(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidItemSize, s)
	}
}

// Preferences are per-profile view settings.
type Preferences struct {
	Edition    hideout.Edition  `json:"edition"`
	ViewMode   hideout.ViewMode `json:"viewMode"`
	ShowHidden bool             `json:"showHidden"`
	ItemSize   ItemSize         `json:"itemSize"`
	GameMode   market.GameMode  `json:"gameMode"`
}

// DefaultPreferences returns the preferences of a fresh profile.
func DefaultPreferences() Preferences {
	return Preferences{
		Edition:  hideout.EditionStandard,
		ViewMode: hideout.ViewModeNextLevel,
		ItemSize: ItemSizeMedium,
		GameMode: market.GameModeRegular,
	}
}

// withDefaults fills zero-valued fields from DefaultPreferences.
func (p Preferences) withDefaults() Preferences {
	d := DefaultPreferences()
	if p.Edition == "" {
		p.Edition = d.Edition
	}
	if p.ViewMode == "" {
		p.ViewMode = d.ViewMode
	}
	if p.ItemSize == "" {
		p.ItemSize = d.ItemSize
	}
	if p.GameMode == "" {
		p.GameMode = d.GameMode
	}
	return p
}
