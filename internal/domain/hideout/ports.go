package hideout

import "context"

// StationProvider yields the read-only station snapshot.
type StationProvider interface {
	Stations(ctx context.Context) ([]Station, error)
}

// ItemCatalog resolves display data for items referenced by requirements.
type ItemCatalog interface {
	Item(ctx context.Context, itemID string) (Item, bool, error)
}
