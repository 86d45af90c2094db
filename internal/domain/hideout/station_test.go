package hideout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
)

func TestCatalog_MergesSparseEntries(t *testing.T) {
	sparse := hideout.Item{ID: "bolts-id", Name: "Bolts", NormalizedName: "bolts"}
	full := hideout.Item{
		ID:             "bolts-id",
		Name:           "Bolts",
		ShortName:      "Bolts",
		NormalizedName: "bolts",
		IconLink:       "https://example.com/bolts.png",
		Category:       "Building material",
	}
	stations := []hideout.Station{
		{ID: "s1", Name: "Generator", NormalizedName: "generator", Levels: []hideout.StationLevel{
			{Level: 1, ItemRequirements: []hideout.ItemRequirement{{ID: "r1", Item: sparse, Count: 1}}},
			{Level: 2, ItemRequirements: []hideout.ItemRequirement{{ID: "r2", Item: full, Count: 2}}},
		}},
	}

	items := hideout.Catalog(stations)

	require.Len(t, items, 1)
	assert.Equal(t, full, items["bolts-id"])
}

func TestCatalog_FirstNonEmptyFieldWins(t *testing.T) {
	stations := []hideout.Station{
		{ID: "s1", Levels: []hideout.StationLevel{
			{Level: 1, ItemRequirements: []hideout.ItemRequirement{
				{ID: "r1", Item: hideout.Item{ID: "wires-id", Name: "Wires", Category: "Electronics"}},
				{ID: "r2", Item: hideout.Item{ID: "wires-id", Name: "Bundle of wires", ShortName: "Wires"}},
			}},
		}},
	}

	item := hideout.Catalog(stations)["wires-id"]

	assert.Equal(t, "Wires", item.Name)
	assert.Equal(t, "Wires", item.ShortName)
	assert.Equal(t, "Electronics", item.Category)
}
