package snapshot_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hideout-go/internal/adapters/snapshot"
	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
)

func TestFileStationProvider_LoadsAndNormalizes(t *testing.T) {
	provider := snapshot.NewFileStationProvider(filepath.Join("testdata", "stations.json"))

	stations, err := provider.Stations(context.Background())
	require.NoError(t, err)
	require.Len(t, stations, 2)

	// sorted by name
	assert.Equal(t, "Generator", stations[0].Name)
	assert.Equal(t, "Vents", stations[1].Name)

	vents := stations[1]
	require.Len(t, vents.Levels, 2)
	assert.Equal(t, 1, vents.Levels[0].Level, "levels sorted ascending")
	assert.Equal(t, 2, vents.Levels[1].Level)

	assert.Equal(t, 2, vents.Levels[0].ItemRequirements[0].Count, "count wins over quantity")
	assert.False(t, vents.Levels[0].ItemRequirements[0].FoundInRaid)
	assert.Equal(t, 4, vents.Levels[1].ItemRequirements[0].Count, "quantity is the fallback")
	assert.Equal(t, []hideout.StationLevelRequirement{{StationNormalizedName: "generator", Level: 1}},
		vents.Levels[1].StationLevelRequirements)
	assert.Equal(t, 2, vents.Levels[1].TraderRequirements[0].Level)
	assert.Equal(t, "mechanic", vents.Levels[1].TraderRequirements[0].TraderNormalizedName)

	generator := stations[0]
	wires := generator.Levels[0].ItemRequirements[0]
	assert.True(t, wires.FoundInRaid)
	assert.Equal(t, 3, wires.Count)
	assert.Equal(t, 0, generator.Levels[0].ItemRequirements[1].Count, "missing count and quantity read as 0")
	assert.Equal(t, []hideout.SkillRequirement{{Name: "Endurance", Level: 2}}, generator.Levels[0].SkillRequirements)
}

func TestFileStationProvider_ServesCatalog(t *testing.T) {
	provider := snapshot.NewFileStationProvider(filepath.Join("testdata", "stations.json"))

	item, found, err := provider.Item(context.Background(), "57347c5b245977448d35f6e1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "bolts", item.NormalizedName)
	assert.Equal(t, "Building material", item.Category)

	_, found, err = provider.Item(context.Background(), "unknown")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStationProvider_MissingFile(t *testing.T) {
	provider := snapshot.NewFileStationProvider(filepath.Join(t.TempDir(), "absent.json"))

	_, err := provider.Stations(context.Background())
	assert.Error(t, err)
}

func TestFileStationProvider_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.json")
	write := func(levels string) {
		body := `[{"id": "s1", "name": "Stash", "normalizedName": "stash", "levels": [` + levels + `]}]`
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}

	write(`{"id": "l1", "level": 1}`)
	provider := snapshot.NewFileStationProvider(path)
	stations, err := provider.Stations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stations[0].MaxLevel())

	write(`{"id": "l1", "level": 1}, {"id": "l2", "level": 2}`)
	stations, err = provider.Stations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stations[0].MaxLevel(), "snapshot is cached until reloaded")

	require.NoError(t, provider.Reload())
	stations, err = provider.Stations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stations[0].MaxLevel())
}

func TestDecodeStations_BareArray(t *testing.T) {
	stations, err := snapshot.DecodeStations(strings.NewReader(`[
		{"id": "s1", "name": "Stash", "normalizedName": "stash", "levels": [{"id": "l1", "level": 1}]}
	]`))
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, 1, stations[0].MaxLevel())
}

func TestDecodeStations_RejectsStationWithoutID(t *testing.T) {
	_, err := snapshot.DecodeStations(strings.NewReader(`[{"name": "Nameless"}]`))
	assert.Error(t, err)
}

func TestDecodePrices(t *testing.T) {
	prices, err := snapshot.DecodePrices(mustOpen(t, filepath.Join("testdata", "prices.json")))
	require.NoError(t, err)
	require.Len(t, prices, 2)

	bolts := prices[0]
	assert.Equal(t, "bolts", bolts.NormalizedName)
	assert.Equal(t, 15000, bolts.Avg24hPrice)
	assert.Equal(t, "Therapist", bolts.TraderName, "flea market is not a trader")
	assert.Equal(t, 7000, bolts.TraderPrice)

	wires := prices[1]
	assert.Equal(t, 0, wires.Avg24hPrice)
	assert.Equal(t, 9000, wires.BuyPrice())
	assert.Empty(t, wires.TraderName)
}

func TestDecodePrices_FlatArray(t *testing.T) {
	prices, err := snapshot.DecodePrices(strings.NewReader(
		`[{"normalizedName": "bolts", "avg24hPrice": 100, "traderName": "Jaeger", "traderPrice": 40}]`))
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, "Jaeger", prices[0].TraderName)
	assert.Equal(t, 40, prices[0].TraderPrice)
}
