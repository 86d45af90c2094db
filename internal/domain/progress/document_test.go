package progress_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hideout-go/internal/domain/progress"
	"github.com/andrescamacho/hideout-go/test/helpers"
)

func TestParseExportDocument_CurrentVersion(t *testing.T) {
	p, err := progress.NewProfile("main", progress.Preferences{ItemSize: progress.ItemSizeLarge})
	require.NoError(t, err)
	_, _ = p.SetStationLevel(helpers.SampleStation("vents"), 1)

	data, err := json.Marshal(progress.NewExportDocument(p, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))
	require.NoError(t, err)

	doc, err := progress.ParseExportDocument(data)

	require.NoError(t, err)
	assert.Equal(t, progress.SchemaVersion, doc.SchemaVersion)
	assert.Equal(t, progress.ItemSizeLarge, doc.Profile.Preferences.ItemSize)
	assert.Equal(t, 1, doc.Profile.StationLevels[helpers.StationID("vents")])
}

func TestParseExportDocument_MigratesCompactMode(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want progress.ItemSize
	}{
		{
			name: "compact true",
			doc:  `{"schemaVersion":1,"profile":{"id":"a","name":"old","preferences":{"compactMode":true}}}`,
			want: progress.ItemSizeSmall,
		},
		{
			name: "compact false",
			doc:  `{"schemaVersion":1,"profile":{"id":"a","name":"old","preferences":{"compactMode":false}}}`,
			want: progress.ItemSizeMedium,
		},
		{
			name: "unversioned",
			doc:  `{"profile":{"id":"a","name":"old","preferences":{}}}`,
			want: progress.ItemSizeMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := progress.ParseExportDocument([]byte(tt.doc))

			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Profile.Preferences.ItemSize)
			assert.Equal(t, progress.SchemaVersion, doc.SchemaVersion)
		})
	}
}

func TestParseExportDocument_RejectsFutureVersion(t *testing.T) {
	_, err := progress.ParseExportDocument([]byte(`{"schemaVersion":99}`))
	assert.ErrorIs(t, err, progress.ErrUnsupportedSchemaVersion)
}

func TestParseExportDocument_RejectsGarbage(t *testing.T) {
	_, err := progress.ParseExportDocument([]byte(`not json`))
	assert.Error(t, err)
}
