package progress

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExportDocument is the portable form of a profile.
type ExportDocument struct {
	SchemaVersion int       `json:"schemaVersion"`
	ExportID      string    `json:"exportId"`
	ExportedAt    time.Time `json:"exportedAt"`
	Profile       Snapshot  `json:"profile"`
}

// NewExportDocument wraps a profile snapshot at the current schema version.
func NewExportDocument(p *Profile, now time.Time) ExportDocument {
	return ExportDocument{
		SchemaVersion: SchemaVersion,
		ExportID:      uuid.NewString(),
		ExportedAt:    now,
		Profile:       p.Snapshot(),
	}
}

// ParseExportDocument decodes a document of any known schema version and
// migrates it to SchemaVersion. Documents without a version are version 1.
func ParseExportDocument(data []byte) (*ExportDocument, error) {
	var header struct {
		SchemaVersion int `json:"schemaVersion"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("failed to decode export document: %w", err)
	}

	version := header.SchemaVersion
	if version == 0 {
		version = 1
	}
	if version > SchemaVersion {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrUnsupportedSchemaVersion, version, SchemaVersion)
	}

	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode export document: %w", err)
	}

	if version < 2 {
		var legacy struct {
			Profile struct {
				Preferences struct {
					CompactMode *bool `json:"compactMode"`
				} `json:"preferences"`
			} `json:"profile"`
		}
		if err := json.Unmarshal(data, &legacy); err != nil {
			return nil, fmt.Errorf("failed to decode v1 preferences: %w", err)
		}
		doc.Profile.Preferences.ItemSize = MigrateCompactMode(legacy.Profile.Preferences.CompactMode)
	}

	doc.SchemaVersion = SchemaVersion
	return &doc, nil
}

// MigrateCompactMode maps the v1 boolean compact flag onto ItemSize.
func MigrateCompactMode(compact *bool) ItemSize {
	if compact != nil && *compact {
		return ItemSizeSmall
	}
	return ItemSizeMedium
}
