package progress

import "errors"

var (
	// ErrProfileNotFound is returned when no profile matches an id or name
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileExists is returned when a profile name is already taken
	ErrProfileExists = errors.New("profile already exists")

	// ErrInvalidProfileName is returned for blank profile names
	ErrInvalidProfileName = errors.New("invalid profile name")

	// ErrInvalidSnapshot is returned when a snapshot cannot be rehydrated
	ErrInvalidSnapshot = errors.New("invalid profile snapshot")

	ErrInvalidStationID     = errors.New("invalid station id")
	ErrInvalidRequirementID = errors.New("invalid requirement id")
	ErrInvalidItemID        = errors.New("invalid item id")
	ErrInvalidAttributeName = errors.New("invalid trader or skill name")
	ErrInvalidItemSize      = errors.New("invalid item size")

	// ErrUnsupportedSchemaVersion is returned when importing a document newer
	// than this build understands
	ErrUnsupportedSchemaVersion = errors.New("unsupported schema version")
)
