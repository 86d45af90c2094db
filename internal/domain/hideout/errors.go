package hideout

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidViewMode is returned when a view mode is not recognised
	ErrInvalidViewMode = errors.New("invalid view mode")

	// ErrInvalidEdition is returned when a game edition is not recognised
	ErrInvalidEdition = errors.New("invalid edition")

	// ErrStationNotFound is returned when a station id cannot be resolved
	ErrStationNotFound = errors.New("station not found")

	// ErrRequirementNotFound is returned when a requirement id is not in the snapshot
	ErrRequirementNotFound = errors.New("requirement not found")
)

// ContractViolationError signals that a caller broke a documented
// precondition. It is a programmer error, not a data anomaly.
type ContractViolationError struct {
	Argument string
	Value    int
	Rule     string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("contract violation: %s=%d %s", e.Argument, e.Value, e.Rule)
}

// NewContractViolationError reports argument=value breaking rule
func NewContractViolationError(argument string, value int, rule string) *ContractViolationError {
	return &ContractViolationError{Argument: argument, Value: value, Rule: rule}
}
