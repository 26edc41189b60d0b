package core

import (
	"fmt"
)

// ValidateRun validates a Run before it is written to the ledger.
//
// Validation rules:
//   - ID must not be empty
//   - Status must be Succeeded or Failed
//   - StartedAt must be set
func ValidateRun(run *Run) error {
	if run == nil {
		return fmt.Errorf("%w: run is nil", ErrInvalidRun)
	}

	if run.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRun, ErrEmptyRunID)
	}

	if err := ValidateRunStatus(run.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRun, err)
	}

	if run.StartedAt.IsZero() {
		return fmt.Errorf("%w: start time is zero", ErrInvalidRun)
	}

	return nil
}

// ValidateRunStatus validates that a RunStatus has a valid value.
func ValidateRunStatus(status RunStatus) error {
	if status != RunStatusSucceeded && status != RunStatusFailed {
		return fmt.Errorf("%w: value %d", ErrInvalidRunStatus, status)
	}
	return nil
}
