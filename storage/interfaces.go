package storage

import (
	"context"

	"github.com/poiesic/userflow/core"
)

// RunRepository stores the ledger of pipeline runs.
// Implementations must be thread-safe and support concurrent access.
type RunRepository interface {
	// SaveRun validates and stores a run, replacing any run with the same ID.
	SaveRun(ctx context.Context, run *core.Run) error

	// GetRun retrieves a single run by ID.
	// Returns ErrNotFound if the run doesn't exist.
	GetRun(ctx context.Context, id string) (*core.Run, error)

	// RecentRuns retrieves up to limit runs ordered by start time descending.
	// Returns ErrInvalidQuery if limit is not positive.
	RecentRuns(ctx context.Context, limit int) ([]*core.Run, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
