package core

import (
	"encoding/hex"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// Column names added to every record by enrichment.
const (
	ColumnProfileSummary = "profile_summary"
	ColumnLearningPath   = "learning_path"
)

// RunStatus is the outcome of a pipeline run.
type RunStatus int

const (
	// RunStatusSucceeded marks a run that wrote the users file.
	RunStatusSucceeded RunStatus = iota + 1
	// RunStatusFailed marks a run aborted by a stage error.
	RunStatusFailed
)

func (s RunStatus) String() string {
	switch s {
	case RunStatusSucceeded:
		return "succeeded"
	case RunStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Run is a ledger entry describing one pipeline invocation.
type Run struct {
	ID         string
	Status     RunStatus
	StartedAt  time.Time
	FinishedAt time.Time
	SourceURL  string
	Model      string
	Rows       int
	OutputPath string
	Checksum   string // BLAKE2b-256 of the written file, hex encoded
	Error      string
}

// Duration returns how long the run took.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Checksum returns the hex encoded BLAKE2b-256 digest of data.
func Checksum(data []byte) string {
	h, _ := blake2b.New(32, nil) // only fails for invalid sizes or keys
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
