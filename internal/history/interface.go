// Package history keeps an optional local SQLite ledger of pipeline runs:
// one row per run with its counters and report figures, plus a snapshot of
// every user as written to the checkpoint.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/fath2boinc/internal/models"
)

// Run is one recorded pipeline execution.
type Run struct {
	ID          uuid.UUID
	At          time.Time
	Loaded      int
	Merged      int
	Users       int
	Skipped     int
	TotalCredit float64
	TotalRAC    float64
	MeanRAC     float64
	MedianRAC   float64
	MaxRAC      float64
}

type Repository interface {
	// Save stores run and its user snapshot atomically.
	Save(ctx context.Context, run *Run, users models.Users) error
	// Last returns the most recent run, or (nil, nil) if none was recorded.
	Last(ctx context.Context) (*Run, error)
}
