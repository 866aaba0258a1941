package domain

import (
	"context"

	"minutes/internal/core/segment"
)

// SessionPort drives live and batch transcript ingestion
type SessionPort interface {
	// Start opens a session for a meeting
	Start(ctx context.Context, in StartInput) (SessionInfo, error)

	// Push feeds streaming tokens into an open session. Utterances that
	// close along the way are persisted and may kick identity resolution
	Push(ctx context.Context, sessionID string, tokens []segment.Token) error

	// Finalize closes the open utterance, persists what remains and sweeps
	// unresolved speakers using each one's longest segment
	Finalize(ctx context.Context, sessionID string) (Summary, error)

	// RunBatch processes a whole transcript in one shot with the same
	// output semantics as Push followed by Finalize
	RunBatch(ctx context.Context, in BatchInput) (Summary, error)

	// Events returns session events with sequence strictly greater than since
	Events(ctx context.Context, sessionID string, since int64) ([]Event, error)
}
