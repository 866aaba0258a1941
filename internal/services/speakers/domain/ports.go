package domain

import "context"

// RegistryPort manages speaker rows keyed by (meeting, speaker number)
type RegistryPort interface {
	// Ensure returns the speaker for the slot, creating it on first sight.
	// Concurrent callers for the same slot all get the same row
	Ensure(ctx context.Context, in EnsureInput) (Speaker, error)

	// Get returns one speaker by id
	Get(ctx context.Context, speakerID string) (Speaker, error)

	// List returns all speakers of a meeting ordered by speaker number
	List(ctx context.Context, meetingID string) ([]Speaker, error)

	// Rename sets the name parts directly; the first name must not be blank
	Rename(ctx context.Context, speakerID, firstName, lastName string) (Speaker, error)
}

// AnalysisPort guards the voice analysis lifecycle
type AnalysisPort interface {
	// BeginAnalysis flips the speaker to analyzing. Returns false without
	// error when an analysis is already in flight for this speaker
	BeginAnalysis(ctx context.Context, speakerID string) (bool, error)

	// CompleteAnalysis lands one round's result. Returns false when the
	// speaker no longer exists; the result is dropped in that case
	CompleteAnalysis(ctx context.Context, in CompleteInput) (bool, error)

	// AcceptPredictedName promotes one candidate into the first name and
	// marks it user selected
	AcceptPredictedName(ctx context.Context, speakerID, name string) (Speaker, error)
}
