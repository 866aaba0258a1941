package domain

import "context"

// SampleProvider turns a meeting time range into a fetchable audio clip
type SampleProvider interface {
	Sample(ctx context.Context, in ResolveInput) (Sample, error)
}

// Fingerprinter maps an audio sample to a fixed-size voice vector
type Fingerprinter interface {
	Fingerprint(ctx context.Context, s Sample) ([]float64, error)
}

// SimilarityIndex ranks historical voiceprints against a query vector,
// scoped to one user's speakers
type SimilarityIndex interface {
	Nearest(ctx context.Context, vec []float64, userID string, limit int) ([]Candidate, error)
}

// VoiceprintSink persists fingerprints for future meetings to match against
type VoiceprintSink interface {
	StoreVoiceprint(ctx context.Context, in VoiceprintWrite) (string, error)
}

// ResolverPort triggers identity resolution for one speaker
type ResolverPort interface {
	// MaybeResolve starts an async resolution round when the segment is long
	// enough and no round is in flight. Reports whether a round started
	MaybeResolve(ctx context.Context, in ResolveInput) (bool, error)
}
