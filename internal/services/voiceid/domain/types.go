// Package domain defines core types and interfaces for voice identity resolution
package domain

// Sample is one audio clip slated for fingerprinting
type Sample struct {
	MeetingID string
	SpeakerID string
	UserID    string
	AudioURL  string
	Start     float64
	End       float64
}

// Candidate is one ranked match out of the similarity index
type Candidate struct {
	SpeakerID   string
	Name        string
	EmbeddingID string
	Score       float64
}

// VoiceprintWrite ties a fingerprint to the speaker it was sampled from
type VoiceprintWrite struct {
	MeetingID string
	SpeakerID string
	UserID    string
	Embedding []float64
}

// ResolveInput describes one speaker's longest segment at resolution time
type ResolveInput struct {
	MeetingID     string
	UserID        string
	SpeakerID     string
	SpeakerNumber int
	Start         float64
	End           float64
}

// Duration returns the segment length in seconds
func (in ResolveInput) Duration() float64 { return in.End - in.Start }
