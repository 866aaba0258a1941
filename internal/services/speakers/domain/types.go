// Package domain defines core types and interfaces for speakers
package domain

import (
	"fmt"
	"strings"
	"time"
)

// VoiceStatus tracks where a speaker sits in the voice analysis lifecycle
type VoiceStatus string

// Voice analysis states
const (
	VoiceStatusPending   VoiceStatus = "pending"
	VoiceStatusAnalyzing VoiceStatus = "analyzing"
	VoiceStatusCompleted VoiceStatus = "completed"
	VoiceStatusFailed    VoiceStatus = "failed"
)

// Valid reports whether s is one of the known states
func (s VoiceStatus) Valid() bool {
	switch s {
	case VoiceStatusPending, VoiceStatusAnalyzing, VoiceStatusCompleted, VoiceStatusFailed:
		return true
	}
	return false
}

// Terminal reports whether s is an end state for one analysis round
func (s VoiceStatus) Terminal() bool {
	return s == VoiceStatusCompleted || s == VoiceStatusFailed
}

// PredictedName is one identity candidate produced by voice resolution
type PredictedName struct {
	Name         string  `json:"name"`
	Score        float64 `json:"score"`
	SpeakerID    string  `json:"speaker_id,omitempty"`
	EmbeddingID  string  `json:"embedding_id,omitempty"`
	UserSelected bool    `json:"user_selected,omitempty"`
}

// Speaker is one registry row keyed by (meeting, speaker number).
// Name parts start empty; the numbered label is a render-time fallback,
// never stored
type Speaker struct {
	ID             string // uuid
	MeetingID      string // uuid
	UserID         string
	SpeakerNumber  int
	FirstName      string
	LastName       string
	VoiceStatus    VoiceStatus
	PredictedNames []PredictedName
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DisplayName joins the stored name parts, falling back to the numbered
// label for speakers nobody has named yet
func (sp Speaker) DisplayName() string {
	if name := strings.TrimSpace(sp.FirstName + " " + sp.LastName); name != "" {
		return name
	}
	return fmt.Sprintf("Speaker %d", sp.SpeakerNumber)
}

// EnsureInput identifies the speaker slot to create or fetch
type EnsureInput struct {
	MeetingID     string
	UserID        string
	SpeakerNumber int
}

// CompleteInput carries one finished analysis round
type CompleteInput struct {
	SpeakerID   string
	Status      VoiceStatus // completed or failed
	Predictions []PredictedName
}
