// Package domain defines core types and interfaces for live sessions
package domain

import (
	"time"

	"minutes/internal/core/segment"
)

// EventType classifies session events streamed to subscribers
type EventType string

// Session event kinds
const (
	EventTypeStatus    EventType = "status"
	EventTypeUtterance EventType = "utterance"
	EventTypeQuestion  EventType = "question"
	EventTypeResolving EventType = "resolving"
)

// Event is a sequenced payload consumed by polling subscribers
type Event struct {
	Seq           int64     `json:"seq"`
	Timestamp     time.Time `json:"timestamp"`
	SessionID     string    `json:"session_id"`
	Type          EventType `json:"type"`
	Message       string    `json:"message,omitempty"`
	SpeakerNumber int       `json:"speaker_number,omitempty"`
	UtteranceID   string    `json:"utterance_id,omitempty"`
}

// StartInput opens a session for one meeting
type StartInput struct {
	MeetingID string
	UserID    string
}

// BatchInput carries a whole transcript for one-shot processing
type BatchInput struct {
	MeetingID string
	UserID    string
	Tokens    []segment.Token
}

// SessionInfo identifies a running session
type SessionInfo struct {
	ID        string
	MeetingID string
	StartedAt time.Time
}

// Summary reports what a finalized session produced
type Summary struct {
	SessionID          string
	MeetingID          string
	Utterances         int
	Questions          int
	Speakers           int
	ResolutionsStarted int
}
