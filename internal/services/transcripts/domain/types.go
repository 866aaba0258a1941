// Package domain defines core types and interfaces for transcripts
package domain

import "time"

// Utterance is one finalized per-speaker run of a meeting transcript
type Utterance struct {
	ID            string // uuid
	MeetingID     string // uuid
	UserID        string
	SpeakerNumber int
	SpeakerID     string // uuid of the owning speaker row
	Text          string
	Start         float64 // seconds from meeting start
	End           float64
	WordCount     int
	CreatedAt     time.Time
}

// UtteranceWrite is the insert payload; the service computes the word count
type UtteranceWrite struct {
	MeetingID     string
	UserID        string
	SpeakerNumber int
	SpeakerID     string
	Text          string
	Start         float64
	End           float64
}

// Question is a detected question sentence, independent of utterance bounds
type Question struct {
	ID            string
	MeetingID     string
	SpeakerNumber int
	Text          string
	Timestamp     float64
	CreatedAt     time.Time
}

// QuestionWrite is the insert payload for one question
type QuestionWrite struct {
	MeetingID     string
	SpeakerNumber int
	Text          string
	Timestamp     float64
}

// AfterKey supports stable keyset pagination over (start_s, id)
type AfterKey struct {
	Start float64
	ID    string // uuid
}

// ListInput selects a page of utterances for one meeting
type ListInput struct {
	MeetingID string
	After     AfterKey // zero value = from start
	Limit     int      // hard-capped in service
}

// DeleteResult reports what a cascade delete removed
type DeleteResult struct {
	UtteranceID    string
	SpeakerID      string
	SpeakerDeleted bool
}

// TokenRow is one archived word-level token (analytics only)
type TokenRow struct {
	MeetingID     string
	Word          string
	Normalized    string
	Start         float64
	End           float64
	Confidence    float64
	SpeakerNumber int
}
