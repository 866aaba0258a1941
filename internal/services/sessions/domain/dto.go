package domain

import "minutes/internal/core/segment"

// TokenDTO is one word-level recognition token on the wire
type TokenDTO struct {
	Word       string  `json:"word"`
	Normalized string  `json:"normalized,omitempty"`
	Start      float64 `json:"start" validate:"gte=0"`
	End        float64 `json:"end" validate:"gte=0"`
	Confidence float64 `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
	Speaker    int     `json:"speaker" validate:"gte=0,lte=999"`
}

// Token converts the wire shape to the segmenter's token
func (t TokenDTO) Token() segment.Token {
	return segment.Token{
		Word:       t.Word,
		Normalized: t.Normalized,
		Start:      t.Start,
		End:        t.End,
		Confidence: t.Confidence,
		Speaker:    t.Speaker,
	}
}

// Tokens converts a batch of wire tokens
func Tokens(xs []TokenDTO) []segment.Token {
	out := make([]segment.Token, 0, len(xs))
	for _, t := range xs {
		out = append(out, t.Token())
	}
	return out
}

// StartRequest opens a session
type StartRequest struct {
	MeetingID string `json:"meeting_id" validate:"required,uuid4"`
}

// PushRequest feeds tokens into an open session
type PushRequest struct {
	SessionID string     `json:"session_id" validate:"required,uuid4"`
	Tokens    []TokenDTO `json:"tokens" validate:"required,min=1,max=10000,dive"`
}

// FinalizeRequest closes a session
type FinalizeRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid4"`
}

// BatchRequest processes a whole transcript in one shot
type BatchRequest struct {
	MeetingID string     `json:"meeting_id" validate:"required,uuid4"`
	Tokens    []TokenDTO `json:"tokens" validate:"required,min=1,max=100000,dive"`
}

// EventsRequest polls session events after a sequence number
type EventsRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid4"`
	Since     int64  `json:"since,omitempty" validate:"omitempty,gte=0"`
}

// SessionDTO is the wire shape of a started session
type SessionDTO struct {
	ID        string `json:"id"`
	MeetingID string `json:"meeting_id"`
	StartedAt string `json:"started_at"`
}

// SummaryDTO is the wire shape of a finalized session
type SummaryDTO struct {
	SessionID          string `json:"session_id"`
	MeetingID          string `json:"meeting_id"`
	Utterances         int    `json:"utterances"`
	Questions          int    `json:"questions"`
	Speakers           int    `json:"speakers"`
	ResolutionsStarted int    `json:"resolutions_started"`
}

// ToSummaryDTO converts a Summary to its wire shape
func ToSummaryDTO(s Summary) SummaryDTO {
	return SummaryDTO{
		SessionID:          s.SessionID,
		MeetingID:          s.MeetingID,
		Utterances:         s.Utterances,
		Questions:          s.Questions,
		Speakers:           s.Speakers,
		ResolutionsStarted: s.ResolutionsStarted,
	}
}
