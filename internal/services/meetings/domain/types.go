// Package domain defines core types and interfaces for meetings
package domain

import (
	"context"
	"time"
)

// Meeting is one recorded conversation owned by a user
type Meeting struct {
	ID        string // uuid
	UserID    string
	Title     string
	Favorite  bool
	Deleted   bool // soft-delete flag; hidden from lists
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateInput opens a new meeting
type CreateInput struct {
	UserID string
	Title  string
}

// PurgeResult reports what a hard delete removed alongside the meeting
type PurgeResult struct {
	MeetingID   string
	Utterances  int64
	Speakers    int64
	Questions   int64
	Voiceprints int64
}

// MeetingPort manages the meeting lifecycle
type MeetingPort interface {
	Create(ctx context.Context, in CreateInput) (Meeting, error)
	Get(ctx context.Context, userID, meetingID string) (Meeting, error)
	List(ctx context.Context, userID string) ([]Meeting, error)
	Rename(ctx context.Context, userID, meetingID, title string) (Meeting, error)
	SetFavorite(ctx context.Context, userID, meetingID string, favorite bool) (Meeting, error)
	SoftDelete(ctx context.Context, userID, meetingID string) (Meeting, error)

	// Purge hard-deletes the meeting and everything hanging off it
	Purge(ctx context.Context, userID, meetingID string) (PurgeResult, error)
}
