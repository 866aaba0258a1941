package domain

import "time"

// CreateRequest opens a new meeting
type CreateRequest struct {
	Title string `json:"title,omitempty" validate:"omitempty,max=300" example:"Weekly sync"`
}

// GetRequest fetches one meeting
type GetRequest struct {
	MeetingID string `json:"meeting_id" validate:"required,uuid4"`
}

// RenameRequest sets the title
type RenameRequest struct {
	MeetingID string `json:"meeting_id" validate:"required,uuid4"`
	Title     string `json:"title" validate:"required,min=1,max=300"`
}

// FavoriteRequest flips the favorite flag
type FavoriteRequest struct {
	MeetingID string `json:"meeting_id" validate:"required,uuid4"`
	Favorite  bool   `json:"favorite"`
}

// MeetingDTO is the wire shape of one meeting
type MeetingDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Favorite  bool   `json:"favorite"`
	Deleted   bool   `json:"deleted"`
	CreatedAt string `json:"created_at"`
}

// PurgeDTO reports what a hard delete removed
type PurgeDTO struct {
	MeetingID   string `json:"meeting_id"`
	Utterances  int64  `json:"utterances"`
	Speakers    int64  `json:"speakers"`
	Questions   int64  `json:"questions"`
	Voiceprints int64  `json:"voiceprints"`
}

// ToDTO converts a Meeting to its wire shape
func ToDTO(m Meeting) MeetingDTO {
	return MeetingDTO{
		ID:        m.ID,
		Title:     m.Title,
		Favorite:  m.Favorite,
		Deleted:   m.Deleted,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
	}
}
