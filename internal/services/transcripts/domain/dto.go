package domain

// ListRequest is the input for paging a meeting transcript
type ListRequest struct {
	MeetingID  string  `json:"meeting_id" validate:"required,uuid4" example:"6b1e8f7c-9f2a-4e1d-b1a2-3c4d5e6f7a8b"`
	AfterStart float64 `json:"after_start,omitempty" validate:"omitempty,gte=0" example:"12.48"`
	AfterID    string  `json:"after_id,omitempty" validate:"omitempty,uuid4"`
	Limit      int     `json:"limit,omitempty" validate:"omitempty,min=1,max=5000" example:"200"`
}

// QuestionsRequest is the input for listing a meeting's detected questions
type QuestionsRequest struct {
	MeetingID string `json:"meeting_id" validate:"required,uuid4"`
}

// DeleteRequest is the input for removing one finalized utterance
type DeleteRequest struct {
	UtteranceID string `json:"utterance_id" validate:"required,uuid4"`
}

// UtteranceDTO is the wire shape of one transcript row
type UtteranceDTO struct {
	ID            string  `json:"id"`
	MeetingID     string  `json:"meeting_id"`
	SpeakerNumber int     `json:"speaker_number"`
	SpeakerID     string  `json:"speaker_id"`
	Text          string  `json:"text"`
	Start         float64 `json:"start"`
	End           float64 `json:"end"`
	WordCount     int     `json:"word_count"`
	CreatedAt     string  `json:"created_at"`
}

// QuestionDTO is the wire shape of one detected question
type QuestionDTO struct {
	ID            string  `json:"id"`
	MeetingID     string  `json:"meeting_id"`
	SpeakerNumber int     `json:"speaker_number"`
	Text          string  `json:"text"`
	Timestamp     float64 `json:"timestamp"`
}

// ListResponse is a page of transcript rows plus the keyset cursor
type ListResponse struct {
	Rows      []UtteranceDTO `json:"rows"`
	NextStart float64        `json:"next_start,omitempty"`
	NextID    string         `json:"next_id,omitempty"`
}

// DeleteResponse reports what the cascade removed
type DeleteResponse struct {
	UtteranceID    string `json:"utterance_id"`
	SpeakerID      string `json:"speaker_id,omitempty"`
	SpeakerDeleted bool   `json:"speaker_deleted"`
}
