package domain

// EnsureRequest identifies the speaker slot to create or fetch
type EnsureRequest struct {
	MeetingID     string `json:"meeting_id" validate:"required,uuid4"`
	SpeakerNumber int    `json:"speaker_number" validate:"gte=0,lte=999" example:"0"`
}

// GetRequest fetches one speaker
type GetRequest struct {
	SpeakerID string `json:"speaker_id" validate:"required,uuid4"`
}

// ListRequest fetches all speakers of a meeting
type ListRequest struct {
	MeetingID string `json:"meeting_id" validate:"required,uuid4"`
}

// RenameRequest sets the speaker's name parts
type RenameRequest struct {
	SpeakerID string `json:"speaker_id" validate:"required,uuid4"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100" example:"Alice"`
	LastName  string `json:"last_name" validate:"omitempty,max=100" example:"Liddell"`
}

// AcceptNameRequest promotes one predicted candidate
type AcceptNameRequest struct {
	SpeakerID string `json:"speaker_id" validate:"required,uuid4"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
}

// PredictedNameDTO is the wire shape of one identity candidate
type PredictedNameDTO struct {
	Name         string  `json:"name"`
	Score        float64 `json:"score"`
	SpeakerID    string  `json:"speaker_id,omitempty"`
	EmbeddingID  string  `json:"embedding_id,omitempty"`
	UserSelected bool    `json:"user_selected,omitempty"`
}

// SpeakerDTO is the wire shape of one registry row. DisplayName is
// derived from the name parts and never stored
type SpeakerDTO struct {
	ID             string             `json:"id"`
	MeetingID      string             `json:"meeting_id"`
	SpeakerNumber  int                `json:"speaker_number"`
	FirstName      string             `json:"first_name"`
	LastName       string             `json:"last_name"`
	DisplayName    string             `json:"display_name"`
	VoiceStatus    string             `json:"voice_status"`
	PredictedNames []PredictedNameDTO `json:"predicted_names"`
}

// ToDTO converts a Speaker to its wire shape
func ToDTO(sp Speaker) SpeakerDTO {
	preds := make([]PredictedNameDTO, 0, len(sp.PredictedNames))
	for _, p := range sp.PredictedNames {
		preds = append(preds, PredictedNameDTO{
			Name:         p.Name,
			Score:        p.Score,
			SpeakerID:    p.SpeakerID,
			EmbeddingID:  p.EmbeddingID,
			UserSelected: p.UserSelected,
		})
	}
	return SpeakerDTO{
		ID:             sp.ID,
		MeetingID:      sp.MeetingID,
		SpeakerNumber:  sp.SpeakerNumber,
		FirstName:      sp.FirstName,
		LastName:       sp.LastName,
		DisplayName:    sp.DisplayName(),
		VoiceStatus:    string(sp.VoiceStatus),
		PredictedNames: preds,
	}
}
