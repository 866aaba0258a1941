// Package http provides http transport for transcripts
package http

import (
	stdhttp "net/http"
	"time"

	"minutes/internal/modkit/httpkit"
	"minutes/internal/services/transcripts/domain"
	svc "minutes/internal/services/transcripts/service"
)

// Register mounts transcript endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ListRequest](r, "/list", h.list)
	httpkit.PostJSON[domain.QuestionsRequest](r, "/questions", h.questions)
	httpkit.PostJSON[domain.DeleteRequest](r, "/delete", h.delete)
}

type handlers struct{ svc *svc.Service }

// swagger:route POST /transcripts/list Transcripts transcriptsList
// @Summary Page finalized utterances for a meeting
// @Tags Transcripts
// @Accept json
// @Produce json
// @Param payload body domain.ListRequest true "Query"
// @Success 200 {object} domain.ListResponse "ok"
// @Router /transcripts/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListRequest) (any, error) {
	httpkit.MustUser(r)

	rows, next, err := h.svc.List(r.Context(), domain.ListInput{
		MeetingID: in.MeetingID,
		After:     domain.AfterKey{Start: in.AfterStart, ID: in.AfterID},
		Limit:     in.Limit,
	})
	if err != nil {
		return nil, err
	}

	out := domain.ListResponse{
		Rows:      make([]domain.UtteranceDTO, 0, len(rows)),
		NextStart: next.Start,
		NextID:    next.ID,
	}
	for _, u := range rows {
		out.Rows = append(out.Rows, domain.UtteranceDTO{
			ID:            u.ID,
			MeetingID:     u.MeetingID,
			SpeakerNumber: u.SpeakerNumber,
			SpeakerID:     u.SpeakerID,
			Text:          u.Text,
			Start:         u.Start,
			End:           u.End,
			WordCount:     u.WordCount,
			CreatedAt:     u.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}

// swagger:route POST /transcripts/questions Transcripts transcriptsQuestions
// @Summary List detected questions for a meeting
// @Tags Transcripts
// @Accept json
// @Produce json
// @Param payload body domain.QuestionsRequest true "Query"
// @Success 200 {array} domain.QuestionDTO "ok"
// @Router /transcripts/questions [post]
func (h *handlers) questions(r *stdhttp.Request, in domain.QuestionsRequest) (any, error) {
	httpkit.MustUser(r)

	qs, err := h.svc.Questions(r.Context(), in.MeetingID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.QuestionDTO, 0, len(qs))
	for _, q := range qs {
		out = append(out, domain.QuestionDTO{
			ID:            q.ID,
			MeetingID:     q.MeetingID,
			SpeakerNumber: q.SpeakerNumber,
			Text:          q.Text,
			Timestamp:     q.Timestamp,
		})
	}
	return out, nil
}

// swagger:route POST /transcripts/delete Transcripts transcriptsDelete
// @Summary Delete one utterance, cascading to its speaker when orphaned
// @Tags Transcripts
// @Accept json
// @Produce json
// @Param payload body domain.DeleteRequest true "Target"
// @Success 200 {object} domain.DeleteResponse "ok"
// @Router /transcripts/delete [post]
func (h *handlers) delete(r *stdhttp.Request, in domain.DeleteRequest) (any, error) {
	httpkit.MustUser(r)

	res, err := h.svc.Delete(r.Context(), in.UtteranceID)
	if err != nil {
		return nil, err
	}
	return domain.DeleteResponse{
		UtteranceID:    res.UtteranceID,
		SpeakerID:      res.SpeakerID,
		SpeakerDeleted: res.SpeakerDeleted,
	}, nil
}
