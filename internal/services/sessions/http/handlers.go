// Package http provides http transport for sessions
package http

import (
	stdhttp "net/http"
	"time"

	"minutes/internal/modkit/httpkit"
	"minutes/internal/services/sessions/domain"
	svc "minutes/internal/services/sessions/service"
)

// Register mounts session endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.StartRequest](r, "/start", h.start)
	httpkit.PostJSON[domain.PushRequest](r, "/push", h.push)
	httpkit.PostJSON[domain.FinalizeRequest](r, "/finalize", h.finalize)
	httpkit.PostJSON[domain.BatchRequest](r, "/batch", h.batch)
	httpkit.PostJSON[domain.EventsRequest](r, "/events", h.events)
}

type handlers struct{ svc *svc.Service }

// swagger:route POST /sessions/start Sessions sessionsStart
// @Summary Open a live transcription session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body domain.StartRequest true "Meeting"
// @Success 200 {object} domain.SessionDTO "ok"
// @Router /sessions/start [post]
func (h *handlers) start(r *stdhttp.Request, in domain.StartRequest) (any, error) {
	uid := httpkit.MustUser(r)

	info, err := h.svc.Start(r.Context(), domain.StartInput{MeetingID: in.MeetingID, UserID: uid})
	if err != nil {
		return nil, err
	}
	return domain.SessionDTO{
		ID:        info.ID,
		MeetingID: info.MeetingID,
		StartedAt: info.StartedAt.Format(time.RFC3339),
	}, nil
}

// swagger:route POST /sessions/push Sessions sessionsPush
// @Summary Feed streaming tokens into a session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body domain.PushRequest true "Tokens"
// @Success 200 {object} any "ok"
// @Router /sessions/push [post]
func (h *handlers) push(r *stdhttp.Request, in domain.PushRequest) (any, error) {
	httpkit.MustUser(r)

	if err := h.svc.Push(r.Context(), in.SessionID, domain.Tokens(in.Tokens)); err != nil {
		return nil, err
	}
	return map[string]any{"accepted": len(in.Tokens)}, nil
}

// swagger:route POST /sessions/finalize Sessions sessionsFinalize
// @Summary Close a session and kick identity resolution
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body domain.FinalizeRequest true "Session"
// @Success 200 {object} domain.SummaryDTO "ok"
// @Router /sessions/finalize [post]
func (h *handlers) finalize(r *stdhttp.Request, in domain.FinalizeRequest) (any, error) {
	httpkit.MustUser(r)

	sum, err := h.svc.Finalize(r.Context(), in.SessionID)
	if err != nil {
		return nil, err
	}
	return domain.ToSummaryDTO(sum), nil
}

// swagger:route POST /sessions/batch Sessions sessionsBatch
// @Summary Process a whole transcript in one shot
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body domain.BatchRequest true "Transcript"
// @Success 200 {object} domain.SummaryDTO "ok"
// @Router /sessions/batch [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.BatchRequest) (any, error) {
	uid := httpkit.MustUser(r)

	sum, err := h.svc.RunBatch(r.Context(), domain.BatchInput{
		MeetingID: in.MeetingID,
		UserID:    uid,
		Tokens:    domain.Tokens(in.Tokens),
	})
	if err != nil {
		return nil, err
	}
	return domain.ToSummaryDTO(sum), nil
}

// swagger:route POST /sessions/events Sessions sessionsEvents
// @Summary Poll session events after a sequence number
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body domain.EventsRequest true "Cursor"
// @Success 200 {array} domain.Event "ok"
// @Router /sessions/events [post]
func (h *handlers) events(r *stdhttp.Request, in domain.EventsRequest) (any, error) {
	httpkit.MustUser(r)

	return h.svc.Events(r.Context(), in.SessionID, in.Since)
}
