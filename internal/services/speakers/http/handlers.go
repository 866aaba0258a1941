// Package http provides http transport for speakers
package http

import (
	stdhttp "net/http"

	"minutes/internal/modkit/httpkit"
	"minutes/internal/services/speakers/domain"
	svc "minutes/internal/services/speakers/service"
)

// Register mounts speaker endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.EnsureRequest](r, "/ensure", h.ensure)
	httpkit.PostJSON[domain.GetRequest](r, "/get", h.get)
	httpkit.PostJSON[domain.ListRequest](r, "/list", h.list)
	httpkit.PostJSON[domain.RenameRequest](r, "/rename", h.rename)
	httpkit.PostJSON[domain.AcceptNameRequest](r, "/accept-name", h.acceptName)
}

type handlers struct{ svc *svc.Service }

// swagger:route POST /speakers/ensure Speakers speakersEnsure
// @Summary Create or fetch the speaker for a meeting slot
// @Tags Speakers
// @Accept json
// @Produce json
// @Param payload body domain.EnsureRequest true "Slot"
// @Success 200 {object} domain.SpeakerDTO "ok"
// @Router /speakers/ensure [post]
func (h *handlers) ensure(r *stdhttp.Request, in domain.EnsureRequest) (any, error) {
	uid := httpkit.MustUser(r)

	sp, err := h.svc.Ensure(r.Context(), domain.EnsureInput{
		MeetingID:     in.MeetingID,
		UserID:        uid,
		SpeakerNumber: in.SpeakerNumber,
	})
	if err != nil {
		return nil, err
	}
	return domain.ToDTO(sp), nil
}

// swagger:route POST /speakers/get Speakers speakersGet
// @Summary Fetch one speaker
// @Tags Speakers
// @Accept json
// @Produce json
// @Param payload body domain.GetRequest true "Target"
// @Success 200 {object} domain.SpeakerDTO "ok"
// @Router /speakers/get [post]
func (h *handlers) get(r *stdhttp.Request, in domain.GetRequest) (any, error) {
	httpkit.MustUser(r)

	sp, err := h.svc.Get(r.Context(), in.SpeakerID)
	if err != nil {
		return nil, err
	}
	return domain.ToDTO(sp), nil
}

// swagger:route POST /speakers/list Speakers speakersList
// @Summary List all speakers of a meeting
// @Tags Speakers
// @Accept json
// @Produce json
// @Param payload body domain.ListRequest true "Query"
// @Success 200 {array} domain.SpeakerDTO "ok"
// @Router /speakers/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListRequest) (any, error) {
	httpkit.MustUser(r)

	sps, err := h.svc.List(r.Context(), in.MeetingID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SpeakerDTO, 0, len(sps))
	for _, sp := range sps {
		out = append(out, domain.ToDTO(sp))
	}
	return out, nil
}

// swagger:route POST /speakers/rename Speakers speakersRename
// @Summary Set a speaker's name parts
// @Tags Speakers
// @Accept json
// @Produce json
// @Param payload body domain.RenameRequest true "New name"
// @Success 200 {object} domain.SpeakerDTO "ok"
// @Router /speakers/rename [post]
func (h *handlers) rename(r *stdhttp.Request, in domain.RenameRequest) (any, error) {
	httpkit.MustUser(r)

	sp, err := h.svc.Rename(r.Context(), in.SpeakerID, in.FirstName, in.LastName)
	if err != nil {
		return nil, err
	}
	return domain.ToDTO(sp), nil
}

// swagger:route POST /speakers/accept-name Speakers speakersAcceptName
// @Summary Promote a predicted name into the first name
// @Tags Speakers
// @Accept json
// @Produce json
// @Param payload body domain.AcceptNameRequest true "Candidate"
// @Success 200 {object} domain.SpeakerDTO "ok"
// @Router /speakers/accept-name [post]
func (h *handlers) acceptName(r *stdhttp.Request, in domain.AcceptNameRequest) (any, error) {
	httpkit.MustUser(r)

	sp, err := h.svc.AcceptPredictedName(r.Context(), in.SpeakerID, in.Name)
	if err != nil {
		return nil, err
	}
	return domain.ToDTO(sp), nil
}
