// Package http provides http transport for meetings
package http

import (
	stdhttp "net/http"

	"minutes/internal/modkit/httpkit"
	"minutes/internal/services/meetings/domain"
	svc "minutes/internal/services/meetings/service"
)

// Register mounts meeting endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.CreateRequest](r, "/create", h.create)
	httpkit.PostJSON[domain.GetRequest](r, "/get", h.get)
	httpkit.Post(r, "/list", h.list)
	httpkit.PostJSON[domain.RenameRequest](r, "/rename", h.rename)
	httpkit.PostJSON[domain.FavoriteRequest](r, "/favorite", h.favorite)
	httpkit.PostJSON[domain.GetRequest](r, "/delete", h.softDelete)
	httpkit.PostJSON[domain.GetRequest](r, "/purge", h.purge)
}

type handlers struct{ svc *svc.Service }

// swagger:route POST /meetings/create Meetings meetingsCreate
// @Summary Open a new meeting
// @Tags Meetings
// @Accept json
// @Produce json
// @Param payload body domain.CreateRequest true "Meeting"
// @Success 200 {object} domain.MeetingDTO "ok"
// @Router /meetings/create [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateRequest) (any, error) {
	uid := httpkit.MustUser(r)

	m, err := h.svc.Create(r.Context(), domain.CreateInput{UserID: uid, Title: in.Title})
	if err != nil {
		return nil, err
	}
	return domain.ToDTO(m), nil
}

// swagger:route POST /meetings/get Meetings meetingsGet
// @Summary Fetch one meeting
// @Tags Meetings
// @Accept json
// @Produce json
// @Param payload body domain.GetRequest true "Target"
// @Success 200 {object} domain.MeetingDTO "ok"
// @Router /meetings/get [post]
func (h *handlers) get(r *stdhttp.Request, in domain.GetRequest) (any, error) {
	uid := httpkit.MustUser(r)

	m, err := h.svc.Get(r.Context(), uid, in.MeetingID)
	if err != nil {
		return nil, err
	}
	return domain.ToDTO(m), nil
}

// swagger:route POST /meetings/list Meetings meetingsList
// @Summary List the caller's meetings
// @Tags Meetings
// @Produce json
// @Success 200 {array} domain.MeetingDTO "ok"
// @Router /meetings/list [post]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	uid := httpkit.MustUser(r)

	ms, err := h.svc.List(r.Context(), uid)
	if err != nil {
		return nil, err
	}
	out := make([]domain.MeetingDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, domain.ToDTO(m))
	}
	return out, nil
}

// swagger:route POST /meetings/rename Meetings meetingsRename
// @Summary Set a meeting title
// @Tags Meetings
// @Accept json
// @Produce json
// @Param payload body domain.RenameRequest true "New title"
// @Success 200 {object} domain.MeetingDTO "ok"
// @Router /meetings/rename [post]
func (h *handlers) rename(r *stdhttp.Request, in domain.RenameRequest) (any, error) {
	uid := httpkit.MustUser(r)

	m, err := h.svc.Rename(r.Context(), uid, in.MeetingID, in.Title)
	if err != nil {
		return nil, err
	}
	return domain.ToDTO(m), nil
}

// swagger:route POST /meetings/favorite Meetings meetingsFavorite
// @Summary Flip the favorite flag
// @Tags Meetings
// @Accept json
// @Produce json
// @Param payload body domain.FavoriteRequest true "Flag"
// @Success 200 {object} domain.MeetingDTO "ok"
// @Router /meetings/favorite [post]
func (h *handlers) favorite(r *stdhttp.Request, in domain.FavoriteRequest) (any, error) {
	uid := httpkit.MustUser(r)

	m, err := h.svc.SetFavorite(r.Context(), uid, in.MeetingID, in.Favorite)
	if err != nil {
		return nil, err
	}
	return domain.ToDTO(m), nil
}

// swagger:route POST /meetings/delete Meetings meetingsDelete
// @Summary Soft-delete a meeting
// @Tags Meetings
// @Accept json
// @Produce json
// @Param payload body domain.GetRequest true "Target"
// @Success 200 {object} domain.MeetingDTO "ok"
// @Router /meetings/delete [post]
func (h *handlers) softDelete(r *stdhttp.Request, in domain.GetRequest) (any, error) {
	uid := httpkit.MustUser(r)

	m, err := h.svc.SoftDelete(r.Context(), uid, in.MeetingID)
	if err != nil {
		return nil, err
	}
	return domain.ToDTO(m), nil
}

// swagger:route POST /meetings/purge Meetings meetingsPurge
// @Summary Hard-delete a meeting and everything under it
// @Tags Meetings
// @Accept json
// @Produce json
// @Param payload body domain.GetRequest true "Target"
// @Success 200 {object} domain.PurgeDTO "ok"
// @Router /meetings/purge [post]
func (h *handlers) purge(r *stdhttp.Request, in domain.GetRequest) (any, error) {
	uid := httpkit.MustUser(r)

	res, err := h.svc.Purge(r.Context(), uid, in.MeetingID)
	if err != nil {
		return nil, err
	}
	return domain.PurgeDTO{
		MeetingID:   res.MeetingID,
		Utterances:  res.Utterances,
		Speakers:    res.Speakers,
		Questions:   res.Questions,
		Voiceprints: res.Voiceprints,
	}, nil
}
