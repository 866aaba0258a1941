// Package service provides the meetings service implementation
package service

import (
	"context"
	"strings"

	"minutes/internal/modkit/repokit"
	perr "minutes/internal/platform/errors"
	"minutes/internal/platform/logger"
	"minutes/internal/services/meetings/domain"
	"minutes/internal/services/meetings/repo"
)

// Service implements domain.MeetingPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
}

// New constructs a new meetings service
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage]) *Service {
	return &Service{DB: db, Binder: b}
}

// Create implements domain.MeetingPort
func (s *Service) Create(ctx context.Context, in domain.CreateInput) (domain.Meeting, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		in.Title = "Untitled meeting"
	}

	var m domain.Meeting
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		m, err = s.Binder.Bind(q).Insert(ctx, in)
		return err
	})
	return m, err
}

// Get implements domain.MeetingPort
func (s *Service) Get(ctx context.Context, userID, meetingID string) (domain.Meeting, error) {
	var m domain.Meeting
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		m, err = s.Binder.Bind(q).Get(ctx, userID, meetingID)
		return err
	})
	return m, err
}

// List implements domain.MeetingPort
func (s *Service) List(ctx context.Context, userID string) ([]domain.Meeting, error) {
	var out []domain.Meeting
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = s.Binder.Bind(q).List(ctx, userID)
		return err
	})
	return out, err
}

// Rename implements domain.MeetingPort
func (s *Service) Rename(ctx context.Context, userID, meetingID, title string) (domain.Meeting, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Meeting{}, perr.InvalidArgf("title must not be empty")
	}
	return s.update(ctx, userID, meetingID, func(st repo.Storage) (int64, error) {
		return st.SetTitle(ctx, userID, meetingID, title)
	})
}

// SetFavorite implements domain.MeetingPort
func (s *Service) SetFavorite(ctx context.Context, userID, meetingID string, favorite bool) (domain.Meeting, error) {
	return s.update(ctx, userID, meetingID, func(st repo.Storage) (int64, error) {
		return st.SetFavorite(ctx, userID, meetingID, favorite)
	})
}

// SoftDelete implements domain.MeetingPort
func (s *Service) SoftDelete(ctx context.Context, userID, meetingID string) (domain.Meeting, error) {
	return s.update(ctx, userID, meetingID, func(st repo.Storage) (int64, error) {
		return st.SetDeleted(ctx, userID, meetingID)
	})
}

func (s *Service) update(
	ctx context.Context,
	userID, meetingID string,
	fn func(st repo.Storage) (int64, error),
) (domain.Meeting, error) {
	var m domain.Meeting
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)
		n, err := fn(st)
		if err != nil {
			return err
		}
		if n == 0 {
			return perr.NotFoundf("meeting %s", meetingID)
		}
		m, err = st.Get(ctx, userID, meetingID)
		return err
	})
	if err != nil {
		return domain.Meeting{}, err
	}
	return m, nil
}

// Purge implements domain.MeetingPort.
// Children go first, all in one transaction, so a crash never leaves
// utterances pointing at a meeting that is gone
func (s *Service) Purge(ctx context.Context, userID, meetingID string) (domain.PurgeResult, error) {
	var res domain.PurgeResult
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)

		// ownership check before touching children
		if _, err := st.Get(ctx, userID, meetingID); err != nil {
			return err
		}

		var err error
		res, err = st.PurgeChildren(ctx, meetingID)
		if err != nil {
			return err
		}
		n, err := st.Delete(ctx, userID, meetingID)
		if err != nil {
			return err
		}
		if n == 0 {
			return perr.NotFoundf("meeting %s", meetingID)
		}
		return nil
	})
	if err != nil {
		return domain.PurgeResult{}, err
	}
	logger.C(ctx).Info().
		Str("meeting_id", meetingID).
		Int64("utterances", res.Utterances).
		Int64("speakers", res.Speakers).
		Msg("meeting purged")
	return res, nil
}
