// Package service provides the speakers service implementation
package service

import (
	"context"
	"strings"

	"minutes/internal/modkit/repokit"
	perr "minutes/internal/platform/errors"
	"minutes/internal/platform/logger"
	"minutes/internal/services/speakers/domain"
	"minutes/internal/services/speakers/repo"
)

// Service implements domain.RegistryPort and domain.AnalysisPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
}

// New constructs a new speakers service
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage]) *Service {
	return &Service{DB: db, Binder: b}
}

// Ensure implements domain.RegistryPort.
// Insert-then-reselect keeps concurrent callers for the same slot on one row
func (s *Service) Ensure(ctx context.Context, in domain.EnsureInput) (domain.Speaker, error) {
	var sp domain.Speaker
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)
		if err := st.Insert(ctx, in); err != nil {
			return err
		}
		var err error
		sp, err = st.GetBySlot(ctx, in.MeetingID, in.SpeakerNumber)
		return err
	})
	if err != nil {
		return domain.Speaker{}, err
	}
	return sp, nil
}

// Get implements domain.RegistryPort
func (s *Service) Get(ctx context.Context, speakerID string) (domain.Speaker, error) {
	var sp domain.Speaker
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		sp, err = s.Binder.Bind(q).Get(ctx, speakerID)
		return err
	})
	return sp, err
}

// List implements domain.RegistryPort
func (s *Service) List(ctx context.Context, meetingID string) ([]domain.Speaker, error) {
	var out []domain.Speaker
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = s.Binder.Bind(q).List(ctx, meetingID)
		return err
	})
	return out, err
}

// Rename implements domain.RegistryPort
func (s *Service) Rename(ctx context.Context, speakerID, firstName, lastName string) (domain.Speaker, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return domain.Speaker{}, perr.InvalidArgf("first name must not be empty")
	}

	var sp domain.Speaker
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)
		n, err := st.Rename(ctx, speakerID, firstName, lastName)
		if err != nil {
			return err
		}
		if n == 0 {
			return perr.NotFoundf("speaker %s", speakerID)
		}
		sp, err = st.Get(ctx, speakerID)
		return err
	})
	if err != nil {
		return domain.Speaker{}, err
	}
	return sp, nil
}

// BeginAnalysis implements domain.AnalysisPort.
// The guard lives in the UPDATE's WHERE clause so concurrent triggers for
// the same speaker serialize on the row; only one caller sees true
func (s *Service) BeginAnalysis(ctx context.Context, speakerID string) (bool, error) {
	var won bool
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)
		n, err := st.MarkAnalyzing(ctx, speakerID)
		if err != nil {
			return err
		}
		if n > 0 {
			won = true
			return nil
		}
		ok, err := st.Exists(ctx, speakerID)
		if err != nil {
			return err
		}
		if !ok {
			return perr.NotFoundf("speaker %s", speakerID)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return won, nil
}

// CompleteAnalysis implements domain.AnalysisPort.
// A zero row count means the speaker was deleted mid-analysis; the round's
// result is dropped and the caller told so
func (s *Service) CompleteAnalysis(ctx context.Context, in domain.CompleteInput) (bool, error) {
	if !in.Status.Terminal() {
		return false, perr.InvalidArgf("status %q is not terminal", in.Status)
	}
	if in.Predictions == nil {
		in.Predictions = []domain.PredictedName{}
	}

	var landed bool
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		n, err := s.Binder.Bind(q).Complete(ctx, in)
		if err != nil {
			return err
		}
		landed = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	if !landed {
		logger.C(ctx).Warn().
			Str("speaker_id", in.SpeakerID).
			Msg("analysis result dropped, speaker gone")
	}
	return landed, nil
}

// AcceptPredictedName implements domain.AnalysisPort. The accepted
// candidate becomes the first name, keeping its own casing
func (s *Service) AcceptPredictedName(ctx context.Context, speakerID, name string) (domain.Speaker, error) {
	var sp domain.Speaker
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)

		cur, err := st.Get(ctx, speakerID)
		if err != nil {
			return err
		}

		found := false
		preds := make([]domain.PredictedName, len(cur.PredictedNames))
		for i, p := range cur.PredictedNames {
			p.UserSelected = strings.EqualFold(p.Name, name)
			if p.UserSelected {
				found = true
				name = p.Name // keep the candidate's own casing
			}
			preds[i] = p
		}
		if !found {
			return perr.InvalidArgf("name %q is not among predicted names", name)
		}

		n, err := st.SetFirstNameAndPredictions(ctx, speakerID, name, preds)
		if err != nil {
			return err
		}
		if n == 0 {
			return perr.NotFoundf("speaker %s", speakerID)
		}
		sp, err = st.Get(ctx, speakerID)
		return err
	})
	if err != nil {
		return domain.Speaker{}, err
	}
	return sp, nil
}
