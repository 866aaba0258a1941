// Package service provides the transcripts service implementation
package service

import (
	"context"
	"strings"

	"minutes/internal/modkit/repokit"
	perr "minutes/internal/platform/errors"
	"minutes/internal/platform/logger"
	"minutes/internal/platform/store"
	"minutes/internal/services/transcripts/domain"
	"minutes/internal/services/transcripts/repo"
)

// Config for the transcripts service
type Config struct {
	// HardLimit is the maximum allowed limit per List call; defaults to 5000 if <=0
	HardLimit int
	// ArchiveTable is the ClickHouse table token rows land in
	ArchiveTable string
}

// Service implements domain.WriterPort, domain.ReaderPort and domain.DeleterPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	CH     store.Clickhouse // nil disables the token archive
	Cfg    Config
}

// New constructs a new transcripts service
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], ch store.Clickhouse, cfg Config) *Service {
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 5000
	}
	if cfg.ArchiveTable == "" {
		cfg.ArchiveTable = "token_archive"
	}
	return &Service{DB: db, Binder: b, CH: ch, Cfg: cfg}
}

// Store implements domain.WriterPort.
// Utterances whose text is empty after trimming are dropped with ok=false
func (s *Service) Store(ctx context.Context, in domain.UtteranceWrite) (domain.Utterance, bool, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return domain.Utterance{}, false, nil
	}
	in.Text = text
	words := len(strings.Fields(text))

	var out domain.Utterance
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = s.Binder.Bind(q).Insert(ctx, in, words)
		return err
	})
	if err != nil {
		return domain.Utterance{}, false, err
	}
	return out, true, nil
}

// StoreQuestions implements domain.WriterPort
func (s *Service) StoreQuestions(ctx context.Context, xs []domain.QuestionWrite) error {
	if len(xs) == 0 {
		return nil
	}
	return s.DB.Tx(ctx, func(q repokit.Queryer) error {
		return s.Binder.Bind(q).InsertQuestions(ctx, xs)
	})
}

// ArchiveTokens implements domain.WriterPort.
// Failures are logged and swallowed so columnar lag never blocks ingest
func (s *Service) ArchiveTokens(ctx context.Context, xs []domain.TokenRow) error {
	if s.CH == nil || len(xs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(xs))
	for _, t := range xs {
		rows = append(rows, []any{
			t.MeetingID, t.Word, t.Normalized, t.Start, t.End, t.Confidence, int32(t.SpeakerNumber),
		})
	}
	if err := s.CH.Insert(ctx, s.Cfg.ArchiveTable, rows); err != nil {
		logger.C(ctx).Error().Err(err).Int("tokens", len(xs)).Msg("token archive insert failed")
	}
	return nil
}

// List implements domain.ReaderPort
func (s *Service) List(ctx context.Context, in domain.ListInput) ([]domain.Utterance, domain.AfterKey, error) {
	limit := in.Limit
	if limit <= 0 || limit > s.Cfg.HardLimit {
		limit = s.Cfg.HardLimit
	}

	var rows []domain.Utterance
	var next domain.AfterKey
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		rows, next, err = s.Binder.Bind(q).List(ctx, in, limit)
		return err
	})
	if err != nil {
		return nil, domain.AfterKey{}, err
	}
	return rows, next, nil
}

// Questions implements domain.ReaderPort
func (s *Service) Questions(ctx context.Context, meetingID string) ([]domain.Question, error) {
	var out []domain.Question
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = s.Binder.Bind(q).Questions(ctx, meetingID)
		return err
	})
	return out, err
}

// Delete implements domain.DeleterPort.
// The utterance delete, the remaining-count check and any speaker cascade run
// in one transaction so a concurrent insert cannot race the cascade
func (s *Service) Delete(ctx context.Context, utteranceID string) (domain.DeleteResult, error) {
	var res domain.DeleteResult
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)

		u, err := st.Get(ctx, utteranceID)
		if err != nil {
			return err
		}

		n, err := st.Delete(ctx, utteranceID)
		if err != nil {
			return err
		}
		if n == 0 {
			return perr.NotFoundf("utterance %s", utteranceID)
		}

		res = domain.DeleteResult{UtteranceID: utteranceID, SpeakerID: u.SpeakerID}
		if u.SpeakerID == "" {
			return nil
		}

		left, err := st.CountBySpeaker(ctx, u.MeetingID, u.SpeakerID)
		if err != nil {
			return err
		}
		if left > 0 {
			return nil
		}

		if err := st.DeleteSpeakerArtifacts(ctx, u.SpeakerID); err != nil {
			return err
		}
		res.SpeakerDeleted = true
		return nil
	})
	if err != nil {
		return domain.DeleteResult{}, err
	}
	if res.SpeakerDeleted {
		logger.C(ctx).Info().
			Str("utterance_id", res.UtteranceID).
			Str("speaker_id", res.SpeakerID).
			Msg("speaker cascade delete")
	}
	return res, nil
}
