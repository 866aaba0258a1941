// Package repo provides the Postgres repository for speakers
package repo

import (
	"context"

	"minutes/internal/modkit/repokit"
	perr "minutes/internal/platform/errors"
	"minutes/internal/services/speakers/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the speakers repository
type Storage interface {
	Insert(ctx context.Context, in domain.EnsureInput) error
	GetBySlot(ctx context.Context, meetingID string, speakerNumber int) (domain.Speaker, error)
	Get(ctx context.Context, id string) (domain.Speaker, error)
	List(ctx context.Context, meetingID string) ([]domain.Speaker, error)
	Rename(ctx context.Context, id, first, last string) (int64, error)
	MarkAnalyzing(ctx context.Context, id string) (int64, error)
	Complete(ctx context.Context, in domain.CompleteInput) (int64, error)
	SetFirstNameAndPredictions(ctx context.Context, id, first string, preds []domain.PredictedName) (int64, error)
	Exists(ctx context.Context, id string) (bool, error)
}

const speakerCols = `
	id::text, meeting_id::text, user_id, speaker_number, first_name, last_name,
	voice_status, predicted_names, created_at, updated_at`

func scanSpeaker(row repokit.Row, sp *domain.Speaker) error {
	return row.Scan(
		&sp.ID, &sp.MeetingID, &sp.UserID, &sp.SpeakerNumber, &sp.FirstName, &sp.LastName,
		&sp.VoiceStatus, &sp.PredictedNames, &sp.CreatedAt, &sp.UpdatedAt,
	)
}

// Insert implements Storage. Losing a slot race is not an error.
// New rows carry empty name parts until a user or resolution names them
func (s *pg) Insert(ctx context.Context, in domain.EnsureInput) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO speakers (meeting_id, user_id, speaker_number, voice_status)
		VALUES ($1,$2,$3,'pending')
		ON CONFLICT (meeting_id, speaker_number) DO NOTHING`,
		in.MeetingID, in.UserID, in.SpeakerNumber,
	)
	return perr.FromPostgres(err, "insert speaker")
}

// GetBySlot implements Storage
func (s *pg) GetBySlot(ctx context.Context, meetingID string, speakerNumber int) (domain.Speaker, error) {
	var sp domain.Speaker
	err := scanSpeaker(s.q.QueryRow(ctx, `
		SELECT `+speakerCols+`
		FROM speakers
		WHERE meeting_id = $1::uuid AND speaker_number = $2`,
		meetingID, speakerNumber,
	), &sp)
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.Speaker{}, perr.NotFoundf("speaker %d in meeting %s", speakerNumber, meetingID)
		}
		return domain.Speaker{}, perr.FromPostgres(err, "get speaker by slot")
	}
	return sp, nil
}

// Get implements Storage
func (s *pg) Get(ctx context.Context, id string) (domain.Speaker, error) {
	var sp domain.Speaker
	err := scanSpeaker(s.q.QueryRow(ctx, `
		SELECT `+speakerCols+`
		FROM speakers
		WHERE id = $1::uuid`, id,
	), &sp)
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.Speaker{}, perr.NotFoundf("speaker %s", id)
		}
		return domain.Speaker{}, perr.FromPostgres(err, "get speaker")
	}
	return sp, nil
}

// List implements Storage
func (s *pg) List(ctx context.Context, meetingID string) ([]domain.Speaker, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+speakerCols+`
		FROM speakers
		WHERE meeting_id = $1::uuid
		ORDER BY speaker_number`, meetingID)
	if err != nil {
		return nil, perr.FromPostgres(err, "list speakers")
	}
	defer rows.Close()

	var out []domain.Speaker
	for rows.Next() {
		var sp domain.Speaker
		if err := rows.Scan(
			&sp.ID, &sp.MeetingID, &sp.UserID, &sp.SpeakerNumber, &sp.FirstName, &sp.LastName,
			&sp.VoiceStatus, &sp.PredictedNames, &sp.CreatedAt, &sp.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// Rename implements Storage and reports affected rows
func (s *pg) Rename(ctx context.Context, id, first, last string) (int64, error) {
	ct, err := s.q.Exec(ctx, `
		UPDATE speakers SET first_name = $2, last_name = $3, updated_at = now()
		WHERE id = $1::uuid`, id, first, last)
	if err != nil {
		return 0, perr.FromPostgres(err, "rename speaker")
	}
	return ct.RowsAffected(), nil
}

// MarkAnalyzing implements Storage; the WHERE clause is the analysis guard
func (s *pg) MarkAnalyzing(ctx context.Context, id string) (int64, error) {
	ct, err := s.q.Exec(ctx, `
		UPDATE speakers SET voice_status = 'analyzing', updated_at = now()
		WHERE id = $1::uuid AND voice_status <> 'analyzing'`, id)
	if err != nil {
		return 0, perr.FromPostgres(err, "mark speaker analyzing")
	}
	return ct.RowsAffected(), nil
}

// Complete implements Storage. Predictions replace the previous round wholesale
func (s *pg) Complete(ctx context.Context, in domain.CompleteInput) (int64, error) {
	ct, err := s.q.Exec(ctx, `
		UPDATE speakers SET voice_status = $2, predicted_names = $3, updated_at = now()
		WHERE id = $1::uuid`,
		in.SpeakerID, in.Status, in.Predictions)
	if err != nil {
		return 0, perr.FromPostgres(err, "complete speaker analysis")
	}
	return ct.RowsAffected(), nil
}

// SetFirstNameAndPredictions implements Storage. Accepted candidates land
// in the first name; the last name stays whatever the user set
func (s *pg) SetFirstNameAndPredictions(
	ctx context.Context,
	id, first string,
	preds []domain.PredictedName,
) (int64, error) {
	ct, err := s.q.Exec(ctx, `
		UPDATE speakers SET first_name = $2, predicted_names = $3, updated_at = now()
		WHERE id = $1::uuid`, id, first, preds)
	if err != nil {
		return 0, perr.FromPostgres(err, "set speaker name")
	}
	return ct.RowsAffected(), nil
}

// Exists implements Storage
func (s *pg) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := s.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM speakers WHERE id = $1::uuid)`, id).Scan(&ok)
	if err != nil {
		return false, perr.FromPostgres(err, "speaker exists")
	}
	return ok, nil
}
