// Package repo provides the Postgres repository for transcripts
package repo

import (
	"context"
	"fmt"
	"strings"

	"minutes/internal/modkit/repokit"
	perr "minutes/internal/platform/errors"
	"minutes/internal/services/transcripts/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the transcripts repository
type Storage interface {
	Insert(ctx context.Context, in domain.UtteranceWrite, wordCount int) (domain.Utterance, error)
	Get(ctx context.Context, id string) (domain.Utterance, error)
	List(ctx context.Context, in domain.ListInput, hardLimit int) ([]domain.Utterance, domain.AfterKey, error)
	Delete(ctx context.Context, id string) (int64, error)
	CountBySpeaker(ctx context.Context, meetingID, speakerID string) (int64, error)
	DeleteSpeakerArtifacts(ctx context.Context, speakerID string) error
	InsertQuestions(ctx context.Context, xs []domain.QuestionWrite) error
	Questions(ctx context.Context, meetingID string) ([]domain.Question, error)
}

// Insert implements Storage
func (s *pg) Insert(ctx context.Context, in domain.UtteranceWrite, wordCount int) (domain.Utterance, error) {
	var u domain.Utterance
	err := s.q.QueryRow(ctx, `
		INSERT INTO utterances
			(meeting_id, user_id, speaker_number, speaker_id, transcript, start_s, end_s, word_count)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id::text, meeting_id::text, user_id, speaker_number, speaker_id::text,
			transcript, start_s, end_s, word_count, created_at`,
		in.MeetingID, in.UserID, in.SpeakerNumber, in.SpeakerID,
		in.Text, in.Start, in.End, wordCount,
	).Scan(
		&u.ID, &u.MeetingID, &u.UserID, &u.SpeakerNumber, &u.SpeakerID,
		&u.Text, &u.Start, &u.End, &u.WordCount, &u.CreatedAt,
	)
	if err != nil {
		return domain.Utterance{}, perr.FromPostgres(err, "insert utterance")
	}
	return u, nil
}

// Get implements Storage
func (s *pg) Get(ctx context.Context, id string) (domain.Utterance, error) {
	var u domain.Utterance
	err := s.q.QueryRow(ctx, `
		SELECT id::text, meeting_id::text, user_id, speaker_number, speaker_id::text,
			transcript, start_s, end_s, word_count, created_at
		FROM utterances
		WHERE id = $1::uuid`, id,
	).Scan(
		&u.ID, &u.MeetingID, &u.UserID, &u.SpeakerNumber, &u.SpeakerID,
		&u.Text, &u.Start, &u.End, &u.WordCount, &u.CreatedAt,
	)
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.Utterance{}, perr.NotFoundf("utterance %s", id)
		}
		return domain.Utterance{}, perr.FromPostgres(err, "get utterance")
	}
	return u, nil
}

// List implements Storage with keyset pagination over (start_s, id)
func (s *pg) List(ctx context.Context, in domain.ListInput, hardLimit int) ([]domain.Utterance, domain.AfterKey, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`
		SELECT id::text, meeting_id::text, user_id, speaker_number, speaker_id::text,
			transcript, start_s, end_s, word_count, created_at
		FROM utterances
		WHERE meeting_id = ` + arg(in.MeetingID) + `::uuid
	`)
	// Keyset only when AfterKey is set (avoid ""::uuid on first page)
	if in.After.ID != "" {
		sb.WriteString("  AND (start_s, id) > (" + arg(in.After.Start) + ", " + arg(in.After.ID) + "::uuid)\n")
	}
	sb.WriteString("ORDER BY start_s, id\nLIMIT " + arg(hardLimit))

	rows, err := s.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, domain.AfterKey{}, perr.FromPostgres(err, "list utterances")
	}
	defer rows.Close()

	out := make([]domain.Utterance, 0, hardLimit)
	var last domain.AfterKey
	for rows.Next() {
		var u domain.Utterance
		if err := rows.Scan(
			&u.ID, &u.MeetingID, &u.UserID, &u.SpeakerNumber, &u.SpeakerID,
			&u.Text, &u.Start, &u.End, &u.WordCount, &u.CreatedAt,
		); err != nil {
			return nil, domain.AfterKey{}, err
		}
		out = append(out, u)
		last = domain.AfterKey{Start: u.Start, ID: u.ID}
	}
	return out, last, rows.Err()
}

// Delete implements Storage and reports affected rows
func (s *pg) Delete(ctx context.Context, id string) (int64, error) {
	ct, err := s.q.Exec(ctx, `DELETE FROM utterances WHERE id = $1::uuid`, id)
	if err != nil {
		return 0, perr.FromPostgres(err, "delete utterance")
	}
	return ct.RowsAffected(), nil
}

// CountBySpeaker implements Storage
func (s *pg) CountBySpeaker(ctx context.Context, meetingID, speakerID string) (int64, error) {
	var n int64
	err := s.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM utterances
		WHERE meeting_id = $1::uuid AND speaker_id = $2::uuid`,
		meetingID, speakerID,
	).Scan(&n)
	if err != nil {
		return 0, perr.FromPostgres(err, "count utterances by speaker")
	}
	return n, nil
}

// DeleteSpeakerArtifacts removes the speaker row and everything that only
// references it (voiceprints carry its embeddings)
func (s *pg) DeleteSpeakerArtifacts(ctx context.Context, speakerID string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM voiceprints WHERE speaker_id = $1::uuid`, speakerID); err != nil {
		return perr.FromPostgres(err, "delete voiceprints")
	}
	if _, err := s.q.Exec(ctx, `DELETE FROM speakers WHERE id = $1::uuid`, speakerID); err != nil {
		return perr.FromPostgres(err, "delete speaker")
	}
	return nil
}

// InsertQuestions implements Storage
func (s *pg) InsertQuestions(ctx context.Context, xs []domain.QuestionWrite) error {
	if len(xs) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(`INSERT INTO questions (meeting_id, speaker_number, question, ts) VALUES `)
	args := make([]any, 0, len(xs)*4)
	for i, q := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*4 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d)", base, base+1, base+2, base+3)
		args = append(args, q.MeetingID, q.SpeakerNumber, q.Text, q.Timestamp)
	}
	_, err := s.q.Exec(ctx, sb.String(), args...)
	return perr.FromPostgres(err, "insert questions")
}

// Questions implements Storage
func (s *pg) Questions(ctx context.Context, meetingID string) ([]domain.Question, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id::text, meeting_id::text, speaker_number, question, ts, created_at
		FROM questions
		WHERE meeting_id = $1::uuid
		ORDER BY ts, id`, meetingID)
	if err != nil {
		return nil, perr.FromPostgres(err, "list questions")
	}
	defer rows.Close()

	var out []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.MeetingID, &q.SpeakerNumber, &q.Text, &q.Timestamp, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
