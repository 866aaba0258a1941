// Package repo provides the Postgres repository for meetings
package repo

import (
	"context"

	"minutes/internal/modkit/repokit"
	perr "minutes/internal/platform/errors"
	"minutes/internal/services/meetings/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the meetings repository
type Storage interface {
	Insert(ctx context.Context, in domain.CreateInput) (domain.Meeting, error)
	Get(ctx context.Context, userID, id string) (domain.Meeting, error)
	List(ctx context.Context, userID string) ([]domain.Meeting, error)
	SetTitle(ctx context.Context, userID, id, title string) (int64, error)
	SetFavorite(ctx context.Context, userID, id string, favorite bool) (int64, error)
	SetDeleted(ctx context.Context, userID, id string) (int64, error)
	PurgeChildren(ctx context.Context, id string) (domain.PurgeResult, error)
	Delete(ctx context.Context, userID, id string) (int64, error)
}

const meetingCols = `id::text, user_id, title, favorite, deleted, created_at, updated_at`

// Insert implements Storage
func (s *pg) Insert(ctx context.Context, in domain.CreateInput) (domain.Meeting, error) {
	var m domain.Meeting
	err := s.q.QueryRow(ctx, `
		INSERT INTO meetings (user_id, title)
		VALUES ($1,$2)
		RETURNING `+meetingCols,
		in.UserID, in.Title,
	).Scan(&m.ID, &m.UserID, &m.Title, &m.Favorite, &m.Deleted, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return domain.Meeting{}, perr.FromPostgres(err, "insert meeting")
	}
	return m, nil
}

// Get implements Storage; ownership is part of the key
func (s *pg) Get(ctx context.Context, userID, id string) (domain.Meeting, error) {
	var m domain.Meeting
	err := s.q.QueryRow(ctx, `
		SELECT `+meetingCols+`
		FROM meetings
		WHERE id = $1::uuid AND user_id = $2`, id, userID,
	).Scan(&m.ID, &m.UserID, &m.Title, &m.Favorite, &m.Deleted, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.Meeting{}, perr.NotFoundf("meeting %s", id)
		}
		return domain.Meeting{}, perr.FromPostgres(err, "get meeting")
	}
	return m, nil
}

// List implements Storage; soft-deleted meetings stay hidden
func (s *pg) List(ctx context.Context, userID string) ([]domain.Meeting, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+meetingCols+`
		FROM meetings
		WHERE user_id = $1 AND NOT deleted
		ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, perr.FromPostgres(err, "list meetings")
	}
	defer rows.Close()

	var out []domain.Meeting
	for rows.Next() {
		var m domain.Meeting
		if err := rows.Scan(&m.ID, &m.UserID, &m.Title, &m.Favorite, &m.Deleted, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SetTitle implements Storage
func (s *pg) SetTitle(ctx context.Context, userID, id, title string) (int64, error) {
	ct, err := s.q.Exec(ctx, `
		UPDATE meetings SET title = $3, updated_at = now()
		WHERE id = $1::uuid AND user_id = $2`, id, userID, title)
	if err != nil {
		return 0, perr.FromPostgres(err, "rename meeting")
	}
	return ct.RowsAffected(), nil
}

// SetFavorite implements Storage
func (s *pg) SetFavorite(ctx context.Context, userID, id string, favorite bool) (int64, error) {
	ct, err := s.q.Exec(ctx, `
		UPDATE meetings SET favorite = $3, updated_at = now()
		WHERE id = $1::uuid AND user_id = $2`, id, userID, favorite)
	if err != nil {
		return 0, perr.FromPostgres(err, "favorite meeting")
	}
	return ct.RowsAffected(), nil
}

// SetDeleted implements Storage
func (s *pg) SetDeleted(ctx context.Context, userID, id string) (int64, error) {
	ct, err := s.q.Exec(ctx, `
		UPDATE meetings SET deleted = true, updated_at = now()
		WHERE id = $1::uuid AND user_id = $2`, id, userID)
	if err != nil {
		return 0, perr.FromPostgres(err, "soft delete meeting")
	}
	return ct.RowsAffected(), nil
}

// PurgeChildren implements Storage. Ordered so nothing ever references a
// missing parent mid-purge
func (s *pg) PurgeChildren(ctx context.Context, id string) (domain.PurgeResult, error) {
	res := domain.PurgeResult{MeetingID: id}

	ct, err := s.q.Exec(ctx, `DELETE FROM voiceprints WHERE meeting_id = $1::uuid`, id)
	if err != nil {
		return res, perr.FromPostgres(err, "purge voiceprints")
	}
	res.Voiceprints = ct.RowsAffected()

	ct, err = s.q.Exec(ctx, `DELETE FROM questions WHERE meeting_id = $1::uuid`, id)
	if err != nil {
		return res, perr.FromPostgres(err, "purge questions")
	}
	res.Questions = ct.RowsAffected()

	ct, err = s.q.Exec(ctx, `DELETE FROM utterances WHERE meeting_id = $1::uuid`, id)
	if err != nil {
		return res, perr.FromPostgres(err, "purge utterances")
	}
	res.Utterances = ct.RowsAffected()

	ct, err = s.q.Exec(ctx, `DELETE FROM speakers WHERE meeting_id = $1::uuid`, id)
	if err != nil {
		return res, perr.FromPostgres(err, "purge speakers")
	}
	res.Speakers = ct.RowsAffected()

	return res, nil
}

// Delete implements Storage
func (s *pg) Delete(ctx context.Context, userID, id string) (int64, error) {
	ct, err := s.q.Exec(ctx, `DELETE FROM meetings WHERE id = $1::uuid AND user_id = $2`, id, userID)
	if err != nil {
		return 0, perr.FromPostgres(err, "delete meeting")
	}
	return ct.RowsAffected(), nil
}
