// Package repo provides the Postgres similarity index for voiceprints
package repo

import (
	"context"

	"minutes/internal/modkit/repokit"
	perr "minutes/internal/platform/errors"
	"minutes/internal/services/voiceid/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the voiceprint repository
type Storage interface {
	Insert(ctx context.Context, in domain.VoiceprintWrite) (string, error)
	Nearest(ctx context.Context, vec []float64, userID string, limit int) ([]domain.Candidate, error)
}

// Insert implements Storage
func (s *pg) Insert(ctx context.Context, in domain.VoiceprintWrite) (string, error) {
	var id string
	err := s.q.QueryRow(ctx, `
		INSERT INTO voiceprints (meeting_id, speaker_id, user_id, embedding)
		VALUES ($1,$2,$3,$4)
		RETURNING id::text`,
		in.MeetingID, in.SpeakerID, in.UserID, in.Embedding,
	).Scan(&id)
	if err != nil {
		return "", perr.FromPostgres(err, "insert voiceprint")
	}
	return id, nil
}

// Nearest implements Storage with cosine similarity computed in SQL.
// Zero-norm vectors on either side are excluded rather than divided by.
// Unnamed speakers come back with an empty name and merge out later
func (s *pg) Nearest(ctx context.Context, vec []float64, userID string, limit int) ([]domain.Candidate, error) {
	rows, err := s.q.Query(ctx, `
		SELECT vp.id::text, vp.speaker_id::text,
			btrim(sp.first_name || ' ' || sp.last_name),
			m.dot / (m.norm_a * m.norm_b) AS score
		FROM voiceprints vp
		JOIN speakers sp ON sp.id = vp.speaker_id
		CROSS JOIN LATERAL (
			SELECT sum(x.a * y.b)           AS dot,
				sqrt(sum(x.a * x.a)) AS norm_a,
				sqrt(sum(y.b * y.b)) AS norm_b
			FROM unnest(vp.embedding) WITH ORDINALITY AS x(a, i)
			JOIN unnest($1::float8[]) WITH ORDINALITY AS y(b, i) ON x.i = y.i
		) m
		WHERE vp.user_id = $2
		  AND m.norm_a > 0 AND m.norm_b > 0
		ORDER BY score DESC
		LIMIT $3`,
		vec, userID, limit,
	)
	if err != nil {
		return nil, perr.FromPostgres(err, "nearest voiceprints")
	}
	defer rows.Close()

	var out []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(&c.EmbeddingID, &c.SpeakerID, &c.Name, &c.Score); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
