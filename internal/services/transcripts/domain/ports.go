package domain

import "context"

// WriterPort persists finalized utterances and questions
type WriterPort interface {
	// Store inserts one finalized utterance. Empty-text payloads are
	// dropped silently and return ok=false
	Store(ctx context.Context, in UtteranceWrite) (Utterance, bool, error)

	// StoreQuestions inserts a batch of detected questions
	StoreQuestions(ctx context.Context, xs []QuestionWrite) error

	// ArchiveTokens appends raw tokens to the analytics archive; best effort
	ArchiveTokens(ctx context.Context, xs []TokenRow) error
}

// ReaderPort reads persisted transcript rows
type ReaderPort interface {
	// List returns up to Limit utterances ordered by (start_s, id)
	List(ctx context.Context, in ListInput) (rows []Utterance, next AfterKey, err error)

	// Questions returns all questions for a meeting in timestamp order
	Questions(ctx context.Context, meetingID string) ([]Question, error)
}

// DeleterPort removes utterances with the speaker-cascade rule
type DeleterPort interface {
	// Delete removes one utterance; when it was the speaker's last, the
	// speaker row and its voiceprints go too. Unknown ids yield not-found
	Delete(ctx context.Context, utteranceID string) (DeleteResult, error)
}
