// Package service coordinates live transcript sessions
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"minutes/internal/core/segment"
	"minutes/internal/modkit/scope"
	perr "minutes/internal/platform/errors"
	"minutes/internal/platform/logger"
	"minutes/internal/services/sessions/domain"
	speakersdom "minutes/internal/services/speakers/domain"
	transcriptsdom "minutes/internal/services/transcripts/domain"
	voiceiddom "minutes/internal/services/voiceid/domain"
)

// Config for the sessions service
type Config struct {
	// MaxEvents bounds each session's event buffer; defaults to 500
	MaxEvents int
}

// Service implements domain.SessionPort
type Service struct {
	Writer   transcriptsdom.WriterPort
	Registry speakersdom.RegistryPort
	Resolver voiceiddom.ResolverPort
	Cfg      Config

	mu       sync.RWMutex
	sessions map[string]*session
}

// New constructs a sessions service
func New(
	w transcriptsdom.WriterPort,
	reg speakersdom.RegistryPort,
	res voiceiddom.ResolverPort,
	cfg Config,
) *Service {
	if cfg.MaxEvents <= 0 {
		cfg.MaxEvents = 500
	}
	return &Service{
		Writer: w, Registry: reg, Resolver: res, Cfg: cfg,
		sessions: make(map[string]*session),
	}
}

// session holds all mutable per-recording state. The mutex makes the
// segmentation path the single writer; event reads go through the bus's
// own lock and never touch this one
type session struct {
	id        string
	meetingID string
	userID    string
	startedAt time.Time

	mu        sync.Mutex
	seg       *segment.Segmenter
	tracker   *segment.LongestTracker
	speakers  map[int]string  // speaker number -> registry id
	processed map[string]bool // speaker ids already handed to resolution
	bus       *EventBus
	finalized bool

	utterances  int
	questions   int
	resolutions int
}

// Start implements domain.SessionPort
func (s *Service) Start(_ context.Context, in domain.StartInput) (domain.SessionInfo, error) {
	if in.MeetingID == "" {
		return domain.SessionInfo{}, perr.InvalidArgf("meeting id required")
	}

	sess := &session{
		id:        uuid.NewString(),
		meetingID: in.MeetingID,
		userID:    in.UserID,
		startedAt: time.Now().UTC(),
		seg:       segment.New(),
		tracker:   segment.NewLongestTracker(),
		speakers:  make(map[int]string),
		processed: make(map[string]bool),
		bus:       NewEventBus(s.Cfg.MaxEvents),
	}
	sess.bus.Publish(domain.Event{
		SessionID: sess.id,
		Type:      domain.EventTypeStatus,
		Message:   "segmenting",
	})

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	return domain.SessionInfo{ID: sess.id, MeetingID: sess.meetingID, StartedAt: sess.startedAt}, nil
}

func (s *Service) get(id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, perr.NotFoundf("session %s", id)
	}
	return sess, nil
}

// Push implements domain.SessionPort
func (s *Service) Push(ctx context.Context, sessionID string, tokens []segment.Token) error {
	sess, err := s.get(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.finalized {
		return perr.Conflictf("session %s already finalized", sessionID)
	}

	tokens = dropMalformed(ctx, tokens)

	segs, qs := sess.seg.Feed(tokens...)
	if err := s.land(ctx, sess, segs, qs); err != nil {
		return err
	}
	return s.archive(ctx, sess, tokens)
}

// Finalize implements domain.SessionPort
func (s *Service) Finalize(ctx context.Context, sessionID string) (domain.Summary, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return domain.Summary{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.finalized {
		return domain.Summary{}, perr.Conflictf("session %s already finalized", sessionID)
	}

	if last, ok := sess.seg.Flush(); ok {
		if err := s.land(ctx, sess, []segment.Segment{last}, nil); err != nil {
			return domain.Summary{}, err
		}
	}

	s.kickResolution(ctx, sess)

	sess.finalized = true
	sess.bus.Publish(domain.Event{
		SessionID: sess.id,
		Type:      domain.EventTypeStatus,
		Message:   "completed",
	})
	return s.summary(sess), nil
}

// RunBatch implements domain.SessionPort
func (s *Service) RunBatch(ctx context.Context, in domain.BatchInput) (domain.Summary, error) {
	info, err := s.Start(ctx, domain.StartInput{MeetingID: in.MeetingID, UserID: in.UserID})
	if err != nil {
		return domain.Summary{}, err
	}
	if err := s.Push(ctx, info.ID, in.Tokens); err != nil {
		return domain.Summary{}, err
	}
	return s.Finalize(ctx, info.ID)
}

// Events implements domain.SessionPort
func (s *Service) Events(_ context.Context, sessionID string, since int64) ([]domain.Event, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.bus.Since(since), nil
}

// land persists closed segments and questions, feeds the tracker and
// offers each closed segment to the resolver. Callers hold the session lock
func (s *Service) land(ctx context.Context, sess *session, segs []segment.Segment, qs []segment.Question) error {
	for _, sg := range segs {
		spID, err := s.ensureSpeaker(ctx, sess, sg.Speaker)
		if err != nil {
			return err
		}

		u, ok, err := s.Writer.Store(ctx, transcriptsdom.UtteranceWrite{
			MeetingID:     sess.meetingID,
			UserID:        sess.userID,
			SpeakerNumber: sg.Speaker,
			SpeakerID:     spID,
			Text:          sg.Text,
			Start:         sg.Start,
			End:           sg.End,
		})
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		sess.tracker.Observe(sg)
		sess.utterances++
		sess.bus.Publish(domain.Event{
			SessionID:     sess.id,
			Type:          domain.EventTypeUtterance,
			SpeakerNumber: sg.Speaker,
			UtteranceID:   u.ID,
		})

		s.maybeResolve(ctx, sess, sg.Speaker, sg.Start, sg.End)
	}

	if len(qs) > 0 {
		writes := make([]transcriptsdom.QuestionWrite, 0, len(qs))
		for _, q := range qs {
			writes = append(writes, transcriptsdom.QuestionWrite{
				MeetingID:     sess.meetingID,
				SpeakerNumber: q.Speaker,
				Text:          q.Text,
				Timestamp:     q.Timestamp,
			})
		}
		if err := s.Writer.StoreQuestions(ctx, writes); err != nil {
			return err
		}
		for _, q := range qs {
			sess.questions++
			sess.bus.Publish(domain.Event{
				SessionID:     sess.id,
				Type:          domain.EventTypeQuestion,
				SpeakerNumber: q.Speaker,
				Message:       q.Text,
			})
		}
	}
	return nil
}

func (s *Service) ensureSpeaker(ctx context.Context, sess *session, number int) (string, error) {
	if id, ok := sess.speakers[number]; ok {
		return id, nil
	}
	sp, err := s.Registry.Ensure(ctx, speakersdom.EnsureInput{
		MeetingID:     sess.meetingID,
		UserID:        sess.userID,
		SpeakerNumber: number,
	})
	if err != nil {
		return "", err
	}
	sess.speakers[number] = sp.ID
	return sp.ID, nil
}

// maybeResolve hands one speaker window to the resolver unless the
// speaker was already kicked. Resolution outlives the session, so the
// work is detached from the caller's cancellation. Callers hold the
// session lock
func (s *Service) maybeResolve(ctx context.Context, sess *session, number int, start, end float64) {
	spID := sess.speakers[number]
	if spID == "" || sess.processed[spID] {
		return
	}

	resolveCtx := scope.With(context.WithoutCancel(ctx), map[string]string{"session_id": sess.id})
	started, err := s.Resolver.MaybeResolve(resolveCtx, voiceiddom.ResolveInput{
		MeetingID:     sess.meetingID,
		UserID:        sess.userID,
		SpeakerID:     spID,
		SpeakerNumber: number,
		Start:         start,
		End:           end,
	})
	if err != nil {
		logger.C(ctx).Warn().Err(err).
			Int("speaker_number", number).
			Msg("resolution trigger failed")
		return
	}
	if !started {
		return
	}

	sess.processed[spID] = true
	sess.resolutions++
	sess.bus.Publish(domain.Event{
		SessionID:     sess.id,
		Type:          domain.EventTypeResolving,
		SpeakerNumber: number,
		Message:       fmt.Sprintf("resolving speaker %d", number),
	})
}

// kickResolution sweeps speakers whose closed segments never crossed the
// threshold during streaming, retrying each with their longest segment
func (s *Service) kickResolution(ctx context.Context, sess *session) {
	for _, number := range sess.tracker.Speakers() {
		longest, ok := sess.tracker.Longest(number)
		if !ok {
			continue
		}
		s.maybeResolve(ctx, sess, number, longest.Start, longest.End)
	}
}

// dropMalformed skips tokens missing a word or carrying an inverted time
// range. Bad tokens are logged, never fatal
func dropMalformed(ctx context.Context, tokens []segment.Token) []segment.Token {
	kept := tokens[:0]
	dropped := 0
	for _, t := range tokens {
		if (t.Word == "" && t.Normalized == "") || t.End < t.Start {
			dropped++
			continue
		}
		kept = append(kept, t)
	}
	if dropped > 0 {
		logger.C(ctx).Warn().Int("dropped", dropped).Msg("malformed tokens skipped")
	}
	return kept
}

func (s *Service) archive(ctx context.Context, sess *session, tokens []segment.Token) error {
	if len(tokens) == 0 {
		return nil
	}
	rows := make([]transcriptsdom.TokenRow, 0, len(tokens))
	for _, t := range tokens {
		rows = append(rows, transcriptsdom.TokenRow{
			MeetingID:     sess.meetingID,
			Word:          t.Word,
			Normalized:    t.Normalized,
			Start:         t.Start,
			End:           t.End,
			Confidence:    t.Confidence,
			SpeakerNumber: t.Speaker,
		})
	}
	return s.Writer.ArchiveTokens(ctx, rows)
}

func (s *Service) summary(sess *session) domain.Summary {
	return domain.Summary{
		SessionID:          sess.id,
		MeetingID:          sess.meetingID,
		Utterances:         sess.utterances,
		Questions:          sess.questions,
		Speakers:           len(sess.speakers),
		ResolutionsStarted: sess.resolutions,
	}
}
