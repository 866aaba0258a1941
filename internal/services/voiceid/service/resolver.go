// Package service implements voice identity resolution
package service

import (
	"context"
	"sync"

	"minutes/internal/modkit/repokit"
	"minutes/internal/modkit/scope"
	"minutes/internal/platform/logger"
	speakersdom "minutes/internal/services/speakers/domain"
	"minutes/internal/services/voiceid/domain"
	"minutes/internal/services/voiceid/repo"
)

// Config for the resolver
type Config struct {
	// MinSegmentSeconds gates resolution; defaults to 5
	MinSegmentSeconds float64
	// TopN caps similarity candidates; defaults to 20
	TopN int
}

// Resolver implements domain.ResolverPort.
// One round per speaker runs at a time; the analysis port's guard enforces it
type Resolver struct {
	DB       repokit.TxRunner
	Binder   repokit.Binder[repo.Storage]
	Samples  domain.SampleProvider
	Prints   domain.Fingerprinter
	Speakers speakersdom.AnalysisPort
	Cfg      Config

	wg sync.WaitGroup
}

// NewResolver constructs a resolver
func NewResolver(
	db repokit.TxRunner,
	b repokit.Binder[repo.Storage],
	samples domain.SampleProvider,
	prints domain.Fingerprinter,
	analysis speakersdom.AnalysisPort,
	cfg Config,
) *Resolver {
	if cfg.MinSegmentSeconds <= 0 {
		cfg.MinSegmentSeconds = 5
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 20
	}
	return &Resolver{
		DB: db, Binder: b,
		Samples: samples, Prints: prints, Speakers: analysis,
		Cfg: cfg,
	}
}

// MaybeResolve implements domain.ResolverPort.
// Short segments and speakers already under analysis are skipped without
// error; a started round runs on its own goroutine under the given ctx
func (r *Resolver) MaybeResolve(ctx context.Context, in domain.ResolveInput) (bool, error) {
	if in.Duration() <= r.Cfg.MinSegmentSeconds {
		return false, nil
	}

	won, err := r.Speakers.BeginAnalysis(ctx, in.SpeakerID)
	if err != nil {
		return false, err
	}
	if !won {
		return false, nil
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.resolve(ctx, in)
	}()
	return true, nil
}

// Wait blocks until all in-flight rounds finish; used on shutdown and in tests
func (r *Resolver) Wait() { r.wg.Wait() }

// resolve runs one round end to end. External failures land the round as
// failed with no predictions; ctx cancellation abandons the round and the
// speaker stays analyzing
func (r *Resolver) resolve(ctx context.Context, in domain.ResolveInput) {
	lc := logger.C(ctx).With().
		Str("speaker_id", in.SpeakerID).
		Str("meeting_id", in.MeetingID)
	if sid, ok := scope.Get(ctx, "session_id"); ok {
		lc = lc.Str("session_id", sid)
	}
	log := lc.Logger()

	preds, err := r.round(ctx, in)
	if err != nil {
		if ctx.Err() != nil {
			log.Warn().Err(err).Msg("resolution abandoned")
			return
		}
		log.Warn().Err(err).Msg("resolution failed")
		if _, cerr := r.Speakers.CompleteAnalysis(ctx, speakersdom.CompleteInput{
			SpeakerID: in.SpeakerID,
			Status:    speakersdom.VoiceStatusFailed,
		}); cerr != nil {
			log.Error().Err(cerr).Msg("could not land failed round")
		}
		return
	}

	landed, err := r.Speakers.CompleteAnalysis(ctx, speakersdom.CompleteInput{
		SpeakerID:   in.SpeakerID,
		Status:      speakersdom.VoiceStatusCompleted,
		Predictions: preds,
	})
	if err != nil {
		log.Error().Err(err).Msg("could not land completed round")
		return
	}
	if landed {
		log.Info().Int("candidates", len(preds)).Msg("speaker resolved")
	}
}

func (r *Resolver) round(ctx context.Context, in domain.ResolveInput) ([]speakersdom.PredictedName, error) {
	sample, err := r.Samples.Sample(ctx, in)
	if err != nil {
		return nil, err
	}

	vec, err := r.Prints.Fingerprint(ctx, sample)
	if err != nil {
		return nil, err
	}

	var cands []domain.Candidate
	err = r.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := r.Binder.Bind(q)
		if _, err := st.Insert(ctx, domain.VoiceprintWrite{
			MeetingID: in.MeetingID,
			SpeakerID: in.SpeakerID,
			UserID:    in.UserID,
			Embedding: vec,
		}); err != nil {
			return err
		}
		var err error
		cands, err = st.Nearest(ctx, vec, in.UserID, r.Cfg.TopN)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Matching against the speaker we just sampled tells the user nothing
	filtered := cands[:0]
	for _, c := range cands {
		if c.SpeakerID != in.SpeakerID {
			filtered = append(filtered, c)
		}
	}
	return MergePredictions(filtered), nil
}
