package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"minutes/internal/modkit"
	"minutes/internal/modkit/module"
	"minutes/internal/platform/config"
	"minutes/internal/platform/logger"
	"minutes/internal/platform/store"

	sessionsdom "minutes/internal/services/sessions/domain"
	sessionsmod "minutes/internal/services/sessions/module"
	speakersmod "minutes/internal/services/speakers/module"
	transcriptsmod "minutes/internal/services/transcripts/module"
	voiceidmod "minutes/internal/services/voiceid/module"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		},
		CH: store.CHConfig{
			Enabled:    chCfg.MayBool("ENABLED", false),
			URL:        chCfg.MayString("DBURL", ""),
			ClientName: "minutes",
			ClientTag:  "ingest",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var (
		file    = flag.String("file", "", "path to a JSON array of recognition tokens")
		meeting = flag.String("meeting", "", "meeting id to attach the transcript to")
		user    = flag.String("user", "", "owning user id")
	)
	flag.Parse()

	if *file == "" || *meeting == "" || *user == "" {
		log.Fatal("file, meeting and user are required")
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}
	var tokens []sessionsdom.TokenDTO
	if err := json.Unmarshal(raw, &tokens); err != nil {
		log.Fatalf("bad token file: %v", err)
	}
	if len(tokens) == 0 {
		log.Fatal("token file is empty")
	}

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		CH:  st.CH,
		Log: *l,
	}

	// Build dependency modules first
	speakers := speakersmod.New(deps)
	spPorts := module.MustPortsOf[speakersmod.Ports](speakers)

	transcripts := transcriptsmod.New(deps)
	trPorts := module.MustPortsOf[transcriptsmod.Ports](transcripts)

	voiceid := voiceidmod.New(deps, modkit.WithPorts(voiceidmod.Ports{
		Analysis: spPorts.Analysis,
	}))
	viOut := module.MustPortsOf[voiceidmod.Out](voiceid)

	sessions := sessionsmod.New(deps, modkit.WithPorts(sessionsmod.Ports{
		Writer:   trPorts.Writer,
		Registry: spPorts.Registry,
		Resolver: viOut.Resolver,
	}))

	// Register ports
	module.Register(speakers.Name(), speakers.Ports())
	module.Register(transcripts.Name(), transcripts.Ports())
	module.Register(voiceid.Name(), voiceid.Ports())
	module.Register(sessions.Name(), sessions.Ports())

	sum, err := sessions.Service().RunBatch(context.Background(), sessionsdom.BatchInput{
		MeetingID: *meeting,
		UserID:    *user,
		Tokens:    sessionsdom.Tokens(tokens),
	})
	if err != nil {
		l.Fatal().Err(err).Msg("batch ingest failed")
	}

	// Resolution runs detached; drain it before the process exits
	voiceid.Resolver().Wait()

	l.Info().
		Str("session_id", sum.SessionID).
		Str("meeting_id", sum.MeetingID).
		Int("utterances", sum.Utterances).
		Int("questions", sum.Questions).
		Int("speakers", sum.Speakers).
		Int("resolutions", sum.ResolutionsStarted).
		Msg("batch ingest complete")
}
