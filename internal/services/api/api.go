// Package api provides the HTTP API for the application
package api

import (
	"minutes/internal/platform/config"
	"minutes/internal/platform/logger"
	phttp "minutes/internal/platform/net/http"
	"minutes/internal/platform/store"

	"minutes/internal/modkit"
	"minutes/internal/modkit/httpkit"
	"minutes/internal/modkit/module"
	"minutes/internal/modkit/swaggerkit"

	metamod "minutes/internal/services/api/meta/module"
	meetingsmod "minutes/internal/services/meetings/module"
	sessionsmod "minutes/internal/services/sessions/module"
	speakersmod "minutes/internal/services/speakers/module"
	transcriptsmod "minutes/internal/services/transcripts/module"
	voiceidmod "minutes/internal/services/voiceid/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// Speakers first: voiceid needs its analysis port
	speakers := speakersmod.New(deps)
	spPorts := module.MustPortsOf[speakersmod.Ports](speakers)

	transcripts := transcriptsmod.New(deps)
	trPorts := module.MustPortsOf[transcriptsmod.Ports](transcripts)

	voiceid := voiceidmod.New(deps, modkit.WithPorts(voiceidmod.Ports{
		Analysis: spPorts.Analysis,
	}))
	viOut := module.MustPortsOf[voiceidmod.Out](voiceid)

	sessions := sessionsmod.New(
		deps,
		modkit.WithPorts(sessionsmod.Ports{
			Writer:   trPorts.Writer,
			Registry: spPorts.Registry,
			Resolver: viOut.Resolver,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		meetingsmod.New(deps),
		transcripts,
		speakers,
		voiceid, // no routes; included so its ports stay discoverable
		sessions,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
