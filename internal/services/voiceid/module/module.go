// Package module wires voice identity resolution using modkit
package module

import (
	"net/http"

	modkit "minutes/internal/modkit"
	"minutes/internal/modkit/httpkit"
	str "minutes/internal/platform/strings"
	speakersdom "minutes/internal/services/speakers/domain"
	"minutes/internal/services/voiceid/domain"
	"minutes/internal/services/voiceid/fingerprint"
	voiceidrepo "minutes/internal/services/voiceid/repo"
	voiceidsvc "minutes/internal/services/voiceid/service"
)

// Ports declares the injected speaker analysis port this module requires
type Ports struct {
	Analysis speakersdom.AnalysisPort
}

// Out exposes the resolver to sibling modules
type Out struct {
	Resolver domain.ResolverPort
}

// Module implements the modkit.Module interface.
// voiceid has no HTTP surface; resolution is triggered by sessions
type Module struct {
	deps  modkit.Deps
	name  string
	ports any

	resolver *voiceidsvc.Resolver
}

// New constructs a voiceid module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("voiceid")}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Analysis == nil {
		panic("voiceid module requires Analysis port (from services/speakers)")
	}

	o := FromConfig(deps.Cfg)
	resolver := voiceidsvc.NewResolver(
		deps.PG,
		voiceidrepo.NewPG(),
		voiceidsvc.ClipProvider{Base: o.ClipBaseURL},
		fingerprint.New(o.FingerprintURL, o.FingerprintKey, o.FingerprintTimeout),
		injected.Analysis,
		voiceidsvc.Config{
			MinSegmentSeconds: o.MinSegmentSeconds,
			TopN:              o.TopN,
		},
	)

	m := &Module{deps: deps, name: b.Name, resolver: resolver}
	m.ports = Out{Resolver: resolver}
	return m
}

// Resolver exposes the concrete resolver for shutdown draining
func (m *Module) Resolver() *voiceidsvc.Resolver { return m.resolver }

// Name implements modkit.Module
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix implements modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares implements modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
