// Package module wires transcripts into the API using modkit
package module

import (
	"net/http"

	modkit "minutes/internal/modkit"
	"minutes/internal/modkit/httpkit"
	str "minutes/internal/platform/strings"
	transcriptshttp "minutes/internal/services/transcripts/http"
	transcriptsrepo "minutes/internal/services/transcripts/repo"
	transcriptssvc "minutes/internal/services/transcripts/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *transcriptssvc.Service
}

// New constructs a transcripts module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("transcripts"), modkit.WithPrefix("/transcripts")}, opts...)...)

	o := FromConfig(deps.Cfg)
	svc := transcriptssvc.New(deps.PG, transcriptsrepo.NewPG(), deps.CH, transcriptssvc.Config{
		HardLimit:    o.HardLimit,
		ArchiveTable: o.ArchiveTable,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Writer: svc, Reader: svc, Deleter: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		transcriptshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Service exposes the concrete service for sibling modules that need
// the writer without going through HTTP
func (m *Module) Service() *transcriptssvc.Service { return m.svc }

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
