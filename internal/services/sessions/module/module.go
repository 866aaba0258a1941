// Package module wires sessions into the API using modkit
package module

import (
	"net/http"

	modkit "minutes/internal/modkit"
	"minutes/internal/modkit/httpkit"
	str "minutes/internal/platform/strings"
	sessionsdom "minutes/internal/services/sessions/domain"
	sessionshttp "minutes/internal/services/sessions/http"
	sessionssvc "minutes/internal/services/sessions/service"
	speakersdom "minutes/internal/services/speakers/domain"
	transcriptsdom "minutes/internal/services/transcripts/domain"
	voiceiddom "minutes/internal/services/voiceid/domain"
)

// Ports declares the injected sibling ports this module requires
type Ports struct {
	Writer   transcriptsdom.WriterPort
	Registry speakersdom.RegistryPort
	Resolver voiceiddom.ResolverPort
}

// Out exposes the session port
type Out struct {
	Sessions sessionsdom.SessionPort
}

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

	svc *sessionssvc.Service
}

// New constructs a sessions module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("sessions"), modkit.WithPrefix("/sessions")}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Writer == nil || injected.Registry == nil || injected.Resolver == nil {
		panic("sessions module requires Writer, Registry and Resolver ports")
	}

	o := FromConfig(deps.Cfg)
	svc := sessionssvc.New(injected.Writer, injected.Registry, injected.Resolver, sessionssvc.Config{
		MaxEvents: o.MaxEvents,
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
	m.ports = Out{Sessions: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		sessionshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Service exposes the concrete service
func (m *Module) Service() *sessionssvc.Service { return m.svc }

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
