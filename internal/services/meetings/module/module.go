// Package module wires meetings into the API using modkit
package module

import (
	"net/http"

	modkit "minutes/internal/modkit"
	"minutes/internal/modkit/httpkit"
	str "minutes/internal/platform/strings"
	"minutes/internal/services/meetings/domain"
	meetingshttp "minutes/internal/services/meetings/http"
	meetingsrepo "minutes/internal/services/meetings/repo"
	meetingssvc "minutes/internal/services/meetings/service"
)

// Ports exposed by the meetings module
type Ports struct {
	Meetings domain.MeetingPort
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

	svc *meetingssvc.Service
}

// New constructs a meetings module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meetings"), modkit.WithPrefix("/meetings")}, opts...)...)

	svc := meetingssvc.New(deps.PG, meetingsrepo.NewPG())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Meetings: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		meetingshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

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
