// Package module wires the matches API into the router using modkit
package module

import (
	"net/http"

	modkit "oasis/internal/modkit"
	"oasis/internal/modkit/httpkit"
	str "oasis/internal/platform/strings"

	"oasis/internal/core/record"
	mhttp "oasis/internal/services/api/matches/http"
	msvc "oasis/internal/services/api/matches/service"
	fdom "oasis/internal/services/feeds/domain"
)

// Module implements the matches API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc msvc.Service
}

// Ports declares the feed ports this module reads
// a nil Feed serves every route as unavailable
type Ports struct {
	Feed   fdom.Feed[[]record.Record]
	Detail fdom.DetailPort
}

// New constructs the matches module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("matches"),
		modkit.WithPrefix("/matches"),
	}, opts...)...)

	injected, ok := b.Ports.(Ports)
	if !ok {
		panic("matches API module requires feed Ports (from services/feeds)")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       msvc.New(injected.Feed, injected.Detail),
	}
	m.ports = m.svc

	external := b.Register
	m.register = func(r httpkit.Router) {
		mhttp.Register(r, m.svc, injected.Feed)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
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

// Middlewares returns module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module service port
func (m *Module) Ports() any { return m.ports }
