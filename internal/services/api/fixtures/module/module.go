// Package module wires the fixtures API into the router using modkit
package module

import (
	"net/http"

	modkit "oasis/internal/modkit"
	"oasis/internal/modkit/httpkit"
	str "oasis/internal/platform/strings"

	xhttp "oasis/internal/services/api/fixtures/http"
	xsvc "oasis/internal/services/api/fixtures/service"
	fdom "oasis/internal/services/feeds/domain"
)

// Module implements the fixtures API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc xsvc.Service
}

// Ports declares the feed ports this module reads
// a nil Feed serves every route as unavailable
type Ports struct {
	Feed fdom.Feed[fdom.FixtureBoard]
}

// New constructs the fixtures module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("fixtures"),
		modkit.WithPrefix("/fixtures"),
	}, opts...)...)

	injected, ok := b.Ports.(Ports)
	if !ok {
		panic("fixtures API module requires feed Ports (from services/feeds)")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       xsvc.New(injected.Feed),
	}
	m.ports = m.svc

	external := b.Register
	m.register = func(r httpkit.Router) {
		xhttp.Register(r, m.svc, injected.Feed)
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
