// Package module wires the feed fleet as a modkit.Module
package module

import (
	"oasis/internal/modkit"
	"oasis/internal/modkit/httpkit"
	modreg "oasis/internal/modkit/module"

	feedsvc "oasis/internal/services/feeds/service"
)

// Name is the registry key of the feeds ports
const Name = "feeds"

// Ports exported by the feeds module
type Ports struct {
	Fleet *feedsvc.Fleet
}

// Module implements modkit.Module for the feed fleet
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New builds the fleet from deps.Catalog; call Fleet.Run to start polling
func New(deps modkit.Deps) *Module {
	fleet := feedsvc.New(feedsvc.Options{
		Catalog: deps.Catalog,
		Metrics: deps.Metrics,
	})
	return &Module{deps: deps, ports: Ports{Fleet: fleet}}
}

// Name returns the module name
func (m *Module) Name() string { return Name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Prefix returns the module route prefix (none)
func (m *Module) Prefix() string { return "" }

// MountRoutes is a no-op: the fleet has no HTTP routes of its own
func (m *Module) MountRoutes(_ httpkit.Router) {}

// Register convenience: allow others to resolve our ports via registry
func Register(deps modkit.Deps) *Module {
	m := New(deps)
	modreg.Register(m.Name(), m.Ports())
	return m
}
