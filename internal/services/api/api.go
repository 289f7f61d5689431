// Package api provides the HTTP API for the application
package api

import (
	"net/http"

	"oasis/internal/adapters/sources/tmdb"
	"oasis/internal/core/record"
	"oasis/internal/core/refresh"
	"oasis/internal/platform/config"
	"oasis/internal/platform/logger"
	"oasis/internal/platform/metrics"
	phttp "oasis/internal/platform/net/http"

	"oasis/internal/modkit"
	"oasis/internal/modkit/httpkit"
	"oasis/internal/modkit/module"
	"oasis/internal/modkit/swaggerkit"

	fixturesmod "oasis/internal/services/api/fixtures/module"
	matchesmod "oasis/internal/services/api/matches/module"
	metamod "oasis/internal/services/api/meta/module"
	newsmod "oasis/internal/services/api/news/module"
	titlesmod "oasis/internal/services/api/titles/module"
	fdom "oasis/internal/services/feeds/domain"
	feedsmod "oasis/internal/services/feeds/module"
	feedsvc "oasis/internal/services/feeds/service"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	Fleet          *feedsvc.Fleet // nil resolves the feeds ports from the module registry
	Metrics        *metrics.Metrics
	EnableSwagger  bool
	EnableProfiler bool
}

// feedOf keeps a disabled scheduler a nil interface so modules can tell it apart
func feedOf[T any](s *refresh.Scheduler[T]) fdom.Feed[T] {
	if s == nil {
		return nil
	}
	return s
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:     opt.Config,
		Metrics: opt.Metrics,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	fleet := opt.Fleet
	if fleet == nil {
		if p, ok := module.PortsAs[feedsmod.Ports](feedsmod.Name); ok && p.Fleet != nil {
			fleet = p.Fleet
		} else {
			fleet = &feedsvc.Fleet{}
		}
	}

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Health: fleet})),
		matchesmod.New(deps, modkit.WithPorts(matchesmod.Ports{
			Feed:   feedOf[[]record.Record](fleet.Matches),
			Detail: fleet,
		})),
		newsmod.New(deps, modkit.WithPorts(newsmod.Ports{Feed: feedOf[[]record.Record](fleet.News)})),
		titlesmod.New(deps, modkit.WithPorts(titlesmod.Ports{Feed: feedOf[tmdb.Library](fleet.Titles)})),
		fixturesmod.New(deps, modkit.WithPorts(fixturesmod.Ports{Feed: feedOf[fdom.FixtureBoard](fleet.Fixtures)})),
	}

	stack := httpkit.CommonStack()
	if opt.Metrics != nil {
		stack = append([]func(http.Handler) http.Handler{opt.Metrics.Middleware()}, stack...)
		r.Get("/metrics", opt.Metrics.Handler().ServeHTTP)
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		// Swagger + profiler
		if opt.EnableSwagger {
			swaggerkit.Register(moduleTags(mods))
		}
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		// mount module routes under each Prefix()
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}

// moduleTags lists the mounted modules as OpenAPI tags
func moduleTags(mods []module.Module) swaggerkit.SpecMutator {
	tags := make([]any, 0, len(mods))
	for _, m := range mods {
		tags = append(tags, map[string]any{"name": m.Name()})
	}
	return func(spec map[string]any) { spec["tags"] = tags }
}
