// @title         Oasis API
// @version       0.1.0
// @description   Live scores, football news, fixtures and movie shelves served from in-memory feed snapshots

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"oasis/internal/modkit"
	"oasis/internal/modkit/module"
	"oasis/internal/platform/config"
	"oasis/internal/platform/logger"
	"oasis/internal/platform/metrics"
	phttp "oasis/internal/platform/net/http"

	"oasis/internal/services/api"
	feedsmod "oasis/internal/services/feeds/module"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	opts := logger.FromEnv()
	if opts.Service == "" {
		opts.Service = "oasis-api"
	}
	logger.Init(opts)
	l := logger.Get()

	cat, err := feedsmod.Catalog(root)
	if err != nil {
		l.Fatal().Err(err).Msg("sources catalogue invalid")
	}

	m := metrics.New("oasis")
	feeds := feedsmod.Register(modkit.Deps{
		Log:     *l,
		Cfg:     root,
		Catalog: cat,
		Metrics: m,
	})
	var enabled []string
	for _, n := range cat.Names() {
		if cat.Enabled(n) {
			enabled = append(enabled, n)
		}
	}
	l.Info().Strs("sources", enabled).Msg("sources enabled")

	ports := module.MustPortsOf[feedsmod.Ports](feeds)

	// http server (reads CORE_API_API_PORT / CORE_API_SHUTDOWN_GRACE)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Logger:         l,
			Metrics:        m,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the server and the schedulers share one lifetime; either failing stops both
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error { return ports.Fleet.Run(gctx) })

	if err := g.Wait(); err != nil {
		l.Error().Err(err).Msg("oasis-api stopped")
		os.Exit(1)
	}
	l.Info().Msg("oasis-api stopped")
}
