// Command oasis-peek runs one fetch against the configured sources and prints the view as JSON
package main

import (
	"os"

	"oasis/internal/platform/config"
	"oasis/internal/platform/config/catalog"
	"oasis/internal/platform/logger"

	feedsmod "oasis/internal/services/feeds/module"
)

func main() {
	root := config.New()
	load := func() (catalog.Catalog, error) { return feedsmod.Catalog(root) }

	if err := newRootCmd(load, os.Stdout).Execute(); err != nil {
		logger.Get().Error().Err(err).Msg("oasis-peek failed")
		os.Exit(1)
	}
}
