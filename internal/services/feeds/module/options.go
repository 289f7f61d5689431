package module

import (
	"oasis/internal/platform/config"
	"oasis/internal/platform/config/catalog"
)

// Catalog loads the sources catalogue from the environment
// OASIS_SOURCES_FILE optional YAML overlay on the compiled-in defaults
// OASIS_TMDB_API_KEY, OASIS_FOOTBALLDATA_API_KEY, OASIS_YOUTUBE_API_KEY enable the keyed sources
// OASIS_USER_AGENT and OASIS_HTTP_TIMEOUT tune the shared upstream client
func Catalog(cfg config.Conf) (catalog.Catalog, error) {
	return catalog.FromEnv(cfg.Prefix("OASIS_"))
}
