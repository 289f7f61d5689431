// Package modkit provides module wiring and core deps
package modkit

import (
	"oasis/internal/platform/config"
	"oasis/internal/platform/config/catalog"
	"oasis/internal/platform/logger"
	"oasis/internal/platform/metrics"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	Catalog catalog.Catalog
	Metrics *metrics.Metrics
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check Metrics
func (d Deps) ZeroOK() bool { return true }
