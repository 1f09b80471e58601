// Package modkit provides the building blocks service modules share:
// core deps, build options, and the module contract
package modkit

import (
	"asolens/internal/modkit/repokit"
	"asolens/internal/platform/config"
	"asolens/internal/platform/logger"
)

// Deps holds the cross-cutting dependencies handed to every module.
// Pure wiring; optional backends stay nil when not configured
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}
