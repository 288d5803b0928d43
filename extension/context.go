// context.go defines the Context interface for extension access to llmedit
// internals.
//
// Separated from extension.go to isolate dependency injection concerns.
// The Context provides a controlled surface area for extensions - they can
// access what they need without reaching into arbitrary internals.
//
// Design: Context uses an interface to enable testing with mock implementations.
// Extensions receive Context during Init(), not at construction, to support
// the two-phase initialization pattern where extensions register before
// the service is available.

package extension

import (
	"github.com/jpl-au/llmedit/internal/config"
	"github.com/jpl-au/llmedit/internal/service"
)

// Context provides extensions controlled access to llmedit internals.
type Context interface {
	// Service returns the file edit service. It may be nil for
	// standalone commands that run without a workspace.
	Service() service.Service

	// Config returns user configuration for respecting user preferences.
	Config() *config.Config
}

// extContext implements Context.
type extContext struct {
	svc service.Service
	cfg *config.Config
}

// NewContext creates a new extension context. When cfg is nil the
// service's configuration is used.
func NewContext(svc service.Service, cfg *config.Config) Context {
	if cfg == nil && svc != nil {
		cfg = svc.Config()
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &extContext{svc: svc, cfg: cfg}
}

// Service returns the file edit service.
func (c *extContext) Service() service.Service {
	return c.svc
}

// Config returns the loaded user configuration.
func (c *extContext) Config() *config.Config {
	return c.cfg
}
