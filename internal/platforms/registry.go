package platforms

import (
	"github.com/jonesrussell/content-publisher/internal/config"
	"github.com/jonesrussell/content-publisher/internal/logger"
)

// Registry holds one adapter per enabled platform, keyed by platform
// identifier. It is constructed once at startup and immutable afterwards.
// The zero value is an empty registry ready for Register calls.
type Registry struct {
	adapters map[string]Adapter
	order    []string
}

// NewRegistry builds a registry from configuration: one adapter per
// platform whose required credentials are all present, in registration
// order (webflow, wordpress, linkedin, twitter).
func NewRegistry(cfg *config.Config, log logger.Logger) *Registry {
	r := &Registry{adapters: make(map[string]Adapter)}
	timeout := cfg.Limits.PublishTimeout

	if cfg.IsPlatformConfigured(config.PlatformWebflow) {
		r.Register(NewWebflow(cfg.Platforms.Webflow, timeout, log))
	}
	if cfg.IsPlatformConfigured(config.PlatformWordPress) {
		r.Register(NewWordPress(cfg.Platforms.WordPress, timeout, log))
	}
	if cfg.IsPlatformConfigured(config.PlatformLinkedIn) {
		r.Register(NewStub(config.PlatformLinkedIn, []string{"access_token", "user_id"}, cfg.Credentials(config.PlatformLinkedIn)))
	}
	if cfg.IsPlatformConfigured(config.PlatformTwitter) {
		r.Register(NewStub(config.PlatformTwitter, []string{"api_key", "api_secret", "access_token", "access_token_secret"}, cfg.Credentials(config.PlatformTwitter)))
	}

	log.Info("Platform registry initialized", logger.Strings("platforms", r.Names()))
	return r
}

// Register adds an adapter under its platform name. Registering the same
// name twice replaces the adapter but keeps its position.
func (r *Registry) Register(adapter Adapter) {
	if r.adapters == nil {
		r.adapters = make(map[string]Adapter)
	}
	name := adapter.Name()
	if _, exists := r.adapters[name]; !exists {
		r.order = append(r.order, name)
	}
	r.adapters[name] = adapter
}

// Get returns the adapter for a platform name.
func (r *Registry) Get(name string) (Adapter, bool) {
	adapter, ok := r.adapters[name]
	return adapter, ok
}

// Names returns the registered platform names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered adapters.
func (r *Registry) Len() int {
	return len(r.adapters)
}
