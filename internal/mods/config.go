package mods

import (
	"sync/atomic"

	"github.com/AndresSalinasB/expo-cli/internal/project"
)

// Config is the logical project configuration together with the mods
// registered against it. It lives only in memory; callers own it and pass it
// by reference through registration and evaluation.
type Config struct {
	ProjectRoot string
	App         *project.App

	registry   registry
	evaluating atomic.Bool
}

// Loader resolves a project root to a Config. The config-loading subsystem
// provides it; mods never parses project metadata itself.
type Loader func(projectRoot string) (*Config, error)

// NewConfig returns a Config with an empty registry. A nil app is replaced
// by an empty one.
func NewConfig(projectRoot string, app *project.App) *Config {
	if app == nil {
		app = &project.App{}
	}
	return &Config{ProjectRoot: projectRoot, App: app}
}

// Platforms returns the platforms that have at least one chain, in the order
// they were first registered.
func (c *Config) Platforms() []Platform {
	return append([]Platform(nil), c.registry.platforms...)
}

// FileKeys returns the file keys registered for p in first-registration
// order.
func (c *Config) FileKeys(p Platform) []string {
	return append([]string(nil), c.registry.keys[p]...)
}

// Layers returns the layers registered for (p, fileKey), innermost first.
func (c *Config) Layers(p Platform, fileKey string) []Layer {
	ch := c.registry.chain(p, fileKey)
	if ch == nil {
		return nil
	}
	return ch.layers()
}

// Ignored returns registrations dropped because their platform is not
// supported.
func (c *Config) Ignored() []Registration {
	return append([]Registration(nil), c.registry.ignored...)
}
