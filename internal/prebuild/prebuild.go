package prebuild

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AndresSalinasB/expo-cli/internal/mods"
	"github.com/AndresSalinasB/expo-cli/internal/project"
)

// Plugin registers mods against a config. Plugins run before the built-ins,
// so built-in content mods wrap plugin mods and see their results.
type Plugin func(cfg *mods.Config) *mods.Config

// Options configures Run.
type Options struct {
	// Logger receives chain diagnostics. Nil discards them.
	Logger *slog.Logger
	// Loader resolves the project root. Nil means Load.
	Loader mods.Loader
	// Plugins are applied in order before the built-in mods.
	Plugins []Plugin
	// SkipBuiltins leaves only plugins and base mods registered.
	SkipBuiltins bool
	// DefaultPlatforms is used when neither the caller nor the app config
	// names any platform. Nil means every supported platform.
	DefaultPlatforms []mods.Platform
}

// Load reads the app config at root into a fresh mods config.
func Load(root string) (*mods.Config, error) {
	app, err := project.Load(root)
	if err != nil {
		return nil, err
	}
	return mods.NewConfig(root, app), nil
}

var _ mods.Loader = Load

// Run loads the project at root, registers plugins, built-in mods, and base
// mods in that order, and evaluates the requested platforms. With no
// platforms it uses the app's platforms list, then opts.DefaultPlatforms,
// then every supported platform.
//
// The Evaluation is returned whenever loading succeeded, even if chains
// failed.
func Run(ctx context.Context, root string, platforms []mods.Platform, opts Options) (*mods.Evaluation, error) {
	loader := opts.Loader
	if loader == nil {
		loader = Load
	}

	cfg, err := loader(root)
	if err != nil {
		return nil, fmt.Errorf("loading project %s: %w", root, err)
	}

	for _, plugin := range opts.Plugins {
		cfg = plugin(cfg)
	}
	if !opts.SkipBuiltins {
		cfg = WithBuiltins(cfg)
	}
	cfg = WithBaseMods(cfg)

	if len(platforms) == 0 {
		platforms = DefaultPlatforms(cfg.App)
		if len(cfg.App.Platforms) == 0 && len(opts.DefaultPlatforms) > 0 {
			platforms = opts.DefaultPlatforms
		}
	}

	ev := mods.NewEvaluator(mods.WithLogger(opts.Logger))
	return ev.Evaluate(ctx, cfg, platforms)
}

// DefaultPlatforms returns the platforms listed in the app config, or every
// supported platform when it lists none. Entries are kept as written;
// Evaluate reports the ones mods cannot target.
func DefaultPlatforms(app *project.App) []mods.Platform {
	if app == nil || len(app.Platforms) == 0 {
		return mods.SupportedPlatforms()
	}
	out := make([]mods.Platform, 0, len(app.Platforms))
	for _, name := range app.Platforms {
		out = append(out, mods.Platform(name))
	}
	return out
}
