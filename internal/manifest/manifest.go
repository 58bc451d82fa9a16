package manifest

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/AndresSalinasB/expo-cli/internal/mods"
)

// Manifest is the public view of an app config. Consumers treat it as an
// opaque mapping.
type Manifest map[string]any

// FromConfig builds the public manifest for cfg. Only fields safe to
// publish are included; native file settings stay private.
func FromConfig(cfg *mods.Config) (Manifest, error) {
	if cfg == nil || cfg.App == nil {
		return nil, errors.New("building manifest: no app config")
	}
	app := cfg.App

	m := Manifest{
		"name": app.Name,
		"slug": app.Slug,
	}

	if app.Version != "" {
		v, err := semver.NewVersion(app.Version)
		if err != nil {
			return nil, fmt.Errorf("building manifest: version %q: %w", app.Version, err)
		}
		m["version"] = v.String()
	}
	if app.SDKVersion != "" {
		m["sdkVersion"] = app.SDKVersion
	}

	platforms := app.Platforms
	if len(platforms) == 0 {
		for _, p := range mods.SupportedPlatforms() {
			platforms = append(platforms, string(p))
		}
	}
	m["platforms"] = platforms

	if len(app.Extra) > 0 {
		m["extra"] = app.Extra
	}
	return m, nil
}

// Marshal encodes m as compact JSON. Object keys are sorted, so equal
// manifests always produce equal bytes.
func Marshal(m Manifest) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshaling manifest: %w", err)
	}
	return data, nil
}
