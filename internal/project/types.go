package project

import (
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
)

// JS engines accepted by jsEngine fields.
const (
	EngineHermes = "hermes"
	EngineJSC    = "jsc"
)

// DefaultJSEngine applies when neither the platform nor the app sets one.
const DefaultJSEngine = EngineHermes

// App is the logical configuration of a project.
type App struct {
	Name           string         `yaml:"name" json:"name"`
	Slug           string         `yaml:"slug" json:"slug"`
	Version        string         `yaml:"version,omitempty" json:"version,omitempty"`
	SDKVersion     string         `yaml:"sdkVersion,omitempty" json:"sdkVersion,omitempty"`
	Platforms      []string       `yaml:"platforms,omitempty" json:"platforms,omitempty"`
	JSEngine       string         `yaml:"jsEngine,omitempty" json:"jsEngine,omitempty"`
	NewArchEnabled *bool          `yaml:"newArchEnabled,omitempty" json:"newArchEnabled,omitempty"`
	Android        *AndroidConfig `yaml:"android,omitempty" json:"android,omitempty"`
	IOS            *IOSConfig     `yaml:"ios,omitempty" json:"ios,omitempty"`
	Extra          map[string]any `yaml:"extra,omitempty" json:"extra,omitempty"`
}

// AndroidConfig holds the android section of the app config.
type AndroidConfig struct {
	Package          string            `yaml:"package,omitempty" json:"package,omitempty"`
	JSEngine         string            `yaml:"jsEngine,omitempty" json:"jsEngine,omitempty"`
	GradleProperties map[string]string `yaml:"gradleProperties,omitempty" json:"gradleProperties,omitempty"`
}

// IOSConfig holds the ios section of the app config.
type IOSConfig struct {
	BundleIdentifier  string            `yaml:"bundleIdentifier,omitempty" json:"bundleIdentifier,omitempty"`
	JSEngine          string            `yaml:"jsEngine,omitempty" json:"jsEngine,omitempty"`
	PodfileProperties map[string]string `yaml:"podfileProperties,omitempty" json:"podfileProperties,omitempty"`
}

// AndroidJSEngine returns the engine for android: android.jsEngine, then
// jsEngine, then DefaultJSEngine.
func (a *App) AndroidJSEngine() string {
	if a.Android != nil && a.Android.JSEngine != "" {
		return a.Android.JSEngine
	}
	return a.jsEngine()
}

// IOSJSEngine returns the engine for ios: ios.jsEngine, then jsEngine, then
// DefaultJSEngine.
func (a *App) IOSJSEngine() string {
	if a.IOS != nil && a.IOS.JSEngine != "" {
		return a.IOS.JSEngine
	}
	return a.jsEngine()
}

func (a *App) jsEngine() string {
	if a.JSEngine != "" {
		return a.JSEngine
	}
	return DefaultJSEngine
}

// GradleProperties returns android.gradleProperties as key/value pairs
// sorted by key.
func (a *App) GradleProperties() [][2]string {
	if a.Android == nil {
		return nil
	}
	return sortedPairs(a.Android.GradleProperties)
}

// PodfileProperties returns ios.podfileProperties as key/value pairs sorted
// by key.
func (a *App) PodfileProperties() [][2]string {
	if a.IOS == nil {
		return nil
	}
	return sortedPairs(a.IOS.PodfileProperties)
}

// SemVer parses the version field. An empty version is an error.
func (a *App) SemVer() (*semver.Version, error) {
	if a.Version == "" {
		return nil, fmt.Errorf("app %q has no version", a.Slug)
	}
	v, err := semver.NewVersion(a.Version)
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", a.Version, err)
	}
	return v, nil
}

func sortedPairs(m map[string]string) [][2]string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([][2]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, [2]string{k, m[k]})
	}
	return pairs
}
