package prebuild

import (
	"context"
	"strconv"

	"github.com/AndresSalinasB/expo-cli/internal/mods"
	"github.com/AndresSalinasB/expo-cli/internal/project"
	"github.com/AndresSalinasB/expo-cli/internal/properties"
)

// Property names the built-in mods own.
const (
	HermesEnabledKey  = "hermesEnabled"
	NewArchEnabledKey = "newArchEnabled"
	JSEngineKey       = "expo.jsEngine"
)

// WithBuiltins registers the content mods derived from cfg.App. Each one
// upserts, so running them over their own output changes nothing.
func WithBuiltins(cfg *mods.Config) *mods.Config {
	mods.Apply(cfg, GradleProperties, "js-engine", withGradleJSEngine)
	mods.Apply(cfg, GradleProperties, "new-arch", withGradleNewArch)
	mods.Apply(cfg, GradleProperties, "gradle-properties", withGradleUserProperties)

	mods.Apply(cfg, PodfileProperties, "js-engine", withPodfileJSEngine)
	mods.Apply(cfg, PodfileProperties, "new-arch", withPodfileNewArch)
	mods.Apply(cfg, PodfileProperties, "podfile-properties", withPodfileUserProperties)
	return cfg
}

// WithBaseMods registers the read/write boundary for every file key. It
// must run after all content mods.
func WithBaseMods(cfg *mods.Config) *mods.Config {
	mods.WithBaseMod(cfg, GradleProperties, GradlePropertiesProvider())
	mods.WithBaseMod(cfg, PodfileProperties, PodfilePropertiesProvider())
	return cfg
}

func withGradleJSEngine(_ context.Context, req *mods.Request[properties.Entries]) (*mods.Request[properties.Entries], error) {
	hermes := req.Config.App.AndroidJSEngine() == project.EngineHermes
	req.Results.Upsert(HermesEnabledKey, strconv.FormatBool(hermes))
	return req, nil
}

func withGradleNewArch(_ context.Context, req *mods.Request[properties.Entries]) (*mods.Request[properties.Entries], error) {
	if v := req.Config.App.NewArchEnabled; v != nil {
		req.Results.Upsert(NewArchEnabledKey, strconv.FormatBool(*v))
	}
	return req, nil
}

func withGradleUserProperties(_ context.Context, req *mods.Request[properties.Entries]) (*mods.Request[properties.Entries], error) {
	for _, kv := range req.Config.App.GradleProperties() {
		req.Results.Upsert(kv[0], kv[1])
	}
	return req, nil
}

func withPodfileJSEngine(_ context.Context, req *mods.Request[map[string]string]) (*mods.Request[map[string]string], error) {
	req.Results = ensure(req.Results)
	req.Results[JSEngineKey] = req.Config.App.IOSJSEngine()
	return req, nil
}

func withPodfileNewArch(_ context.Context, req *mods.Request[map[string]string]) (*mods.Request[map[string]string], error) {
	if v := req.Config.App.NewArchEnabled; v != nil {
		req.Results = ensure(req.Results)
		req.Results[NewArchEnabledKey] = strconv.FormatBool(*v)
	}
	return req, nil
}

func withPodfileUserProperties(_ context.Context, req *mods.Request[map[string]string]) (*mods.Request[map[string]string], error) {
	pairs := req.Config.App.PodfileProperties()
	if len(pairs) == 0 {
		return req, nil
	}
	req.Results = ensure(req.Results)
	for _, kv := range pairs {
		req.Results[kv[0]] = kv[1]
	}
	return req, nil
}

func ensure(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
