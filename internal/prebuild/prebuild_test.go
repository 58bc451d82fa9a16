package prebuild

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AndresSalinasB/expo-cli/internal/mods"
	"github.com/AndresSalinasB/expo-cli/internal/project"
	"github.com/AndresSalinasB/expo-cli/internal/properties"
)

const appYAML = `name: Demo
slug: demo
version: 1.0.0
newArchEnabled: true
android:
  gradleProperties:
    org.gradle.jvmargs: -Xmx4g
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func newProject(t *testing.T, app string) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.yaml"), app)
	return root
}

func TestRun_WritesNativeFiles(t *testing.T) {
	root := newProject(t, appYAML)
	gradle := filepath.Join(root, "android", "gradle.properties")
	writeFile(t, gradle, "# Project-wide Gradle settings.\norg.gradle.jvmargs=-Xmx2048m\nhermesEnabled=false\n")

	ev, err := Run(context.Background(), root, nil, Options{})
	require.NoError(t, err)

	require.Equal(t,
		"# Project-wide Gradle settings.\norg.gradle.jvmargs=-Xmx4g\nhermesEnabled=true\nnewArchEnabled=true\n",
		readFile(t, gradle))
	require.Equal(t,
		"{\n  \"expo.jsEngine\": \"hermes\",\n  \"newArchEnabled\": \"true\"\n}\n",
		readFile(t, filepath.Join(root, "ios", "Podfile.properties.json")))

	require.Equal(t, []string{GradleProperties.Name}, ev.Executed[mods.Android])
	require.Equal(t, []string{PodfileProperties.Name}, ev.Executed[mods.IOS])

	gradleResult := ev.Result(mods.Android, GradleProperties.Name)
	require.True(t, gradleResult.Read)
	require.True(t, gradleResult.Changed())
}

func TestRun_SecondRunChangesNothing(t *testing.T) {
	root := newProject(t, appYAML)

	_, err := Run(context.Background(), root, nil, Options{})
	require.NoError(t, err)
	gradle := readFile(t, filepath.Join(root, "android", "gradle.properties"))
	podfile := readFile(t, filepath.Join(root, "ios", "Podfile.properties.json"))

	ev, err := Run(context.Background(), root, nil, Options{})
	require.NoError(t, err)
	require.Equal(t, gradle, readFile(t, filepath.Join(root, "android", "gradle.properties")))
	require.Equal(t, podfile, readFile(t, filepath.Join(root, "ios", "Podfile.properties.json")))

	for _, res := range ev.Results {
		require.False(t, res.Changed(), "%s/%s changed on second run", res.Platform, res.FileKey)
	}
}

func TestRun_RequestedPlatformsOnly(t *testing.T) {
	root := newProject(t, "name: Demo\nslug: demo\n")

	ev, err := Run(context.Background(), root, []mods.Platform{mods.IOS}, Options{})
	require.NoError(t, err)

	require.Nil(t, ev.Result(mods.Android, GradleProperties.Name))
	_, statErr := os.Stat(filepath.Join(root, "android"))
	require.True(t, os.IsNotExist(statErr))

	props, ok := mods.ResultsFor(ev, PodfileProperties)
	require.True(t, ok)
	require.Equal(t, map[string]string{JSEngineKey: project.EngineHermes}, props)
}

func TestRun_AppPlatformsAreDefault(t *testing.T) {
	root := newProject(t, "name: Demo\nslug: demo\nplatforms: [android, web]\n")

	ev, err := Run(context.Background(), root, nil, Options{})
	require.NoError(t, err)

	require.Equal(t, []mods.Platform{"web"}, ev.Unsupported)
	require.Nil(t, ev.Result(mods.IOS, PodfileProperties.Name))
	require.NotNil(t, ev.Result(mods.Android, GradleProperties.Name))
}

func TestRun_PluginsRunBeforeBuiltins(t *testing.T) {
	root := newProject(t, "name: Demo\nslug: demo\n")

	plugin := func(cfg *mods.Config) *mods.Config {
		return mods.Apply(cfg, GradleProperties, "custom", func(_ context.Context, req *mods.Request[properties.Entries]) (*mods.Request[properties.Entries], error) {
			req.Results.Upsert("custom", "1")
			req.Results.Upsert(HermesEnabledKey, "false")
			return req, nil
		})
	}

	_, err := Run(context.Background(), root, []mods.Platform{mods.Android}, Options{Plugins: []Plugin{plugin}})
	require.NoError(t, err)
	require.Equal(t, "custom=1\nhermesEnabled=true\n",
		readFile(t, filepath.Join(root, "android", "gradle.properties")))
}

func TestRun_InvalidEntryFailsWrite(t *testing.T) {
	root := newProject(t, "name: Demo\nslug: demo\n")

	plugin := func(cfg *mods.Config) *mods.Config {
		return mods.Apply(cfg, GradleProperties, "bad", func(_ context.Context, req *mods.Request[properties.Entries]) (*mods.Request[properties.Entries], error) {
			req.Results.Append(properties.Property("#not-a-key", "x"))
			return req, nil
		})
	}

	ev, err := Run(context.Background(), root, nil, Options{Plugins: []Plugin{plugin}})
	require.ErrorIs(t, err, mods.ErrFileWrite)
	require.Len(t, ev.Failures(), 1)

	_, statErr := os.Stat(filepath.Join(root, "android", "gradle.properties"))
	require.True(t, os.IsNotExist(statErr))
	require.FileExists(t, filepath.Join(root, "ios", "Podfile.properties.json"))
}

func TestRun_SkipBuiltins(t *testing.T) {
	root := newProject(t, appYAML)

	ev, err := Run(context.Background(), root, []mods.Platform{mods.Android}, Options{SkipBuiltins: true})
	require.NoError(t, err)

	got, ok := mods.ResultsFor(ev, GradleProperties)
	require.True(t, ok)
	require.Empty(t, got)
}

func TestRun_LoaderError(t *testing.T) {
	_, err := Run(context.Background(), t.TempDir(), nil, Options{})
	require.ErrorIs(t, err, project.ErrNotFound)

	boom := errors.New("boom")
	_, err = Run(context.Background(), "/nowhere", nil, Options{
		Loader: func(string) (*mods.Config, error) { return nil, boom },
	})
	require.ErrorIs(t, err, boom)
}

func TestRun_CustomLoader(t *testing.T) {
	root := t.TempDir()
	arch := false
	loader := func(r string) (*mods.Config, error) {
		return mods.NewConfig(r, &project.App{Name: "x", Slug: "x", JSEngine: project.EngineJSC, NewArchEnabled: &arch}), nil
	}

	ev, err := Run(context.Background(), root, []mods.Platform{mods.Android}, Options{Loader: loader})
	require.NoError(t, err)

	got, _ := mods.ResultsFor(ev, GradleProperties)
	v, ok := got.Get(HermesEnabledKey)
	require.True(t, ok)
	require.Equal(t, "false", v)
	v, ok = got.Get(NewArchEnabledKey)
	require.True(t, ok)
	require.Equal(t, "false", v)
}

func TestPodfileProperties_Codec(t *testing.T) {
	props, err := parsePodfileProperties([]byte("{\n  // generated\n  \"b\": \"2\",\n  \"a\": \"1\",\n}\n"))
	require.NoError(t, err)
	require.Equal(t, map[string]string{"a": "1", "b": "2"}, props)

	data, err := serializePodfileProperties(props)
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": \"1\",\n  \"b\": \"2\"\n}\n", string(data))

	empty, err := parsePodfileProperties([]byte("  \n"))
	require.NoError(t, err)
	require.Empty(t, empty)

	_, err = parsePodfileProperties([]byte(`{"a": 1}`))
	require.Error(t, err)
}

func TestRun_FallbackPlatforms(t *testing.T) {
	root := newProject(t, "name: Demo\nslug: demo\n")

	ev, err := Run(context.Background(), root, nil, Options{DefaultPlatforms: []mods.Platform{mods.Android}})
	require.NoError(t, err)
	require.NotNil(t, ev.Result(mods.Android, GradleProperties.Name))
	require.Nil(t, ev.Result(mods.IOS, PodfileProperties.Name))
}

func TestDefaultPlatforms(t *testing.T) {
	require.Equal(t, mods.SupportedPlatforms(), DefaultPlatforms(nil))
	require.Equal(t, []mods.Platform{mods.IOS}, DefaultPlatforms(&project.App{Platforms: []string{"ios"}}))
}
