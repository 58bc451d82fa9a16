package prebuild

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/AndresSalinasB/expo-cli/internal/mods"
	"github.com/AndresSalinasB/expo-cli/internal/properties"
)

// File keys for the native files built-in mods edit.
var (
	GradleProperties = mods.Key[properties.Entries]{
		Platform: mods.Android,
		Name:     "android-gradle-properties",
	}
	PodfileProperties = mods.Key[map[string]string]{
		Platform: mods.IOS,
		Name:     "ios-podfile-properties",
		Default:  func() map[string]string { return map[string]string{} },
	}
)

// GradlePropertiesProvider reads and writes android/gradle.properties.
func GradlePropertiesProvider() mods.Provider[properties.Entries] {
	return mods.Provider[properties.Entries]{
		Path: mods.ProjectPath("android", "gradle.properties"),
		Parse: func(data []byte) (properties.Entries, error) {
			return properties.Parse(data), nil
		},
		Serialize: func(entries properties.Entries) ([]byte, error) {
			if err := properties.Validate(entries); err != nil {
				return nil, err
			}
			return properties.Serialize(entries), nil
		},
	}
}

// PodfilePropertiesProvider reads and writes ios/Podfile.properties.json, a
// flat object of string values.
func PodfilePropertiesProvider() mods.Provider[map[string]string] {
	return mods.Provider[map[string]string]{
		Path:      mods.ProjectPath("ios", "Podfile.properties.json"),
		Parse:     parsePodfileProperties,
		Serialize: serializePodfileProperties,
	}
}

func parsePodfileProperties(data []byte) (map[string]string, error) {
	props := map[string]string{}
	if len(bytes.TrimSpace(data)) == 0 {
		return props, nil
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &props); err != nil {
		return nil, fmt.Errorf("decoding Podfile properties: %w", err)
	}
	return props, nil
}

// serializePodfileProperties writes keys sorted, two-space indented, with a
// trailing newline.
func serializePodfileProperties(props map[string]string) ([]byte, error) {
	if props == nil {
		props = map[string]string{}
	}
	data, err := json.MarshalIndent(props, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding Podfile properties: %w", err)
	}
	return append(data, '\n'), nil
}
