package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/jsonc"
	"go.yaml.in/yaml/v3"
)

// ErrNotFound is returned when a project root has no app config file.
var ErrNotFound = errors.New("app config not found")

// ConfigNames lists the app config file names in lookup order.
var ConfigNames = []string{"app.yaml", "app.yml", "app.json"}

// wrapperKey is the optional top-level object an app.json nests its config
// under.
const wrapperKey = "expo"

// Find returns the path of the first app config file present in root.
func Find(root string) (string, error) {
	for _, name := range ConfigNames {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %s)", ErrNotFound, root, strings.Join(ConfigNames, ", "))
}

// Load finds, parses, and validates the app config of the project at root.
func Load(root string) (*App, error) {
	path, err := Find(root)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading app config %s: %w", path, err)
	}

	return Parse(data, path)
}

// Parse decodes app config data. The file name selects the format: .json is
// read as JSON with comments and trailing commas allowed, anything else as
// YAML.
func Parse(data []byte, name string) (*App, error) {
	raw, err := decode(data, name)
	if err != nil {
		return nil, err
	}

	if inner, ok := raw[wrapperKey].(map[string]any); ok && len(raw) == 1 {
		raw = inner
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting app config %s to JSON: %w", name, err)
	}

	issues, err := validateJSON(jsonData)
	if err != nil {
		return nil, fmt.Errorf("validating app config %s: %w", name, err)
	}

	var app App
	if len(issues) == 0 {
		if err := json.Unmarshal(jsonData, &app); err != nil {
			return nil, fmt.Errorf("decoding app config %s: %w", name, err)
		}
		issues = append(issues, versionIssues(&app)...)
	}

	if len(issues) > 0 {
		return nil, &ValidationError{File: name, Issues: issues}
	}
	return &app, nil
}

func decode(data []byte, name string) (map[string]any, error) {
	var raw map[string]any
	if strings.EqualFold(filepath.Ext(name), ".json") {
		if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
			return nil, fmt.Errorf("parsing app config %s: %w", name, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing app config %s: %w", name, err)
		}
	}
	if raw == nil {
		return nil, fmt.Errorf("parsing app config %s: document is empty", name)
	}
	return raw, nil
}

func versionIssues(app *App) []Issue {
	var issues []Issue
	if app.Version != "" {
		if _, err := semver.NewVersion(app.Version); err != nil {
			issues = append(issues, Issue{Path: "/version", Keyword: "semver", Message: err.Error()})
		}
	}
	if app.SDKVersion != "" {
		if _, err := semver.NewVersion(app.SDKVersion); err != nil {
			issues = append(issues, Issue{Path: "/sdkVersion", Keyword: "semver", Message: err.Error()})
		}
	}
	return issues
}
