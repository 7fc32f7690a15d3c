package flowdef

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// appName is the single source of truth for the application name; every
// derived identifier (env var, config path) is computed from it.
const appName = "tform"

var envFlowDir = strings.ToUpper(appName) + "_FLOW_DIR"

// ResolveConfigDir returns the base config directory for flow definitions.
// Priority: $TFORM_FLOW_DIR > $XDG_CONFIG_HOME/tform > ~/.config/tform.
func ResolveConfigDir() (string, error) {
	if v := os.Getenv(envFlowDir); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("flowdef: could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// ResolveFlowFiles returns the flow definition files to load: every *.yml
// and *.yaml file directly under configDir/flows, sorted by file name,
// followed by any explicitly named flagFiles. A missing flows
// directory is silently skipped — an explicit flag path still surfaces its
// own error at read time.
func ResolveFlowFiles(configDir string, flagFiles []string) ([]string, error) {
	auto, err := globYAML(filepath.Join(configDir, "flows"))
	if err != nil {
		return nil, err
	}
	return append(auto, flagFiles...), nil
}

// globYAML returns the *.yml/*.yaml files directly under dir. A missing dir
// yields nil, nil rather than an error.
func globYAML(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("flowdef: reading directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files, nil
}

// LoadFile reads and parses a single flow definition file.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("flowdef: reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return Document{}, fmt.Errorf("flowdef: %s: %w", path, err)
	}
	return doc, nil
}
