// Package editor writes the VS Code settings that point rust-analyzer at the
// hypervisor's target and configuration.
package editor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SettingsPath is the settings file location relative to the workspace root.
var SettingsPath = filepath.Join(".vscode", "settings.json")

// Settings is the rust-analyzer configuration written to settings.json.
type Settings struct {
	Target     string            `json:"rust-analyzer.cargo.target"`
	AllTargets bool              `json:"rust-analyzer.check.allTargets"`
	Features   []string          `json:"rust-analyzer.cargo.features"`
	ExtraEnv   map[string]string `json:"rust-analyzer.cargo.extraEnv"`
}

// Default returns the fixed settings payload.
func Default() Settings {
	return Settings{
		Target:     "aarch64-unknown-none-softfloat",
		AllTargets: false,
		Features:   []string{"fs"},
		ExtraEnv: map[string]string{
			"AX_CONFIG_PATH": "${workspaceFolder}/arceos-vmm/.axconfig.toml",
		},
	}
}

// Write creates or overwrites path with s, creating the parent directory.
// Any existing file is replaced without merging.
func Write(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { //nolint:gosec // editor dir needs to be readable
		return fmt.Errorf("creating settings directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // settings file needs to be readable
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// Load reads settings written by Write.
func Load(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path) //nolint:gosec // workspace settings path
	if err != nil {
		return s, fmt.Errorf("reading settings: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing settings JSON: %w", err)
	}
	return s, nil
}
