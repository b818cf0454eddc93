package lock

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the lock file format version written by Save.
const CurrentVersion = 1

// Load reads a crates.lock.yaml file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the crates lock file path
	if err != nil {
		return nil, fmt.Errorf("reading lock file: %w", err)
	}
	return Parse(data)
}

// Parse parses crates.lock.yaml content.
func Parse(data []byte) (*File, error) {
	var lf File
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing lock YAML: %w", err)
	}
	if lf.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported lock version: %d (expected %d)", lf.Version, CurrentVersion)
	}
	for name, e := range lf.Components {
		if e == nil || e.Commit == "" {
			return nil, fmt.Errorf("lock: components.%s.commit is required", name)
		}
	}
	return &lf, nil
}

// Save writes the lock file to disk.
func Save(path string, lf *File) error {
	data, err := yaml.Marshal(lf)
	if err != nil {
		return fmt.Errorf("marshaling lock file: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // lock file needs to be readable
		return fmt.Errorf("writing lock file: %w", err)
	}
	return nil
}

// Drift returns the pinned commit of name when it differs from current.
// It returns "" when the component is not pinned or matches.
func (lf *File) Drift(name, current string) string {
	if lf == nil {
		return ""
	}
	e, ok := lf.Components[name]
	if !ok || current == "" || e.Commit == current {
		return ""
	}
	return e.Commit
}
