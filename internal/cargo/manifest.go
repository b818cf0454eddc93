package cargo

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/arceos-hypervisor/devenv/internal/component"
)

// Manifest is the subset of a Cargo workspace manifest the tool reads.
type Manifest struct {
	Workspace *Workspace                       `toml:"workspace"`
	Patch     map[string]map[string]PatchEntry `toml:"patch"`
}

// Workspace is the [workspace] table.
type Workspace struct {
	Members []string `toml:"members"`
}

// PatchEntry is one package entry under a [patch.<source>] table.
type PatchEntry struct {
	Path   string `toml:"path,omitempty"`
	Git    string `toml:"git,omitempty"`
	Branch string `toml:"branch,omitempty"`
}

// Load reads and decodes a Cargo manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // workspace manifest path
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes Cargo manifest content.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, fmt.Errorf("parsing manifest TOML: %w", err)
	}
	return &m, nil
}

// PathOverrides returns every [patch] entry that points at a local path,
// sorted by source and package.
func (m *Manifest) PathOverrides() []component.Directive {
	var out []component.Directive
	for source, pkgs := range m.Patch {
		for pkg, e := range pkgs {
			if e.Path == "" {
				continue
			}
			out = append(out, component.Directive{Source: source, Package: pkg, Path: e.Path})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Package < out[j].Package
	})
	return out
}

// Missing returns the directives of components that the manifest does not
// override with the expected local path.
func (m *Manifest) Missing(components []component.Component) []component.Directive {
	var out []component.Directive
	for _, d := range component.Directives(components) {
		e, ok := m.Patch[d.Source][d.Package]
		if !ok || e.Path != d.Path {
			out = append(out, d)
		}
	}
	return out
}
