package component

import (
	"fmt"
	"path"
	"strings"
)

const (
	// CratesDir is the directory components are cloned into.
	CratesDir = "crates"
	// DefaultRepoPrefix is the remote prefix used when --repo is not given.
	DefaultRepoPrefix = "git@github.com:arceos-hypervisor"
	// SourceHost is the prefix of the git sources named in the workspace manifest.
	SourceHost = "https://github.com/arceos-hypervisor"
)

// Default is the fixed list of components in fetch order.
var Default = []Component{
	{Name: "arceos", Packages: []Package{
		{Name: "axstd", Subpath: "ulib/axstd"},
		{Name: "axhal", Subpath: "modules/axhal"},
	}},
	{Name: "axvm"},
	{Name: "axvcpu"},
	{Name: "axaddrspace"},
	{Name: "arm_vcpu"},
	{Name: "axdevice"},
	{Name: "arm_vgic"},
	{Name: "arm_gicv2"},
	{Name: "axdevice_crates", Packages: []Package{
		{Name: "axdevice_base", Subpath: "axdevice_base"},
	}},
}

// Validate checks a component list for errors.
func Validate(components []Component) error {
	seen := make(map[string]bool, len(components))
	for i, c := range components {
		if c.Name == "" {
			return fmt.Errorf("components[%d]: name is required", i)
		}
		if strings.ContainsAny(c.Name, `/\`) || c.Name == "." || c.Name == ".." {
			return fmt.Errorf("components[%d]: invalid name %q", i, c.Name)
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate component %q", c.Name)
		}
		seen[c.Name] = true
		for j, p := range c.Packages {
			if p.Name == "" {
				return fmt.Errorf("components[%d] (%s).packages[%d]: name is required", i, c.Name, j)
			}
			if err := validateSubpath(p.Subpath, fmt.Sprintf("%s/%s", c.Name, p.Name)); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateSubpath ensures a package subpath stays inside its clone directory.
func validateSubpath(p, label string) error {
	if p == "" {
		return nil
	}
	if path.IsAbs(p) {
		return fmt.Errorf("%s: absolute subpath is not allowed: %s", label, p)
	}
	cleaned := path.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("%s: subpath must not escape the clone directory: %s", label, p)
	}
	return nil
}

// Directives returns the override directives of all components, in list order.
func Directives(components []Component) []Directive {
	var out []Directive
	for _, c := range components {
		out = append(out, c.Directives()...)
	}
	return out
}

// Names returns the component names in list order.
func Names(components []Component) []string {
	names := make([]string, len(components))
	for i, c := range components {
		names[i] = c.Name
	}
	return names
}

// Find returns the component with the given name.
func Find(components []Component, name string) (Component, bool) {
	for _, c := range components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}
