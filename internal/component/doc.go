// Package component holds the fixed table of repositories that make up the
// hypervisor workspace and derives clone URLs, clone directories and Cargo
// override directives from it.
package component
