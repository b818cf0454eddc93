package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arceos-hypervisor/devenv/internal/component"
	"github.com/arceos-hypervisor/devenv/internal/testutil"
)

const testManifest = `[workspace]
resolver = "2"
members = ["arceos-vmm"]
`

// setupWorkspace creates a temp workspace with a Cargo.toml and a remote
// prefix holding a bare repo for every default component except skip.
func setupWorkspace(t *testing.T, skip ...string) (wsDir, prefix string) {
	t.Helper()
	skipSet := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipSet[s] = true
	}
	var names []string
	for _, name := range component.Names(component.Default) {
		if !skipSet[name] {
			names = append(names, name)
		}
	}

	wsDir = t.TempDir()
	testutil.WriteFile(t, wsDir, "Cargo.toml", testManifest)
	return wsDir, testutil.CreateRemote(t, names...)
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func readFile(t *testing.T, p string) string {
	t.Helper()
	data, err := os.ReadFile(p) //nolint:gosec // test file
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func crateDir(wsDir, name string) string {
	return filepath.Join(wsDir, "crates", name)
}
