package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arceos-hypervisor/devenv/internal/component"
	"github.com/arceos-hypervisor/devenv/internal/git"
	"github.com/arceos-hypervisor/devenv/internal/lock"
	"github.com/arceos-hypervisor/devenv/internal/testutil"
)

// bootstrapped returns a workspace after a successful full run.
func bootstrapped(t *testing.T) (wsDir, prefix string) {
	t.Helper()
	wsDir, prefix = setupWorkspace(t)
	if _, _, err := execute(t, "--root", wsDir, "--repo", prefix); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	return wsDir, prefix
}

func TestRunStatus_json(t *testing.T) {
	wsDir, _ := bootstrapped(t)

	stdout, _, err := execute(t, "--root", wsDir, "status", "--json")
	if err != nil {
		t.Fatalf("status --json failed: %v", err)
	}

	var report statusReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(report.Components) != len(component.Default) {
		t.Fatalf("components = %d, want %d", len(report.Components), len(component.Default))
	}
	for _, s := range report.Components {
		if !s.Cloned || s.Dirty || s.Head == "" {
			t.Errorf("unexpected status: %+v", s)
		}
	}
	m := report.Manifest
	if !m.Present || !m.Backup || len(m.Missing) != 0 || m.Overrides != 10 {
		t.Errorf("unexpected manifest status: %+v", m)
	}
}

func TestRunStatus_table(t *testing.T) {
	wsDir := t.TempDir()
	testutil.WriteFile(t, wsDir, "Cargo.toml", testManifest)

	stdout, _, err := execute(t, "--root", wsDir, "status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(stdout, "not cloned") {
		t.Errorf("expected not cloned rows:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Cargo.toml not patched (10 of 10 overrides missing)") {
		t.Errorf("expected unpatched manifest line:\n%s", stdout)
	}
}

func TestRunStatus_missingManifest(t *testing.T) {
	stdout, _, err := execute(t, "--root", t.TempDir(), "status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(stdout, "Cargo.toml missing") {
		t.Errorf("expected missing manifest line:\n%s", stdout)
	}
}

func TestRunPin_createsLock(t *testing.T) {
	wsDir, prefix := bootstrapped(t)

	if _, _, err := execute(t, "--root", wsDir, "--repo", prefix, "pin"); err != nil {
		t.Fatalf("pin failed: %v", err)
	}

	lf, err := lock.Load(filepath.Join(wsDir, lock.FileName))
	if err != nil {
		t.Fatal(err)
	}
	if lf.RepoPrefix != prefix {
		t.Errorf("repo_prefix = %q, want %q", lf.RepoPrefix, prefix)
	}
	if len(lf.Components) != len(component.Default) {
		t.Errorf("pinned = %d, want %d", len(lf.Components), len(component.Default))
	}
	e := lf.Components["axvm"]
	if e == nil || e.URL != prefix+"/axvm.git" || e.Branch != "main" {
		t.Errorf("unexpected axvm entry: %+v", e)
	}

	// Status reports no drift right after pinning.
	stdout, _, err := execute(t, "--root", wsDir, "status", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(stdout, "lock_diff") {
		t.Errorf("unexpected lock drift:\n%s", stdout)
	}
}

func TestRunPin_skipsUncloned(t *testing.T) {
	wsDir, prefix := setupWorkspace(t, "axvm")
	// Fetch stops at axvm, leaving only arceos cloned.
	if _, _, err := execute(t, "--root", wsDir, "--repo", prefix, "fetch"); err == nil {
		t.Fatal("expected fetch to fail")
	}

	stdout, _, err := execute(t, "--root", wsDir, "pin")
	if err != nil {
		t.Fatalf("pin failed: %v", err)
	}
	if !strings.Contains(stdout, "Skipping axvm (not cloned)") {
		t.Errorf("expected skip line:\n%s", stdout)
	}

	lf, err := lock.Load(filepath.Join(wsDir, lock.FileName))
	if err != nil {
		t.Fatal(err)
	}
	if len(lf.Components) != 1 || lf.Components["arceos"] == nil {
		t.Errorf("expected only arceos pinned, got %v", lf.Components)
	}
}

func TestRunClean_requiresForce(t *testing.T) {
	if _, _, err := execute(t, "--root", t.TempDir(), "clean"); err == nil {
		t.Fatal("expected error without --force")
	}
}

func TestRunClean_removesCrates(t *testing.T) {
	wsDir, prefix := setupWorkspace(t)
	if _, _, err := execute(t, "--root", wsDir, "--repo", prefix, "fetch"); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if _, _, err := execute(t, "--root", wsDir, "clean", "--force"); err != nil {
		t.Fatalf("clean --force failed: %v", err)
	}
	if exists(filepath.Join(wsDir, "crates")) {
		t.Error("crates directory should have been removed")
	}
	if !exists(filepath.Join(wsDir, "Cargo.toml")) {
		t.Error("manifest must be kept")
	}

	// Fetch works again after cleaning.
	if _, _, err := execute(t, "--root", wsDir, "--repo", prefix, "fetch"); err != nil {
		t.Fatalf("fetch after clean failed: %v", err)
	}
	if !git.IsCloned(crateDir(wsDir, "arceos")) {
		t.Error("arceos should be cloned again")
	}
}

func TestRunClean_nothingToClean(t *testing.T) {
	stdout, _, err := execute(t, "--root", t.TempDir(), "clean", "--force")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "Nothing to clean") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
}

func TestRunList(t *testing.T) {
	stdout, _, err := execute(t, "--root", t.TempDir(), "--repo", "https://mirror.example.com/hv", "list")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 11 {
		t.Errorf("lines = %d, want header + 10 directives", len(lines))
	}
	for _, want := range []string{
		"https://mirror.example.com/hv/arceos.git",
		"crates/arceos/modules/axhal",
		"axdevice_base",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("list missing %q:\n%s", want, stdout)
		}
	}
}

func TestRunList_filter(t *testing.T) {
	stdout, _, err := execute(t, "--root", t.TempDir(), "list", "axvm")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(stdout, "axstd") || !strings.Contains(stdout, "crates/axvm") {
		t.Errorf("unexpected output:\n%s", stdout)
	}

	if _, _, err := execute(t, "--root", t.TempDir(), "list", "nope"); err == nil {
		t.Fatal("expected error for unknown component")
	}
}

func TestRunDoctor(t *testing.T) {
	if !git.IsGitInstalled() {
		t.Skip("git not installed")
	}
	wsDir := t.TempDir()
	testutil.WriteFile(t, wsDir, "Cargo.toml", testManifest)

	stdout, _, err := execute(t, "--root", wsDir, "doctor")
	if err != nil {
		t.Fatalf("doctor failed on a fresh workspace: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "All checks passed.") {
		t.Errorf("unexpected output:\n%s", stdout)
	}

	if _, _, err := execute(t, "--root", wsDir, "patch"); err != nil {
		t.Fatal(err)
	}
	stdout, _, err = execute(t, "--root", wsDir, "doctor")
	if err == nil {
		t.Fatal("doctor should fail when a backup exists")
	}
	if !strings.Contains(stdout, "devenv restore") {
		t.Errorf("expected restore hint:\n%s", stdout)
	}
}

func TestRunDoctor_existingClones(t *testing.T) {
	wsDir := t.TempDir()
	testutil.WriteFile(t, wsDir, "Cargo.toml", testManifest)
	testutil.WriteFile(t, crateDir(wsDir, "axvcpu"), "partial.txt", "x")

	stdout, _, err := execute(t, "--root", wsDir, "doctor")
	if err == nil {
		t.Fatal("doctor should fail when crate directories exist")
	}
	if !strings.Contains(stdout, "fetch will fail on: axvcpu") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
}

func TestRunStatus_unreadableLock(t *testing.T) {
	wsDir := t.TempDir()
	testutil.WriteFile(t, wsDir, "Cargo.toml", testManifest)
	testutil.WriteFile(t, wsDir, lock.FileName, "version: 2\n")

	stdout, _, err := execute(t, "--root", wsDir, "status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(stdout, "crates.lock.yaml unreadable: unsupported lock version: 2") {
		t.Errorf("expected lock error line:\n%s", stdout)
	}

	stdout, _, err = execute(t, "--root", wsDir, "status", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var report statusReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if report.LockError == "" {
		t.Error("lock_error should be set")
	}
}

func TestRunDoctor_manifestContent(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		wantErr  bool
		want     string
	}{
		{"workspace", testManifest, false, "OK (1 workspace members)"},
		{"single package", "[package]\nname = \"vmm\"\n", false, "NO WORKSPACE"},
		{"invalid", "[workspace\n", true, "INVALID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wsDir := t.TempDir()
			testutil.WriteFile(t, wsDir, "Cargo.toml", tt.manifest)

			stdout, _, err := execute(t, "--root", wsDir, "doctor")
			if git.IsGitInstalled() && (err != nil) != tt.wantErr {
				t.Fatalf("doctor error = %v, wantErr %v\n%s", err, tt.wantErr, stdout)
			}
			if !strings.Contains(stdout, "Checking Cargo.toml... "+tt.want) {
				t.Errorf("expected %q:\n%s", tt.want, stdout)
			}
		})
	}
}
