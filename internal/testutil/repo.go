package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// CreateBareRepo creates a bare git repository with an initial commit in a temp directory.
// Returns the path to the bare repo.
func CreateBareRepo(t *testing.T) string {
	t.Helper()
	return createBareRepo(t, t.TempDir(), "repo")
}

// CreateRemote lays out bare repositories as a remote prefix: for each name
// the returned directory contains <name>.git, so that prefix + "/" + name + ".git"
// is clonable.
func CreateRemote(t *testing.T, names ...string) string {
	t.Helper()
	prefix := t.TempDir()
	for _, name := range names {
		createBareRepo(t, prefix, name)
	}
	return prefix
}

func createBareRepo(t *testing.T, parent, name string) string {
	t.Helper()
	bare := filepath.Join(parent, name+".git")

	// Create a working repo first, then clone it bare.
	work := filepath.Join(t.TempDir(), name)
	run(t, parent, "git", "init", "-b", "main", work)
	run(t, work, "git", "config", "user.email", "test@example.com")
	run(t, work, "git", "config", "user.name", "Test")

	readme := filepath.Join(work, "README.md")
	if err := os.WriteFile(readme, []byte("# "+name+"\n"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	run(t, work, "git", "add", ".")
	run(t, work, "git", "commit", "-m", "initial commit")

	run(t, parent, "git", "clone", "--bare", work, bare)
	return bare
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil { //nolint:gosec // test directory
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	return p
}

func run(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("command %s %v failed: %v", name, args, err)
	}
}
