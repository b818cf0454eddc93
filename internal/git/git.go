package git

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Clone clones url into dest. Git refuses a dest that exists and is not
// empty, and that failure is returned as is.
func Clone(url, dest string) error {
	if err := run(".", "clone", url, dest); err != nil {
		return fmt.Errorf("cloning %s: %w", url, err)
	}
	return nil
}

// CurrentBranch returns the current branch name, or empty string if detached.
func CurrentBranch(repoDir string) (string, error) {
	out, err := outputQuiet(repoDir, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		// Detached HEAD: symbolic-ref fails.
		return "", nil
	}
	return strings.TrimSpace(out), nil
}

// HeadCommit returns the short SHA of HEAD.
func HeadCommit(repoDir string) (string, error) {
	out, err := outputQuiet(repoDir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// HeadCommitFull returns the full SHA of HEAD.
func HeadCommitFull(repoDir string) (string, error) {
	out, err := outputQuiet(repoDir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// OriginURL returns the URL of the origin remote.
func OriginURL(repoDir string) (string, error) {
	out, err := outputQuiet(repoDir, "remote", "get-url", "origin")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// IsDirty returns true if the working tree has uncommitted changes.
func IsDirty(repoDir string) (bool, error) {
	out, err := outputQuiet(repoDir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// IsCloned returns true if the directory is a git repository.
func IsCloned(repoDir string) bool {
	info, err := os.Stat(filepath.Join(repoDir, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsGitInstalled returns true if git is available on the system PATH.
func IsGitInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Version returns the output of git version.
func Version() (string, error) {
	out, err := outputQuiet(".", "version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// run executes a git command in the given directory, streaming its output.
func run(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// outputQuiet executes a git command and returns its stdout without printing to the console.
func outputQuiet(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, stderr.String())
	}
	return stdout.String(), nil
}
