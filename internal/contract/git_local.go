package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DateFormat is the date representation passed to git --since/--until/--before.
const DateFormat = "2006-01-02"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// ShortLog implements the GitClient interface.
func (c *LocalGitClient) ShortLog(ctx context.Context, repoPath string, startDate, endDate time.Time) ([]byte, error) {
	args := []string{
		"log",
		"--shortstat",
		"--pretty=format:%an",
	}
	if !startDate.IsZero() {
		args = append(args, fmt.Sprintf("--since=%s", startDate.Format(DateFormat)))
	}
	if !endDate.IsZero() {
		args = append(args, fmt.Sprintf("--until=%s", endDate.Format(DateFormat)))
	}
	return c.Run(ctx, repoPath, args...)
}

// IsWorkTreeClean implements the GitClient interface.
func (c *LocalGitClient) IsWorkTreeClean(ctx context.Context, repoPath string) (bool, error) {
	out, err := c.Run(ctx, repoPath, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(out)) == "", nil
}

// RevBefore implements the GitClient interface.
func (c *LocalGitClient) RevBefore(ctx context.Context, repoPath string, date time.Time) (string, error) {
	args := []string{
		"rev-list",
		fmt.Sprintf("--before=%s", date.Format(DateFormat)),
		"--max-count=1",
		"HEAD",
	}
	out, err := c.Run(ctx, repoPath, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// CurrentRef implements the GitClient interface. It prefers the branch name
// so that a later restore returns to the branch rather than a detached hash.
func (c *LocalGitClient) CurrentRef(ctx context.Context, repoPath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	ref := strings.TrimSpace(string(out))
	if ref != "HEAD" {
		return ref, nil
	}
	// Detached HEAD: fall back to the commit hash.
	return c.GetRepoHash(ctx, repoPath)
}

// Checkout implements the GitClient interface.
func (c *LocalGitClient) Checkout(ctx context.Context, repoPath string, ref string) error {
	_, err := c.Run(ctx, repoPath, "checkout", "--quiet", ref)
	return err
}

// GetRepoHash implements the GitClient interface.
func (c *LocalGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// BlameFile implements the GitClient interface.
func (c *LocalGitClient) BlameFile(ctx context.Context, repoPath string, path string) ([]byte, error) {
	return c.Run(ctx, repoPath, "blame", "--line-porcelain", "--", path)
}
