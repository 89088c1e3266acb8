package utils

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// GitOperations handles git-related operations
type GitOperations struct {
	workingDir string
	timeout    time.Duration
}

// NewGitOperations creates a new GitOperations instance. A zero timeout
// leaves commands bounded only by the caller's context.
func NewGitOperations(workingDir string, timeout time.Duration) *GitOperations {
	return &GitOperations{workingDir: workingDir, timeout: timeout}
}

// WorkingDir returns the directory git commands run in
func (g *GitOperations) WorkingDir() string {
	return g.workingDir
}

// CheckGitRepo checks if the working directory is a git repository
func (g *GitOperations) CheckGitRepo(ctx context.Context) error {
	if _, err := g.run(ctx, "rev-parse", "--git-dir"); err != nil {
		return fmt.Errorf("not a git repository: %s", g.workingDir)
	}
	return nil
}

// Fetch updates the remote-tracking ref of branch (refs/remotes/<remote>/<branch>)
// without touching the local branch, which may be checked out.
func (g *GitOperations) Fetch(ctx context.Context, remote, branch string) error {
	refspec := "+refs/heads/" + branch + ":" + RemoteTrackingRef(remote, branch)
	if _, err := g.run(ctx, "fetch", remote, refspec); err != nil {
		return fmt.Errorf("failed to fetch %s/%s: %w", remote, branch, err)
	}
	return nil
}

// RemoteTrackingRef returns the ref Fetch updates for branch
func RemoteTrackingRef(remote, branch string) string {
	return "refs/remotes/" + remote + "/" + branch
}

// LogNameStatus lists the name-status of files touched on ref since the given
// time, restricted to diffFilter and paths. Paths are reported relative to
// the working directory, unquoted, with every field terminated by NUL.
func (g *GitOperations) LogNameStatus(ctx context.Context, ref string, since time.Time, diffFilter string, paths []string) (string, error) {
	args := []string{
		"log",
		"--since=" + since.Format(time.RFC3339),
		"--name-status",
		"-z",
		"--diff-filter=" + diffFilter,
		"--pretty=format:",
		"--relative",
		ref,
		"--",
	}
	args = append(args, paths...)
	output, err := g.run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("failed to read git log: %w", err)
	}
	return output, nil
}

func (g *GitOperations) run(ctx context.Context, args ...string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.workingDir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("git %s: %w", args[0], ctxErr)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(output), nil
}
