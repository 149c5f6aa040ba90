package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrGitNotFound is returned when the git executable is not on PATH.
var ErrGitNotFound = errors.New("git not found in PATH")

// Checker inspects the Git state of a project root
type Checker struct {
	Dir string
}

// NewChecker creates a Git checker for dir
func NewChecker(dir string) *Checker {
	return &Checker{Dir: dir}
}

func (c *Checker) command(args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.Dir
	return cmd
}

// IsGitRepository checks if the directory is inside a Git work tree
func (c *Checker) IsGitRepository() (bool, error) {
	err := c.command("rev-parse", "--is-inside-work-tree").Run()
	if err != nil {
		// Check if error is because git command not found
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return false, ErrGitNotFound
		}
		// Not in a Git repository (or the directory does not exist yet)
		return false, nil
	}
	return true, nil
}

// IsWorkspaceClean returns true if the Git working directory has no uncommitted changes.
// This includes staged, unstaged, and untracked files.
func (c *Checker) IsWorkspaceClean() (bool, error) {
	output, err := c.command("status", "--porcelain").Output()
	if err != nil {
		return false, fmt.Errorf("failed to check Git status: %w", err)
	}
	return len(strings.TrimSpace(string(output))) == 0, nil
}

// GetDirtyFiles returns a formatted list of uncommitted changes for warnings.
// Returns empty string if workspace is clean.
func (c *Checker) GetDirtyFiles() (string, error) {
	output, err := c.command("status", "--porcelain").Output()
	if err != nil {
		return "", fmt.Errorf("failed to check Git status: %w", err)
	}

	porcelain := strings.TrimSpace(string(output))
	if porcelain == "" {
		return "", nil
	}

	// Parse porcelain output into categorized lists
	var modified, untracked []string
	for _, line := range strings.Split(porcelain, "\n") {
		if len(line) < 3 {
			continue
		}
		status := line[:2]
		file := strings.TrimSpace(line[2:])

		if strings.HasPrefix(status, "??") {
			untracked = append(untracked, file)
		} else {
			modified = append(modified, file)
		}
	}

	var parts []string
	if len(modified) > 0 {
		parts = append(parts, "Uncommitted changes:")
		for _, file := range modified {
			parts = append(parts, fmt.Sprintf(" M %s", file))
		}
	}
	if len(untracked) > 0 {
		if len(parts) > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, "Untracked files:")
		for _, file := range untracked {
			parts = append(parts, fmt.Sprintf("?? %s", file))
		}
	}

	return strings.Join(parts, "\n"), nil
}
