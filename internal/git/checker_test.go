package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// initRepo creates a repository with one committed file, test.txt.
func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	for _, args := range [][]string{
		{"init"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "Test User"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if err := cmd.Run(); err != nil {
			t.Fatalf("git %v: %v", args, err)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, "test.txt"), []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}
	exec.Command("git", "-C", dir, "add", ".").Run()
	exec.Command("git", "-C", dir, "commit", "-m", "initial commit").Run()

	return dir
}

func TestIsGitRepository(t *testing.T) {
	requireGit(t)

	tests := []struct {
		name      string
		dir       func() string
		wantIsGit bool
	}{
		{
			name:      "valid git repository",
			dir:       func() string { return initRepo(t) },
			wantIsGit: true,
		},
		{
			name: "subdirectory of a repository",
			dir: func() string {
				sub := filepath.Join(initRepo(t), "src", "app")
				if err := os.MkdirAll(sub, 0755); err != nil {
					t.Fatal(err)
				}
				return sub
			},
			wantIsGit: true,
		},
		{
			name:      "not a git repository",
			dir:       func() string { return t.TempDir() },
			wantIsGit: false,
		},
		{
			name:      "directory does not exist",
			dir:       func() string { return filepath.Join(t.TempDir(), "missing") },
			wantIsGit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isGit, err := NewChecker(tt.dir()).IsGitRepository()
			if err != nil {
				t.Fatalf("IsGitRepository() error = %v", err)
			}
			if isGit != tt.wantIsGit {
				t.Errorf("IsGitRepository() = %v, want %v", isGit, tt.wantIsGit)
			}
		})
	}
}

func TestIsWorkspaceClean(t *testing.T) {
	requireGit(t)

	tests := []struct {
		name      string
		setup     func(dir string)
		wantClean bool
	}{
		{
			name:      "clean workspace with committed files",
			setup:     func(dir string) {},
			wantClean: true,
		},
		{
			name: "dirty workspace with untracked file",
			setup: func(dir string) {
				os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("untracked"), 0644)
			},
			wantClean: false,
		},
		{
			name: "dirty workspace with modified file",
			setup: func(dir string) {
				os.WriteFile(filepath.Join(dir, "test.txt"), []byte("modified"), 0644)
			},
			wantClean: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := initRepo(t)
			tt.setup(dir)

			gotClean, err := NewChecker(dir).IsWorkspaceClean()
			if err != nil {
				t.Fatalf("IsWorkspaceClean() error = %v", err)
			}
			if gotClean != tt.wantClean {
				t.Errorf("IsWorkspaceClean() = %v, want %v", gotClean, tt.wantClean)
			}
		})
	}
}

func TestGetDirtyFiles(t *testing.T) {
	requireGit(t)

	tests := []struct {
		name            string
		setup           func(dir string)
		wantContains    []string
		wantNotContains []string
	}{
		{
			name:            "clean workspace returns empty string",
			setup:           func(dir string) {},
			wantNotContains: []string{"Uncommitted changes", "Untracked files"},
		},
		{
			name: "dirty workspace shows modified files",
			setup: func(dir string) {
				os.WriteFile(filepath.Join(dir, "test.txt"), []byte("changed"), 0644)
			},
			wantContains:    []string{"Uncommitted changes", " M test.txt"},
			wantNotContains: []string{"Untracked files"},
		},
		{
			name: "dirty workspace shows untracked files",
			setup: func(dir string) {
				os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}"), 0644)
			},
			wantContains: []string{"Untracked files", "?? package.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := initRepo(t)
			tt.setup(dir)

			got, err := NewChecker(dir).GetDirtyFiles()
			if err != nil {
				t.Fatalf("GetDirtyFiles() error = %v", err)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("GetDirtyFiles() = %q, should contain %q", got, want)
				}
			}
			for _, notWant := range tt.wantNotContains {
				if strings.Contains(got, notWant) {
					t.Errorf("GetDirtyFiles() = %q, should not contain %q", got, notWant)
				}
			}
		})
	}
}

func TestGetDirtyFiles_NotARepository(t *testing.T) {
	requireGit(t)

	_, err := NewChecker(t.TempDir()).GetDirtyFiles()
	if err == nil {
		t.Error("GetDirtyFiles() outside a repository should fail")
	}
}
