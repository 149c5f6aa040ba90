// Package workspace manages the temporary directory the generator runs in and
// copies its output into the target project.
package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
)

// Workspace is a temporary directory owned by a single scaffold run.
type Workspace struct {
	Dir  string
	keep bool
}

// Create makes a uniquely named directory under the system temp dir.
func Create(prefix string) (*Workspace, error) {
	dir, err := os.MkdirTemp("", prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp workspace: %w", err)
	}
	return &Workspace{Dir: dir}, nil
}

// Keep makes Cleanup leave the directory on disk.
func (w *Workspace) Keep() {
	w.keep = true
}

// Kept reports whether Cleanup will leave the directory in place.
func (w *Workspace) Kept() bool {
	return w.keep
}

// Path joins elem onto the workspace directory.
func (w *Workspace) Path(elem ...string) string {
	return filepath.Join(append([]string{w.Dir}, elem...)...)
}

// Cleanup removes the directory unless Keep was called.
func (w *Workspace) Cleanup() error {
	if w.keep {
		return nil
	}
	if err := os.RemoveAll(w.Dir); err != nil {
		return fmt.Errorf("failed to remove temp workspace %s: %w", w.Dir, err)
	}
	return nil
}

// CopyTree copies every file under src into dst, creating directories as
// needed and overwriting files that already exist. File modes are kept.
// Symlinks are recreated rather than followed. The copy is not atomic: a
// failure part way leaves dst partially updated.
func CopyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to read generated project: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("generated project %s is not a directory", src)
	}

	err = cp.Copy(src, dst, cp.Options{
		OnSymlink:         func(string) cp.SymlinkAction { return cp.Shallow },
		Skip:              prepareTarget,
		PermissionControl: cp.PerservePermission,
	})
	if err != nil {
		return fmt.Errorf("failed to copy generated project: %w", err)
	}
	return nil
}

// specialFiles have no place in a project tree.
const specialFiles = fs.ModeSocket | fs.ModeDevice | fs.ModeCharDevice | fs.ModeNamedPipe | fs.ModeIrregular

// prepareTarget skips special files and clears a symlink sitting where a
// file or link is about to be written, so the copy never writes through it.
func prepareTarget(info os.FileInfo, src, dest string) (bool, error) {
	mode := info.Mode()
	if mode&specialFiles != 0 {
		return true, nil
	}
	if info.IsDir() {
		return false, nil
	}

	existing, err := os.Lstat(dest)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", dest, err)
	}
	// a shallow link copy fails on any existing entry
	if mode&fs.ModeSymlink != 0 || existing.Mode()&fs.ModeSymlink != 0 {
		if err := os.RemoveAll(dest); err != nil {
			return false, fmt.Errorf("failed to replace %s: %w", dest, err)
		}
	}
	return false, nil
}
