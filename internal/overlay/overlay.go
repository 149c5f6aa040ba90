// Package overlay holds the lint, format and editor configuration files that
// young-ng writes on top of a generated Angular project.
package overlay

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/young-ng/young-ng/internal/manifest"
)

//go:embed templates/*
var templatesFS embed.FS

// Mode selects how an entry is written onto an existing file.
type Mode string

const (
	// ModeOverwrite replaces the file with the entry content.
	ModeOverwrite Mode = "overwrite"
	// ModeMerge adds the keys of a JSON entry that the existing file lacks.
	ModeMerge Mode = "merge"
)

// Entry is one overlay file.
type Entry struct {
	Path        string // slash-separated, relative to the project root
	Content     []byte
	Mode        Mode
	Permissions os.FileMode
}

type templateRef struct {
	path     string
	template string
	mode     Mode
}

var defaultTemplates = []templateRef{
	{".editorconfig", "editorconfig.tmpl", ModeOverwrite},
	{".prettierrc", "prettierrc.json.tmpl", ModeOverwrite},
	{".eslintrc.cjs", "eslintrc.cjs.tmpl", ModeOverwrite},
	{"tsconfig.eslint.json", "tsconfig.eslint.json.tmpl", ModeOverwrite},
	{".vscode/settings.json", "vscode-settings.json.tmpl", ModeOverwrite},
	{".vscode/extensions.json", "vscode-extensions.json.tmpl", ModeOverwrite},
}

// Default returns the fixed overlay set.
func Default() ([]Entry, error) {
	entries := make([]Entry, 0, len(defaultTemplates))
	for _, ref := range defaultTemplates {
		content, err := templatesFS.ReadFile("templates/" + ref.template)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s template: %w", ref.path, err)
		}
		entries = append(entries, Entry{
			Path:        ref.path,
			Content:     content,
			Mode:        ref.mode,
			Permissions: 0644,
		})
	}
	return entries, nil
}

// Apply writes every entry under root and returns the paths written.
func Apply(root string, entries []Entry) ([]string, error) {
	written := make([]string, 0, len(entries))
	for _, e := range entries {
		if err := applyEntry(root, e); err != nil {
			return written, err
		}
		written = append(written, e.Path)
	}
	return written, nil
}

func applyEntry(root string, e Entry) error {
	target, err := resolve(root, e.Path)
	if err != nil {
		return err
	}
	if err := unlinkTarget(root, e.Path); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", e.Path, err)
	}

	perm := e.Permissions
	if perm == 0 {
		perm = 0644
	}

	switch e.Mode {
	case ModeOverwrite, "":
		if err := os.WriteFile(target, e.Content, perm); err != nil {
			return fmt.Errorf("failed to write %s: %w", e.Path, err)
		}
		// WriteFile keeps the mode of an existing file
		if err := os.Chmod(target, perm); err != nil {
			return fmt.Errorf("failed to set permissions on %s: %w", e.Path, err)
		}
		return nil
	case ModeMerge:
		return mergeEntry(target, e, perm)
	default:
		return fmt.Errorf("overlay %s: unknown mode %q", e.Path, e.Mode)
	}
}

func mergeEntry(target string, e Entry, perm os.FileMode) error {
	defaults, err := manifest.Decode(e.Content)
	if err != nil {
		return fmt.Errorf("overlay %s: content is not a JSON object: %w", e.Path, err)
	}

	if _, err := os.Stat(target); os.IsNotExist(err) {
		if err := os.WriteFile(target, e.Content, perm); err != nil {
			return fmt.Errorf("failed to write %s: %w", e.Path, err)
		}
		return nil
	}

	existing, err := manifest.ReadFile(target)
	if err != nil {
		return err
	}
	return manifest.WriteFile(target, manifest.MergeDefaults(existing, defaults))
}

// resolve joins a slash-separated relative path onto root, refusing paths
// that would land outside it.
func resolve(root, rel string) (string, error) {
	clean := path.Clean(rel)
	if rel == "" || path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("overlay path %q must be relative to the project root", rel)
	}
	return filepath.Join(root, filepath.FromSlash(clean)), nil
}

// unlinkTarget refuses a path whose parent directories under root include a
// symlink, and removes a symlink sitting at the path itself, so writes never
// land outside root.
func unlinkTarget(root, rel string) error {
	parts := strings.Split(path.Clean(rel), "/")
	current := root
	for i, part := range parts {
		current = filepath.Join(current, part)
		info, err := os.Lstat(current)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", current, err)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			continue
		}
		if i < len(parts)-1 {
			return fmt.Errorf("overlay %s: %s is a symlink", rel, path.Join(parts[:i+1]...))
		}
		if err := os.Remove(current); err != nil {
			return fmt.Errorf("failed to replace symlink %s: %w", rel, err)
		}
	}
	return nil
}
