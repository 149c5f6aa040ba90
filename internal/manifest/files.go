package manifest

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ManifestFile is the npm package manifest.
	ManifestFile = "package.json"
	// CompilerConfigFile is the TypeScript compiler configuration.
	CompilerConfigFile = "tsconfig.json"
)

// ReadFile loads and decodes the JSON object stored at path.
func ReadFile(path string) (*Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	obj, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return obj, nil
}

// WriteFile encodes obj and replaces path with it. An existing file keeps its
// permissions; a new one gets 0644.
func WriteFile(path string, obj *Object) error {
	data, err := Encode(obj)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := writeFileAtomic(path, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// PatchManifestFile merges the default scripts and devDependencies into the
// package.json under root.
func PatchManifestFile(root string) error {
	path := filepath.Join(root, ManifestFile)
	pkg, err := ReadFile(path)
	if err != nil {
		return err
	}
	if err := PatchManifest(pkg); err != nil {
		return err
	}
	return WriteFile(path, pkg)
}

// PatchCompilerConfigFile forces the strict flags in the tsconfig.json under
// root. It reports false without touching the filesystem when the file does
// not exist.
func PatchCompilerConfigFile(root string) (bool, error) {
	path := filepath.Join(root, CompilerConfigFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", CompilerConfigFile, err)
	}

	ts, err := ReadFile(path)
	if err != nil {
		return false, err
	}
	PatchCompilerConfig(ts)
	if err := WriteFile(path, ts); err != nil {
		return false, err
	}
	return true, nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place, so a failed write leaves the original file intact.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".young-ng-tmp-*")
	if err != nil {
		return err
	}
	tmpPath := f.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	success = true
	return nil
}
