package scaffold

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/young-ng/young-ng/internal/manifest"
	"github.com/young-ng/young-ng/internal/overlay"
)

// validateWrittenFiles re-reads package.json and every JSON overlay from
// disk and checks that each still decodes as a JSON object.
func validateWrittenFiles(root string, entries []overlay.Entry) error {
	files := []string{manifest.ManifestFile}
	for _, e := range entries {
		if e.Mode == overlay.ModeMerge || path.Ext(e.Path) == ".json" {
			files = append(files, e.Path)
		}
	}

	var invalid []string
	for _, rel := range files {
		if _, err := manifest.ReadFile(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			invalid = append(invalid, fmt.Sprintf("  - %s: %v", rel, err))
		}
	}

	if len(invalid) > 0 {
		return &StepError{StepOverlay, fmt.Errorf("written files are not valid JSON:\n%s", strings.Join(invalid, "\n"))}
	}
	return nil
}
