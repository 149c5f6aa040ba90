package workspace

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	first, err := Create("young-ng-")
	require.NoError(t, err)
	defer first.Cleanup()

	second, err := Create("young-ng-")
	require.NoError(t, err)
	defer second.Cleanup()

	assert.NotEqual(t, first.Dir, second.Dir)
	assert.True(t, strings.HasPrefix(filepath.Base(first.Dir), "young-ng-"))

	info, err := os.Stat(first.Dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(first.Dir, "generated"), first.Path("generated"))
}

func TestCleanup(t *testing.T) {
	t.Run("removes directory", func(t *testing.T) {
		ws, err := Create("young-ng-")
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(ws.Path("file.txt"), []byte("x"), 0644))

		require.NoError(t, ws.Cleanup())

		_, err = os.Stat(ws.Dir)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("keep leaves directory", func(t *testing.T) {
		ws, err := Create("young-ng-")
		require.NoError(t, err)
		defer os.RemoveAll(ws.Dir)

		ws.Keep()
		assert.True(t, ws.Kept())
		require.NoError(t, ws.Cleanup())

		_, err = os.Stat(ws.Dir)
		assert.NoError(t, err)
	})
}

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	files := map[string]string{
		"package.json":             `{"name": "generated"}`,
		"src/main.ts":              "bootstrapApplication(App);\n",
		"src/app/app.component.ts": "export class AppComponent {}\n",
		".gitignore":               "/node_modules\n",
	}
	for rel, content := range files {
		path := filepath.Join(src, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(src, "run.sh"), []byte("#!/bin/sh\n"), 0755))

	// pre-existing files: one overwritten, one unrelated and kept
	require.NoError(t, os.WriteFile(filepath.Join(dst, "package.json"), []byte("old"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "README.md"), []byte("mine"), 0644))

	require.NoError(t, CopyTree(src, dst))

	for rel, content := range files {
		data, err := os.ReadFile(filepath.Join(dst, filepath.FromSlash(rel)))
		require.NoError(t, err, rel)
		assert.Equal(t, content, string(data), rel)
	}

	readme, err := os.ReadFile(filepath.Join(dst, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "mine", string(readme))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(dst, "run.sh"))
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&0111, "executable bit should be kept")
	}
}

func TestCopyTree_Symlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	src := t.TempDir()
	dst := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(src, "target.txt"), []byte("t"), 0644))
	require.NoError(t, os.Symlink("target.txt", filepath.Join(src, "link.txt")))

	require.NoError(t, CopyTree(src, dst))

	link, err := os.Readlink(filepath.Join(dst, "link.txt"))
	require.NoError(t, err)
	assert.Equal(t, "target.txt", link)
}

func TestCopyTree_ReplacesSymlinksInDestination(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	src := t.TempDir()
	dst := t.TempDir()
	outside := filepath.Join(t.TempDir(), "outside.json")
	require.NoError(t, os.WriteFile(outside, []byte("untouched"), 0644))

	require.NoError(t, os.WriteFile(filepath.Join(src, "package.json"), []byte(`{}`), 0644))
	require.NoError(t, os.Symlink("package.json", filepath.Join(src, "alias.json")))

	// dst already has links where both entries land
	require.NoError(t, os.Symlink(outside, filepath.Join(dst, "package.json")))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "alias.json"), []byte("old"), 0644))

	require.NoError(t, CopyTree(src, dst))

	data, err := os.ReadFile(outside)
	require.NoError(t, err)
	assert.Equal(t, "untouched", string(data))

	info, err := os.Lstat(filepath.Join(dst, "package.json"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())

	link, err := os.Readlink(filepath.Join(dst, "alias.json"))
	require.NoError(t, err)
	assert.Equal(t, "package.json", link)
}

func TestCopyTree_Errors(t *testing.T) {
	t.Run("missing source", func(t *testing.T) {
		err := CopyTree(filepath.Join(t.TempDir(), "nope"), t.TempDir())
		assert.ErrorContains(t, err, "failed to read generated project")
	})

	t.Run("source is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		err := CopyTree(file, t.TempDir())
		assert.ErrorContains(t, err, "is not a directory")
	})
}
