package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/stamp/pkg/filesystem"
	"github.com/arthur-debert/stamp/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tree describes a directory tree by relative path. A key ending in "/"
// is a directory; every other key is a file holding the value.
type Tree map[string]string

// MemoryFS returns an empty in-memory filesystem with root created
func MemoryFS(t *testing.T, root string) types.FS {
	t.Helper()
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll(root, 0755))
	return fsys
}

// OSFS returns the OS filesystem together with a fresh temporary directory
func OSFS(t *testing.T) (types.FS, string) {
	t.Helper()
	return filesystem.NewOS(), t.TempDir()
}

// WriteTree materializes tree under root, creating parents as needed
func WriteTree(t *testing.T, fsys types.FS, root string, tree Tree) {
	t.Helper()

	paths := make([]string, 0, len(tree))
	for p := range tree {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if p[len(p)-1] == '/' {
			require.NoError(t, fsys.MkdirAll(full, 0755), "mkdir %s", full)
			continue
		}
		require.NoError(t, fsys.MkdirAll(filepath.Dir(full), 0755), "mkdir parent of %s", full)
		require.NoError(t, fsys.WriteFile(full, []byte(tree[p]), 0644), "write %s", full)
	}
}

// ReadTree returns every file and directory under root in Tree form,
// using slash-separated relative paths
func ReadTree(t *testing.T, fsys types.FS, root string) Tree {
	t.Helper()

	out := Tree{}
	var visit func(rel string)
	visit = func(rel string) {
		entries, err := fsys.ReadDir(filepath.Join(root, rel))
		require.NoError(t, err)
		for _, e := range entries {
			childRel := filepath.Join(rel, e.Name())
			key := filepath.ToSlash(childRel)
			if e.IsDir() {
				out[key+"/"] = ""
				visit(childRel)
				continue
			}
			data, err := fsys.ReadFile(filepath.Join(root, childRel))
			require.NoError(t, err)
			out[key] = string(data)
		}
	}
	visit("")
	return out
}

// CreateFile creates a file with the given content on the OS filesystem
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// AssertFileContent checks the content of a file
func AssertFileContent(t *testing.T, fsys types.FS, path, expected string) {
	t.Helper()

	data, err := fsys.ReadFile(path)
	if assert.NoError(t, err, "reading %s", path) {
		assert.Equal(t, expected, string(data), "content of %s", path)
	}
}

// AssertDir checks that path exists and is a directory
func AssertDir(t *testing.T, fsys types.FS, path string) {
	t.Helper()

	info, err := fsys.Stat(path)
	if assert.NoError(t, err, "stat %s", path) {
		assert.True(t, info.IsDir(), "%s should be a directory", path)
	}
}

// AssertNoPath checks that nothing exists at path
func AssertNoPath(t *testing.T, fsys types.FS, path string) {
	t.Helper()

	_, err := fsys.Stat(path)
	assert.ErrorIs(t, err, fs.ErrNotExist, "%s should not exist", path)
}
