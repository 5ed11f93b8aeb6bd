package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/stamp/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseFS(t *testing.T, fsys types.FS, root string) {
	t.Helper()

	testFile := filepath.Join(root, "test.txt")
	testContent := []byte("hello world\n")

	// WriteFile / Stat / ReadFile
	require.NoError(t, fsys.WriteFile(testFile, testContent, 0644))

	info, err := fsys.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fsys.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	// MkdirAll / ReadDir
	require.NoError(t, fsys.MkdirAll(filepath.Join(root, "sub", "dir"), 0755))
	require.NoError(t, fsys.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0644))

	entries, err := fsys.ReadDir(root)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a.txt", "sub", "test.txt"}, names)

	// DirFS exposes the subtree through io/fs
	data, err := fs.ReadFile(fsys.DirFS(root), "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))

	// Remove / RemoveAll
	require.NoError(t, fsys.Remove(testFile))
	_, err = fsys.Stat(testFile)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, fsys.RemoveAll(filepath.Join(root, "sub")))
	_, err = fsys.Stat(filepath.Join(root, "sub", "dir"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewOS(t *testing.T) {
	fsys := NewOS()
	assert.NotNil(t, fsys)
	exerciseFS(t, fsys, t.TempDir())
}

func TestNewMemory(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/work", 0755))
	exerciseFS(t, fsys, "/work")
}

func TestAferoReadFileOnDirectory(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/work/dir", 0755))

	_, err := fsys.ReadFile("/work/dir")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrInvalid)
}
