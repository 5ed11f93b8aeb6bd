package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/stamp/pkg/errors"
	"github.com/arthur-debert/stamp/pkg/testutil"
	"github.com/arthur-debert/stamp/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dir(rel string) types.SourceEntry {
	return types.SourceEntry{RelPath: filepath.FromSlash(rel), Kind: types.KindDirectory}
}

func file(rel string) types.SourceEntry {
	return types.SourceEntry{RelPath: filepath.FromSlash(rel), Kind: types.KindFile}
}

func TestWalkOrder(t *testing.T) {
	fsys := testutil.MemoryFS(t, "/tmpl")
	testutil.WriteTree(t, fsys, "/tmpl", testutil.Tree{
		"setup.py":                         "",
		"README.md":                        "",
		"__APP_NAME__/cli.py":              "",
		"__APP_NAME__/pipelines/run.py":    "",
		"__APP_NAME__/pipelines/test/a.py": "",
		"__APP_NAME__/config.py":           "",
		"docs/":                            "",
	})

	entries, err := Walk(fsys, "/tmpl", Options{})
	require.NoError(t, err)

	assert.Equal(t, []types.SourceEntry{
		dir(""),
		file("README.md"),
		file("setup.py"),
		dir("__APP_NAME__"),
		file("__APP_NAME__/cli.py"),
		file("__APP_NAME__/config.py"),
		dir("__APP_NAME__/pipelines"),
		file("__APP_NAME__/pipelines/run.py"),
		dir("__APP_NAME__/pipelines/test"),
		file("__APP_NAME__/pipelines/test/a.py"),
		dir("docs"),
	}, entries)
}

func TestWalkIsDeterministic(t *testing.T) {
	fsys := testutil.MemoryFS(t, "/tmpl")
	testutil.WriteTree(t, fsys, "/tmpl", testutil.Tree{
		"b/2.txt": "", "b/1.txt": "", "a/z.txt": "", "c.txt": "",
	})

	first, err := Walk(fsys, "/tmpl", Options{})
	require.NoError(t, err)
	second, err := Walk(fsys, "/tmpl", Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWalkDirectoriesPrecedeTheirContents(t *testing.T) {
	fsys := testutil.MemoryFS(t, "/tmpl")
	testutil.WriteTree(t, fsys, "/tmpl", testutil.Tree{
		"a/b/c/d.txt": "", "a/x.txt": "", "e/f.txt": "",
	})

	entries, err := Walk(fsys, "/tmpl", Options{})
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, e := range entries {
		if !e.IsRoot() {
			parent := filepath.Dir(e.RelPath)
			if parent == "." {
				parent = ""
			}
			assert.True(t, seen[parent], "%s reported before its parent directory", e.RelPath)
		}
		if e.IsDir() {
			assert.False(t, seen[e.RelPath], "%s reported twice", e.RelPath)
			seen[e.RelPath] = true
		}
	}
}

func TestWalkIgnore(t *testing.T) {
	fsys := testutil.MemoryFS(t, "/tmpl")
	testutil.WriteTree(t, fsys, "/tmpl", testutil.Tree{
		"keep.txt":              "",
		".DS_Store":             "",
		"pkg/__pycache__/x.pyc": "",
		"pkg/mod.py":            "",
	})

	entries, err := Walk(fsys, "/tmpl", Options{Ignore: []string{".DS_Store", "__pycache__"}})
	require.NoError(t, err)

	assert.Equal(t, []types.SourceEntry{
		dir(""),
		file("keep.txt"),
		dir("pkg"),
		file("pkg/mod.py"),
	}, entries)
}

func TestWalkInvalidRoot(t *testing.T) {
	fsys := testutil.MemoryFS(t, "/tmpl")
	testutil.WriteTree(t, fsys, "/tmpl", testutil.Tree{"file.txt": "x"})

	tests := []struct {
		name string
		root string
	}{
		{"missing root", "/does-not-exist"},
		{"root is a file", "/tmpl/file.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Walk(fsys, tt.root, Options{})
			require.Error(t, err)
			assert.Nil(t, entries)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidRoot), "got %v", err)
			assert.Equal(t, tt.root, errors.GetErrorDetails(err)[errors.DetailPath])
		})
	}
}

func TestWalkFollowsFileSymlinksOnOS(t *testing.T) {
	fsys, root := testutil.OSFS(t)
	testutil.CreateFile(t, root, "real.txt", "x")
	testutil.CreateFile(t, root, filepath.Join("sub", "a.txt"), "a")
	require.NoError(t, os.Symlink(filepath.Join(root, "real.txt"), filepath.Join(root, "link.txt")))
	require.NoError(t, os.Symlink(filepath.Join(root, "sub"), filepath.Join(root, "linked")))

	entries, err := Walk(fsys, root, Options{})
	require.NoError(t, err)

	assert.Equal(t, []types.SourceEntry{
		dir(""),
		file("link.txt"),
		file("real.txt"),
		dir("linked"),
		dir("sub"),
		file("sub/a.txt"),
	}, entries)
}
