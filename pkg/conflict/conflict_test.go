package conflict

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/stamp/pkg/errors"
	"github.com/arthur-debert/stamp/pkg/testutil"
	"github.com/arthur-debert/stamp/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) types.FS {
	fsys := testutil.MemoryFS(t, "/out")
	testutil.WriteTree(t, fsys, "/out", testutil.Tree{
		"existing.txt": "old",
		"dir/":         "",
	})
	return fsys
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		policy  types.ExistsPolicy
		path    string
		want    Decision
		errCode errors.ErrorCode
	}{
		{"missing under skip", types.PolicySkip, "new.txt", Decision{ActionWrite, types.OutcomeCreated}, ""},
		{"missing under error", types.PolicyError, "new.txt", Decision{ActionWrite, types.OutcomeCreated}, ""},
		{"missing under overwrite", types.PolicyOverwrite, "new.txt", Decision{ActionWrite, types.OutcomeCreated}, ""},
		{"existing under skip", types.PolicySkip, "existing.txt", Decision{ActionSkip, types.OutcomeSkipped}, ""},
		{"existing under overwrite", types.PolicyOverwrite, "existing.txt", Decision{ActionWrite, types.OutcomeOverwritten}, ""},
		{"existing under error", types.PolicyError, "existing.txt", Decision{}, errors.ErrAlreadyExists},
		{"directory under skip", types.PolicySkip, "dir", Decision{}, errors.ErrPathCollision},
		{"directory under overwrite", types.PolicyOverwrite, "dir", Decision{}, errors.ErrPathCollision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(setup(t), tt.policy)
			target := filepath.Join("/out", tt.path)

			got, err := r.Resolve(target)
			if tt.errCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.errCode), "got %v", err)
				assert.Equal(t, target, errors.GetErrorDetails(err)[errors.DetailTarget])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveNeverWrites(t *testing.T) {
	fsys := setup(t)
	_, err := New(fsys, types.PolicyOverwrite).Resolve("/out/existing.txt")
	require.NoError(t, err)
	testutil.AssertFileContent(t, fsys, "/out/existing.txt", "old")
}

func TestEnsureDir(t *testing.T) {
	for _, policy := range types.ValidExistsPolicies {
		t.Run(string(policy), func(t *testing.T) {
			fsys := setup(t)
			r := New(fsys, policy)

			outcome, err := r.EnsureDir("/out/a/b/c")
			require.NoError(t, err)
			assert.Equal(t, types.OutcomeCreated, outcome)
			testutil.AssertDir(t, fsys, "/out/a/b/c")

			outcome, err = r.EnsureDir("/out/dir")
			require.NoError(t, err)
			assert.Equal(t, types.OutcomeExists, outcome)

			_, err = r.EnsureDir("/out/existing.txt")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrPathCollision))
			testutil.AssertFileContent(t, fsys, "/out/existing.txt", "old")
		})
	}
}

func TestEnsureDirDryRun(t *testing.T) {
	fsys := setup(t)
	r := New(fsys, types.PolicyError, WithDryRun(true))

	outcome, err := r.EnsureDir("/out/planned")
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeCreated, outcome)
	testutil.AssertNoPath(t, fsys, "/out/planned")
}

func TestEnsureDirMode(t *testing.T) {
	fsys, root := testutil.OSFS(t)
	r := New(fsys, types.PolicyError, WithDirMode(0700))

	_, err := r.EnsureDir(filepath.Join(root, "private"))
	require.NoError(t, err)

	info, err := fsys.Stat(filepath.Join(root, "private"))
	require.NoError(t, err)
	assert.Equal(t, "drwx------", info.Mode().String())
}
