package newcmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/stamp/pkg/catalog"
	"github.com/arthur-debert/stamp/pkg/errors"
	"github.com/arthur-debert/stamp/pkg/testutil"
)

const root = "/templates"

func family(t *testing.T) *catalog.Family {
	fsys := testutil.MemoryFS(t, root)
	testutil.WriteTree(t, fsys, root, testutil.Tree{
		"app/default/x":          "",
		"app/examples/mnist/y":   "",
		"app/examples/flowers/z": "",
		"app/variables.yaml":     "args:\n  app_name: {}\n  license:\n    default: MIT\n",
	})
	c, err := catalog.Open(fsys, root)
	require.NoError(t, err)
	f, err := c.Family("app")
	require.NoError(t, err)
	return f
}

func TestPlan(t *testing.T) {
	specs, err := Plan(family(t), "", []string{"mnist", "flowers"}, map[string]string{"app_name": "demo"}, "out")
	require.NoError(t, err)
	require.Len(t, specs, 3)

	assert.Equal(t, filepath.Join(root, "app", "default"), specs[0].Template)
	assert.Equal(t, filepath.Join(root, "app", "examples", "mnist"), specs[1].Template)
	assert.Equal(t, filepath.Join(root, "app", "examples", "flowers"), specs[2].Template)
	for _, spec := range specs {
		assert.Equal(t, "out", spec.Target)
		assert.Equal(t, map[string]any{"app_name": "demo", "license": "MIT"}, spec.Context)
		assert.Equal(t, map[string]string{"__APP_NAME__": "demo", "__LICENSE__": "MIT"}, spec.Substitutions)
	}
}

func TestPlanErrors(t *testing.T) {
	_, err := Plan(family(t), "", nil, nil, "out")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = Plan(family(t), "gpu", nil, map[string]string{"app_name": "x"}, "out")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	_, err = Plan(family(t), "default", []string{"cifar"}, map[string]string{"app_name": "x"}, "out")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
