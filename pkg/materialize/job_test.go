package materialize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/stamp/pkg/errors"
	"github.com/arthur-debert/stamp/pkg/render"
	"github.com/arthur-debert/stamp/pkg/testutil"
	"github.com/arthur-debert/stamp/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	tmplRoot   = "/templates/app"
	targetRoot = "/work/out"
)

var appTemplate = testutil.Tree{
	"README.md":                          "# {{ app_name }}\n",
	"setup.py":                           "name = \"{{ app_name }}\"\n",
	"__APP_NAME__/__init__.py":           "",
	"__APP_NAME__/cli.py":                "print(\"{{ app_name }} v{{ version }}\")\n",
	"__APP_NAME__/pipelines/__init__.py": "",
	"docs/":                              "",
}

func newFS(t *testing.T, tree testutil.Tree) types.FS {
	t.Helper()
	fsys := testutil.MemoryFS(t, tmplRoot)
	testutil.WriteTree(t, fsys, tmplRoot, tree)
	return fsys
}

func appOptions(fsys types.FS, policy string) Options {
	return Options{
		TemplateRoot:  tmplRoot,
		TargetRoot:    targetRoot,
		Context:       map[string]any{"app_name": "demo", "version": "1.0"},
		Substitutions: map[string]string{"__APP_NAME__": "demo"},
		ExistsPolicy:  policy,
		FS:            fsys,
	}
}

func run(t *testing.T, opts Options) *Result {
	t.Helper()
	job, err := NewJob(opts)
	require.NoError(t, err)
	result, err := job.Run()
	require.NoError(t, err)
	require.Equal(t, types.JobCompleted, result.State)
	return result
}

func TestRunMirrorsStructure(t *testing.T) {
	fsys := newFS(t, appTemplate)
	result := run(t, appOptions(fsys, "error"))

	assert.Equal(t, testutil.Tree{
		"README.md":                  "# demo\n",
		"setup.py":                   "name = \"demo\"\n",
		"demo/":                      "",
		"demo/__init__.py":           "",
		"demo/cli.py":                "print(\"demo v1.0\")\n",
		"demo/pipelines/":            "",
		"demo/pipelines/__init__.py": "",
		"docs/":                      "",
	}, testutil.ReadTree(t, fsys, targetRoot))

	assert.Len(t, result.Entries, 9)
	assert.Equal(t, 9, result.Count(types.OutcomeCreated))
	assert.Len(t, result.Files(), 5)

	first := result.Entries[0]
	assert.True(t, first.Entry.IsRoot())
	assert.Equal(t, targetRoot, first.TargetPath)
}

func TestRunOutcomeOrder(t *testing.T) {
	fsys := newFS(t, appTemplate)
	result := run(t, appOptions(fsys, "error"))

	var paths []string
	for _, e := range result.Entries {
		paths = append(paths, filepath.ToSlash(e.TargetPath))
	}
	assert.Equal(t, []string{
		"/work/out",
		"/work/out/README.md",
		"/work/out/setup.py",
		"/work/out/demo",
		"/work/out/demo/__init__.py",
		"/work/out/demo/cli.py",
		"/work/out/demo/pipelines",
		"/work/out/demo/pipelines/__init__.py",
		"/work/out/docs",
	}, paths)
}

func TestRunNameSubstitution(t *testing.T) {
	fsys := newFS(t, testutil.Tree{
		"__NAME__/__NAME__.py": "x = 1\n",
	})
	opts := Options{
		TemplateRoot:  tmplRoot,
		TargetRoot:    targetRoot,
		Substitutions: map[string]string{"__NAME__": "demo"},
		FS:            fsys,
	}
	run(t, opts)

	testutil.AssertDir(t, fsys, "/work/out/demo")
	testutil.AssertFileContent(t, fsys, "/work/out/demo/demo.py", "x = 1\n")
	testutil.AssertNoPath(t, fsys, "/work/out/__NAME__")
}

func TestRunContentKeepsTrailingNewline(t *testing.T) {
	fsys := newFS(t, testutil.Tree{"greeting.txt": "Hello {{ name }}\n"})
	opts := Options{
		TemplateRoot: tmplRoot,
		TargetRoot:   targetRoot,
		Context:      map[string]any{"name": "World"},
		FS:           fsys,
	}
	run(t, opts)

	testutil.AssertFileContent(t, fsys, "/work/out/greeting.txt", "Hello World\n")
}

func TestRunIdempotentUnderSkip(t *testing.T) {
	fsys := newFS(t, appTemplate)
	opts := appOptions(fsys, "skip")
	run(t, opts)
	first := testutil.ReadTree(t, fsys, targetRoot)

	// Local edits survive a second run
	require.NoError(t, fsys.WriteFile("/work/out/setup.py", []byte("edited\n"), 0644))
	first["setup.py"] = "edited\n"

	result := run(t, opts)
	assert.Equal(t, first, testutil.ReadTree(t, fsys, targetRoot))
	assert.Equal(t, 0, result.Count(types.OutcomeCreated))
	assert.Equal(t, 5, result.Count(types.OutcomeSkipped))
	assert.Equal(t, 4, result.Count(types.OutcomeExists))
}

func TestRunSkipStillCreatesDirectories(t *testing.T) {
	fsys := newFS(t, appTemplate)
	testutil.WriteTree(t, fsys, targetRoot, testutil.Tree{"README.md": "mine\n"})

	result := run(t, appOptions(fsys, "skip"))

	testutil.AssertFileContent(t, fsys, "/work/out/README.md", "mine\n")
	testutil.AssertDir(t, fsys, "/work/out/demo/pipelines")
	testutil.AssertFileContent(t, fsys, "/work/out/setup.py", "name = \"demo\"\n")
	assert.Equal(t, 1, result.Count(types.OutcomeSkipped))
}

func TestRunStrictConflictUnderError(t *testing.T) {
	fsys := newFS(t, appTemplate)
	testutil.WriteTree(t, fsys, targetRoot, testutil.Tree{"demo/cli.py": "mine\n"})

	job, err := NewJob(appOptions(fsys, "error"))
	require.NoError(t, err)
	result, err := job.Run()

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists), "got %v", err)
	details := errors.GetErrorDetails(err)
	assert.Equal(t, "/work/out/demo/cli.py", filepath.ToSlash(details[errors.DetailTarget].(string)))
	assert.Equal(t, filepath.Join("__APP_NAME__", "cli.py"), details[errors.DetailPath])

	assert.Equal(t, types.JobFailed, result.State)
	assert.Equal(t, types.JobFailed, job.State())
	testutil.AssertFileContent(t, fsys, "/work/out/demo/cli.py", "mine\n")
	// Entries before the conflict were written, entries after were not
	testutil.AssertFileContent(t, fsys, "/work/out/demo/__init__.py", "")
	testutil.AssertNoPath(t, fsys, "/work/out/demo/pipelines")
	testutil.AssertNoPath(t, fsys, "/work/out/docs")
}

func TestRunOverwriteRestoresContent(t *testing.T) {
	fsys := newFS(t, appTemplate)
	opts := appOptions(fsys, "overwrite")
	run(t, opts)
	require.NoError(t, fsys.WriteFile("/work/out/README.md", []byte("stale"), 0644))

	result := run(t, opts)

	testutil.AssertFileContent(t, fsys, "/work/out/README.md", "# demo\n")
	assert.Equal(t, 5, result.Count(types.OutcomeOverwritten))
	assert.Equal(t, 4, result.Count(types.OutcomeExists))
}

func TestRunFailFastOnRenderError(t *testing.T) {
	fsys := newFS(t, testutil.Tree{
		"a.txt":     "ok\n",
		"b.txt":     "{{ undefined_value }}\n",
		"c.txt":     "never\n",
		"sub/d.txt": "never\n",
	})
	job, err := NewJob(Options{TemplateRoot: tmplRoot, TargetRoot: targetRoot, FS: fsys})
	require.NoError(t, err)

	result, err := job.Run()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRendering), "got %v", err)
	assert.Equal(t, "b.txt", errors.GetErrorDetails(err)[errors.DetailPath])

	require.Len(t, result.Entries, 2)
	assert.Equal(t, "a.txt", result.Entries[1].RelPath)
	testutil.AssertFileContent(t, fsys, "/work/out/a.txt", "ok\n")
	testutil.AssertNoPath(t, fsys, "/work/out/b.txt")
	testutil.AssertNoPath(t, fsys, "/work/out/c.txt")
	testutil.AssertNoPath(t, fsys, "/work/out/sub")
}

func TestRunDirectoryWhereFileBelongs(t *testing.T) {
	fsys := newFS(t, testutil.Tree{"config": "x"})
	testutil.WriteTree(t, fsys, targetRoot, testutil.Tree{"config/": ""})

	for _, policy := range types.PolicyNames() {
		t.Run(policy, func(t *testing.T) {
			job, err := NewJob(Options{TemplateRoot: tmplRoot, TargetRoot: targetRoot, FS: fsys, ExistsPolicy: policy})
			require.NoError(t, err)
			_, err = job.Run()
			assert.True(t, errors.IsErrorCode(err, errors.ErrPathCollision), "got %v", err)
		})
	}
}

func TestRunFileWhereDirectoryBelongs(t *testing.T) {
	fsys := newFS(t, testutil.Tree{"pkg/mod.py": ""})
	testutil.WriteTree(t, fsys, targetRoot, testutil.Tree{"pkg": "not a dir"})

	job, err := NewJob(Options{TemplateRoot: tmplRoot, TargetRoot: targetRoot, FS: fsys, ExistsPolicy: "overwrite"})
	require.NoError(t, err)
	_, err = job.Run()
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathCollision), "got %v", err)
	testutil.AssertFileContent(t, fsys, "/work/out/pkg", "not a dir")
}

func TestNewJobValidatesBeforeIO(t *testing.T) {
	fsys := testutil.MemoryFS(t, "/")

	tests := []struct {
		name string
		opts Options
	}{
		{"invalid policy", Options{ExistsPolicy: "merge"}},
		{"empty marker", Options{Substitutions: map[string]string{"": "x"}}},
		{"overlapping markers", Options{Substitutions: map[string]string{"__A__": "x", "__A__B__": "y"}}},
		{"unknown engine", Options{Engine: "mustache"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.TemplateRoot = "/missing"
			tt.opts.TargetRoot = targetRoot
			tt.opts.FS = fsys

			job, err := NewJob(tt.opts)
			assert.Nil(t, job)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration), "got %v", err)
		})
	}

	_, err := NewJob(Options{TargetRoot: targetRoot})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
	_, err = NewJob(Options{TemplateRoot: tmplRoot})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
}

func TestRunInvalidRoot(t *testing.T) {
	fsys := newFS(t, testutil.Tree{"file.txt": "x"})

	for _, root := range []string{"/nowhere", "/templates/app/file.txt"} {
		job, err := NewJob(Options{TemplateRoot: root, TargetRoot: targetRoot, FS: fsys})
		require.NoError(t, err)
		assert.Equal(t, types.JobInitialized, job.State())

		result, err := job.Run()
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidRoot), "got %v", err)
		assert.Empty(t, result.Entries)
		assert.Equal(t, types.JobFailed, job.State())
		testutil.AssertNoPath(t, fsys, targetRoot)
	}
}

func TestRunPassesContextUnchanged(t *testing.T) {
	fsys := newFS(t, testutil.Tree{"a": "A", "b/c": "C"})
	ctx := map[string]any{"k": "v"}

	var seen []string
	opts := Options{
		TemplateRoot: tmplRoot,
		TargetRoot:   targetRoot,
		Context:      ctx,
		FS:           fsys,
		Renderer: render.Func(func(relPath, content string, got map[string]any) (string, error) {
			assert.Equal(t, ctx, got)
			seen = append(seen, filepath.ToSlash(relPath))
			return content + "!", nil
		}),
	}
	run(t, opts)

	assert.Equal(t, []string{"a", "b/c"}, seen)
	testutil.AssertFileContent(t, fsys, "/work/out/b/c", "C!")
}

func TestRunDryRun(t *testing.T) {
	fsys := newFS(t, appTemplate)
	opts := appOptions(fsys, "error")
	opts.DryRun = true

	result := run(t, opts)

	assert.Equal(t, 9, result.Count(types.OutcomeCreated))
	testutil.AssertNoPath(t, fsys, targetRoot)
}

func TestRunDryRunStillRendersAndResolves(t *testing.T) {
	fsys := newFS(t, testutil.Tree{"bad.txt": "{{ nope }}"})
	opts := Options{TemplateRoot: tmplRoot, TargetRoot: targetRoot, FS: fsys, DryRun: true}

	job, err := NewJob(opts)
	require.NoError(t, err)
	_, err = job.Run()
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRendering))
}

func TestRunIgnore(t *testing.T) {
	fsys := newFS(t, testutil.Tree{"keep.txt": "", ".DS_Store": "", "cache/x": ""})
	opts := Options{TemplateRoot: tmplRoot, TargetRoot: targetRoot, FS: fsys, Ignore: []string{".DS_Store", "cache"}}
	run(t, opts)

	assert.Equal(t, testutil.Tree{"keep.txt": ""}, testutil.ReadTree(t, fsys, targetRoot))
}

func TestRunIncludeFromTemplateRoot(t *testing.T) {
	fsys := newFS(t, testutil.Tree{
		"main.txt":          "{% include \"partials/head.txt\" %}body\n",
		"partials/head.txt": "head {{ name }}\n",
	})
	opts := Options{TemplateRoot: tmplRoot, TargetRoot: targetRoot, FS: fsys, Context: map[string]any{"name": "x"}}
	run(t, opts)

	testutil.AssertFileContent(t, fsys, "/work/out/main.txt", "head x\nbody\n")
}

func TestRunUndefinedInIgnoredPartial(t *testing.T) {
	fsys := newFS(t, testutil.Tree{
		"main.txt":         "{% include \"_partials/h.txt\" %}",
		"_partials/h.txt":  "x={{ missing }}\n",
		"_partials/ok.txt": "ok\n",
	})
	job, err := NewJob(Options{TemplateRoot: tmplRoot, TargetRoot: targetRoot, FS: fsys, Ignore: []string{"_partials"}})
	require.NoError(t, err)

	result, err := job.Run()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRendering), "got %v", err)
	assert.Equal(t, "main.txt", errors.GetErrorDetails(err)[errors.DetailPath])
	assert.Equal(t, types.JobFailed, result.State)
	testutil.AssertNoPath(t, fsys, "/work/out/main.txt")
}

func TestRunUndefinedAnywhereInExpression(t *testing.T) {
	for name, content := range map[string]string{
		"filter argument": "{{ \"a\"|add:missing }}\n",
		"negation":        "y{{ not missing }}\n",
		"condition":       "{% if missing %}y{% endif %}\n",
	} {
		t.Run(name, func(t *testing.T) {
			fsys := newFS(t, testutil.Tree{"f.txt": content})
			job, err := NewJob(Options{TemplateRoot: tmplRoot, TargetRoot: targetRoot, FS: fsys})
			require.NoError(t, err)

			_, err = job.Run()
			assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRendering), "got %v", err)
			testutil.AssertNoPath(t, fsys, "/work/out/f.txt")
		})
	}
}

func TestRunOnOSKeepsExecutableBits(t *testing.T) {
	fsys, dir := testutil.OSFS(t)
	src := filepath.Join(dir, "tmpl")
	dst := filepath.Join(dir, "out")
	script := testutil.CreateFile(t, src, filepath.Join("bin", "run.sh"), "#!/bin/sh\necho {{ name }}\n")
	require.NoError(t, os.Chmod(script, 0755))
	testutil.CreateFile(t, src, "plain.txt", "plain\n")

	job, err := NewJob(Options{TemplateRoot: src, TargetRoot: dst, FS: fsys, Context: map[string]any{"name": "hi"}})
	require.NoError(t, err)
	_, err = job.Run()
	require.NoError(t, err)

	testutil.AssertFileContent(t, fsys, filepath.Join(dst, "bin", "run.sh"), "#!/bin/sh\necho hi\n")
	info, err := os.Stat(filepath.Join(dst, "bin", "run.sh"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0100)

	info, err = os.Stat(filepath.Join(dst, "plain.txt"))
	require.NoError(t, err)
	assert.Zero(t, info.Mode().Perm()&0111)
}

func TestTargetPath(t *testing.T) {
	job, err := NewJob(Options{
		TemplateRoot:  tmplRoot,
		TargetRoot:    targetRoot,
		Substitutions: map[string]string{"__APP_NAME__": "demo", "__TASK__": "train"},
	})
	require.NoError(t, err)

	assert.Equal(t, targetRoot, job.TargetPath(""))
	assert.Equal(t, filepath.Join(targetRoot, "demo", "tasks", "train.py"),
		job.TargetPath(filepath.Join("__APP_NAME__", "tasks", "__TASK__.py")))
}
