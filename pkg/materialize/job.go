package materialize

import (
	stderrors "errors"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/stamp/pkg/conflict"
	"github.com/arthur-debert/stamp/pkg/errors"
	"github.com/arthur-debert/stamp/pkg/filesystem"
	"github.com/arthur-debert/stamp/pkg/logging"
	"github.com/arthur-debert/stamp/pkg/render"
	"github.com/arthur-debert/stamp/pkg/substitute"
	"github.com/arthur-debert/stamp/pkg/types"
	"github.com/arthur-debert/stamp/pkg/walker"
)

// Job is a validated materialization request. It holds no state between
// runs apart from the state of the last run.
type Job struct {
	opts     Options
	policy   types.ExistsPolicy
	sub      *substitute.Substitutor
	fs       types.FS
	renderer render.Renderer
	state    types.JobState
	logger   zerolog.Logger
}

// NewJob validates opts. Configuration problems (policy, markers, engine)
// are reported here, before the filesystem is touched.
func NewJob(opts Options) (*Job, error) {
	policy, err := types.ParseExistsPolicy(opts.ExistsPolicy)
	if err != nil {
		return nil, err
	}

	sub, err := substitute.New(opts.Substitutions)
	if err != nil {
		return nil, err
	}

	if opts.TemplateRoot == "" {
		return nil, errors.New(errors.ErrConfiguration, "template root is required")
	}
	if opts.TargetRoot == "" {
		return nil, errors.New(errors.ErrConfiguration, "target root is required")
	}
	if opts.Context == nil {
		opts.Context = map[string]any{}
	}
	if opts.FileMode == 0 {
		opts.FileMode = DefaultFileMode
	}
	if opts.DirMode == 0 {
		opts.DirMode = DefaultDirMode
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	renderer := opts.Renderer
	if renderer == nil {
		renderer, err = render.New(opts.Engine, fsys.DirFS(opts.TemplateRoot))
		if err != nil {
			return nil, err
		}
	}

	return &Job{
		opts:     opts,
		policy:   policy,
		sub:      sub,
		fs:       fsys,
		renderer: renderer,
		state:    types.JobInitialized,
		logger: logging.GetLogger("materialize").With().
			Str("template", opts.TemplateRoot).
			Str("target", opts.TargetRoot).
			Logger(),
	}, nil
}

// State returns the state of the job
func (j *Job) State() types.JobState {
	return j.state
}

// Policy returns the validated exists policy
func (j *Job) Policy() types.ExistsPolicy {
	return j.policy
}

// Run materializes the tree. On failure the returned Result holds every
// entry processed before the failing one and has state FAILED.
func (j *Job) Run() (*Result, error) {
	j.state = types.JobRunning
	result := &Result{State: j.state}
	defer logging.LogOperationStart(j.logger, "materialize")()

	j.logger.Info().
		Str("policy", string(j.policy)).
		Bool("dry_run", j.opts.DryRun).
		Msg("materialization started")

	if err := j.run(result); err != nil {
		j.state = types.JobFailed
		result.State = j.state
		j.logger.Info().Err(err).
			Int("processed", len(result.Entries)).
			Msg("materialization failed")
		return result, err
	}

	j.state = types.JobCompleted
	result.State = j.state
	j.logger.Info().
		Int("created", result.Count(types.OutcomeCreated)).
		Int("overwritten", result.Count(types.OutcomeOverwritten)).
		Int("skipped", result.Count(types.OutcomeSkipped)).
		Int("existing_dirs", result.Count(types.OutcomeExists)).
		Msg("materialization completed")
	return result, nil
}

func (j *Job) run(result *Result) error {
	entries, err := walker.Walk(j.fs, j.opts.TemplateRoot, walker.Options{Ignore: j.opts.Ignore})
	if err != nil {
		return err
	}

	resolver := conflict.New(j.fs, j.policy,
		conflict.WithDirMode(j.opts.DirMode),
		conflict.WithDryRun(j.opts.DryRun))

	for _, entry := range entries {
		target := j.TargetPath(entry.RelPath)

		var outcome types.Outcome
		if entry.IsDir() {
			outcome, err = resolver.EnsureDir(target)
		} else {
			outcome, err = j.file(resolver, entry, target)
		}
		if err != nil {
			return withEntry(err, entry, target)
		}

		result.add(entry, target, outcome)
		j.logger.Info().
			Str("path", entry.RelPath).
			Str("kind", string(entry.Kind)).
			Str("target_path", target).
			Str("outcome", string(outcome)).
			Msg("entry materialized")
	}
	return nil
}

// TargetPath maps a path relative to the template root to its destination
func (j *Job) TargetPath(relPath string) string {
	if relPath == "" {
		return j.opts.TargetRoot
	}
	return filepath.Join(j.opts.TargetRoot, j.sub.Apply(relPath))
}

func (j *Job) file(resolver *conflict.Resolver, entry types.SourceEntry, target string) (types.Outcome, error) {
	decision, err := resolver.Resolve(target)
	if err != nil {
		return "", err
	}
	if decision.Action == conflict.ActionSkip {
		return decision.Outcome, nil
	}

	source := filepath.Join(j.opts.TemplateRoot, entry.RelPath)
	info, err := j.fs.Stat(source)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrRead, "cannot stat template %q", source)
	}
	data, err := j.fs.ReadFile(source)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrRead, "cannot read template %q", source)
	}

	rendered, err := j.renderer.Render(entry.RelPath, string(data), j.opts.Context)
	if err != nil {
		if !errors.IsErrorCode(err, errors.ErrTemplateRendering) {
			err = errors.Wrapf(err, errors.ErrTemplateRendering, "failed to render %q", entry.RelPath)
		}
		return "", err
	}

	if j.opts.DryRun {
		return decision.Outcome, nil
	}

	// Substituted values may introduce path separators
	if err := j.fs.MkdirAll(filepath.Dir(target), j.opts.DirMode); err != nil {
		return "", errors.Wrapf(err, errors.ErrWrite, "failed to create parent of %q", target)
	}
	mode := j.opts.FileMode | info.Mode().Perm()&0111
	if err := j.fs.WriteFile(target, []byte(rendered), mode); err != nil {
		return "", errors.Wrapf(err, errors.ErrWrite, "failed to write %q", target)
	}
	return decision.Outcome, nil
}

// withEntry attaches the entry's location to a coded error
func withEntry(err error, entry types.SourceEntry, target string) error {
	var stampErr *errors.StampError
	if !stderrors.As(err, &stampErr) {
		stampErr = errors.Wrap(err, errors.ErrInternal, "materialization failed")
	}
	if _, ok := stampErr.Details[errors.DetailPath]; !ok {
		stampErr.WithDetail(errors.DetailPath, entry.RelPath)
	}
	if _, ok := stampErr.Details[errors.DetailTarget]; !ok {
		stampErr.WithDetail(errors.DetailTarget, target)
	}
	if _, ok := stampErr.Details[errors.DetailKind]; !ok {
		stampErr.WithDetail(errors.DetailKind, entry.Kind)
	}
	return stampErr
}
