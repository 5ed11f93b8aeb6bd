// Package conflict decides what to do with each target path of a run,
// given what already exists there and the job's exists policy.
package conflict

import (
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/stamp/pkg/errors"
	"github.com/arthur-debert/stamp/pkg/types"
)

// Action tells the job what to do with a file
type Action string

const (
	// ActionWrite renders the template and writes the target
	ActionWrite Action = "write"

	// ActionSkip leaves the target untouched
	ActionSkip Action = "skip"
)

// Decision is the resolution for one file target
type Decision struct {
	Action  Action
	Outcome types.Outcome
}

// Resolver inspects target paths through a filesystem
type Resolver struct {
	fs      types.FS
	policy  types.ExistsPolicy
	dirMode fs.FileMode
	dryRun  bool
}

// Option configures a Resolver
type Option func(*Resolver)

// WithDirMode sets the permissions of created directories
func WithDirMode(mode fs.FileMode) Option {
	return func(r *Resolver) { r.dirMode = mode }
}

// WithDryRun makes EnsureDir report what it would do without creating anything
func WithDryRun(dryRun bool) Option {
	return func(r *Resolver) { r.dryRun = dryRun }
}

// New creates a Resolver applying policy to existing files
func New(fsys types.FS, policy types.ExistsPolicy, opts ...Option) *Resolver {
	r := &Resolver{fs: fsys, policy: policy, dirMode: 0755}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Policy returns the exists policy in force
func (r *Resolver) Policy() types.ExistsPolicy {
	return r.policy
}

// EnsureDir makes sure a directory exists at path, creating missing
// ancestors. The policy does not apply to directories: an existing
// directory is reused whatever the policy, and a non-directory in the way
// is always a PATH_COLLISION.
func (r *Resolver) EnsureDir(path string) (types.Outcome, error) {
	info, err := r.fs.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return types.OutcomeExists, nil
	case err == nil:
		return "", errors.Newf(errors.ErrPathCollision, "%q exists and is not a directory", path).
			WithDetail(errors.DetailTarget, path).
			WithDetail(errors.DetailKind, types.KindDirectory)
	case !stderrors.Is(err, fs.ErrNotExist):
		return "", errors.Wrapf(err, errors.ErrWrite, "cannot inspect %q", path).
			WithDetail(errors.DetailTarget, path)
	}

	if !r.dryRun {
		if err := r.fs.MkdirAll(path, r.dirMode); err != nil {
			return "", errors.Wrapf(err, errors.ErrWrite, "failed to create directory %q", path).
				WithDetail(errors.DetailTarget, path).
				WithDetail(errors.DetailKind, types.KindDirectory)
		}
	}
	return types.OutcomeCreated, nil
}

// Resolve decides the fate of a file target:
//
//	missing                    write, CREATED
//	existing file, skip        skip, SKIPPED
//	existing file, error       ALREADY_EXISTS
//	existing file, overwrite   write, OVERWRITTEN
//	existing directory         PATH_COLLISION
func (r *Resolver) Resolve(path string) (Decision, error) {
	info, err := r.fs.Stat(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return Decision{Action: ActionWrite, Outcome: types.OutcomeCreated}, nil
		}
		return Decision{}, errors.Wrapf(err, errors.ErrWrite, "cannot inspect %q", path).
			WithDetail(errors.DetailTarget, path)
	}

	if info.IsDir() {
		return Decision{}, errors.Newf(errors.ErrPathCollision, "%q is a directory, expected a file", path).
			WithDetail(errors.DetailTarget, path).
			WithDetail(errors.DetailKind, types.KindFile)
	}

	switch r.policy {
	case types.PolicySkip:
		return Decision{Action: ActionSkip, Outcome: types.OutcomeSkipped}, nil
	case types.PolicyOverwrite:
		return Decision{Action: ActionWrite, Outcome: types.OutcomeOverwritten}, nil
	default:
		return Decision{}, errors.Newf(errors.ErrAlreadyExists, "%q already exists", path).
			WithDetail(errors.DetailTarget, path)
	}
}
