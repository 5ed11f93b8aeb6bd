// Package walker enumerates a template tree in a deterministic pre-order.
//
// A directory is always reported before anything beneath it. Inside one
// directory its files come first, sorted by name, followed by each
// subdirectory (also sorted by name) together with its own subtree. The
// template root itself is the first entry, with an empty relative path.
package walker

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/stamp/pkg/errors"
	"github.com/arthur-debert/stamp/pkg/logging"
	"github.com/arthur-debert/stamp/pkg/types"
)

// Options tunes a walk
type Options struct {
	// Ignore holds base-name glob patterns (filepath.Match syntax). A matching
	// directory is skipped together with its subtree.
	Ignore []string
}

// Walk returns every entry under root in walk order. It fails with
// INVALID_ROOT before producing anything if root is missing or not a directory.
func Walk(fsys types.FS, root string, opts Options) ([]types.SourceEntry, error) {
	logger := logging.GetLogger("walker")

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidRoot, "template root %q does not exist", root).
			WithDetail(errors.DetailPath, root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidRoot, "template root %q is not a directory", root).
			WithDetail(errors.DetailPath, root)
	}

	w := &walk{fsys: fsys, root: root, ignore: opts.Ignore}
	w.entries = append(w.entries, types.SourceEntry{RelPath: "", Kind: types.KindDirectory})
	if err := w.dir(""); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("root", root).
		Int("entries", len(w.entries)).
		Msg("walked template tree")

	return w.entries, nil
}

type walk struct {
	fsys    types.FS
	root    string
	ignore  []string
	entries []types.SourceEntry
}

func (w *walk) dir(rel string) error {
	abs := filepath.Join(w.root, rel)
	children, err := w.fsys.ReadDir(abs)
	if err != nil {
		return errors.Wrapf(err, errors.ErrRead, "failed to list %q", abs).
			WithDetail(errors.DetailPath, rel).
			WithDetail(errors.DetailKind, types.KindDirectory)
	}

	var files, dirs []string
	linked := make(map[string]bool)
	for _, child := range children {
		name := child.Name()
		if w.ignored(name) {
			continue
		}
		kind, err := w.classify(child, filepath.Join(abs, name))
		if err != nil {
			return errors.Wrapf(err, errors.ErrRead, "failed to stat %q", filepath.Join(abs, name)).
				WithDetail(errors.DetailPath, filepath.Join(rel, name))
		}
		switch kind {
		case kindDir:
			dirs = append(dirs, name)
		case kindLinkedDir:
			dirs = append(dirs, name)
			linked[name] = true
		default:
			files = append(files, name)
		}
	}
	sort.Strings(files)
	sort.Strings(dirs)

	for _, name := range files {
		w.entries = append(w.entries, types.SourceEntry{RelPath: filepath.Join(rel, name), Kind: types.KindFile})
	}
	for _, name := range dirs {
		childRel := filepath.Join(rel, name)
		w.entries = append(w.entries, types.SourceEntry{RelPath: childRel, Kind: types.KindDirectory})
		// Linked directories are mirrored but not descended into, so link
		// cycles cannot recurse forever.
		if linked[name] {
			continue
		}
		if err := w.dir(childRel); err != nil {
			return err
		}
	}
	return nil
}

type childKind int

const (
	kindFile childKind = iota
	kindDir
	kindLinkedDir
)

// classify follows symbolic links to decide what a child is
func (w *walk) classify(child fs.DirEntry, abs string) (childKind, error) {
	if child.Type()&fs.ModeSymlink == 0 {
		if child.IsDir() {
			return kindDir, nil
		}
		return kindFile, nil
	}
	info, err := w.fsys.Stat(abs)
	if err != nil {
		return kindFile, err
	}
	if info.IsDir() {
		return kindLinkedDir, nil
	}
	return kindFile, nil
}

func (w *walk) ignored(name string) bool {
	for _, pattern := range w.ignore {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
