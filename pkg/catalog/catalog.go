package catalog

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/stamp/pkg/errors"
	"github.com/arthur-debert/stamp/pkg/types"
)

// Reserved names inside a family directory
const (
	ExamplesDir    = "examples"
	VariablesFile  = "variables.yaml"
	DefaultVariant = "default"
	ReadmeFile     = "README.md"
)

// Catalog is a templates directory
type Catalog struct {
	fs   types.FS
	root string
}

// Open checks that root is a directory and returns its catalog
func Open(fsys types.FS, root string) (*Catalog, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "templates directory %q not found", root).
			WithDetail(errors.DetailPath, root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrNotFound, "templates directory %q is not a directory", root).
			WithDetail(errors.DetailPath, root)
	}
	return &Catalog{fs: fsys, root: root}, nil
}

// Root returns the templates directory
func (c *Catalog) Root() string {
	return c.root
}

// Families returns the family names in lexicographic order
func (c *Catalog) Families() ([]string, error) {
	return subdirs(c.fs, c.root)
}

// Family loads one family together with its variables schema
func (c *Catalog) Family(name string) (*Family, error) {
	path := filepath.Join(c.root, name)
	info, err := c.fs.Stat(path)
	if err != nil || !info.IsDir() || name == "" || filepath.Base(name) != name {
		return nil, errors.Newf(errors.ErrNotFound, "template family %q not found in %s", name, c.root).
			WithDetail("family", name)
	}

	vars, err := loadVariables(c.fs, filepath.Join(path, VariablesFile))
	if err != nil {
		return nil, err
	}
	return &Family{Name: name, Path: path, fs: c.fs, variables: vars}, nil
}

// Family is one named group of variants and examples
type Family struct {
	Name string
	Path string

	fs        types.FS
	variables Variables
}

// Variants returns the variant names in lexicographic order
func (f *Family) Variants() ([]string, error) {
	dirs, err := subdirs(f.fs, f.Path)
	if err != nil {
		return nil, err
	}
	variants := dirs[:0]
	for _, d := range dirs {
		if d != ExamplesDir {
			variants = append(variants, d)
		}
	}
	return variants, nil
}

// Examples returns the example names in lexicographic order
func (f *Family) Examples() ([]string, error) {
	dir := filepath.Join(f.Path, ExamplesDir)
	if info, err := f.fs.Stat(dir); err != nil || !info.IsDir() {
		return nil, nil
	}
	return subdirs(f.fs, dir)
}

// Variables returns the declared variables
func (f *Family) Variables() Variables {
	return f.variables
}

// Readme returns the family README, or "" when there is none
func (f *Family) Readme() (string, error) {
	path := filepath.Join(f.Path, ReadmeFile)
	data, err := f.fs.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", errors.Wrapf(err, errors.ErrRead, "cannot read %s", path).
			WithDetail(errors.DetailPath, path)
	}
	return string(data), nil
}

// VariantPath returns the template root of a variant
func (f *Family) VariantPath(variant string) (string, error) {
	if variant == "" {
		variant = DefaultVariant
	}
	return f.lookup(f.Variants, variant, f.Path, "variant")
}

// ExamplePath returns the template root of an example
func (f *Family) ExamplePath(example string) (string, error) {
	return f.lookup(f.Examples, example, filepath.Join(f.Path, ExamplesDir), "example")
}

func (f *Family) lookup(list func() ([]string, error), name, parent, what string) (string, error) {
	names, err := list()
	if err != nil {
		return "", err
	}
	i := sort.SearchStrings(names, name)
	if i == len(names) || names[i] != name {
		return "", errors.Newf(errors.ErrNotFound, "%s %q not found in family %q (available: %v)", what, name, f.Name, names).
			WithDetail(what, name)
	}
	return filepath.Join(parent, name), nil
}

func subdirs(fsys types.FS, dir string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRead, "cannot list %s", dir).
			WithDetail(errors.DetailPath, dir)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
