package catalog

import (
	stderrors "errors"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/stamp/pkg/errors"
	"github.com/arthur-debert/stamp/pkg/types"
)

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Variable is one declared template input
type Variable struct {
	Name     string `yaml:"-"`
	Help     string `yaml:"help"`
	Required *bool  `yaml:"required"`
	Default  string `yaml:"default"`
}

// IsRequired reports whether a value must be supplied. Variables are
// required unless declared otherwise or given a default.
func (v Variable) IsRequired() bool {
	if v.Required != nil {
		return *v.Required
	}
	return v.Default == ""
}

// Flag is the command line flag name: app_name becomes app-name
func (v Variable) Flag() string {
	return strings.ReplaceAll(strings.ToLower(v.Name), "_", "-")
}

// Marker is the path marker: app_name becomes __APP_NAME__
func (v Variable) Marker() string {
	return "__" + strings.ToUpper(v.Name) + "__"
}

// Variables maps variable names to their declaration
type Variables map[string]Variable

// Names returns the variable names in lexicographic order
func (vs Variables) Names() []string {
	names := make([]string, 0, len(vs))
	for name := range vs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve combines supplied values with defaults. It returns the render
// context and the path substitutions; every missing required variable is
// reported in a single INVALID_INPUT error.
func (vs Variables) Resolve(values map[string]string) (map[string]any, map[string]string, error) {
	ctx := make(map[string]any, len(vs))
	subs := make(map[string]string, len(vs))
	var missing []string

	for _, name := range vs.Names() {
		v := vs[name]
		value, ok := values[name]
		if !ok || value == "" {
			value = v.Default
		}
		if value == "" && v.IsRequired() {
			missing = append(missing, "--"+v.Flag())
			continue
		}
		ctx[name] = value
		if value != "" {
			subs[v.Marker()] = value
		}
	}

	if len(missing) > 0 {
		return nil, nil, errors.Newf(errors.ErrInvalidInput, "missing required values: %s", strings.Join(missing, ", ")).
			WithDetail("missing", missing)
	}
	return ctx, subs, nil
}

type schema struct {
	Args map[string]Variable `yaml:"args"`
}

func loadVariables(fsys types.FS, path string) (Variables, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return Variables{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrRead, "cannot read %s", path).
			WithDetail(errors.DetailPath, path)
	}

	var s schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, errors.ErrSchemaInvalid, "invalid variables file %s", path).
			WithDetail(errors.DetailPath, path)
	}

	vars := make(Variables, len(s.Args))
	for name, v := range s.Args {
		if !namePattern.MatchString(name) {
			return nil, errors.Newf(errors.ErrSchemaInvalid, "invalid variable name %q in %s", name, path).
				WithDetail(errors.DetailPath, path)
		}
		v.Name = name
		vars[name] = v
	}
	return vars, nil
}
