// Package values builds a render context from values files and --set pairs.
package values

import (
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/stamp/pkg/errors"
)

// parserFor picks a koanf parser by file extension. JSON goes through the
// YAML parser, YAML being a superset of JSON.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unsupported values file %q (want .yaml, .yml, .toml or .json)", path).
			WithDetail(errors.DetailPath, path)
	}
}

// Load merges the values files in order, later files winning, then applies
// sets. Each set is a key=value pair; dotted keys nest (a.b=c yields
// {"a": {"b": "c"}}). Set values are always strings.
func Load(paths []string, sets []string) (map[string]any, error) {
	k := koanf.New(".")

	for _, path := range paths {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load values from %s", path).
				WithDetail(errors.DetailPath, path)
		}
	}

	if len(sets) > 0 {
		pairs, err := ParseSets(sets)
		if err != nil {
			return nil, err
		}
		if err := k.Load(confmap.Provider(pairs, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "failed to apply --set values")
		}
	}

	return k.Raw(), nil
}

// ParseSets splits key=value pairs. Keys are kept flat; later pairs win.
func ParseSets(sets []string) (map[string]any, error) {
	out := make(map[string]any, len(sets))
	for _, set := range sets {
		key, value, ok := strings.Cut(set, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" || strings.HasPrefix(key, ".") || strings.HasSuffix(key, ".") {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid value %q, expected key=value", set)
		}
		out[key] = value
	}
	return out, nil
}
