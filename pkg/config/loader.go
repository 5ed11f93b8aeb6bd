package config

import (
	_ "embed"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/stamp/pkg/errors"
	"github.com/arthur-debert/stamp/pkg/logging"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// ProjectFile is the per-directory config file name
const ProjectFile = ".stamp.toml"

// EnvPrefix prefixes every environment override
const EnvPrefix = "STAMP_"

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Paths locates the config files. Empty fields use the defaults.
type Paths struct {
	// User defaults to $XDG_CONFIG_HOME/stamp/config.toml
	User string
	// ProjectDir defaults to the working directory
	ProjectDir string
}

// UserConfigPath returns the default user config location
func UserConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "stamp", "config.toml")
	}
	return filepath.Join(xdg.ConfigHome, "stamp", "config.toml")
}

// DefaultTemplatesDir is used when templates_dir is empty
func DefaultTemplatesDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "stamp", "templates")
	}
	return filepath.Join(xdg.DataHome, "stamp", "templates")
}

// Defaults returns the built-in configuration
func Defaults() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}
	return unmarshal(k)
}

// Load builds the effective configuration from every layer
func Load(paths Paths) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User and project files
	user := paths.User
	if user == "" {
		user = UserConfigPath()
	}
	projectDir := paths.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	for _, path := range []string{user, filepath.Join(projectDir, ProjectFile)} {
		if _, err := os.Stat(path); err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot access config %s", path).
				WithDetail(errors.DetailPath, path)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail(errors.DetailPath, path)
		}
		logger.Debug().Str("path", path).Msg("loaded config file")
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = DefaultTemplatesDir()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to decode configuration")
	}
	return &cfg, nil
}
