package config

import (
	"io/fs"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/stamp/pkg/errors"
	"github.com/arthur-debert/stamp/pkg/render"
	"github.com/arthur-debert/stamp/pkg/types"
)

// Config is the effective application configuration
type Config struct {
	TemplatesDir string      `koanf:"templates_dir" toml:"templates_dir"`
	ExistsPolicy string      `koanf:"exists_policy" toml:"exists_policy"`
	Engine       string      `koanf:"engine" toml:"engine"`
	Ignore       []string    `koanf:"ignore" toml:"ignore"`
	Permissions  Permissions `koanf:"permissions" toml:"permissions"`
	Log          Log         `koanf:"log" toml:"log"`
}

// Permissions of created paths
type Permissions struct {
	Directory uint32 `koanf:"directory" toml:"directory"`
	File      uint32 `koanf:"file" toml:"file"`
}

// Log settings
type Log struct {
	File bool `koanf:"file" toml:"file"`
}

// DirMode returns the permissions for created directories
func (p Permissions) DirMode() fs.FileMode {
	return fs.FileMode(p.Directory) & fs.ModePerm
}

// FileMode returns the permissions for created files
func (p Permissions) FileMode() fs.FileMode {
	return fs.FileMode(p.File) & fs.ModePerm
}

// Validate checks values that cannot be checked by decoding alone
func (c *Config) Validate() error {
	if _, err := types.ParseExistsPolicy(c.ExistsPolicy); err != nil {
		return err
	}
	if c.Engine != "" && !render.Engines().Has(c.Engine) {
		return errors.Newf(errors.ErrConfiguration, "unknown template engine %q", c.Engine).
			WithDetail("engine", c.Engine)
	}
	if c.Permissions.Directory > 0o777 || c.Permissions.File > 0o777 {
		return errors.Newf(errors.ErrConfiguration, "permissions must be at most 0o777 (directory %o, file %o)",
			c.Permissions.Directory, c.Permissions.File)
	}
	return nil
}

// TOML serialises the configuration
func (c *Config) TOML() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return data, nil
}
