// Package settings holds the settings of the gitform command.
package settings

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gopasspw/gitform"
	"github.com/gopasspw/gopass/pkg/appdir"
	"github.com/gopasspw/gopass/pkg/debug"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// Name is the application name used for directories and the env prefix.
const Name = "gitform"

// Keys of the individual settings.
const (
	KeyCatalog   = "catalog"
	KeyColors    = "colors"
	KeyOutput    = "output"
	KeyEnvPrefix = "env_prefix"
)

// Settings are the resolved command settings.
type Settings struct {
	Catalog   string `mapstructure:"catalog"`
	Colors    string `mapstructure:"colors"`
	Output    string `mapstructure:"output"`
	EnvPrefix string `mapstructure:"env_prefix"`
}

// Dir returns the per-user settings directory, e.g. ~/.config/gitform.
func Dir() string {
	return appdir.New(Name).UserConfig()
}

// New returns a viper instance reading settings.toml from the settings
// directory or the current directory, and GITFORM_* environment variables.
func New() *viper.Viper {
	v := viper.New()

	v.SetConfigName("settings")
	v.SetConfigType("toml")
	v.AddConfigPath(Dir())
	v.AddConfigPath(".")

	v.SetEnvPrefix(strings.ToUpper(Name))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyCatalog, filepath.Join(Dir(), "config-options.json"))
	v.SetDefault(KeyColors, "")
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyEnvPrefix, gitform.EnvPrefix)

	return v
}

// Load reads the settings. A missing settings file is not an error.
func Load(v *viper.Viper) (*Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings file %s: %w", v.ConfigFileUsed(), err)
		}
		debug.V(2).Log("no settings file found, using defaults")
	} else {
		debug.V(1).Log("loaded settings from %s", v.ConfigFileUsed())
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	debug.V(2).Log("settings: %+v", *s)

	return s, nil
}

// LoadCatalogs loads the option catalog and, if configured, the color
// catalog. A missing or invalid option catalog is fatal.
func (s *Settings) LoadCatalogs(ctx context.Context) (*gitform.Catalog, *gitform.Colors, error) {
	var cat *gitform.Catalog
	var colors *gitform.Colors

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := gitform.LoadCatalog(s.Catalog)
		if err != nil {
			return fmt.Errorf("error loading config options: %w", err)
		}
		cat = c

		return nil
	})
	g.Go(func() error {
		if s.Colors == "" {
			return nil
		}
		c, err := gitform.LoadColors(s.Colors)
		if err != nil {
			return fmt.Errorf("error loading colors: %w", err)
		}
		colors = c

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return cat, colors, nil
}
