package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopasspw/gitform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `[{"section": "core", "name": "editor", "type": "text", "default": null}]`

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(Dir(), "config-options.json"), s.Catalog)
	assert.Empty(t, s.Colors)
	assert.Empty(t, s.Output)
	assert.Equal(t, gitform.EnvPrefix, s.EnvPrefix)
}

func TestEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GITFORM_CATALOG", "/tmp/catalog.json")
	t.Setenv("GITFORM_ENV_PREFIX", "MY_PREFIX")

	s, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "/tmp/catalog.json", s.Catalog)
	assert.Equal(t, "MY_PREFIX", s.EnvPrefix)
}

func TestSettingsFile(t *testing.T) {
	td := t.TempDir()
	t.Chdir(td)

	require.NoError(t, os.WriteFile(filepath.Join(td, "settings.toml"), []byte(`catalog = "options.json"
colors = "colors.json"
`), 0o644))

	s, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "options.json", s.Catalog)
	assert.Equal(t, "colors.json", s.Colors)
}

func TestInvalidSettingsFile(t *testing.T) {
	td := t.TempDir()
	t.Chdir(td)

	require.NoError(t, os.WriteFile(filepath.Join(td, "settings.toml"), []byte("catalog = [unterminated"), 0o644))

	_, err := Load(New())
	require.Error(t, err)
}

func TestLoadCatalogs(t *testing.T) {
	t.Parallel()

	td := t.TempDir()
	catalog := filepath.Join(td, "options.json")
	colors := filepath.Join(td, "colors.json")
	require.NoError(t, os.WriteFile(catalog, []byte(catalogJSON), 0o644))
	require.NoError(t, os.WriteFile(colors, []byte(`["black", "red"]`), 0o644))

	t.Run("catalog and colors", func(t *testing.T) {
		t.Parallel()

		s := &Settings{Catalog: catalog, Colors: colors}
		cat, cols, err := s.LoadCatalogs(t.Context())
		require.NoError(t, err)
		assert.Equal(t, 1, cat.Len())
		assert.Equal(t, 2, cols.Len())
	})

	t.Run("no colors", func(t *testing.T) {
		t.Parallel()

		s := &Settings{Catalog: catalog}
		cat, cols, err := s.LoadCatalogs(t.Context())
		require.NoError(t, err)
		assert.Equal(t, 1, cat.Len())
		assert.Nil(t, cols)
	})

	t.Run("missing catalog", func(t *testing.T) {
		t.Parallel()

		s := &Settings{Catalog: filepath.Join(td, "missing.json")}
		_, _, err := s.LoadCatalogs(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Contains(t, err.Error(), "error loading config options")
	})

	t.Run("broken colors", func(t *testing.T) {
		t.Parallel()

		s := &Settings{Catalog: catalog, Colors: catalog}
		_, _, err := s.LoadCatalogs(t.Context())
		require.Error(t, err)
	})
}
