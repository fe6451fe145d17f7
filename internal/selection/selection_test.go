package selection

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gopasspw/gitform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlSelection = `[[option]]
section = "core"
key = "autocrlf"
value = "false"

[[option]]
section = "color"
subsection = "diff"
key = "meta"
value = "yellow"

[[alias]]
name = "st"
command = "status --short"
`

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Format{
		"toml":  TOML,
		"TOML":  TOML,
		".toml": TOML,
		"":      TOML,
		"json":  JSON,
		".json": JSON,
	} {
		f, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, f, in)
	}

	_, err := ParseFormat("yaml")
	require.ErrorIs(t, err, ErrUnknownFormat)

	assert.Equal(t, JSON, FormatOf("sel.JSON"))
	assert.Equal(t, TOML, FormatOf("sel.toml"))
	assert.Equal(t, TOML, FormatOf("selection"))
}

func TestDecodeTOML(t *testing.T) {
	t.Parallel()

	sf, err := Decode(strings.NewReader(tomlSelection), TOML)
	require.NoError(t, err)

	assert.Equal(t, &File{
		Options: []Entry{
			{Section: "core", Key: "autocrlf", Value: "false"},
			{Section: "color", Subsection: "diff", Key: "meta", Value: "yellow"},
		},
		Aliases: []Alias{
			{Name: "st", Command: "status --short"},
		},
	}, sf)

	sel, err := sf.Selection()
	require.NoError(t, err)
	assert.Equal(t, 2, sel.Options.Len())
	cmd, found := sel.Aliases.Get("st")
	assert.True(t, found)
	assert.Equal(t, "status --short", cmd)
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader("[[option]\n"), TOML)
	require.Error(t, err)

	_, err = Decode(strings.NewReader("{"), JSON)
	require.Error(t, err)

	_, err = Decode(strings.NewReader(""), Format("ini"))
	require.ErrorIs(t, err, ErrUnknownFormat)

	sf, err := Decode(strings.NewReader("  \n"), JSON)
	require.NoError(t, err)
	assert.Empty(t, sf.Options)
}

func TestInvalidEntries(t *testing.T) {
	t.Parallel()

	for _, sf := range []*File{
		{Options: []Entry{{Section: "core", Key: "editor"}}},
		{Options: []Entry{{Key: "editor", Value: "vim"}}},
		{Aliases: []Alias{{Name: "st"}}},
		{Aliases: []Alias{{Command: "status"}}},
	} {
		_, err := sf.Selection()
		require.ErrorIs(t, err, ErrInvalidEntry)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	sel := gitform.NewSelection()
	sel.Options.Add("user", "", "name", "John Doe")
	sel.Options.Add("branch", "feature/x", "remote", "origin")
	sel.Aliases.Set("my alias", `!echo "hi"`)

	for _, f := range []Format{TOML, JSON} {
		t.Run(string(f), func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			require.NoError(t, Encode(buf, FromSelection(sel), f))

			sf, err := Decode(buf, f)
			require.NoError(t, err)

			got, err := sf.Selection()
			require.NoError(t, err)
			assert.Equal(t, sel.Options.Options(), got.Options.Options())
			assert.Equal(t, sel.Aliases.Map(), got.Aliases.Map())
		})
	}

	require.ErrorIs(t, Encode(&bytes.Buffer{}, &File{}, Format("xml")), ErrUnknownFormat)
}

func TestFromEmptySelection(t *testing.T) {
	t.Parallel()

	assert.Equal(t, &File{}, FromSelection(nil))
	assert.Equal(t, &File{}, FromSelection(gitform.NewSelection()))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	td := t.TempDir()

	fn := filepath.Join(td, "selection.toml")
	require.NoError(t, os.WriteFile(fn, []byte(tomlSelection), 0o644))

	sel, err := Load(fn)
	require.NoError(t, err)
	o, found := sel.Options.Get("color", "diff", "meta")
	require.True(t, found)
	assert.Equal(t, "yellow", o.Value)

	jfn := filepath.Join(td, "selection.json")
	require.NoError(t, os.WriteFile(jfn, []byte(`{"options": [{"section": "core", "key": "editor", "value": "vim"}]}`), 0o644))

	sel, err = Load(jfn)
	require.NoError(t, err)
	assert.Equal(t, 1, sel.Options.Len())

	_, err = Load(filepath.Join(td, "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
