package gitform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimple(t *testing.T) {
	t.Parallel()

	in := `[user]
	name = John Doe
	email = john@example.com
[core]
	editor = vim
	ignorecase = true
`
	tree := NewParser(testCatalog(t)).ParseString(in)

	assert.Equal(t, []string{"user", "core"}, tree.Sections())
	assert.Equal(t, map[string]map[string]any{
		"user": {
			"name":  "John Doe",
			"email": "john@example.com",
		},
		"core": {
			"editor":     "vim",
			"ignoreCase": "true",
		},
	}, tree.Map())

	s, found := tree.Section("core")
	require.True(t, found)
	assert.Equal(t, []string{"editor", "ignoreCase"}, s.Values().Keys())
}

func TestParseCaseFallback(t *testing.T) {
	t.Parallel()

	tree := NewParser(testCatalog(t)).ParseString("[core]\n\tdefault-branch = main\n")

	v, found := tree.Get("core", "", "defaultBranch")
	assert.True(t, found)
	assert.Equal(t, "main", v)

	_, found = tree.Get("core", "", "default-branch")
	assert.False(t, found)
}

func TestParseUnknownKey(t *testing.T) {
	t.Parallel()

	tree := NewParser(testCatalog(t)).ParseString("[core]\n    weirdOption = 7")

	assert.Equal(t, map[string]map[string]any{
		"core": {
			"weirdOption": "7",
		},
	}, tree.Map())
}

func TestParseSubsections(t *testing.T) {
	t.Parallel()

	in := `[color "diff"]
	meta = yellow
	frag = magenta bold
[color]
	ui = auto
[branch "feature/with spaces"]
	remote = origin
`
	tree := NewParser(testCatalog(t)).ParseString(in)

	assert.Equal(t, map[string]map[string]any{
		"color": {
			"ui": "auto",
			"diff": map[string]string{
				"meta": "yellow",
				"frag": "magenta bold",
			},
		},
		"branch": {
			"feature/with spaces": map[string]string{
				"remote": "origin",
			},
		},
	}, tree.Map())

	s, found := tree.Section("color")
	require.True(t, found)
	assert.Equal(t, []string{"diff"}, s.Subsections())
	assert.False(t, s.IsEmpty())
}

func TestParseAliases(t *testing.T) {
	t.Parallel()

	t.Run("flat section", func(t *testing.T) {
		t.Parallel()

		in := `[alias]
	st = "status --short --branch"
	co = checkout
	"my alias" = log --oneline
	default-branch = never resolved
`
		tree := NewParser(testCatalog(t)).ParseString(in)
		aliases := tree.Aliases()
		require.NotNil(t, aliases)
		assert.Equal(t, []string{"st", "co", "my alias", "default-branch"}, aliases.Keys())
		assert.Equal(t, map[string]string{
			"st":             "status --short --branch",
			"co":             "checkout",
			"my alias":       "log --oneline",
			"default-branch": "never resolved",
		}, aliases.Map())
	})

	t.Run("subsection with bare value", func(t *testing.T) {
		t.Parallel()

		in := `[alias "co"]
    checkout
`
		tree := NewParser(testCatalog(t)).ParseString(in)
		assert.Equal(t, map[string]map[string]any{
			"alias": {
				"co": "checkout",
			},
		}, tree.Map())
	})

	t.Run("subsection with key value", func(t *testing.T) {
		t.Parallel()

		in := `[alias "co"]
	cmd = "checkout -b"
	st = status
[alias "br"]
	'branch -vv'
	stray
`
		tree := NewParser(testCatalog(t)).ParseString(in)
		assert.Equal(t, []string{"co", "st", "br"}, tree.Aliases().Keys())
		assert.Equal(t, map[string]string{
			"co": "checkout -b",
			"st": "status",
			"br": "branch -vv",
		}, tree.Aliases().Map())
	})
}

func TestParseLenient(t *testing.T) {
	t.Parallel()

	in := "# leading comment\r\n" +
		"; another comment\r\n" +
		"orphan = no section yet\r\n" +
		"[user]\r\n" +
		"\tname = 'Jane Doe'\r\n" +
		"garbage line without equals\r\n" +
		"\temail = \"jane@example.com\"\r\n" +
		"\tempty =\r\n" +
		"[broken\r\n" +
		"[core]\n" +
		"\teditor = \"vim \\\"-u\\\" NONE\"\n" +
		"\tpager=less -R\n" +
		"\t  url = a=b  \n" +
		"\t# indented comment = ignored\n" +
		"[user]\n" +
		"\tname = Jane Q. Doe\n"

	tree := NewParser(testCatalog(t)).ParseString(in)

	assert.Equal(t, []string{"user", "core"}, tree.Sections())

	s, found := tree.Section("user")
	require.True(t, found)
	assert.Equal(t, []string{"name", "email"}, s.Values().Keys())

	for _, tc := range []struct {
		section string
		key     string
		want    string
	}{
		{"user", "name", "Jane Q. Doe"},
		{"user", "email", "jane@example.com"},
		{"core", "editor", `vim \"-u\" NONE`},
		{"core", "pager", "less -R"},
		{"core", "url", "a=b"},
	} {
		v, found := tree.Get(tc.section, "", tc.key)
		assert.True(t, found, tc.key)
		assert.Equal(t, tc.want, v, tc.key)
	}

	_, found = tree.Get("user", "", "empty")
	assert.False(t, found)
	_, found = tree.Get("core", "", "[broken")
	assert.False(t, found)
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"",
		"\n\n",
		"# only a comment",
		"key = value without section",
		"   \t  \n",
	} {
		tree := NewParser(testCatalog(t)).ParseString(in)
		assert.Empty(t, tree.Sections(), in)
	}
}

func TestParseEmptySection(t *testing.T) {
	t.Parallel()

	tree := NewParser(nil).ParseString("[core]\n[user]\n\tname = x\n")
	assert.Equal(t, []string{"core", "user"}, tree.Sections())

	s, found := tree.Section("core")
	require.True(t, found)
	assert.True(t, s.IsEmpty())
}

func TestParseLongLine(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 128*1024)
	tree := NewParser(nil).ParseString("[core]\n\tlong = " + long + "\n\tafter = 1\n")

	v, found := tree.Get("core", "", "long")
	assert.True(t, found)
	assert.Len(t, v, len(long))

	_, found = tree.Get("core", "", "after")
	assert.True(t, found)
}

func TestParseOverlongLine(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		line string
	}{
		{"one byte over", strings.Repeat("y", maxLineLength+1)},
		{"far over", "\tkey = " + strings.Repeat("y", maxLineLength+10)},
		{"crlf", strings.Repeat("y", maxLineLength+10) + "\r"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			in := "[core]\n\ta = 1\n" + tc.line + "\n\tafter = 2\n[user]\n\tname = x"
			tree := NewParser(nil).ParseString(in)

			assert.Equal(t, []string{"core", "user"}, tree.Sections())
			s, found := tree.Section("core")
			require.True(t, found)
			assert.Equal(t, []string{"a", "after"}, s.Values().Keys())

			v, found := tree.Get("user", "", "name")
			assert.True(t, found)
			assert.Equal(t, "x", v)
		})
	}

	// a line of exactly the maximum length is kept
	long := strings.Repeat("z", maxLineLength-len("v = "))
	v, found := NewParser(nil).ParseString("[core]\nv = " + long + "\n").Get("core", "", "v")
	assert.True(t, found)
	assert.Equal(t, long, v)
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	td := t.TempDir()
	fn := filepath.Join(td, "config")
	require.NoError(t, os.WriteFile(fn, []byte("[init]\n\tdefaultBranch = main\n"), 0o644))

	p := NewParser(testCatalog(t))
	tree, err := p.ParseFile(fn)
	require.NoError(t, err)

	v, found := tree.Get("init", "", "defaultBranch")
	assert.True(t, found)
	assert.Equal(t, "main", v)

	_, err = p.ParseFile(filepath.Join(td, "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
