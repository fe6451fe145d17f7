// Package selection reads and writes selection files: the enabled options
// and aliases a user wants turned into a git config, stored as TOML or JSON.
package selection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopasspw/gitform"
	"github.com/gopasspw/gopass/pkg/debug"
	"github.com/pelletier/go-toml/v2"
)

// Format is the encoding of a selection file.
type Format string

// Supported formats.
const (
	TOML Format = "toml"
	JSON Format = "json"
)

var (
	// ErrUnknownFormat is returned for formats other than toml and json.
	ErrUnknownFormat = errors.New("unknown selection format")
	// ErrInvalidEntry is returned for entries without section, key or value.
	ErrInvalidEntry = errors.New("invalid selection entry")
)

// Entry is one enabled option.
type Entry struct {
	Section    string `toml:"section"              json:"section"              jsonschema:"required"`
	Subsection string `toml:"subsection,omitempty" json:"subsection,omitempty"`
	Key        string `toml:"key"                  json:"key"                  jsonschema:"required"`
	Value      string `toml:"value"                json:"value"                jsonschema:"required"`
}

// Alias is one git alias.
type Alias struct {
	Name    string `toml:"name"    json:"name"    jsonschema:"required"`
	Command string `toml:"command" json:"command" jsonschema:"required"`
}

// File is the on-disk form of a selection.
type File struct {
	Options []Entry `toml:"option,omitempty" json:"options,omitempty"`
	Aliases []Alias `toml:"alias,omitempty"  json:"aliases,omitempty"`
}

// ParseFormat maps a name (or a file extension) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "toml", "":
		return TOML, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatOf guesses the format from a filename. Anything not ending in
// .json is TOML.
func FormatOf(fn string) Format {
	if strings.EqualFold(filepath.Ext(fn), ".json") {
		return JSON
	}

	return TOML
}

// Decode reads a selection file in the given format.
func Decode(r io.Reader, f Format) (*File, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}

	sf := &File{}
	switch f {
	case TOML:
		if err := toml.Unmarshal(buf, sf); err != nil {
			return nil, fmt.Errorf("failed to decode TOML selection: %w", err)
		}
	case JSON:
		if len(bytes.TrimSpace(buf)) == 0 {
			return sf, nil
		}
		if err := json.Unmarshal(buf, sf); err != nil {
			return nil, fmt.Errorf("failed to decode JSON selection: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	return sf, nil
}

// Encode writes sf in the given format.
func Encode(w io.Writer, sf *File, f Format) error {
	switch f {
	case TOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		if err := enc.Encode(sf); err != nil {
			return fmt.Errorf("failed to encode TOML selection: %w", err)
		}
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sf); err != nil {
			return fmt.Errorf("failed to encode JSON selection: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	return nil
}

// Load reads a selection file from disk, picking the format from the
// file extension.
func Load(fn string) (*gitform.Selection, error) {
	fh, err := os.Open(fn)
	if err != nil {
		return nil, fmt.Errorf("failed to open selection %s: %w", fn, err)
	}
	defer fh.Close() //nolint:errcheck

	sf, err := Decode(fh, FormatOf(fn))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}

	debug.V(1).Log("loaded selection from %s: %d options, %d aliases", fn, len(sf.Options), len(sf.Aliases))

	return sf.Selection()
}

// Selection converts the file into a selection. Later entries replace
// earlier ones with the same key.
func (sf *File) Selection() (*gitform.Selection, error) {
	sel := gitform.NewSelection()
	for i, e := range sf.Options {
		if !sel.Options.Add(e.Section, e.Subsection, e.Key, e.Value) {
			return nil, fmt.Errorf("%w: option #%d (%s)", ErrInvalidEntry, i+1, entryKey(e))
		}
	}
	for i, a := range sf.Aliases {
		if !sel.Aliases.Set(a.Name, a.Command) {
			return nil, fmt.Errorf("%w: alias #%d (%q)", ErrInvalidEntry, i+1, a.Name)
		}
	}

	return sel, nil
}

// FromSelection converts a selection into its file form.
func FromSelection(sel *gitform.Selection) *File {
	sf := &File{}
	if sel.IsEmpty() {
		return sf
	}

	for _, o := range sel.Options.Options() {
		sf.Options = append(sf.Options, Entry{
			Section:    o.Section,
			Subsection: o.Subsection,
			Key:        o.Key,
			Value:      o.Value,
		})
	}
	for _, name := range sel.Aliases.Names() {
		cmd, _ := sel.Aliases.Get(name)
		sf.Aliases = append(sf.Aliases, Alias{Name: name, Command: cmd})
	}

	return sf
}

func entryKey(e Entry) string {
	if e.Subsection == "" {
		return e.Section + "." + e.Key
	}

	return e.Section + "." + e.Subsection + "." + e.Key
}
