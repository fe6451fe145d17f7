package gitform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gopasspw/gopass/pkg/debug"
	"github.com/gopasspw/gopass/pkg/set"
	"github.com/invopop/jsonschema"
)

// OptionType is the input type of an option. Besides the well known types
// below any free-form input type is accepted and treated as text.
type OptionType string

// Well known option types.
const (
	TypeText    OptionType = "text"
	TypeNumber  OptionType = "number"
	TypeBoolean OptionType = "boolean"
	TypeSelect  OptionType = "select"
	TypeColor   OptionType = "color"
)

// Default is the default value of an option. The zero value means "no default".
//
// The catalog may specify defaults as JSON strings, numbers or booleans. They
// are all kept in their textual form since values are only ever compared as
// text.
type Default struct {
	value string
	set   bool
}

// DefaultOf returns a Default holding the given value.
func DefaultOf(v string) Default {
	return Default{value: v, set: true}
}

// Value returns the default value and whether there is one.
func (d Default) Value() (string, bool) {
	return d.value, d.set
}

// IsSet returns true if the option has a default.
func (d Default) IsSet() bool {
	return d.set
}

// Matches returns true if the option has a default and it equals v.
func (d Default) Matches(v string) bool {
	return d.set && d.value == v
}

// String implements fmt.Stringer.
func (d Default) String() string {
	if !d.set {
		return "<none>"
	}

	return d.value
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Default) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = Default{}

		return nil
	}

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch t := v.(type) {
	case string:
		*d = DefaultOf(t)
	case bool:
		*d = DefaultOf(strconv.FormatBool(t))
	case float64:
		// keep the literal as written, e.g. 0 and not 0.000000
		*d = DefaultOf(string(b))
	default:
		return fmt.Errorf("unsupported default %s", string(b))
	}

	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Default) MarshalJSON() ([]byte, error) {
	if !d.set {
		return []byte("null"), nil
	}

	return json.Marshal(d.value)
}

// JSONSchema describes the accepted default literals.
func (Default) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "number"},
			{Type: "boolean"},
			{Type: "null"},
		},
		Description: "Default value of the option, null if there is none",
	}
}

// Descriptor describes one configurable option.
type Descriptor struct {
	Section     string     `json:"section" jsonschema:"required,minLength=1"`
	Subsection  string     `json:"subsection,omitempty"`
	Name        string     `json:"name" jsonschema:"required,minLength=1"`
	ConfigName  string     `json:"configName,omitempty"`
	Type        OptionType `json:"type,omitempty"`
	Default     Default    `json:"default"`
	Options     []string   `json:"options,omitempty"`
	DisplayName string     `json:"displayName,omitempty"`
	Description string     `json:"description,omitempty"`
	Version     string     `json:"version,omitempty"`
}

// Key returns the fully qualified option key, i.e. section.name or
// section.subsection.name.
func (d Descriptor) Key() string {
	if d.Subsection == "" {
		return d.Section + "." + d.Name
	}

	return d.Section + "." + d.Subsection + "." + d.Name
}

// EmitName returns the key written to the configuration text.
func (d Descriptor) EmitName() string {
	if d.ConfigName != "" {
		return d.ConfigName
	}

	return d.Name
}

// InputType returns the option type, text if none was given.
func (d Descriptor) InputType() OptionType {
	if d.Type == "" {
		return TypeText
	}

	return d.Type
}

// Placeholder returns the hint shown for an unset option.
func (d Descriptor) Placeholder() string {
	if v, ok := d.Default.Value(); ok {
		return "(default: " + v + ")"
	}

	return "(default)"
}

func (d Descriptor) validate() error {
	if d.Section == "" || d.Name == "" {
		return fmt.Errorf("%w: section %q, name %q", ErrInvalidDescriptor, d.Section, d.Name)
	}
	if d.InputType() == TypeSelect && len(d.Options) < 1 {
		return fmt.Errorf("%w: %s", ErrMissingOptions, d.Key())
	}

	return nil
}

// Catalog is the read-only, ordered list of known options.
//
// A Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	options []Descriptor
}

// NewCatalog validates the descriptors and returns a new catalog.
// The order of the descriptors is retained, lookups return the first match.
func NewCatalog(ds []Descriptor) (*Catalog, error) {
	if len(ds) < 1 {
		return nil, ErrEmptyCatalog
	}

	seen := make(map[string]struct{}, len(ds))
	options := make([]Descriptor, 0, len(ds))
	for _, d := range ds {
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, found := seen[d.Key()]; found {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateOption, d.Key())
		}
		seen[d.Key()] = struct{}{}
		options = append(options, d)
	}

	debug.V(1).Log("loaded option catalog with %d entries", len(options))

	return &Catalog{options: options}, nil
}

// ParseCatalog reads a JSON encoded catalog.
func ParseCatalog(r io.Reader) (*Catalog, error) {
	var ds []Descriptor
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to decode option catalog: %w", err)
	}

	return NewCatalog(ds)
}

// LoadCatalog reads a JSON encoded catalog from the given file.
func LoadCatalog(fn string) (*Catalog, error) {
	fh, err := os.Open(fn)
	if err != nil {
		return nil, fmt.Errorf("failed to open option catalog: %w", err)
	}
	defer fh.Close() //nolint:errcheck

	c, err := ParseCatalog(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}

	return c, nil
}

// Len returns the number of options.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}

	return len(c.options)
}

// Options returns a copy of all options in catalog order.
func (c *Catalog) Options() []Descriptor {
	if c == nil {
		return nil
	}

	out := make([]Descriptor, len(c.options))
	copy(out, c.options)

	return out
}

// Lookup returns the option with exactly the given section, subsection and name.
func (c *Catalog) Lookup(section, subsection, name string) (Descriptor, bool) {
	return c.find(section, subsection, func(d Descriptor) bool {
		return d.Name == name
	})
}

func (c *Catalog) find(section, subsection string, match func(Descriptor) bool) (Descriptor, bool) {
	if c == nil {
		return Descriptor{}, false
	}

	for _, d := range c.options {
		if d.Section != section || d.Subsection != subsection {
			continue
		}
		if match(d) {
			return d, true
		}
	}

	return Descriptor{}, false
}

// Sections returns a sorted list of all sections.
func (c *Catalog) Sections() []string {
	sections := make([]string, 0, c.Len())
	for _, d := range c.Options() {
		sections = append(sections, d.Section)
	}

	return set.Sorted(sections)
}

// Subsections returns a sorted list of the fixed subsections of a section.
func (c *Catalog) Subsections(section string) []string {
	subsections := make([]string, 0, c.Len())
	for _, d := range c.Options() {
		if d.Section != section {
			continue
		}
		subsections = append(subsections, d.Subsection)
	}

	return set.SortedFiltered(subsections, func(s string) bool {
		return s != ""
	})
}

// Match returns all options whose key matches the glob pattern,
// e.g. "color.*" or "core.*".
func (c *Catalog) Match(pattern string) ([]Descriptor, error) {
	if pattern == "" {
		return c.Options(), nil
	}

	out := make([]Descriptor, 0, 16)
	for _, d := range c.Options() {
		match, err := globMatch(pattern, d.Key())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if match {
			out = append(out, d)
		}
	}

	return out, nil
}

// Colors is the ordered terminal color catalog. Color options are written
// as the index of the selected color.
type Colors struct {
	names []string
}

// NewColors returns a color catalog.
func NewColors(names ...string) *Colors {
	return &Colors{names: names}
}

// ParseColors reads a JSON array of color names.
func ParseColors(r io.Reader) (*Colors, error) {
	var names []string
	if err := json.NewDecoder(r).Decode(&names); err != nil {
		return nil, fmt.Errorf("failed to decode color catalog: %w", err)
	}

	return NewColors(names...), nil
}

// LoadColors reads a JSON array of color names from the given file.
func LoadColors(fn string) (*Colors, error) {
	fh, err := os.Open(fn)
	if err != nil {
		return nil, fmt.Errorf("failed to open color catalog: %w", err)
	}
	defer fh.Close() //nolint:errcheck

	return ParseColors(fh)
}

// Len returns the number of colors.
func (c *Colors) Len() int {
	if c == nil {
		return 0
	}

	return len(c.names)
}

// Index returns the position of the named color.
func (c *Colors) Index(name string) (int, bool) {
	if c == nil {
		return 0, false
	}

	for i, n := range c.names {
		if n == name {
			return i, true
		}
	}

	return 0, false
}

// Name returns the color at position i.
func (c *Colors) Name(i int) (string, bool) {
	if c == nil || i < 0 || i >= len(c.names) {
		return "", false
	}

	return c.names[i], true
}
