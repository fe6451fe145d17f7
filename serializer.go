package gitform

import (
	"fmt"
	"io"
	"strings"

	"github.com/gopasspw/gopass/pkg/debug"
)

// Placeholder is written instead of an empty configuration.
const Placeholder = "# No configuration options selected"

var (
	sectionTpl    = "[%s]\n"
	subsectionTpl = "[%s \"%s\"]\n"
	keyValueTpl   = "\t%s = %s\n"
)

// Serializer writes a selection as canonical configuration text.
type Serializer struct {
	resolver *Resolver
	colors   *Colors
}

// NewSerializer returns a serializer using the given catalogs. colors may be nil.
func NewSerializer(c *Catalog, colors *Colors) *Serializer {
	return NewSerializerWith(NewResolver(c), colors)
}

// NewSerializerWith returns a serializer using the given resolver.
func NewSerializerWith(r *Resolver, colors *Colors) *Serializer {
	return &Serializer{
		resolver: r,
		colors:   colors,
	}
}

// group holds the options of one section, split into the flat keys and
// the keys of every subsection.
type group struct {
	name     string
	flat     []Option
	subOrder []string
	subs     map[string][]Option
}

// Serialize renders the selection. Aliases come first, followed by all
// other sections in the order they were first selected. The output is
// deterministic for a given selection.
func (s *Serializer) Serialize(sel *Selection) string {
	var b strings.Builder

	if sel == nil {
		sel = NewSelection()
	}

	aliases := NewAliases()
	for _, name := range sel.Aliases.Names() {
		cmd, _ := sel.Aliases.Get(name)
		aliases.Set(name, cmd)
	}

	order := make([]string, 0, 8)
	groups := make(map[string]*group, 8)
	for _, o := range sel.Options.Options() {
		if o.Section == AliasSection {
			if _, found := aliases.Get(o.Key); !found {
				aliases.Set(o.Key, o.Value)
			}

			continue
		}

		g, found := groups[o.Section]
		if !found {
			g = &group{name: o.Section, subs: make(map[string][]Option, 2)}
			groups[o.Section] = g
			order = append(order, o.Section)
		}
		if o.Subsection == "" {
			g.flat = append(g.flat, o)

			continue
		}
		if _, found := g.subs[o.Subsection]; !found {
			g.subOrder = append(g.subOrder, o.Subsection)
		}
		g.subs[o.Subsection] = append(g.subs[o.Subsection], o)
	}

	if aliases.Len() > 0 {
		fmt.Fprintf(&b, sectionTpl, AliasSection)
		for _, name := range aliases.Names() {
			cmd, _ := aliases.Get(name)
			fmt.Fprintf(&b, keyValueTpl, Quote(name), Quote(cmd))
		}
		b.WriteString("\n")
	}

	for _, name := range order {
		g := groups[name]
		s.writeBlock(&b, fmt.Sprintf(sectionTpl, name), g.flat, true)
		for _, sub := range g.subOrder {
			s.writeBlock(&b, fmt.Sprintf(subsectionTpl, name, sub), g.subs[sub], false)
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		debug.V(2).Log("nothing selected")

		return Placeholder
	}

	return out
}

// writeBlock writes one header with its keys. Nothing is written if no key
// remains.
func (s *Serializer) writeBlock(b *strings.Builder, header string, opts []Option, suppressDefaults bool) {
	lines := make([]string, 0, len(opts))
	for _, o := range opts {
		key := s.resolver.EmitName(o.Section, o.Subsection, o.Key)
		value := o.Value

		if d, found := s.resolver.Catalog().Lookup(o.Section, o.Subsection, o.Key); found {
			if suppressDefaults && !o.Explicit && d.Default.Matches(value) {
				debug.V(3).Log("skipping %s, matches default %q", o.FullKey(), value)

				continue
			}
			if d.InputType() == TypeColor {
				value = colorIndex(s.colors, value)
			}
		}

		lines = append(lines, fmt.Sprintf(keyValueTpl, key, Quote(value)))
	}

	if len(lines) < 1 {
		return
	}

	b.WriteString(header)
	for _, l := range lines {
		b.WriteString(l)
	}
	b.WriteString("\n")
}

// Write writes the serialized selection followed by a newline to w.
func (s *Serializer) Write(w io.Writer, sel *Selection) error {
	if _, err := io.WriteString(w, s.Serialize(sel)+"\n"); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// SerializeTree renders a parsed tree directly. Unlike a selection none of
// its options are switched on explicitly, so flat values repeating their
// default are dropped.
func (s *Serializer) SerializeTree(t *Tree) string {
	sel := NewSelection()
	for _, name := range t.Sections() {
		sec, _ := t.Section(name)
		for _, k := range sec.values.keys {
			if name == AliasSection {
				sel.Aliases.Set(k, sec.values.vals[k])

				continue
			}
			sel.Options.Put(Option{Section: name, Key: k, Value: sec.values.vals[k]})
		}
		for _, sub := range sec.subsections {
			vs := sec.subs[sub]
			for _, k := range vs.keys {
				sel.Options.Put(Option{Section: name, Subsection: sub, Key: k, Value: vs.vals[k]})
			}
		}
	}

	return s.Serialize(sel)
}
