package gitform

import (
	"strconv"
	"strings"

	"github.com/gopasspw/gopass/pkg/debug"
)

// Selection is everything a serializer run consumes: the enabled options
// and the aliases.
type Selection struct {
	Options *EnabledSet
	Aliases *Aliases
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{
		Options: NewEnabledSet(),
		Aliases: NewAliases(),
	}
}

// IsEmpty returns true if neither options nor aliases are selected.
func (s *Selection) IsEmpty() bool {
	return s == nil || (s.Options.Len() == 0 && s.Aliases.Len() == 0)
}

// Enable switches on the option described by d. If value is blank the
// option's default is used instead, if it has one.
func (s *Selection) Enable(d Descriptor, value string) bool {
	if strings.TrimSpace(value) == "" {
		if dv, ok := d.Default.Value(); ok {
			value = dv
		}
	}

	return s.Options.Add(d.Section, d.Subsection, d.Name, value)
}

// Disable switches off the option described by d.
func (s *Selection) Disable(d Descriptor) bool {
	return s.Options.Remove(d.Section, d.Subsection, d.Name)
}

// Merge applies all options and aliases of o on top of s.
func (s *Selection) Merge(o *Selection) {
	if o == nil {
		return
	}
	for _, opt := range o.Options.Options() {
		s.Options.Put(opt)
	}
	for _, name := range o.Aliases.Names() {
		cmd, _ := o.Aliases.Get(name)
		s.Aliases.Set(name, cmd)
	}
}

// Clear removes every option and alias.
func (s *Selection) Clear() {
	s.Options = NewEnabledSet()
	s.Aliases = NewAliases()
}

// Tree returns the selection as a configuration tree. Aliases end up in
// the flat alias section.
func (s *Selection) Tree() *Tree {
	t := NewTree()
	for _, name := range s.Aliases.Names() {
		cmd, _ := s.Aliases.Get(name)
		t.Set(AliasSection, "", name, cmd)
	}
	for _, o := range s.Options.Options() {
		t.Set(o.Section, o.Subsection, o.Key, o.Value)
	}

	return t
}

// Project turns a parsed tree into a selection, the way loading a file
// switches on every option found in it. Values of color options which
// index the color catalog are mapped back to the color name.
func Project(t *Tree, c *Catalog, colors *Colors) *Selection {
	sel := NewSelection()
	if t == nil {
		return sel
	}

	for _, name := range t.Sections() {
		s, _ := t.Section(name)
		if name == AliasSection {
			for _, k := range s.values.keys {
				sel.Aliases.Set(k, s.values.vals[k])
			}

			continue
		}

		project(sel, c, colors, name, "", s.values)
		for _, sub := range s.subsections {
			project(sel, c, colors, name, sub, s.subs[sub])
		}
	}

	debug.V(2).Log("projected %d options and %d aliases", sel.Options.Len(), sel.Aliases.Len())

	return sel
}

func project(sel *Selection, c *Catalog, colors *Colors, section, subsection string, vs *Values) {
	for _, k := range vs.keys {
		v := vs.vals[k]
		if d, found := c.Lookup(section, subsection, k); found && d.InputType() == TypeColor {
			v = colorName(colors, v)
		}
		sel.Options.Add(section, subsection, k, v)
	}
}

func colorName(colors *Colors, v string) string {
	i, err := strconv.Atoi(v)
	if err != nil {
		return v
	}
	if name, ok := colors.Name(i); ok {
		return name
	}

	return v
}

func colorIndex(colors *Colors, v string) string {
	if i, ok := colors.Index(v); ok {
		return strconv.Itoa(i)
	}

	return v
}
