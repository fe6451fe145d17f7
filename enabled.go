package gitform

import (
	"strings"
)

// Option is one enabled option: a key with its value, below a section and
// an optional subsection.
type Option struct {
	Section    string
	Subsection string
	Key        string
	Value      string
	// Explicit is set if the option was switched on by the user. Options
	// carried over from other sources may be dropped if they only repeat
	// the default.
	Explicit bool
}

// FullKey returns section.key or section.subsection.key.
func (o Option) FullKey() string {
	if o.Subsection == "" {
		return o.Section + "." + o.Key
	}

	return o.Section + "." + o.Subsection + "." + o.Key
}

func (o Option) id() string {
	return o.Section + "\x00" + o.Subsection + "\x00" + o.Key
}

// EnabledSet is the ordered set of enabled options. Options keep the
// position they were first added at.
//
// Note: EnabledSet is not thread-safe.
type EnabledSet struct {
	options []Option
	index   map[string]int
}

// NewEnabledSet returns an empty set.
func NewEnabledSet() *EnabledSet {
	return &EnabledSet{
		index: make(map[string]int, 16),
	}
}

// Add enables an option. The value is trimmed. Empty values are ignored
// since an enabled option without a value emits nothing. Adding an option
// that is already present replaces its value in place.
func (e *EnabledSet) Add(section, subsection, key, value string) bool {
	return e.Put(Option{
		Section:    section,
		Subsection: subsection,
		Key:        key,
		Value:      value,
		Explicit:   true,
	})
}

// Put adds the option as given. See Add.
func (e *EnabledSet) Put(o Option) bool {
	o.Value = strings.TrimSpace(o.Value)
	if o.Section == "" || o.Key == "" || o.Value == "" {
		return false
	}

	if e.index == nil {
		e.index = make(map[string]int, 16)
	}

	if i, found := e.index[o.id()]; found {
		e.options[i] = o

		return true
	}

	e.index[o.id()] = len(e.options)
	e.options = append(e.options, o)

	return true
}

// Remove disables an option.
func (e *EnabledSet) Remove(section, subsection, key string) bool {
	if e == nil {
		return false
	}

	id := Option{Section: section, Subsection: subsection, Key: key}.id()
	i, found := e.index[id]
	if !found {
		return false
	}

	e.options = append(e.options[:i], e.options[i+1:]...)
	delete(e.index, id)
	for j := i; j < len(e.options); j++ {
		e.index[e.options[j].id()] = j
	}

	return true
}

// Get returns the enabled option, if any.
func (e *EnabledSet) Get(section, subsection, key string) (Option, bool) {
	if e == nil {
		return Option{}, false
	}

	i, found := e.index[Option{Section: section, Subsection: subsection, Key: key}.id()]
	if !found {
		return Option{}, false
	}

	return e.options[i], true
}

// Options returns all enabled options in insertion order.
func (e *EnabledSet) Options() []Option {
	if e == nil {
		return nil
	}

	out := make([]Option, len(e.options))
	copy(out, e.options)

	return out
}

// Len returns the number of enabled options.
func (e *EnabledSet) Len() int {
	if e == nil {
		return 0
	}

	return len(e.options)
}

// Aliases is the ordered mapping of alias names to commands.
type Aliases struct {
	v *Values
}

// NewAliases returns an empty alias mapping.
func NewAliases() *Aliases {
	return &Aliases{v: newValues()}
}

// Set binds name to command. Both are trimmed, blank ones are ignored.
func (a *Aliases) Set(name, command string) bool {
	name = strings.TrimSpace(name)
	command = strings.TrimSpace(command)
	if name == "" || command == "" {
		return false
	}
	if a.v == nil {
		a.v = newValues()
	}
	a.v.Set(name, command)

	return true
}

// Get returns the command bound to name.
func (a *Aliases) Get(name string) (string, bool) {
	return a.values().Get(name)
}

// Remove deletes an alias.
func (a *Aliases) Remove(name string) bool {
	if _, found := a.values().Get(name); !found {
		return false
	}

	nv := newValues()
	for _, k := range a.v.keys {
		if k != name {
			nv.Set(k, a.v.vals[k])
		}
	}
	a.v = nv

	return true
}

// Names returns the alias names in insertion order.
func (a *Aliases) Names() []string {
	return a.values().Keys()
}

// Len returns the number of aliases.
func (a *Aliases) Len() int {
	return a.values().Len()
}

// Map returns the aliases as a plain map.
func (a *Aliases) Map() map[string]string {
	return a.values().Map()
}

// values returns the underlying mapping, nil for a nil or zero Aliases.
func (a *Aliases) values() *Values {
	if a == nil {
		return nil
	}

	return a.v
}
