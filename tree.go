package gitform

// AliasSection is the section holding command aliases. It is always flat
// and its keys are never resolved through the catalog.
const AliasSection = "alias"

// Values is an ordered key value mapping. Keys keep the position they were
// first set at.
type Values struct {
	keys []string
	vals map[string]string
}

func newValues() *Values {
	return &Values{
		vals: make(map[string]string, 8),
	}
}

// Set sets key to value.
func (v *Values) Set(key, value string) {
	if _, found := v.vals[key]; !found {
		v.keys = append(v.keys, key)
	}
	v.vals[key] = value
}

// Get returns the value of key.
func (v *Values) Get(key string) (string, bool) {
	if v == nil {
		return "", false
	}
	val, found := v.vals[key]

	return val, found
}

// Keys returns the keys in first-seen order.
func (v *Values) Keys() []string {
	if v == nil {
		return nil
	}

	out := make([]string, len(v.keys))
	copy(out, v.keys)

	return out
}

// Len returns the number of keys.
func (v *Values) Len() int {
	if v == nil {
		return 0
	}

	return len(v.keys)
}

// Map returns a copy of the values as a plain map.
func (v *Values) Map() map[string]string {
	out := make(map[string]string, v.Len())
	if v == nil {
		return out
	}
	for k, val := range v.vals {
		out[k] = val
	}

	return out
}

// Section is one section of a configuration tree. It holds flat keys and
// any number of subsections, each in first-seen order.
type Section struct {
	Name        string
	values      *Values
	subsections []string
	subs        map[string]*Values
}

func newSection(name string) *Section {
	return &Section{
		Name:   name,
		values: newValues(),
		subs:   make(map[string]*Values, 4),
	}
}

// Values returns the flat keys of the section.
func (s *Section) Values() *Values {
	return s.values
}

// Subsection returns the keys of the named subsection.
func (s *Section) Subsection(name string) (*Values, bool) {
	v, found := s.subs[name]

	return v, found
}

// Subsections returns the subsection names in first-seen order.
func (s *Section) Subsections() []string {
	out := make([]string, len(s.subsections))
	copy(out, s.subsections)

	return out
}

func (s *Section) subsection(name string) *Values {
	if name == "" {
		return s.values
	}
	v, found := s.subs[name]
	if !found {
		v = newValues()
		s.subs[name] = v
		s.subsections = append(s.subsections, name)
	}

	return v
}

// IsEmpty returns true if the section holds no keys at all.
func (s *Section) IsEmpty() bool {
	if s.values.Len() > 0 {
		return false
	}
	for _, v := range s.subs {
		if v.Len() > 0 {
			return false
		}
	}

	return true
}

// Tree is the nested section / subsection / key mapping produced by the
// parser and consumed by the serializer. Sections keep their first-seen order.
//
// Note: Tree is not thread-safe.
type Tree struct {
	order    []string
	sections map[string]*Section
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{
		sections: make(map[string]*Section, 16),
	}
}

// AddSection returns the named section, creating it if necessary.
func (t *Tree) AddSection(name string) *Section {
	s, found := t.sections[name]
	if !found {
		s = newSection(name)
		t.sections[name] = s
		t.order = append(t.order, name)
	}

	return s
}

// Set stores value under section, subsection and key. An empty subsection
// stores the key directly in the section.
func (t *Tree) Set(section, subsection, key, value string) {
	t.AddSection(section).subsection(subsection).Set(key, value)
}

// Get returns the value stored under section, subsection and key.
func (t *Tree) Get(section, subsection, key string) (string, bool) {
	s, found := t.sections[section]
	if !found {
		return "", false
	}
	if subsection == "" {
		return s.values.Get(key)
	}
	v, found := s.subs[subsection]
	if !found {
		return "", false
	}

	return v.Get(key)
}

// Section returns the named section.
func (t *Tree) Section(name string) (*Section, bool) {
	s, found := t.sections[name]

	return s, found
}

// Sections returns the section names in first-seen order.
func (t *Tree) Sections() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)

	return out
}

// Aliases returns the alias section, if any.
func (t *Tree) Aliases() *Values {
	s, found := t.sections[AliasSection]
	if !found {
		return nil
	}

	return s.values
}

// Map returns the tree as nested plain maps: section to key to value, with
// subsections as an additional level below their section.
func (t *Tree) Map() map[string]map[string]any {
	out := make(map[string]map[string]any, len(t.order))
	for _, name := range t.order {
		s := t.sections[name]
		m := make(map[string]any, s.values.Len()+len(s.subsections))
		for _, k := range s.values.keys {
			m[k] = s.values.vals[k]
		}
		for _, sub := range s.subsections {
			m[sub] = s.subs[sub].Map()
		}
		out[name] = m
	}

	return out
}
