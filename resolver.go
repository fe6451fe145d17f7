package gitform

import (
	"github.com/gopasspw/gopass/pkg/debug"
)

// Strategy is one way of matching a raw configuration key against the
// options of a single (section, subsection) pair.
type Strategy struct {
	Name  string
	Match func(d Descriptor, rawKey string) bool
}

// ExactKey matches the literal configuration name or the option name.
var ExactKey = Strategy{
	Name: "exact",
	Match: func(d Descriptor, rawKey string) bool {
		return (d.ConfigName != "" && d.ConfigName == rawKey) || d.Name == rawKey
	},
}

// CamelCase matches the option name against the camel cased raw key,
// e.g. default-branch matches defaultBranch.
var CamelCase = Strategy{
	Name: "camelcase",
	Match: func(d Descriptor, rawKey string) bool {
		return d.Name == KebabToCamel(rawKey)
	},
}

// DefaultStrategies is the resolution order used by NewResolver.
var DefaultStrategies = []Strategy{ExactKey, CamelCase}

// Resolver maps configuration keys to catalog options and back.
//
// Resolution is asymmetric: parsing tries every strategy in order while
// emitting only ever uses the configName or the verbatim name.
type Resolver struct {
	catalog    *Catalog
	strategies []Strategy
}

// NewResolver returns a resolver using DefaultStrategies.
func NewResolver(c *Catalog) *Resolver {
	return NewResolverWith(c, DefaultStrategies...)
}

// NewResolverWith returns a resolver trying the given strategies in order.
func NewResolverWith(c *Catalog, strategies ...Strategy) *Resolver {
	return &Resolver{
		catalog:    c,
		strategies: strategies,
	}
}

// Catalog returns the catalog this resolver consults.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// Resolve finds the option for a raw key found in the given section and subsection.
// An empty subsection denotes the section itself.
func (r *Resolver) Resolve(section, subsection, rawKey string) (Descriptor, bool) {
	for _, s := range r.strategies {
		d, found := r.catalog.find(section, subsection, func(d Descriptor) bool {
			return s.Match(d, rawKey)
		})
		if found {
			debug.V(3).Log("resolved %s.%s.%s to %s (%s)", section, subsection, rawKey, d.Name, s.Name)

			return d, true
		}
	}

	debug.V(3).Log("no option for %s.%s.%s", section, subsection, rawKey)

	return Descriptor{}, false
}

// Key returns the option name for rawKey or rawKey itself if no option matches.
func (r *Resolver) Key(section, subsection, rawKey string) string {
	if d, found := r.Resolve(section, subsection, rawKey); found {
		return d.Name
	}

	return rawKey
}

// EmitName returns the key written to the configuration text for the option
// name. This is the configName if there is one, the name otherwise. No case
// conversion is applied.
func (r *Resolver) EmitName(section, subsection, name string) string {
	if d, found := r.catalog.Lookup(section, subsection, name); found {
		return d.EmitName()
	}

	return name
}
