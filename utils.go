package gitform

import (
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

var reKebab = regexp.MustCompile(`-[a-z]`)

// globMatch implements a glob matcher that supports double-asterisk (**) patterns.
// Dots separate the parts of an option key.
func globMatch(pattern, s string) (bool, error) {
	g, err := glob.Compile(pattern, '.')
	if err != nil {
		return false, err
	}

	return g.Match(s), nil
}

// splitKey splits a fully qualified key into two or three parts.
// A valid key consists of either a section and a key separated by a dot
// or section, subsection and key, all separated by a dot. Note that
// the subsection might contain dots itself.
//
// Valid examples:
// - core.editor
// - color.diff.meta
// - url.git@github.com:.insteadOf.
func splitKey(key string) (section, subsection, skey string) { //nolint:nonamedreturns
	n := strings.Index(key, ".")
	if n > 0 {
		section = key[:n]
	}

	if m := strings.LastIndex(key, "."); n != m && m > 0 && len(key) > m+1 {
		subsection = key[n+1 : m]
		skey = key[m+1:]

		return
	}

	skey = key[n+1:]

	return
}

// KebabToCamel converts a dashed key to camel case. Every dash followed by
// a lowercase letter is replaced by the uppercase letter, e.g.
// default-branch becomes defaultBranch. Other dashes are kept.
func KebabToCamel(key string) string {
	return reKebab.ReplaceAllStringFunc(key, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}

// Quote wraps s in double quotes if it contains a space, an equals sign or a
// double quote. Embedded double quotes are escaped with a backslash.
func Quote(s string) string {
	if !strings.ContainsAny(s, ` ="`) {
		return s
	}

	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// unquote removes one pair of matching double or single quotes surrounding
// the value. Escape sequences are left untouched.
func unquote(v string) string {
	if len(v) < 1 {
		return v
	}

	for _, q := range []string{`"`, `'`} {
		if strings.HasPrefix(v, q) && strings.HasSuffix(v, q) {
			if len(v) < 2 {
				return ""
			}

			return v[1 : len(v)-1]
		}
	}

	return v
}
