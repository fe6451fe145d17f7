package gitform

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gopasspw/gopass/pkg/debug"
)

// EnvPrefix is the default prefix of the environment overlay variables.
const EnvPrefix = "GITFORM_CONFIG"

// EnabledFromEnv reads an overlay selection from environment variables,
// following the GIT_CONFIG_COUNT convention:
//
//	<PREFIX>_COUNT=2
//	<PREFIX>_KEY_0=core.editor
//	<PREFIX>_VALUE_0=vim
//	<PREFIX>_KEY_1=alias.st
//	<PREFIX>_VALUE_1=status --short
//
// Keys are section.key or section.subsection.key, alias.<name> selects an
// alias. If no count is set the selection is empty. Keys are used as given,
// they are not resolved through the catalog.
func EnabledFromEnv(prefix string) (*Selection, error) {
	sel := NewSelection()

	raw, found := os.LookupEnv(prefix + "_COUNT")
	if !found || raw == "" {
		return sel, nil
	}

	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: %s_COUNT=%q", ErrInvalidEnv, prefix, raw)
	}

	for i := range count {
		keyVar := fmt.Sprintf("%s_KEY_%d", prefix, i)
		key := os.Getenv(keyVar)

		valVar := fmt.Sprintf("%s_VALUE_%d", prefix, i)
		value, found := os.LookupEnv(valVar)

		if key == "" || !found {
			return nil, fmt.Errorf("%w: missing %s or %s", ErrInvalidEnv, keyVar, valVar)
		}

		section, subsection, skey := splitKey(key)
		if section == "" || skey == "" {
			return nil, fmt.Errorf("%w: %s in %s", ErrInvalidKey, key, keyVar)
		}

		if section == AliasSection {
			// alias names may contain dots
			sel.Aliases.Set(key[len(AliasSection)+1:], value)
		} else {
			sel.Options.Add(section, subsection, skey, value)
		}
		debug.V(3).Log("added %s from env", key)
	}

	return sel, nil
}
