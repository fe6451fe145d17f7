package gitform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopasspw/gopass/pkg/appdir"
	"github.com/gopasspw/gopass/pkg/debug"
)

// Scope names a git configuration location that can be imported.
type Scope string

// Supported scopes, lowest priority first.
const (
	ScopeSystem Scope = "system"
	ScopeGlobal Scope = "global"
	ScopeLocal  Scope = "local"
)

var (
	// SystemConfig is the path of the system wide config.
	SystemConfig = "/etc/gitconfig"
	// GlobalConfig is the per-user config file name, relative to the home directory.
	GlobalConfig = ".gitconfig"
	// LocalConfig is the per-repository config, relative to the workdir.
	LocalConfig = filepath.Join(".git", "config")
)

// Location is a candidate config file.
type Location struct {
	Scope Scope
	Path  string
}

// Exists returns true if the location is an existing regular file.
func (l Location) Exists() bool {
	fi, err := os.Stat(l.Path)
	if err != nil {
		return false
	}

	return fi.Mode().IsRegular()
}

// ParseScope returns the scope with the given (case insensitive) name.
func ParseScope(s string) (Scope, error) {
	switch sc := Scope(strings.ToLower(s)); sc {
	case ScopeSystem, ScopeGlobal, ScopeLocal:
		return sc, nil
	default:
		return "", fmt.Errorf("unknown scope %q", s)
	}
}

// Locations lists the candidate config files in the order git reads them:
// system, global ($XDG_CONFIG_HOME/<name>/config, then ~/.gitconfig) and,
// if workdir is set, local.
func Locations(name, workdir string) []Location {
	locs := []Location{
		{Scope: ScopeSystem, Path: SystemConfig},
		{Scope: ScopeGlobal, Path: filepath.Join(appdir.New(name).UserConfig(), "config")},
	}

	if GlobalConfig != "" {
		locs = append(locs, Location{Scope: ScopeGlobal, Path: filepath.Join(appdir.UserHome(), GlobalConfig)})
	}

	if workdir != "" {
		locs = append(locs, Location{Scope: ScopeLocal, Path: filepath.Join(workdir, LocalConfig)})
	}

	return locs
}

// FindLocation returns the first existing config file of the given scope.
func FindLocation(scope Scope, name, workdir string) (Location, error) {
	for _, l := range Locations(name, workdir) {
		if l.Scope != scope {
			continue
		}
		if !l.Exists() {
			debug.V(1).Log("[%s] no %s config at %s", name, scope, l.Path)

			continue
		}

		debug.V(1).Log("[%s] found %s config at %s", name, scope, l.Path)

		return l, nil
	}

	return Location{}, fmt.Errorf("no %s config found for %s: %w", scope, name, os.ErrNotExist)
}
