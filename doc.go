// Package gitform generates git config files from a catalog of known options
// and parses existing config files back into the same selection.
//
// The support is limited to the subset of the git config syntax such files use:
// sections, quoted subsections, comments, quoted values and indented
// key = value lines. Values are treated as text, multivars and value
// continuation are not supported.
//
// The reference for the syntax is https://git-scm.com/docs/git-config#_syntax
//
// # Usage
//
// Load the option catalog once, then parse and serialize as often as needed:
//
//	cat, err := gitform.LoadCatalog("config-options.json")
//	if err != nil { ... }
//
//	tree, err := gitform.NewParser(cat).ParseFile("~/.gitconfig")
//	if err != nil { ... }
//	sel := gitform.Project(tree, cat, nil)
//
//	sel.Options.Add("core", "", "editor", "vim")
//	sel.Aliases.Set("st", "status --short")
//
//	fmt.Println(gitform.NewSerializer(cat, nil).Serialize(sel))
//
// # Key resolution
//
// Keys read from a file are matched against the catalog in a fixed order:
// first the configName or the name of an option, then the camel cased key
// (default-branch matches defaultBranch). Keys without a matching option are
// kept verbatim. When writing, the configName of an option is used if it has
// one, otherwise its name. No case conversion happens in that direction.
//
// # Aliases
//
// The alias section is always flat and never resolved. Besides the usual
// `name = command` lines an `[alias "name"]` header followed by a single
// value line binds that value to the alias name.
//
// # Error Handling
//
// Parsing never fails, invalid lines are skipped. Loading the catalog fails
// with one of the sentinel errors which can be checked using errors.Is:
//
//	if _, err := gitform.LoadCatalog(fn); errors.Is(err, gitform.ErrDuplicateOption) {
//		// fix the catalog
//	}
package gitform
