package gitform

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/gopasspw/gopass/pkg/debug"
)

// maxLineLength bounds a single configuration line.
const maxLineLength = 1024 * 1024

var (
	reSectionHeader = regexp.MustCompile(`^\[([^\s"]+)(?:\s+"([^"]+)")?\]$`)
	reKeyValue      = regexp.MustCompile(`^([^=]+?)\s*=\s*(.+)$`)
)

// Parser reads configuration text into a Tree, mapping keys back to the
// option names of the catalog.
type Parser struct {
	resolver *Resolver
}

// NewParser returns a parser resolving keys through the given catalog.
// A nil catalog keeps every key verbatim.
func NewParser(c *Catalog) *Parser {
	return NewParserWith(NewResolver(c))
}

// NewParserWith returns a parser using the given resolver.
func NewParserWith(r *Resolver) *Parser {
	return &Parser{resolver: r}
}

// ParseString parses configuration text.
func (p *Parser) ParseString(s string) *Tree {
	return p.Parse(strings.NewReader(s))
}

// ParseFile reads and parses the given file. Only I/O errors are returned,
// the content itself never fails to parse.
func (p *Parser) ParseFile(fn string) (*Tree, error) {
	fh, err := os.Open(fn)
	if err != nil {
		return nil, fmt.Errorf("failed to open config %s: %w", fn, err)
	}
	defer fh.Close() //nolint:errcheck

	return p.Parse(fh), nil
}

// Parse implements a lenient parser for the gitconfig subset we support.
// It never fails. Lines that are neither a comment, a section header nor a
// key value pair are skipped. Keys of unknown options are kept verbatim.
//
// The alias section is special: an `[alias "name"]` header followed by a
// single value line binds that value to the alias name.
func (p *Parser) Parse(in io.Reader) *Tree {
	tree := NewTree()

	r := bufio.NewReader(in)

	var section string
	var subsection string
	var lineNo int
	for {
		raw, tooLong, err := readLine(r)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				debug.Log("stopped parsing at line %d: %s", lineNo+1, err)
			}

			break
		}
		lineNo++
		if tooLong {
			debug.V(3).Log("line %d: longer than %d bytes, skipped", lineNo, maxLineLength)

			continue
		}
		line := strings.TrimSpace(raw)

		if line == "" {
			continue
		}
		// Handle full-line comments
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		// Handle section headers
		if m := reSectionHeader.FindStringSubmatch(line); m != nil {
			section = m[1]
			subsection = m[2]
			tree.AddSection(section)

			continue
		}

		if section == "" {
			debug.V(3).Log("line %d: no section for %q", lineNo, line)

			continue
		}

		m := reKeyValue.FindStringSubmatch(line)
		if m == nil {
			// a bare value binds to a pending alias
			if section == AliasSection && subsection != "" {
				tree.Set(AliasSection, "", subsection, unquote(line))
				debug.V(3).Log("line %d: bound alias %q to %q", lineNo, subsection, line)
				subsection = ""

				continue
			}
			debug.V(3).Log("line %d: no valid KV-pair: %q", lineNo, line)

			continue
		}

		key := strings.TrimSpace(m[1])
		value := unquote(strings.TrimSpace(m[2]))

		switch {
		case section == AliasSection && subsection != "":
			tree.Set(AliasSection, "", subsection, value)
			subsection = ""
		case section == AliasSection:
			// alias names are quoted when written if they contain blanks
			tree.Set(AliasSection, "", unquote(key), value)
		default:
			tree.Set(section, subsection, p.resolver.Key(section, subsection, key), value)
		}
	}

	return tree
}

// readLine returns the next line without its line ending. Lines longer
// than maxLineLength are consumed completely but reported as too long.
// io.EOF is only returned if there is no line left.
func readLine(r *bufio.Reader) (string, bool, error) {
	var buf []byte
	var n int
	for {
		chunk, err := r.ReadSlice('\n')
		n += len(chunk)
		if n <= maxLineLength+1 {
			buf = append(buf, chunk...)
		}

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case err != nil && n == 0:
			return "", false, err
		case err != nil && !errors.Is(err, io.EOF):
			return "", false, err
		}

		line := strings.TrimRight(string(buf), "\r\n")
		if n > maxLineLength+1 || len(line) > maxLineLength {
			return "", true, nil
		}

		return line, false, nil
	}
}
