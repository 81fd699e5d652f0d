// Package pattern parses plaintext Life patterns and ships a small catalog of
// well-known ones.
//
// The plaintext format has one row per line, '.' or a space for dead and 'O' (or '*')
// for alive. Lines starting with '!' are comments. Short rows are padded with
// dead cells.
package pattern

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"hashlife/internal/core"
)

var (
	// ErrUnknownPattern indicates a name missing from the catalog.
	ErrUnknownPattern = errors.New("unknown pattern")

	// ErrBadCell indicates a character that is neither dead nor alive.
	ErrBadCell = errors.New("invalid cell character")
)

// Parse decodes a plaintext pattern into a grid sized to its rows.
func Parse(text string) (*core.Grid, error) {
	var rows []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimRight(line, " \t")
		if strings.HasPrefix(line, "!") {
			continue
		}
		rows = append(rows, line)
	}
	// Blank lines are dead rows, but leading and trailing ones only frame
	// the pattern.
	for len(rows) > 0 && strings.TrimSpace(rows[0]) == "" {
		rows = rows[1:]
	}
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}

	width := 0
	for _, r := range rows {
		width = max(width, utf8.RuneCountInString(r))
	}
	g := core.NewGrid(width, len(rows))
	for y, r := range rows {
		x := 0
		for _, c := range r {
			switch c {
			case '.', ' ':
			case 'O', 'o', '*':
				g.Set(x, y, true)
			default:
				return nil, fmt.Errorf("row %d col %d %q: %w", y+1, x+1, c, ErrBadCell)
			}
			x++
		}
	}
	return g, nil
}

// Lookup parses the catalog entry with the given name.
func Lookup(name string) (*core.Grid, error) {
	text, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownPattern)
	}
	return Parse(text)
}

// Names lists the catalog in lexical order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
