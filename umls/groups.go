package umls

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// groupFields is the number of pipe-delimited fields on a group line:
// abbreviation|group name|type code|subgroup name.
const groupFields = 4

// Groups is the UMLS semantic group definition table. It is immutable once
// loaded.
type Groups struct {
	// Abbreviations maps a group abbreviation (ACTI) to its full name
	// (Activities & Behaviors).
	Abbreviations map[string]string
	// Subgroups maps a group full name to the set of member names.
	Subgroups map[string]map[string]struct{}
	// TypeGroups maps a semantic type code (T051) to its group abbreviation.
	TypeGroups map[string]string
}

// LoadGroups reads a semantic group definition file such as SemGroups.txt.
// Any malformed line fails the whole load.
func LoadGroups(path string) (*Groups, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("umls: open semantic groups: %w", err)
	}
	defer f.Close()
	return parseGroups(f, path)
}

// ParseGroups reads semantic group definitions from r.
func ParseGroups(r io.Reader) (*Groups, error) {
	return parseGroups(r, "")
}

func parseGroups(r io.Reader, path string) (*Groups, error) {
	g := &Groups{
		Abbreviations: make(map[string]string),
		Subgroups:     make(map[string]map[string]struct{}),
		TypeGroups:    make(map[string]string),
	}
	// Files exported on Windows frequently start with a byte-order mark.
	sc := bufio.NewScanner(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) != groupFields {
			return nil, NewParseError(path, n, len(fields))
		}
		abbrv, name, typeCode, member := fields[0], fields[1], fields[2], fields[3]
		g.Abbreviations[abbrv] = name
		if g.Subgroups[name] == nil {
			g.Subgroups[name] = make(map[string]struct{})
		}
		g.Subgroups[name][member] = struct{}{}
		g.TypeGroups[typeCode] = abbrv
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("umls: read semantic groups: %w", err)
	}
	return g, nil
}

// Abbreviation returns the full group name for an abbreviation.
func (g *Groups) Abbreviation(abbrv string) (string, bool) {
	name, ok := g.Abbreviations[abbrv]
	return name, ok
}

// Names returns the full names of all groups, sorted.
func (g *Groups) Names() []string {
	return slices.Sorted(maps.Keys(g.Subgroups))
}

// Members returns the member names of a group, sorted. It returns nil for
// unknown groups.
func (g *Groups) Members(name string) []string {
	return slices.Sorted(maps.Keys(g.Subgroups[name]))
}

// Contains reports whether member belongs to the named group.
func (g *Groups) Contains(name, member string) bool {
	_, ok := g.Subgroups[name][member]
	return ok
}

// GroupOf returns the group abbreviation a semantic type code belongs to.
func (g *Groups) GroupOf(typeCode string) (string, bool) {
	abbrv, ok := g.TypeGroups[typeCode]
	return abbrv, ok
}
