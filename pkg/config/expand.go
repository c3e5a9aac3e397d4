package config

import (
	"regexp"

	"gopkg.in/yaml.v3"
)

// LookupFunc resolves an environment variable; os.LookupEnv satisfies it.
type LookupFunc func(name string) (string, bool)

var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_.-]*)(?::([^}]*))?\}`)

// expander collects unresolved names across one document
type expander struct {
	lookup     LookupFunc
	seen       map[string]bool
	unresolved []string
}

func newExpander(lookup LookupFunc) *expander {
	return &expander{lookup: lookup, seen: make(map[string]bool)}
}

func (e *expander) expand(s string) string {
	return placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := placeholderPattern.FindStringSubmatch(match)
		name := groups[1]

		if value, ok := e.lookup(name); ok && value != "" {
			return value
		}
		// ${VAR:} is an explicit empty default
		if len(match) > len(name)+3 {
			return groups[2]
		}
		if !e.seen[name] {
			e.seen[name] = true
			e.unresolved = append(e.unresolved, name)
		}
		return ""
	})
}

// walk expands scalar values in place. Mapping keys and comments are left
// alone, and values never pass back through the YAML parser, so an expanded
// secret containing " #" or ": " stays intact.
func (e *expander) walk(n *yaml.Node) {
	switch n.Kind {
	case yaml.ScalarNode:
		expanded := e.expand(n.Value)
		if expanded == n.Value {
			return
		}
		n.Value = expanded
		// plain scalars are re-resolved so ${RPM:60} still decodes into an int
		if n.Style == 0 {
			n.Tag = ""
		}
	case yaml.MappingNode:
		for i := 1; i < len(n.Content); i += 2 {
			e.walk(n.Content[i])
		}
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range n.Content {
			e.walk(c)
		}
	}
}

// ExpandString replaces ${VAR} and ${VAR:default} placeholders in s.
// A variable that is unset and has no default expands to the empty string
// and its name is reported in the second return value, so a missing secret
// surfaces as a missing credential instead of a literal placeholder.
func ExpandString(s string, lookup LookupFunc) (string, []string) {
	e := newExpander(lookup)
	return e.expand(s), e.unresolved
}

// ExpandNode applies ExpandString to every scalar value under n and returns
// the names of unresolved variables, each reported once.
func ExpandNode(n *yaml.Node, lookup LookupFunc) []string {
	e := newExpander(lookup)
	e.walk(n)
	return e.unresolved
}
