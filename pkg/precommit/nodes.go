package precommit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// resolve follows alias nodes to their anchors.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// Body returns the root content node of a document node.
func Body(n *yaml.Node) *yaml.Node {
	n = resolve(n)
	if n != nil && n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		return resolve(n.Content[0])
	}
	return n
}

// Pair is a key/value entry of a YAML mapping.
type Pair struct {
	Key   *yaml.Node
	Value *yaml.Node
}

// Pairs returns the entries of a mapping node in document order,
// including repeated keys. Non-mapping nodes yield nil.
func Pairs(n *yaml.Node) []Pair {
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	pairs := make([]Pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		pairs = append(pairs, Pair{Key: n.Content[i], Value: resolve(n.Content[i+1])})
	}
	return pairs
}

// ToValue converts a node into plain Go values: map[string]interface{},
// []interface{}, and scalars. Repeated mapping keys keep the last value.
// An alias back into a node being converted yields nil.
func ToValue(n *yaml.Node) interface{} {
	return toValue(n, make(map[*yaml.Node]bool))
}

func toValue(n *yaml.Node, visiting map[*yaml.Node]bool) interface{} {
	n = resolve(n)
	if n == nil || visiting[n] {
		return nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		return toValue(Body(n), visiting)
	case yaml.MappingNode:
		visiting[n] = true
		defer delete(visiting, n)
		m := make(map[string]interface{}, len(n.Content)/2)
		for _, p := range Pairs(n) {
			m[p.Key.Value] = toValue(p.Value, visiting)
		}
		return m
	case yaml.SequenceNode:
		visiting[n] = true
		defer delete(visiting, n)
		s := make([]interface{}, 0, len(n.Content))
		for _, item := range n.Content {
			s = append(s, toValue(item, visiting))
		}
		return s
	case yaml.ScalarNode:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return n.Value
		}
		if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			return n.Value
		}
		return v
	}
	return nil
}

// Alias expansion limits. A document may expand through aliases to at most
// aliasExpansionRatio times its literal size, and always to aliasExpansionFloor nodes.
const (
	aliasExpansionFloor = 100000
	aliasExpansionRatio = 10
)

// checkAliases rejects aliases that refer to a node containing them and
// documents whose aliases expand past the limits above.
func checkAliases(root *yaml.Node) error {
	limit := countNodes(root) * aliasExpansionRatio
	if limit < aliasExpansionFloor {
		limit = aliasExpansionFloor
	}
	a := &aliasCheck{
		sizes:    make(map[*yaml.Node]int),
		visiting: make(map[*yaml.Node]bool),
		limit:    limit,
	}
	_, err := a.size(root)
	return err
}

func countNodes(n *yaml.Node) int {
	total := 1
	for _, c := range n.Content {
		total += countNodes(c)
	}
	return total
}

type aliasCheck struct {
	sizes    map[*yaml.Node]int
	visiting map[*yaml.Node]bool
	limit    int
}

// size returns the number of nodes n expands to.
func (a *aliasCheck) size(n *yaml.Node) (int, error) {
	if n.Kind == yaml.AliasNode {
		if n.Alias == nil {
			return 1, nil
		}
		if a.visiting[n.Alias] {
			return 0, fmt.Errorf("line %d: alias *%s refers to a node that contains it", n.Line, n.Value)
		}
		return a.size(n.Alias)
	}
	if s, ok := a.sizes[n]; ok {
		return s, nil
	}

	a.visiting[n] = true
	total := 1
	for _, c := range n.Content {
		s, err := a.size(c)
		if err != nil {
			return 0, err
		}
		total += s
		if total > a.limit {
			return 0, fmt.Errorf("line %d: aliases expand the document past %d nodes", c.Line, a.limit)
		}
	}
	delete(a.visiting, n)
	a.sizes[n] = total
	return total, nil
}

// Lookup resolves a JSON pointer (RFC 6901) against a node tree and returns
// the deepest node reached. It never returns nil for a non-nil root.
func Lookup(root *yaml.Node, pointer string) *yaml.Node {
	cur := Body(root)
	if cur == nil {
		return root
	}
	if pointer == "" || pointer == "/" {
		return cur
	}
	for _, tok := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		tok = strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~")
		next := child(cur, tok)
		if next == nil {
			return cur
		}
		cur = next
	}
	return cur
}

func child(n *yaml.Node, tok string) *yaml.Node {
	switch n.Kind {
	case yaml.MappingNode:
		var found *yaml.Node
		for _, p := range Pairs(n) {
			if p.Key.Value == tok {
				found = p.Value
			}
		}
		return found
	case yaml.SequenceNode:
		idx, err := strconv.Atoi(tok)
		if err != nil || idx < 0 || idx >= len(n.Content) {
			return nil
		}
		return resolve(n.Content[idx])
	}
	return nil
}

func scalarString(n *yaml.Node) string {
	n = resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return ""
	}
	return n.Value
}

func scalarBool(n *yaml.Node) (bool, bool) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return false, false
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		return false, false
	}
	return b, true
}

func stringList(n *yaml.Node) []string {
	n = resolve(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		item = resolve(item)
		if item.Kind == yaml.ScalarNode {
			out = append(out, item.Value)
		}
	}
	return out
}

func stringMap(n *yaml.Node) map[string]string {
	pairs := Pairs(n)
	if pairs == nil {
		return nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		out[p.Key.Value] = scalarString(p.Value)
	}
	return out
}
