package dom

import "strings"

// simpleSelector is one compound selector: an optional tag plus any
// number of #id, .class, and [attr] / [attr=value] qualifiers.
type simpleSelector struct {
	tag     string
	id      string
	classes []string
	attrs   []attrCond
}

type attrCond struct {
	key      string
	value    string
	hasValue bool
}

// parseSelector parses a comma-separated list of compound simple
// selectors. Combinators (descendant, child) are not supported; the
// engine only ever matches single elements.
func parseSelector(sel string) []simpleSelector {
	var out []simpleSelector
	for _, part := range strings.Split(sel, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, parseSimple(part))
	}
	return out
}

func parseSimple(s string) simpleSelector {
	var sel simpleSelector
	i := 0
	readName := func() string {
		start := i
		for i < len(s) && s[i] != '#' && s[i] != '.' && s[i] != '[' {
			i++
		}
		return s[start:i]
	}

	if i < len(s) && s[i] != '#' && s[i] != '.' && s[i] != '[' && s[i] != '*' {
		sel.tag = readName()
	} else if i < len(s) && s[i] == '*' {
		i++
	}

	for i < len(s) {
		switch s[i] {
		case '#':
			i++
			sel.id = readName()
		case '.':
			i++
			sel.classes = append(sel.classes, readName())
		case '[':
			i++
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				// Unterminated attribute selector; ignore the rest.
				return sel
			}
			body := s[i : i+end]
			i += end + 1
			if eq := strings.IndexByte(body, '='); eq >= 0 {
				val := strings.Trim(body[eq+1:], `"'`)
				sel.attrs = append(sel.attrs, attrCond{key: body[:eq], value: val, hasValue: true})
			} else {
				sel.attrs = append(sel.attrs, attrCond{key: body})
			}
		default:
			// Unexpected byte; stop parsing rather than guessing.
			return sel
		}
	}
	return sel
}

// Matches reports whether the element matches the selector. Text nodes
// never match.
func (n *Node) Matches(selector string) bool {
	if n == nil || n.kind != ElementNode {
		return false
	}
	for _, sel := range parseSelector(selector) {
		if n.matchesSimple(sel) {
			return true
		}
	}
	return false
}

func (n *Node) matchesSimple(sel simpleSelector) bool {
	if sel.tag != "" && n.tag != sel.tag {
		return false
	}
	if sel.id != "" && n.attrs["id"] != sel.id {
		return false
	}
	if len(sel.classes) > 0 {
		have := strings.Fields(n.attrs["class"])
		for _, want := range sel.classes {
			found := false
			for _, c := range have {
				if c == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	for _, cond := range sel.attrs {
		v, ok := n.attrs[cond.key]
		if !ok {
			return false
		}
		if cond.hasValue && v != cond.value {
			return false
		}
	}
	return true
}

// Closest returns the nearest ancestor (inclusive) matching the
// selector, or nil.
func (n *Node) Closest(selector string) *Node {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.Matches(selector) {
			return cur
		}
	}
	return nil
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Query returns the first descendant (exclusive of n) matching the
// selector, in depth-first order, or nil.
func (n *Node) Query(selector string) *Node {
	for _, c := range n.children {
		if c.Matches(selector) {
			return c
		}
		if found := c.Query(selector); found != nil {
			return found
		}
	}
	return nil
}

// QueryAll returns all descendants matching the selector in depth-first
// order.
func (n *Node) QueryAll(selector string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.Matches(selector) {
			out = append(out, c)
		}
		out = append(out, c.QueryAll(selector)...)
	}
	return out
}
