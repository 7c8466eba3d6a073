package snapshot

// Match is a typed attribute predicate: a node matches when the named
// attribute equals the given value exactly.
type Match struct {
	Attr   string
	Equals string
}

// SelectAll returns every node reachable from the root along the given
// path segments, in document order.
func (t *Tree) SelectAll(path ...string) []*Node {
	return t.root.SelectAll(path...)
}

// SelectOne returns the first node along the given path, or nil when the
// path matches nothing. Absence is not an error.
func (t *Tree) SelectOne(path ...string) *Node {
	return t.root.SelectOne(path...)
}

// Find returns the nodes along path whose attributes satisfy every match.
func (t *Tree) Find(path []string, matches ...Match) []*Node {
	var out []*Node
	for _, n := range t.SelectAll(path...) {
		if n.Matches(matches...) {
			out = append(out, n)
		}
	}
	return out
}

// SelectAll returns every descendant reachable along the path segments.
func (n *Node) SelectAll(path ...string) []*Node {
	current := []*Node{n}
	for _, segment := range path {
		var next []*Node
		for _, node := range current {
			for _, child := range node.Children {
				if child.Name == segment {
					next = append(next, child)
				}
			}
		}
		current = next
	}
	return current
}

// SelectOne returns the first descendant along the path, or nil.
func (n *Node) SelectOne(path ...string) *Node {
	all := n.SelectAll(path...)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// Attr returns the named attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[name]
}

// Matches reports whether the node satisfies every attribute predicate.
func (n *Node) Matches(matches ...Match) bool {
	for _, m := range matches {
		if n.Attr(m.Attr) != m.Equals {
			return false
		}
	}
	return true
}
