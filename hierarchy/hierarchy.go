// Package hierarchy reconstructs a group/entry tree from the flat,
// pre-order-sorted group list a .kdb file stores on disk, and provides
// path lookup, depth-first visitation, and the inverse flattening
// operation used when writing.
package hierarchy

import (
	"strings"

	"github.com/go-kdbv1/kdbv1/errs"
	"github.com/go-kdbv1/kdbv1/logx"
	"github.com/go-kdbv1/kdbv1/record"
)

// rootLevel is the virtual root's level: one above the shallowest real
// group, which always starts at level 0.
const rootLevel = -1

// Node is one node of the reconstructed tree: either the virtual root
// (Group == nil) or a real group, with its child groups and its own
// entries attached.
type Node struct {
	Group    *record.Group
	Level    int
	Parent   *Node
	Children []*Node
	Entries  []*record.Entry
}

// isRoot reports whether n is the virtual root sentinel.
func (n *Node) isRoot() bool { return n.Group == nil }

// Name returns the node's group name, or "" for the virtual root.
func (n *Node) Name() string {
	if n.isRoot() {
		return ""
	}

	return n.Group.Name
}

// BuildTree reconstructs the tree from groups (assumed pre-order, each
// carrying a Level) and attaches entries to the node matching their
// GroupID. An entry whose GroupID matches no group is dropped with a
// warning logged via warn (pass logx.Nop() to silence this).
func BuildTree(groups []record.Group, entries []record.Entry, warn logx.Logger) *Node {
	root := &Node{Level: rootLevel}
	byID := make(map[uint32]*Node, len(groups))

	stack := []*Node{root}
	for i := range groups {
		g := groups[i]
		level := int(g.Level)

		for len(stack) > 0 && stack[len(stack)-1].Level >= level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			// Malformed level sequence (e.g. doesn't start at 0); re-anchor at root.
			stack = []*Node{root}
		}

		parent := stack[len(stack)-1]
		node := &Node{Group: &groups[i], Level: level, Parent: parent}
		parent.Children = append(parent.Children, node)
		byID[g.ID] = node

		stack = append(stack, node)
	}

	for i := range entries {
		e := &entries[i]
		node, ok := byID[e.GroupID]
		if !ok {
			if warn != nil {
				warn.Warnf("hierarchy: dropping entry %s: no group with id %d", e.UUID, e.GroupID)
			}
			continue
		}
		node.Entries = append(node.Entries, e)
	}

	return root
}

// Flatten performs the depth-first pre-order traversal that is the
// inverse of BuildTree: it returns the group list in the exact order
// BuildTree expects to re-derive the same tree, and the entries in the
// order encountered.
func Flatten(root *Node) ([]record.Group, []record.Entry) {
	var groups []record.Group
	var entries []record.Entry

	var walk func(n *Node)
	walk = func(n *Node) {
		if !n.isRoot() {
			groups = append(groups, *n.Group)
		}
		entries = append(entries, derefEntries(n.Entries)...)
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(root)

	return groups, entries
}

func derefEntries(ptrs []*record.Entry) []record.Entry {
	out := make([]record.Entry, len(ptrs))
	for i, p := range ptrs {
		out[i] = *p
	}

	return out
}

// Visit performs a depth-first traversal starting at n: the visitor runs
// on n itself, then (unless it bails) recursively on each child, then on
// each of n's entries wrapped as a Node with no children. A non-nil value
// returned by the visitor terminates the whole descent and becomes Visit's
// return value; bail=true skips n's children/entries but lets traversal
// continue with ancestors' remaining siblings.
func (n *Node) Visit(visitor func(*Node) (value any, bail bool)) any {
	value, bail := visitor(n)
	if value != nil {
		return value
	}
	if bail {
		return nil
	}

	for _, child := range n.Children {
		if v := child.Visit(visitor); v != nil {
			return v
		}
	}

	for _, e := range n.Entries {
		leaf := &Node{Parent: n, Level: n.Level + 1, Entries: []*record.Entry{e}}
		if v, _ := visitor(leaf); v != nil {
			return v
		}
	}

	return nil
}

// Match is the result of a successful PathLookup.
type Match struct {
	Node  *Node
	Entry *record.Entry
}

// splitPath splits a slash-delimited path into components, discarding a
// single trailing empty component produced by a trailing slash.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	return parts
}

// PathLookup resolves path (slash-delimited) against root: interior
// components must match a child group's name exactly; the final component
// matches either a child group's name or an entry's title. It returns the
// matched node/entry, or an error together with the best-match node and
// the unmatched suffix.
func PathLookup(root *Node, path string) (*Match, *Node, []string, error) {
	parts := splitPath(path)

	node := root
	for i, part := range parts {
		last := i == len(parts)-1

		var next *Node
		for _, child := range node.Children {
			if child.Name() == part {
				next = child
				break
			}
		}

		if next != nil {
			node = next
			continue
		}

		if last {
			for _, e := range node.Entries {
				if e.Title == part {
					return &Match{Node: node, Entry: e}, nil, nil, nil
				}
			}
		}

		return nil, node, parts[i:], errs.ErrPathNotFound
	}

	return &Match{Node: node}, nil, nil, nil
}

// Mkdir resolves the longest existing prefix of path and creates the
// remaining components as new groups (level = parent's level + 1, a fresh
// id from genID, current timestamps), returning the leaf node.
func Mkdir(root *Node, path string, genID func() (uint32, error)) (*Node, error) {
	parts := splitPath(path)

	node := root
	idx := 0
	for ; idx < len(parts); idx++ {
		var next *Node
		for _, child := range node.Children {
			if child.Name() == parts[idx] {
				next = child
				break
			}
		}
		if next == nil {
			break
		}
		node = next
	}

	for ; idx < len(parts); idx++ {
		id, err := genID()
		if err != nil {
			return nil, err
		}

		g := record.NewGroup(id)
		g.Name = parts[idx]
		g.Level = uint16(node.Level + 1)

		child := &Node{Group: g, Level: node.Level + 1, Parent: node}
		node.Children = append(node.Children, child)
		node = child
	}

	return node, nil
}
