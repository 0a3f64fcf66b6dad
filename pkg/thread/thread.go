// Package thread rebuilds a post's reply tree from the server's flat comment list.
package thread

import (
	"github.com/RicardoYam/Meet/pkg/api"
)

// Node is a comment with its direct replies in source order
type Node struct {
	Comment api.Comment `json:"comment"`
	Replies []*Node     `json:"replies"`
}

// ID returns the comment id
func (n *Node) ID() int64 {
	return n.Comment.ID
}

// build indexes comments and links every resolvable reply to its parent.
// nodes[i] is the node for comments[i].
func build(comments []api.Comment) (roots, nodes []*Node) {
	nodes = make([]*Node, len(comments))
	index := make(map[int64]*Node, len(comments))
	for i, c := range comments {
		n := &Node{Comment: c, Replies: []*Node{}}
		nodes[i] = n
		// First occurrence of a duplicated id owns its replies
		if _, dup := index[c.ID]; !dup {
			index[c.ID] = n
		}
	}

	roots = []*Node{}
	for i, c := range comments {
		n := nodes[i]
		if c.ParentCommentID == nil {
			roots = append(roots, n)
			continue
		}
		pid := *c.ParentCommentID
		if pid == c.ID {
			continue
		}
		if parent, ok := index[pid]; ok {
			parent.Replies = append(parent.Replies, n)
		}
	}
	return roots, nodes
}

// Organize turns a flat comment list into a forest. Top-level comments become roots;
// every other comment is attached under the comment its parent id names. Comments whose
// parent is not in the list are dropped, along with their replies. Roots and replies
// keep the order they had in comments. The input is not modified.
func Organize(comments []api.Comment) []*Node {
	roots, _ := build(comments)
	return roots
}

// Orphans returns the comments Organize leaves out of the forest, in source order
func Orphans(comments []api.Comment) []api.Comment {
	roots, nodes := build(comments)

	reachable := make(map[*Node]bool, len(nodes))
	Walk(roots, func(n *Node, _ int) bool {
		reachable[n] = true
		return true
	})

	var out []api.Comment
	for i, n := range nodes {
		if !reachable[n] {
			out = append(out, comments[i])
		}
	}
	return out
}

// Walk visits nodes depth-first in display order. Returning false from fn skips that node's replies.
// Each node is visited at most once, so malformed input cannot loop.
func Walk(nodes []*Node, fn func(n *Node, depth int) bool) {
	seen := make(map[*Node]bool)
	var visit func(list []*Node, depth int)
	visit = func(list []*Node, depth int) {
		for _, n := range list {
			if seen[n] {
				continue
			}
			seen[n] = true
			if fn(n, depth) {
				visit(n.Replies, depth+1)
			}
		}
	}
	visit(nodes, 0)
}

// Count returns the number of comments in the forest
func Count(nodes []*Node) int {
	total := 0
	Walk(nodes, func(*Node, int) bool {
		total++
		return true
	})
	return total
}

// Entry is a node with its depth, as it appears in a flattened listing
type Entry struct {
	Node  *Node
	Depth int
}

// Flatten lists the forest in display order
func Flatten(nodes []*Node) []Entry {
	var out []Entry
	Walk(nodes, func(n *Node, depth int) bool {
		out = append(out, Entry{Node: n, Depth: depth})
		return true
	})
	return out
}

// Find returns the node for a comment id, or nil
func Find(nodes []*Node, id int64) *Node {
	var found *Node
	Walk(nodes, func(n *Node, _ int) bool {
		if found == nil && n.ID() == id {
			found = n
		}
		return found == nil
	})
	return found
}
