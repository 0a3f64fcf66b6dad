package thread

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/dustin/go-humanize"
)

var (
	authorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	branchStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderOptions controls how a forest is drawn
type RenderOptions struct {
	// Now anchors relative timestamps. Zero means time.Now().
	Now time.Time
	// Text converts comment content for display, for example stripping markup
	Text func(string) string
	// Selected highlights one comment id
	Selected int64
	// Width wraps comment bodies when positive
	Width int
}

// Render draws the forest as an indented tree
func Render(nodes []*Node, opts RenderOptions) string {
	if len(nodes) == 0 {
		return metaStyle.Render("No comments yet.")
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	seen := make(map[*Node]bool)
	forest := tree.New().
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(branchStyle)
	for _, n := range nodes {
		forest.Child(subtree(n, opts, seen))
	}
	return forest.String()
}

func subtree(n *Node, opts RenderOptions, seen map[*Node]bool) any {
	seen[n] = true
	label := Label(n.Comment.Author, n.Comment.Content, n.Comment.UpVotes, n.Comment.DownVotes, n.Comment.CreatedTime.Time, opts)
	if n.ID() == opts.Selected && opts.Selected != 0 {
		label = selectedStyle.Render(label)
	}

	var children []any
	for _, r := range n.Replies {
		if !seen[r] {
			children = append(children, subtree(r, opts, seen))
		}
	}
	if len(children) == 0 {
		return label
	}
	return tree.Root(label).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(branchStyle).
		Child(children...)
}

// Label formats one comment: a header line with author, age and votes, then the body
func Label(author, content string, up, down int, created time.Time, opts RenderOptions) string {
	if opts.Text != nil {
		content = opts.Text(content)
	}
	content = strings.TrimSpace(content)
	if opts.Width > 0 {
		content = lipgloss.NewStyle().Width(opts.Width).Render(content)
	}

	age := "just now"
	if !created.IsZero() {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		age = humanize.RelTime(created, now, "ago", "from now")
	}

	header := authorStyle.Render(author) + metaStyle.Render(fmt.Sprintf(" · %s · ▲%d ▼%d", age, up, down))
	return header + "\n" + content
}
