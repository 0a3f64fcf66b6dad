package thread

import (
	"strings"
	"testing"
	"time"

	"github.com/RicardoYam/Meet/pkg/api"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(id int64) *int64 { return &id }

func comment(id int64, parent *int64) api.Comment {
	return api.Comment{ID: id, ParentCommentID: parent, Content: "c", Author: "a"}
}

// shape renders a forest as nested ids for compact assertions
func shape(nodes []*Node) string {
	var sb strings.Builder
	for i, n := range nodes {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(itoa(n.ID()))
		if len(n.Replies) > 0 {
			sb.WriteString("[" + shape(n.Replies) + "]")
		}
	}
	return sb.String()
}

func itoa(n int64) string {
	if n < 0 {
		return "-" + itoa(-n)
	}
	if n < 10 {
		return string(rune('0' + n))
	}
	return itoa(n/10) + string(rune('0'+n%10))
}

func TestOrganizeDropsOrphan(t *testing.T) {
	in := []api.Comment{comment(1, nil), comment(2, ptr(1)), comment(3, ptr(99))}

	roots := Organize(in)

	require.Len(t, roots, 1)
	assert.Equal(t, int64(1), roots[0].ID())
	require.Len(t, roots[0].Replies, 1)
	assert.Equal(t, int64(2), roots[0].Replies[0].ID())
	assert.Empty(t, roots[0].Replies[0].Replies)

	orphans := Orphans(in)
	require.Len(t, orphans, 1)
	assert.Equal(t, int64(3), orphans[0].ID)
}

func TestOrganizeEmpty(t *testing.T) {
	roots := Organize(nil)
	assert.NotNil(t, roots)
	assert.Empty(t, roots)
	assert.Empty(t, Orphans(nil))
}

func TestOrganizeKeepsSourceOrder(t *testing.T) {
	in := []api.Comment{
		comment(5, nil),
		comment(3, ptr(5)),
		comment(9, nil),
		comment(1, ptr(5)),
		comment(7, ptr(3)),
		comment(2, ptr(9)),
	}
	assert.Equal(t, "5[3[7],1],9[2]", shape(Organize(in)))
}

func TestOrganizeReplyBeforeParent(t *testing.T) {
	in := []api.Comment{comment(2, ptr(1)), comment(1, nil)}
	assert.Equal(t, "1[2]", shape(Organize(in)))
}

func TestOrganizeDropsOrphanSubtree(t *testing.T) {
	in := []api.Comment{comment(1, nil), comment(4, ptr(50)), comment(5, ptr(4)), comment(6, ptr(1))}
	assert.Equal(t, "1[6]", shape(Organize(in)))

	var ids []int64
	for _, c := range Orphans(in) {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []int64{4, 5}, ids)
}

func TestOrganizeSelfParentIsOrphan(t *testing.T) {
	in := []api.Comment{comment(1, nil), comment(2, ptr(2))}
	assert.Equal(t, "1", shape(Organize(in)))
	assert.Len(t, Orphans(in), 1)
}

func TestOrganizeCycleIsDropped(t *testing.T) {
	in := []api.Comment{comment(1, ptr(2)), comment(2, ptr(1)), comment(3, nil)}
	roots := Organize(in)
	assert.Equal(t, "3", shape(roots))
	assert.Equal(t, 1, Count(roots))
	assert.Len(t, Orphans(in), 2)
}

func TestOrganizeDuplicateIDFirstWins(t *testing.T) {
	dup := comment(1, nil)
	dup.Content = "second"
	in := []api.Comment{comment(1, nil), dup, comment(2, ptr(1))}

	roots := Organize(in)
	require.Len(t, roots, 2)
	assert.Len(t, roots[0].Replies, 1)
	assert.Empty(t, roots[1].Replies)
	assert.Equal(t, "second", roots[1].Comment.Content)
}

func TestOrganizeDoesNotModifyInput(t *testing.T) {
	in := []api.Comment{comment(1, nil), comment(2, ptr(1))}
	before := append([]api.Comment(nil), in...)
	Organize(in)
	assert.Equal(t, before, in)
}

func TestOrganizeIsDeterministic(t *testing.T) {
	in := randomThread(200)
	assert.Equal(t, shape(Organize(in)), shape(Organize(in)))
}

// randomThread builds a list where each comment replies to an earlier one, is top-level,
// or names a parent that does not exist
func randomThread(n int) []api.Comment {
	out := make([]api.Comment, 0, n)
	for i := 1; i <= n; i++ {
		c := api.Comment{ID: int64(i), Author: gofakeit.Username(), Content: gofakeit.HipsterSentence()}
		switch roll := gofakeit.IntRange(0, 9); {
		case roll < 3 || i == 1:
		case roll < 8:
			c.ParentCommentID = ptr(int64(gofakeit.IntRange(1, i-1)))
		default:
			c.ParentCommentID = ptr(int64(n + gofakeit.IntRange(1, 100)))
		}
		out = append(out, c)
	}
	// Shuffle so replies can precede their parents
	gofakeit.ShuffleAnySlice(out)
	return out
}

func TestTreeCompletenessAndOrphanExclusion(t *testing.T) {
	_ = gofakeit.Seed(42)
	for round := 0; round < 25; round++ {
		in := randomThread(gofakeit.IntRange(1, 80))

		present := map[int64]bool{}
		for _, c := range in {
			present[c.ID] = true
		}
		// A comment belongs in the tree iff following parents reaches a top-level comment
		byID := map[int64]api.Comment{}
		for _, c := range in {
			byID[c.ID] = c
		}
		var reaches func(c api.Comment, hops int) bool
		reaches = func(c api.Comment, hops int) bool {
			if c.ParentCommentID == nil {
				return true
			}
			p, ok := byID[*c.ParentCommentID]
			if !ok || hops > len(in) {
				return false
			}
			return reaches(p, hops+1)
		}

		roots := Organize(in)
		got := map[int64]int{}
		Walk(roots, func(n *Node, depth int) bool {
			got[n.ID()]++
			if depth == 0 {
				assert.Nil(t, n.Comment.ParentCommentID)
			}
			for _, r := range n.Replies {
				require.NotNil(t, r.Comment.ParentCommentID)
				assert.Equal(t, n.ID(), *r.Comment.ParentCommentID)
			}
			return true
		})

		for _, c := range in {
			if reaches(c, 0) {
				assert.Equal(t, 1, got[c.ID], "comment %d should appear exactly once", c.ID)
			} else {
				assert.Zero(t, got[c.ID], "comment %d should be dropped", c.ID)
			}
		}
		assert.Equal(t, len(in), Count(roots)+len(Orphans(in)))
	}
}

func TestRepliesFollowSourceOrder(t *testing.T) {
	_ = gofakeit.Seed(9)
	in := randomThread(120)
	pos := map[int64]int{}
	for i, c := range in {
		pos[c.ID] = i
	}

	roots := Organize(in)
	check := func(list []*Node) {
		for i := 1; i < len(list); i++ {
			assert.Less(t, pos[list[i-1].ID()], pos[list[i].ID()])
		}
	}
	check(roots)
	Walk(roots, func(n *Node, _ int) bool {
		check(n.Replies)
		return true
	})
}

func TestFlattenAndFind(t *testing.T) {
	in := []api.Comment{comment(1, nil), comment(2, ptr(1)), comment(3, ptr(2)), comment(4, nil)}
	roots := Organize(in)

	entries := Flatten(roots)
	require.Len(t, entries, 4)
	depths := []int{entries[0].Depth, entries[1].Depth, entries[2].Depth, entries[3].Depth}
	assert.Equal(t, []int{0, 1, 2, 0}, depths)

	require.NotNil(t, Find(roots, 3))
	assert.Equal(t, int64(3), Find(roots, 3).ID())
	assert.Nil(t, Find(roots, 42))
}

func TestWalkCanSkipReplies(t *testing.T) {
	roots := Organize([]api.Comment{comment(1, nil), comment(2, ptr(1)), comment(3, nil)})
	var visited []int64
	Walk(roots, func(n *Node, _ int) bool {
		visited = append(visited, n.ID())
		return false
	})
	assert.Equal(t, []int64{1, 3}, visited)
}

func TestRender(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	in := []api.Comment{
		{ID: 1, Author: "ana", Content: "<p>First!</p>", UpVotes: 3, CreatedTime: api.Timestamp{Time: now.Add(-2 * time.Hour)}},
		{ID: 2, ParentCommentID: ptr(1), Author: "bo", Content: "Agreed", CreatedTime: api.Timestamp{Time: now.Add(-time.Hour)}},
		{ID: 3, ParentCommentID: ptr(77), Author: "ghost", Content: "lost"},
	}

	out := Render(Organize(in), RenderOptions{
		Now:  now,
		Text: func(s string) string { return strings.NewReplacer("<p>", "", "</p>", "").Replace(s) },
	})

	assert.Contains(t, out, "ana")
	assert.Contains(t, out, "First!")
	assert.NotContains(t, out, "<p>")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "▲3")
	assert.Contains(t, out, "Agreed")
	assert.NotContains(t, out, "ghost")
	assert.Less(t, strings.Index(out, "First!"), strings.Index(out, "Agreed"))
}

func TestRenderEmpty(t *testing.T) {
	assert.Contains(t, Render(nil, RenderOptions{}), "No comments yet.")
}
