package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/RicardoYam/Meet/pkg/api"
	"github.com/RicardoYam/Meet/pkg/output"
	"github.com/RicardoYam/Meet/pkg/pager"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

var (
	Bold    = color.New(color.Bold)
	Dim     = color.New(color.Faint)
	Success = color.New(color.FgGreen)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Warning = color.New(color.FgYellow)
)

// ExcerptLength is how many runes of a post body list views show
const ExcerptLength = 60

// PostColumns are the table headers for post listings
var PostColumns = []string{"ID", "TITLE", "AUTHOR", "VOTES", "COMMENTS", "POSTED", "CATEGORIES", "TAGS"}

// PostRow formats one post as a table row
func PostRow(p api.Post, now time.Time) []string {
	return []string{
		fmt.Sprintf("%d", p.ID),
		p.Title,
		p.Author,
		humanize.Comma(int64(p.UpVotes)),
		humanize.Comma(int64(p.Comments)),
		output.Ago(p.CreatedTime.Time, now),
		Labels(p.Categories),
		Labels(p.Tags),
	}
}

// PostRows formats a slice of posts as table rows
func PostRows(posts []api.Post, now time.Time) [][]string {
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, PostRow(p, now))
	}
	return rows
}

// Labels joins category or tag names, or "-" when there are none
func Labels(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}

// PageFooter describes how much of a listing has been loaded
func PageFooter(loaded int, info pager.PageInfo) string {
	if info.Last {
		return fmt.Sprintf("Showing all %s posts", humanize.Comma(int64(loaded)))
	}
	return fmt.Sprintf("Showing %s of %s posts (page %d of %d)",
		humanize.Comma(int64(loaded)), humanize.Comma(info.TotalElements), info.Number+1, info.TotalPages)
}

// PostHeader renders the title block of a single post
func PostHeader(p *api.PostDetail, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(Bold.Sprint(p.Title))
	sb.WriteString("\n")
	sb.WriteString(Dim.Sprintf("by %s · %s · ▲%d ▼%d", p.Author, output.Ago(p.CreatedTime.Time, now), p.UpVotes, p.DownVotes))
	sb.WriteString("\n")
	if len(p.Categories) > 0 {
		sb.WriteString(Info.Sprint("categories: "))
		sb.WriteString(Labels(p.Categories))
		sb.WriteString("\n")
	}
	if len(p.Tags) > 0 {
		sb.WriteString(Info.Sprint("tags: "))
		sb.WriteString(Labels(p.Tags))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(output.PlainText(p.Content))
	sb.WriteString("\n")
	return sb.String()
}

// ProfileRecord flattens a profile for output.PrintRecord
func ProfileRecord(p *api.Profile) map[string]interface{} {
	cats := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		cats = append(cats, c.Title)
	}
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, t.Title)
	}
	bio := p.Bio
	if bio == "" {
		bio = "-"
	}
	return map[string]interface{}{
		"id":               p.ID,
		"username":         p.Name,
		"bio":              bio,
		"posts":            len(p.Blogs),
		"upvotes_given":    p.TotalUpVotes,
		"upvotes_received": p.TotalReceivedUpVotes,
		"comments":         p.TotalComments,
		"categories":       Labels(cats),
		"tags":             Labels(tags),
		"joined":           humanize.Time(p.CreatedTime.Time),
	}
}

// TaxonomyColumns are the table headers for category and tag listings
var TaxonomyColumns = []string{"ID", "TITLE", "DESCRIPTION"}

// CategoryRows formats categories as table rows
func CategoryRows(cats []api.Category) [][]string {
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, taxonomyRow(c.ID, c.Title, c.Description))
	}
	return rows
}

// TagRows formats tags as table rows
func TagRows(tags []api.Tag) [][]string {
	rows := make([][]string, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, taxonomyRow(t.ID, t.Title, t.Description))
	}
	return rows
}

func taxonomyRow(id int64, title, desc string) []string {
	if desc == "" {
		desc = "-"
	}
	return []string{fmt.Sprintf("%d", id), title, desc}
}
