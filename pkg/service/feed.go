package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/RicardoYam/Meet/pkg/api"
	clierrors "github.com/RicardoYam/Meet/pkg/errors"
	"github.com/RicardoYam/Meet/pkg/formatter"
	"github.com/RicardoYam/Meet/pkg/logger"
	"github.com/RicardoYam/Meet/pkg/output"
	"github.com/RicardoYam/Meet/pkg/pager"
)

// SortPreset names a sortBy/sortDir pair offered to users
type SortPreset struct {
	Name    string
	SortBy  string
	SortDir string
}

// SortPresets are the listing orders, the first being the default
var SortPresets = []SortPreset{
	{Name: "newest", SortBy: "createdTime", SortDir: "desc"},
	{Name: "oldest", SortBy: "createdTime", SortDir: "asc"},
	{Name: "most-liked", SortBy: "votes", SortDir: "desc"},
}

// ParseSort looks up a preset by name. An empty name is the default preset.
func ParseSort(name string) (SortPreset, error) {
	if name == "" {
		return SortPresets[0], nil
	}
	for _, p := range SortPresets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	names := make([]string, len(SortPresets))
	for i, p := range SortPresets {
		names[i] = p.Name
	}
	return SortPreset{}, clierrors.ValidationError("sort", "must be one of "+strings.Join(names, ", "))
}

// NextSort returns the preset after name, wrapping around
func NextSort(name string) SortPreset {
	for i, p := range SortPresets {
		if p.Name == name {
			return SortPresets[(i+1)%len(SortPresets)]
		}
	}
	return SortPresets[0]
}

// SortName returns the preset name matching q, or "" when none does
func SortName(q pager.Query) string {
	for _, p := range SortPresets {
		if p.SortBy == q.SortBy && p.SortDir == q.SortDir {
			return p.Name
		}
	}
	return ""
}

// ListOptions selects a listing and how much of it to load
type ListOptions struct {
	Category string
	Tag      string
	Search   string
	Sort     string
	// Pages is the number of pages to load; zero means one
	Pages int
	// All loads every page
	All bool
}

// Query converts the options into a listing query
func (o ListOptions) Query() (pager.Query, error) {
	if o.Search != "" && (o.Category != "" || o.Tag != "") {
		return pager.Query{}, clierrors.ValidationError("search", "cannot be combined with category or tag filters")
	}
	q := pager.Query{Category: o.Category, Tag: o.Tag, Search: o.Search}
	if o.Search != "" {
		return q, nil
	}
	preset, err := ParseSort(o.Sort)
	if err != nil {
		return pager.Query{}, err
	}
	q.SortBy, q.SortDir = preset.SortBy, preset.SortDir
	return q, nil
}

// FeedService lists posts
type FeedService struct {
	client   *api.Client
	pageSize int
}

// NewFeedService creates a new feed service
func NewFeedService(client *api.Client, pageSize int) *FeedService {
	if pageSize <= 0 {
		pageSize = pager.DefaultPageSize
	}
	return &FeedService{client: client, pageSize: pageSize}
}

// Open returns an idle accumulator over the post listing
func (fs *FeedService) Open() *pager.Accumulator[api.Post] {
	return pager.New(fs.client.ListPosts, fs.pageSize)
}

// Load resets a fresh accumulator to the options' query and loads the requested pages
func (fs *FeedService) Load(ctx context.Context, opts ListOptions) (*pager.Accumulator[api.Post], error) {
	q, err := opts.Query()
	if err != nil {
		return nil, err
	}

	acc := fs.Open()
	if err := acc.Reset(ctx, q); err != nil {
		acc.Close()
		return nil, err
	}

	// Reset applied the first page; Drain with zero pages means all of them
	switch {
	case opts.All:
		err = acc.Drain(ctx, 0)
	case opts.Pages > 1:
		err = acc.Drain(ctx, opts.Pages-1)
	}
	if err != nil {
		acc.Close()
		return nil, err
	}

	logger.Debug("Loaded posts", "query", q.String(), "count", acc.Len(), "last", acc.Info().Last)
	return acc, nil
}

// ViewPosts prints the listing selected by opts
func (fs *FeedService) ViewPosts(ctx context.Context, opts ListOptions) error {
	acc, err := fs.Load(ctx, opts)
	if err != nil {
		return err
	}
	defer acc.Close()

	posts := acc.Items()
	if len(posts) == 0 {
		output.PrintInfo("No posts found for %s", acc.Query().String())
		return nil
	}

	title := "Posts"
	if name := SortName(acc.Query()); name != "" {
		title = fmt.Sprintf("Posts (%s)", name)
	}
	if err := output.PrintList(title, posts, formatter.PostColumns, formatter.PostRows(posts, now())); err != nil {
		return err
	}
	if output.GetOutputFormat() != output.FormatJSON {
		output.Println("")
		output.Println(formatter.PageFooter(len(posts), acc.Info()))
	}
	return nil
}
