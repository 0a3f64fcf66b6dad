package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/RicardoYam/Meet/pkg/api"
	clierrors "github.com/RicardoYam/Meet/pkg/errors"
	"github.com/RicardoYam/Meet/pkg/output"
	"github.com/RicardoYam/Meet/pkg/prompter"
	"github.com/RicardoYam/Meet/pkg/session"
	"golang.org/x/sync/errgroup"
)

// PostService creates posts
type PostService struct {
	client *api.Client
	prompt *prompter.Prompter
}

// NewPostService creates a new post service. A nil prompter reads the terminal.
func NewPostService(client *api.Client, p *prompter.Prompter) *PostService {
	return &PostService{client: client, prompt: p}
}

// ValidatePost checks the fields that need no server round trip
func ValidatePost(req api.PostRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return clierrors.ValidationError("title", "cannot be empty")
	}
	if strings.TrimSpace(req.Content) == "" {
		return clierrors.ValidationError("content", "cannot be empty")
	}
	return nil
}

// CheckTaxonomy fetches the category and tag lists concurrently and rejects names
// that do not exist. Matching ignores case and the server's spelling is used.
func (ps *PostService) CheckTaxonomy(ctx context.Context, req *api.PostRequest) error {
	if len(req.Categories) == 0 && len(req.Tags) == 0 {
		return nil
	}

	var cats []api.Category
	var tags []api.Tag
	g, gctx := errgroup.WithContext(ctx)
	if len(req.Categories) > 0 {
		g.Go(func() error {
			var err error
			cats, err = ps.client.ListCategories(gctx)
			return err
		})
	}
	if len(req.Tags) > 0 {
		g.Go(func() error {
			var err error
			tags, err = ps.client.ListTags(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	known := make(map[string]string, len(cats))
	for _, c := range cats {
		known[strings.ToLower(c.Title)] = c.Title
	}
	for i, name := range req.Categories {
		canonical, ok := known[strings.ToLower(name)]
		if !ok {
			return clierrors.ValidationError("categories", fmt.Sprintf("unknown category %q", name))
		}
		req.Categories[i] = canonical
	}

	known = make(map[string]string, len(tags))
	for _, t := range tags {
		known[strings.ToLower(t.Title)] = t.Title
	}
	for i, name := range req.Tags {
		canonical, ok := known[strings.ToLower(name)]
		if !ok {
			return clierrors.ValidationError("tags", fmt.Sprintf("unknown tag %q", name))
		}
		req.Tags[i] = canonical
	}
	return nil
}

// Create validates and publishes a post
func (ps *PostService) Create(ctx context.Context, sess *session.Session, req api.PostRequest) error {
	if err := ValidatePost(req); err != nil {
		return err
	}
	sess, err := session.Require(sess)
	if err != nil {
		return err
	}
	if err := ps.CheckTaxonomy(ctx, &req); err != nil {
		return err
	}
	return ps.client.CreatePost(ctx, sess, req)
}

// CreateInteractive prompts for any field missing from req, then publishes the post
func (ps *PostService) CreateInteractive(ctx context.Context, sess *session.Session, req api.PostRequest) error {
	sess, err := session.Require(sess)
	if err != nil {
		return err
	}

	p := orDefault(ps.prompt)
	if req.Title == "" {
		if req.Title, err = p.String("Title: "); err != nil {
			return err
		}
	}
	if req.Content == "" {
		if req.Content, err = p.Multiline("Content", 0); err != nil {
			return err
		}
	}
	if req.Categories == nil {
		if req.Categories, err = p.List("Categories (comma separated, optional): "); err != nil {
			return err
		}
	}
	if req.Tags == nil {
		if req.Tags, err = p.List("Tags (comma separated, optional): "); err != nil {
			return err
		}
	}

	if err := ps.Create(ctx, sess, req); err != nil {
		return err
	}
	output.PrintSuccess("✓ Published %q", req.Title)
	return nil
}
