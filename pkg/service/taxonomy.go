package service

import (
	"context"
	"strings"

	"github.com/RicardoYam/Meet/pkg/api"
	clierrors "github.com/RicardoYam/Meet/pkg/errors"
	"github.com/RicardoYam/Meet/pkg/formatter"
	"github.com/RicardoYam/Meet/pkg/output"
	"github.com/RicardoYam/Meet/pkg/session"
)

// TaxonomyService manages categories and tags
type TaxonomyService struct {
	client *api.Client
}

// NewTaxonomyService creates a new taxonomy service
func NewTaxonomyService(client *api.Client) *TaxonomyService {
	return &TaxonomyService{client: client}
}

// ListCategories prints every category
func (ts *TaxonomyService) ListCategories(ctx context.Context) error {
	cats, err := ts.client.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		output.PrintInfo("No categories yet")
		return nil
	}
	return output.PrintList("Categories", cats, formatter.TaxonomyColumns, formatter.CategoryRows(cats))
}

// ListTags prints every tag
func (ts *TaxonomyService) ListTags(ctx context.Context) error {
	tags, err := ts.client.ListTags(ctx)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		output.PrintInfo("No tags yet")
		return nil
	}
	return output.PrintList("Tags", tags, formatter.TaxonomyColumns, formatter.TagRows(tags))
}

func validateTaxonomy(req api.TaxonomyRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return clierrors.ValidationError("title", "cannot be empty")
	}
	if strings.TrimSpace(req.Description) == "" {
		return clierrors.ValidationError("description", "cannot be empty")
	}
	return nil
}

// CreateCategory adds a category
func (ts *TaxonomyService) CreateCategory(ctx context.Context, sess *session.Session, req api.TaxonomyRequest) error {
	if err := validateTaxonomy(req); err != nil {
		return err
	}
	sess, err := session.Require(sess)
	if err != nil {
		return err
	}
	if err := ts.client.CreateCategory(ctx, sess, req); err != nil {
		return err
	}
	output.PrintSuccess("✓ Created category %q", req.Title)
	return nil
}

// CreateTag adds a tag
func (ts *TaxonomyService) CreateTag(ctx context.Context, sess *session.Session, req api.TaxonomyRequest) error {
	if err := validateTaxonomy(req); err != nil {
		return err
	}
	sess, err := session.Require(sess)
	if err != nil {
		return err
	}
	if err := ts.client.CreateTag(ctx, sess, req); err != nil {
		return err
	}
	output.PrintSuccess("✓ Created tag %q", req.Title)
	return nil
}

// SetCategoryFollow follows or unfollows a category
func (ts *TaxonomyService) SetCategoryFollow(ctx context.Context, sess *session.Session, id int64, follow bool) error {
	sess, err := session.Require(sess)
	if err != nil {
		return err
	}
	if follow {
		err = ts.client.FollowCategory(ctx, sess, id)
	} else {
		err = ts.client.UnfollowCategory(ctx, sess, id)
	}
	if err != nil {
		return err
	}
	output.PrintSuccess("✓ %s category %d", followVerb(follow), id)
	return nil
}

// SetTagFollow follows or unfollows a tag
func (ts *TaxonomyService) SetTagFollow(ctx context.Context, sess *session.Session, id int64, follow bool) error {
	sess, err := session.Require(sess)
	if err != nil {
		return err
	}
	if follow {
		err = ts.client.FollowTag(ctx, sess, id)
	} else {
		err = ts.client.UnfollowTag(ctx, sess, id)
	}
	if err != nil {
		return err
	}
	output.PrintSuccess("✓ %s tag %d", followVerb(follow), id)
	return nil
}

func followVerb(follow bool) string {
	if follow {
		return "Followed"
	}
	return "Unfollowed"
}
