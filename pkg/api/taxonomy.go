package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/RicardoYam/Meet/pkg/logger"
	"github.com/RicardoYam/Meet/pkg/session"
)

// ListCategories returns every category. HTTP 204 means there are none.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	logger.Debug("Fetching categories")

	resp, err := c.request(ctx).Get("/categories")
	if err := CheckResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	if resp.StatusCode() == http.StatusNoContent {
		return []Category{}, nil
	}

	var out []Category
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return out, nil
}

// CreateCategory adds a category
func (c *Client) CreateCategory(ctx context.Context, sess *session.Session, req TaxonomyRequest) error {
	logger.Debug("Creating category", "title", req.Title)

	resp, err := c.authed(ctx, sess).SetBody(req).Post("/categories")
	if err := CheckResponse(resp, err); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// FollowCategory subscribes the session user to a category
func (c *Client) FollowCategory(ctx context.Context, sess *session.Session, id int64) error {
	return c.setFollow(ctx, sess, "category", idPath("/categories/%d", id), true)
}

// UnfollowCategory unsubscribes the session user from a category
func (c *Client) UnfollowCategory(ctx context.Context, sess *session.Session, id int64) error {
	return c.setFollow(ctx, sess, "category", idPath("/categories/%d", id), false)
}

// ListTags returns every tag. HTTP 204 means there are none.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	logger.Debug("Fetching tags")

	resp, err := c.request(ctx).Get("/tags")
	if err := CheckResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}
	if resp.StatusCode() == http.StatusNoContent {
		return []Tag{}, nil
	}

	var out []Tag
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return out, nil
}

// CreateTag adds a tag
func (c *Client) CreateTag(ctx context.Context, sess *session.Session, req TaxonomyRequest) error {
	logger.Debug("Creating tag", "title", req.Title)

	resp, err := c.authed(ctx, sess).SetBody(req).Post("/tags")
	if err := CheckResponse(resp, err); err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// FollowTag subscribes the session user to a tag
func (c *Client) FollowTag(ctx context.Context, sess *session.Session, id int64) error {
	return c.setFollow(ctx, sess, "tag", idPath("/tags/%d", id), true)
}

// UnfollowTag unsubscribes the session user from a tag
func (c *Client) UnfollowTag(ctx context.Context, sess *session.Session, id int64) error {
	return c.setFollow(ctx, sess, "tag", idPath("/tags/%d", id), false)
}

func (c *Client) setFollow(ctx context.Context, sess *session.Session, kind, path string, follow bool) error {
	logger.Debug("Updating subscription", "kind", kind, "path", path, "follow", follow)

	req := c.authed(ctx, sess).SetQueryParam("userId", strconv.FormatInt(sess.UserID, 10))

	verb, method := "follow", http.MethodPost
	if !follow {
		verb, method = "unfollow", http.MethodDelete
	}

	resp, err := req.Execute(method, path)
	if err := CheckResponse(resp, err); err != nil {
		return fmt.Errorf("failed to %s %s: %w", verb, kind, err)
	}
	return nil
}
