package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/RicardoYam/Meet/pkg/logger"
	"github.com/RicardoYam/Meet/pkg/pager"
	"github.com/RicardoYam/Meet/pkg/session"
)

// ListPosts fetches one page of the feed for q. A search term switches to the search endpoint,
// which ignores category, tag and sort. An empty result (HTTP 204) is an empty last page.
func (c *Client) ListPosts(ctx context.Context, q pager.Query, page, size int) (*PostPage, error) {
	logger.Debug("Fetching posts", "query", q.String(), "page", page, "size", size)

	req := c.request(ctx).SetQueryParams(map[string]string{
		"page": strconv.Itoa(page),
		"size": strconv.Itoa(size),
	})

	path := "/posts"
	if q.Search != "" {
		path = "/posts/search"
		req.SetQueryParam("searchTerm", q.Search)
	} else {
		if q.Category != "" {
			req.SetQueryParam("category", q.Category)
		}
		if q.Tag != "" {
			req.SetQueryParam("tag", q.Tag)
		}
		if q.SortBy != "" {
			req.SetQueryParam("sortBy", q.SortBy)
		}
		if q.SortDir != "" {
			req.SetQueryParam("sortDir", q.SortDir)
		}
	}

	resp, err := req.Get(path)
	if err := CheckResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	if resp.StatusCode() == http.StatusNoContent {
		return pager.EmptyPage[Post](page, size), nil
	}

	var out PostPage
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return &out, nil
}

// GetPost fetches a post with its flat comment list
func (c *Client) GetPost(ctx context.Context, id int64) (*PostDetail, error) {
	logger.Debug("Fetching post", "post_id", id)

	resp, err := c.request(ctx).Get(idPath("/posts/%d", id))
	if err := CheckResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch post %d: %w", id, err)
	}

	var post PostDetail
	if err := json.Unmarshal(resp.Body(), &post); err != nil {
		return nil, fmt.Errorf("failed to decode post %d: %w", id, err)
	}
	return &post, nil
}

// CreatePost publishes a post authored by the session's user
func (c *Client) CreatePost(ctx context.Context, sess *session.Session, req PostRequest) error {
	logger.Debug("Creating post", "title", req.Title, "categories", req.Categories, "tags", req.Tags)

	resp, err := c.authed(ctx, sess).
		SetBody(postBody{PostRequest: req, AuthorName: sess.Username}).
		Post("/posts")
	if err := CheckResponse(resp, err); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// ToggleVote flips the session user's up-vote on a post
func (c *Client) ToggleVote(ctx context.Context, sess *session.Session, postID int64) error {
	logger.Debug("Toggling vote", "post_id", postID, "user_id", sess.UserID)

	resp, err := c.authed(ctx, sess).
		SetQueryParams(map[string]string{
			"blogId": strconv.FormatInt(postID, 10),
			"userId": strconv.FormatInt(sess.UserID, 10),
		}).
		Post("/vote")
	if err := CheckResponse(resp, err); err != nil {
		return fmt.Errorf("failed to vote on post %d: %w", postID, err)
	}
	return nil
}
