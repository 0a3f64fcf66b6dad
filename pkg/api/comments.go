package api

import (
	"context"
	"fmt"

	"github.com/RicardoYam/Meet/pkg/logger"
	"github.com/RicardoYam/Meet/pkg/session"
)

// CreateComment submits a comment or a reply. The server answers with a confirmation
// text only, so callers re-fetch the post to see the new comment.
func (c *Client) CreateComment(ctx context.Context, sess *session.Session, req CommentRequest) error {
	logger.Debug("Creating comment", "post_id", req.BlogID, "parent_id", req.ParentCommentID)

	resp, err := c.authed(ctx, sess).
		SetBody(commentBody{
			BlogID:    req.BlogID,
			UserID:    sess.UserID,
			CommentID: req.ParentCommentID,
			Content:   req.Content,
		}).
		Post("/comments")
	if err := CheckResponse(resp, err); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}
