package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/RicardoYam/Meet/pkg/logger"
	"github.com/RicardoYam/Meet/pkg/session"
)

// GetProfile fetches a user's public profile
func (c *Client) GetProfile(ctx context.Context, username string) (*Profile, error) {
	logger.Debug("Fetching profile", "username", username)

	resp, err := c.request(ctx).SetQueryParam("username", username).Get("/profile")
	if err := CheckResponse(resp, err); err != nil {
		return nil, fmt.Errorf("failed to fetch profile %s: %w", username, err)
	}

	var profile Profile
	if err := json.Unmarshal(resp.Body(), &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &profile, nil
}

// UpdateBio replaces the session user's bio
func (c *Client) UpdateBio(ctx context.Context, sess *session.Session, bio string) error {
	logger.Debug("Updating bio", "user_id", sess.UserID)

	resp, err := c.authed(ctx, sess).
		SetMultipartFormData(map[string]string{
			"userId":   strconv.FormatInt(sess.UserID, 10),
			"username": sess.Username,
			"bio":      bio,
		}).
		Put("/profile")
	if err := CheckResponse(resp, err); err != nil {
		return fmt.Errorf("failed to update bio: %w", err)
	}
	return nil
}

// FollowUser makes the session user follow targetID
func (c *Client) FollowUser(ctx context.Context, sess *session.Session, targetID int64) error {
	logger.Debug("Following user", "user_id", sess.UserID, "target_id", targetID)

	resp, err := c.authed(ctx, sess).
		SetQueryParam("targetId", strconv.FormatInt(targetID, 10)).
		Post(idPath("/follow/%d", sess.UserID))
	if err := CheckResponse(resp, err); err != nil {
		return fmt.Errorf("failed to follow user %d: %w", targetID, err)
	}
	return nil
}

// UnfollowUser makes the session user stop following targetID
func (c *Client) UnfollowUser(ctx context.Context, sess *session.Session, targetID int64) error {
	logger.Debug("Unfollowing user", "user_id", sess.UserID, "target_id", targetID)

	resp, err := c.authed(ctx, sess).
		SetQueryParam("targetId", strconv.FormatInt(targetID, 10)).
		Delete(idPath("/follow/%d", sess.UserID))
	if err := CheckResponse(resp, err); err != nil {
		return fmt.Errorf("failed to unfollow user %d: %w", targetID, err)
	}
	return nil
}
