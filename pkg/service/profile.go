package service

import (
	"context"
	"fmt"

	"github.com/RicardoYam/Meet/pkg/api"
	clierrors "github.com/RicardoYam/Meet/pkg/errors"
	"github.com/RicardoYam/Meet/pkg/formatter"
	"github.com/RicardoYam/Meet/pkg/output"
	"github.com/RicardoYam/Meet/pkg/session"
)

// MaxBioLength caps the profile bio
const MaxBioLength = 500

// ProfileService shows and edits user profiles
type ProfileService struct {
	client *api.Client
}

// NewProfileService creates a new profile service
func NewProfileService(client *api.Client) *ProfileService {
	return &ProfileService{client: client}
}

// ViewProfile prints a user's profile and their posts
func (ps *ProfileService) ViewProfile(ctx context.Context, username string) error {
	if username == "" {
		return clierrors.ValidationError("username", "is required")
	}
	profile, err := ps.client.GetProfile(ctx, username)
	if err != nil {
		return err
	}
	if output.GetOutputFormat() == output.FormatJSON {
		return output.Print("", profile)
	}

	if err := output.PrintRecord(fmt.Sprintf("@%s", profile.Name), formatter.ProfileRecord(profile)); err != nil {
		return err
	}
	if len(profile.Blogs) == 0 {
		return nil
	}

	posts := make([]api.Post, 0, len(profile.Blogs))
	for _, b := range profile.Blogs {
		posts = append(posts, api.Post{
			ID:          b.ID,
			Title:       b.Title,
			Author:      b.Author,
			Categories:  b.Categories,
			Tags:        b.Tags,
			UpVotes:     b.UpVotes,
			Comments:    len(b.Comments),
			CreatedTime: b.CreatedTime,
		})
	}
	output.Println("")
	return output.PrintList("Posts", posts, formatter.PostColumns, formatter.PostRows(posts, now()))
}

// UpdateBio replaces the logged-in user's bio
func (ps *ProfileService) UpdateBio(ctx context.Context, sess *session.Session, bio string) error {
	if len([]rune(bio)) > MaxBioLength {
		return clierrors.ValidationError("bio", fmt.Sprintf("must be at most %d characters", MaxBioLength))
	}
	sess, err := session.Require(sess)
	if err != nil {
		return err
	}
	if err := ps.client.UpdateBio(ctx, sess, bio); err != nil {
		return err
	}
	output.PrintSuccess("✓ Bio updated")
	return nil
}

// SetFollow follows or unfollows another user
func (ps *ProfileService) SetFollow(ctx context.Context, sess *session.Session, targetID int64, follow bool) error {
	sess, err := session.Require(sess)
	if err != nil {
		return err
	}
	if targetID == sess.UserID {
		return clierrors.ValidationError("user", "you cannot follow yourself")
	}
	if follow {
		err = ps.client.FollowUser(ctx, sess, targetID)
	} else {
		err = ps.client.UnfollowUser(ctx, sess, targetID)
	}
	if err != nil {
		return err
	}
	output.PrintSuccess("✓ %s user %d", followVerb(follow), targetID)
	return nil
}
