package service

import (
	"context"

	"github.com/RicardoYam/Meet/pkg/api"
	"github.com/RicardoYam/Meet/pkg/logger"
	"github.com/RicardoYam/Meet/pkg/output"
	"github.com/RicardoYam/Meet/pkg/session"
)

// VoteState is a caller-owned view of one post's upvotes.
// The API does not say whether the user has voted; Toggle learns it from the count.
type VoteState struct {
	PostID int64
	Count  int
	Voted  bool
}

// VoteService toggles upvotes
type VoteService struct {
	client *api.Client
}

// NewVoteService creates a new vote service
func NewVoteService(client *api.Client) *VoteService {
	return &VoteService{client: client}
}

// Toggle flips st optimistically and reverts it if the request fails.
// On success st is reconciled with the server's count: a drop means the vote was removed.
func (vs *VoteService) Toggle(ctx context.Context, sess *session.Session, st *VoteState) error {
	sess, err := session.Require(sess)
	if err != nil {
		return err
	}

	prev := *st
	st.Voted = !st.Voted
	if st.Voted {
		st.Count++
	} else {
		st.Count--
	}

	if err := vs.client.ToggleVote(ctx, sess, st.PostID); err != nil {
		logger.Debug("Vote failed, reverting", "post_id", st.PostID, "error", err)
		*st = prev
		return err
	}

	post, err := vs.client.GetPost(ctx, st.PostID)
	if err != nil {
		logger.Debug("Vote sent, keeping local count", "post_id", st.PostID, "error", err)
		return nil
	}
	st.Count = post.UpVotes
	st.Voted = post.UpVotes > prev.Count
	return nil
}

// Vote toggles the user's upvote on postID and prints the resulting count
func (vs *VoteService) Vote(ctx context.Context, sess *session.Session, postID int64) error {
	sess, err := session.Require(sess)
	if err != nil {
		return err
	}
	if err := vs.client.ToggleVote(ctx, sess, postID); err != nil {
		return err
	}

	post, err := vs.client.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	output.PrintSuccess("✓ Vote toggled on %q: ▲%d", post.Title, post.UpVotes)
	return nil
}
