package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/RicardoYam/Meet/internal/blogtest"
	"github.com/RicardoYam/Meet/pkg/client"
	"github.com/RicardoYam/Meet/pkg/config"
	"github.com/RicardoYam/Meet/pkg/credentials"
	clierrors "github.com/RicardoYam/Meet/pkg/errors"
	"github.com/RicardoYam/Meet/pkg/output"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	srv    *blogtest.Server
	config string
	out    bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		srv:    blogtest.Start(t),
		config: filepath.Join(t.TempDir(), "config.toml"),
	}
	t.Setenv("MEET_API_BASE_URL", h.srv.URL())

	prevOut, prevColor := output.Out, color.NoColor
	output.Out = &h.out
	color.NoColor = true
	rootCmd.SetOut(&h.out)
	t.Cleanup(func() {
		output.Out = prevOut
		color.NoColor = prevColor
		rootCmd.SetOut(nil)
		client.Reset()
	})
	return h
}

// run executes the CLI with flag values from earlier runs cleared
func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	verbose, outputFmt = false, ""
	listCategory, listTag, listSearch, listSort = "", "", "", ""
	listPageSize, listPages, listAll = 0, 1, false
	commentReplyTo, commentContent = 0, ""

	h.out.Reset()
	rootCmd.SetArgs(append([]string{"--config", h.config}, args...))
	return rootCmd.ExecuteContext(context.Background())
}

// login stores credentials for a fresh user, as 'auth login' would
func (h *harness) login(t *testing.T) {
	t.Helper()
	sess := h.srv.AddUser("ana", "ana@example.com", "secret1")
	require.NoError(t, config.Init(h.config))
	require.NoError(t, credentials.Save(&credentials.Credentials{
		Token:     sess.Token,
		TokenType: sess.TokenType,
		UserID:    sess.UserID,
		Username:  sess.Username,
		Email:     sess.Email,
		ExpiresAt: time.Now().Add(time.Hour),
	}))
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "health"))
	assert.Contains(t, h.out.String(), h.srv.URL()+" is up")
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "version"))
	assert.Contains(t, h.out.String(), "Meet CLI v"+Version)
}

func TestInvalidOutputFormat(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, "--output", "yaml", "health")
	assert.True(t, clierrors.IsType(err, clierrors.ErrorTypeValidation))
	assert.Zero(t, h.srv.Count("GET", "/health"))
}

func TestPostListPages(t *testing.T) {
	h := newHarness(t)
	h.srv.SeedPosts(5, "ana", nil, nil)

	require.NoError(t, h.run(t, "post", "list", "--page-size", "2", "--pages", "2"))
	assert.Equal(t, 2, h.srv.Count("GET", "/posts"))
	assert.Contains(t, h.out.String(), "Posts (newest)")
	assert.Contains(t, h.out.String(), "Showing 4 of 5 posts (page 2 of 3)")
}

func TestPostListBadSort(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, "post", "list", "--sort", "random")
	assert.True(t, clierrors.IsType(err, clierrors.ErrorTypeValidation))
	assert.Zero(t, h.srv.Count("GET", "/posts"))
}

func TestPostViewRejectsBadID(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, "post", "view", "abc")
	assert.True(t, clierrors.IsType(err, clierrors.ErrorTypeValidation))
}

func TestPostVoteNeedsLogin(t *testing.T) {
	h := newHarness(t)
	id := h.srv.SeedPosts(1, "bo", nil, nil)[0]

	err := h.run(t, "post", "vote", strconv.FormatInt(id, 10))
	assert.True(t, clierrors.IsType(err, clierrors.ErrorTypeAuthRequired))
	assert.Zero(t, h.srv.Count("POST", "/vote"))
}

func TestPostVoteLoggedIn(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	id := h.srv.SeedPosts(1, "bo", nil, nil)[0]

	require.NoError(t, h.run(t, "post", "vote", strconv.FormatInt(id, 10)))
	assert.Contains(t, h.out.String(), "Vote toggled")
	post, _ := h.srv.Post(id)
	assert.Equal(t, 1, post.UpVotes)
}

func TestCommentReplyToUnknownComment(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	id := h.srv.SeedPosts(1, "bo", nil, nil)[0]

	err := h.run(t, "comment", "add", strconv.FormatInt(id, 10), "--reply-to", "999", "--content", "hi")
	assert.True(t, clierrors.IsType(err, clierrors.ErrorTypeNotFound))
	assert.Zero(t, h.srv.Count("POST", "/comments"))
}

func TestCommentAdd(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	id := h.srv.SeedPosts(1, "bo", nil, nil)[0]

	require.NoError(t, h.run(t, "comment", "add", strconv.FormatInt(id, 10), "--content", "first!"))
	assert.Contains(t, h.out.String(), "Comment posted")
	assert.Contains(t, h.out.String(), "first!")
}

func TestCategoryFollow(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	cat := h.srv.AddCategory("Go", "gophers")

	require.NoError(t, h.run(t, "category", "follow", strconv.FormatInt(cat, 10)))
	assert.Equal(t, 1, h.srv.Count("POST", "/categories/"+strconv.FormatInt(cat, 10)))
}
