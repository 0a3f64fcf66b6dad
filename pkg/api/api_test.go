package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/RicardoYam/Meet/internal/blogtest"
	"github.com/RicardoYam/Meet/pkg/api"
	clierrors "github.com/RicardoYam/Meet/pkg/errors"
	"github.com/RicardoYam/Meet/pkg/pager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPostsPagesAndFilters(t *testing.T) {
	srv := blogtest.Start(t)
	srv.SeedPosts(7, "ana", []string{"travel", "food"}, []string{"go"})
	c := srv.Client()
	ctx := context.Background()

	page, err := c.ListPosts(ctx, pager.Query{SortBy: "createdTime", SortDir: "desc"}, 0, 5)
	require.NoError(t, err)
	assert.Len(t, page.Content, 5)
	assert.False(t, page.Last)
	assert.Equal(t, 2, page.TotalPages)
	assert.EqualValues(t, 7, page.TotalElements)
	assert.True(t, page.Content[0].CreatedTime.After(page.Content[1].CreatedTime.Time), "newest first")

	page, err = c.ListPosts(ctx, pager.Query{SortBy: "createdTime", SortDir: "desc"}, 1, 5)
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.True(t, page.Last)

	page, err = c.ListPosts(ctx, pager.Query{Category: "food"}, 0, 10)
	require.NoError(t, err)
	assert.Len(t, page.Content, 3)
	for _, p := range page.Content {
		assert.Contains(t, p.Categories, "food")
	}

	reqs := srv.Requests()
	last := reqs[len(reqs)-1]
	assert.Equal(t, "/posts", last.Path)
	assert.Contains(t, last.Query, "category=food")
	assert.NotEmpty(t, last.RequestID)
}

func TestListPostsNoContentIsEmptyLastPage(t *testing.T) {
	srv := blogtest.Start(t)
	page, err := srv.Client().ListPosts(context.Background(), pager.Query{Tag: "nothing"}, 0, 5)
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.True(t, page.Last)
	assert.Equal(t, 5, page.Size)
}

func TestListPostsSearchUsesSearchEndpoint(t *testing.T) {
	srv := blogtest.Start(t)
	srv.AddPost("ana", "Hiking in Patagonia", "<p>wind</p>", nil, nil, time.Now())
	srv.AddPost("bo", "Sourdough notes", "<p>flour</p>", nil, nil, time.Now())

	page, err := srv.Client().ListPosts(context.Background(), pager.Query{Search: "patagonia", Category: "ignored"}, 0, 5)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Hiking in Patagonia", page.Content[0].Title)

	reqs := srv.Requests()
	assert.Equal(t, "/posts/search", reqs[len(reqs)-1].Path)
	assert.Contains(t, reqs[len(reqs)-1].Query, "searchTerm=patagonia")
	assert.NotContains(t, reqs[len(reqs)-1].Query, "category")
}

func TestGetPostReturnsFlatComments(t *testing.T) {
	srv := blogtest.Start(t)
	id := srv.AddPost("ana", "Title", "Body", []string{"travel"}, []string{"go"}, time.Now())
	root := srv.AddComment(id, nil, "bo", "first")
	srv.AddComment(id, &root, "cy", "reply")

	post, err := srv.Client().GetPost(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, post.Comments, 2)
	assert.Nil(t, post.Comments[0].ParentCommentID)
	require.NotNil(t, post.Comments[1].ParentCommentID)
	assert.Equal(t, root, *post.Comments[1].ParentCommentID)
	assert.False(t, post.Comments[0].CreatedTime.IsZero())
}

func TestGetPostNotFound(t *testing.T) {
	srv := blogtest.Start(t)
	_, err := srv.Client().GetPost(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
	assert.True(t, clierrors.IsType(err, clierrors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "Blog not found")
}

func TestCreateCommentSendsParentAsCommentID(t *testing.T) {
	srv := blogtest.Start(t)
	sess := srv.AddUser("ana", "ana@example.com", "pw")
	id := srv.AddPost("ana", "Title", "Body", nil, nil, time.Now())
	root := srv.AddComment(id, nil, "bo", "first")
	c := srv.Client()

	require.NoError(t, c.CreateComment(context.Background(), sess, api.CommentRequest{BlogID: id, ParentCommentID: &root, Content: "reply"}))
	require.NoError(t, c.CreateComment(context.Background(), sess, api.CommentRequest{BlogID: id, Content: "top"}))

	post, _ := srv.Post(id)
	require.Len(t, post.Comments, 3)
	assert.Equal(t, root, *post.Comments[1].ParentCommentID)
	assert.Equal(t, "ana", post.Comments[1].Author)
	assert.Nil(t, post.Comments[2].ParentCommentID)
}

func TestCreateCommentRejectsEmptyContent(t *testing.T) {
	srv := blogtest.Start(t)
	sess := srv.AddUser("ana", "ana@example.com", "pw")
	id := srv.AddPost("ana", "Title", "Body", nil, nil, time.Now())

	err := srv.Client().CreateComment(context.Background(), sess, api.CommentRequest{BlogID: id, Content: "  "})
	require.Error(t, err)
	assert.True(t, clierrors.IsType(err, clierrors.ErrorTypeBadRequest))
}

func TestToggleVote(t *testing.T) {
	srv := blogtest.Start(t)
	sess := srv.AddUser("ana", "ana@example.com", "pw")
	id := srv.AddPost("bo", "Title", "Body", nil, nil, time.Now())
	c := srv.Client()
	ctx := context.Background()

	require.NoError(t, c.ToggleVote(ctx, sess, id))
	post, _ := srv.Post(id)
	assert.Equal(t, 1, post.UpVotes)

	require.NoError(t, c.ToggleVote(ctx, sess, id))
	post, _ = srv.Post(id)
	assert.Equal(t, 0, post.UpVotes)
}

func TestCreatePostUsesSessionAuthor(t *testing.T) {
	srv := blogtest.Start(t)
	sess := srv.AddUser("ana", "ana@example.com", "pw")
	c := srv.Client()

	err := c.CreatePost(context.Background(), sess, api.PostRequest{Title: "Hello", Content: "<p>World</p>", Categories: []string{"travel"}})
	require.NoError(t, err)

	page, err := c.ListPosts(context.Background(), pager.Query{}, 0, 5)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "ana", page.Content[0].Author)
	assert.Equal(t, []string{"travel"}, page.Content[0].Categories)
}

func TestAuthenticatedCallWithBadTokenIsUnauthorized(t *testing.T) {
	srv := blogtest.Start(t)
	sess := srv.AddUser("ana", "ana@example.com", "pw")
	sess.Token = "token-999"
	id := srv.AddPost("bo", "Title", "Body", nil, nil, time.Now())

	err := srv.Client().ToggleVote(context.Background(), sess, id)
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
}

func TestTaxonomy(t *testing.T) {
	srv := blogtest.Start(t)
	sess := srv.AddUser("ana", "ana@example.com", "pw")
	c := srv.Client()
	ctx := context.Background()

	cats, err := c.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)

	require.NoError(t, c.CreateCategory(ctx, sess, api.TaxonomyRequest{Title: "Travel", Description: "Trips"}))
	err = c.CreateCategory(ctx, sess, api.TaxonomyRequest{Title: "travel", Description: "again"})
	assert.True(t, api.IsConflict(err))

	cats, err = c.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)

	require.NoError(t, c.FollowCategory(ctx, sess, cats[0].ID))
	assert.True(t, srv.FollowsCategory(sess.UserID, cats[0].ID))
	require.NoError(t, c.UnfollowCategory(ctx, sess, cats[0].ID))
	assert.False(t, srv.FollowsCategory(sess.UserID, cats[0].ID))

	require.NoError(t, c.CreateTag(ctx, sess, api.TaxonomyRequest{Title: "go", Description: "Gophers"}))
	tags, err := c.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	require.NoError(t, c.FollowTag(ctx, sess, tags[0].ID))
	require.NoError(t, c.UnfollowTag(ctx, sess, tags[0].ID))
	assert.Equal(t, 1, srv.Count(http.MethodDelete, "/tags/"+itoa(tags[0].ID)))
}

func TestProfileAndFollow(t *testing.T) {
	srv := blogtest.Start(t)
	ana := srv.AddUser("ana", "ana@example.com", "pw")
	bo := srv.AddUser("bo", "bo@example.com", "pw")
	srv.AddPost("ana", "Mine", "Body", nil, nil, time.Now())
	c := srv.Client()
	ctx := context.Background()

	require.NoError(t, c.UpdateBio(ctx, ana, "writes about trains"))
	profile, err := c.GetProfile(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, "writes about trains", profile.Bio)
	assert.Len(t, profile.Blogs, 1)

	require.NoError(t, c.FollowUser(ctx, ana, bo.UserID))
	assert.True(t, srv.Following(ana.UserID, bo.UserID))
	require.NoError(t, c.UnfollowUser(ctx, ana, bo.UserID))
	assert.False(t, srv.Following(ana.UserID, bo.UserID))

	_, err = c.GetProfile(ctx, "nobody")
	assert.True(t, api.IsNotFound(err))
}

func TestLoginRegisterAndReset(t *testing.T) {
	srv := blogtest.Start(t)
	c := srv.Client()
	ctx := context.Background()

	require.NoError(t, c.Register(ctx, api.RegisterRequest{Username: "ana", Email: "ana@example.com", Password: "pw"}))
	err := c.Register(ctx, api.RegisterRequest{Username: "ana", Email: "other@example.com", Password: "pw"})
	assert.True(t, api.IsConflict(err))

	resp, err := c.Login(ctx, "ana@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "ana", resp.Username)
	assert.Equal(t, "Bearer ", resp.TokenType)
	assert.NotZero(t, resp.UserID)

	_, err = c.Login(ctx, "ana", "wrong")
	assert.True(t, api.IsUnauthorized(err))

	require.NoError(t, c.SendResetCode(ctx, "ana@example.com"))
	code := srv.ResetCode("ana@example.com")
	require.NotEmpty(t, code)
	assert.Error(t, c.VerifyResetCode(ctx, "ana@example.com", "000000x"))
	require.NoError(t, c.VerifyResetCode(ctx, "ana@example.com", code))
	require.NoError(t, c.ChangePassword(ctx, "ana@example.com", "new-pw"))

	_, err = c.Login(ctx, "ana", "new-pw")
	require.NoError(t, err)
}

func TestHealth(t *testing.T) {
	srv := blogtest.Start(t)
	h, err := srv.Client().Health(context.Background())
	require.NoError(t, err)
	assert.True(t, h.Healthy)
}

func TestServerErrorIsClassified(t *testing.T) {
	srv := blogtest.Start(t)
	srv.FailNext(http.MethodGet, "/posts", http.StatusInternalServerError)

	_, err := srv.Client().ListPosts(context.Background(), pager.Query{}, 0, 5)
	require.Error(t, err)
	assert.True(t, api.IsServerError(err))
	assert.True(t, strings.HasPrefix(err.Error(), "failed to fetch posts"))
	assert.Equal(t, clierrors.ErrorTypeServer, clierrors.CategorizeError(err).Type)
}

func TestUnreachableServerIsNetworkError(t *testing.T) {
	c := api.NewClient(clientFor("http://127.0.0.1:1/api/v1"))

	_, err := c.Health(context.Background())
	require.Error(t, err)
	assert.Equal(t, clierrors.ErrorTypeNetwork, clierrors.CategorizeError(err).Type)
}
