package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/RicardoYam/Meet/pkg/api"
	clierrors "github.com/RicardoYam/Meet/pkg/errors"
	"github.com/RicardoYam/Meet/pkg/formatter"
	"github.com/RicardoYam/Meet/pkg/logger"
	"github.com/RicardoYam/Meet/pkg/output"
	"github.com/RicardoYam/Meet/pkg/session"
	"github.com/RicardoYam/Meet/pkg/thread"
)

// MaxCommentLength is the longest comment accepted before any request is made
const MaxCommentLength = 2000

// ErrThreadClosed is returned by a Thread after Close
var ErrThreadClosed = errors.New("thread closed")

// Viewport is the scroll state a view wants preserved across a refresh
type Viewport interface {
	Offset() int
	SetOffset(offset int)
}

// Preserve runs replace and then restores the offset v had immediately before it
func Preserve(v Viewport, replace func()) {
	if v == nil {
		replace()
		return
	}
	offset := v.Offset()
	replace()
	v.SetOffset(offset)
}

// ThreadService hands out per-post comment threads.
// Submissions to the same post are serialized across every Thread it opened.
type ThreadService struct {
	client *api.Client

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewThreadService creates a new thread service
func NewThreadService(client *api.Client) *ThreadService {
	return &ThreadService{client: client, locks: make(map[int64]*sync.Mutex)}
}

func (ts *ThreadService) lockFor(postID int64) *sync.Mutex {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	l, ok := ts.locks[postID]
	if !ok {
		l = &sync.Mutex{}
		ts.locks[postID] = l
	}
	return l
}

// Open returns an empty thread for postID; call Load to fetch it
func (ts *ThreadService) Open(postID int64) *Thread {
	return &Thread{svc: ts, postID: postID}
}

// Thread is the comment state of one post as seen by one view
type Thread struct {
	svc    *ThreadService
	postID int64

	mu      sync.Mutex
	post    *api.PostDetail
	roots   []*thread.Node
	orphans []api.Comment
	version uint64
	closed  bool

	// issued numbers fetches in the order they start; applied is the newest one applied
	issued  uint64
	applied uint64
}

// PostID returns the post this thread belongs to
func (t *Thread) PostID() int64 {
	return t.postID
}

// Load fetches the post and rebuilds the comment tree. It runs one at a time
// with submissions to the same post.
func (t *Thread) Load(ctx context.Context) error {
	if t.isClosed() {
		return ErrThreadClosed
	}

	lock := t.svc.lockFor(t.postID)
	lock.Lock()
	defer lock.Unlock()

	return t.fetch(ctx, nil)
}

// fetch gets the post and applies it unless a fetch started later has already been applied
func (t *Thread) fetch(ctx context.Context, vp Viewport) error {
	seq := t.issue()
	post, err := t.svc.client.GetPost(ctx, t.postID)
	if err != nil {
		return err
	}
	return t.apply(post, seq, vp)
}

func (t *Thread) issue() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.issued++
	return t.issued
}

func (t *Thread) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// apply replaces the local state with post, preserving vp's offset when set.
// A response older than the applied state is dropped.
func (t *Thread) apply(post *api.PostDetail, seq uint64, vp Viewport) error {
	roots := thread.Organize(post.Comments)
	orphans := thread.Orphans(post.Comments)
	for _, o := range orphans {
		logger.Debug("Comment not reachable from a top-level comment", "post_id", t.postID, "comment_id", o.ID, "parent_id", o.ParentCommentID)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		logger.Debug("Dropping thread update after close", "post_id", t.postID)
		return ErrThreadClosed
	}
	if seq < t.applied {
		logger.Debug("Dropping out-of-date thread response", "post_id", t.postID, "seq", seq, "applied", t.applied)
		return nil
	}

	Preserve(vp, func() {
		t.applied = seq
		t.post = post
		t.roots = roots
		t.orphans = orphans
		t.version++
	})
	return nil
}

// Post returns the last loaded post, or nil before the first Load
func (t *Thread) Post() *api.PostDetail {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.post
}

// Tree returns the comment forest of the last load
func (t *Thread) Tree() []*thread.Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.roots
}

// Orphans returns the comments dropped from the tree in the last load
func (t *Thread) Orphans() []api.Comment {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.orphans
}

// Version increases every time new state is applied
func (t *Thread) Version() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.version
}

// Close detaches the thread from its view. Later responses are ignored.
func (t *Thread) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
}

// ValidateComment rejects content the backend would refuse
func ValidateComment(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", clierrors.ValidationError("content", "comment cannot be empty")
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return "", clierrors.ValidationError("content", fmt.Sprintf("comment exceeds %d characters", MaxCommentLength))
	}
	return content, nil
}

// Submit posts a comment, or a reply when parentID is set, then re-fetches the
// whole thread and replaces the local state. Submissions to one post run one at a time.
func (t *Thread) Submit(ctx context.Context, sess *session.Session, content string, parentID *int64, vp Viewport) error {
	content, err := ValidateComment(content)
	if err != nil {
		return err
	}
	sess, err = session.Require(sess)
	if err != nil {
		return err
	}
	if t.isClosed() {
		return ErrThreadClosed
	}

	lock := t.svc.lockFor(t.postID)
	lock.Lock()
	defer lock.Unlock()

	logger.Debug("Submitting comment", "post_id", t.postID, "parent_id", parentID, "user_id", sess.UserID)
	err = t.svc.client.CreateComment(ctx, sess, api.CommentRequest{
		BlogID:          t.postID,
		ParentCommentID: parentID,
		Content:         content,
	})
	if err != nil {
		return err
	}

	if err := t.fetch(ctx, vp); err != nil {
		if errors.Is(err, ErrThreadClosed) {
			return err
		}
		return fmt.Errorf("comment posted but reloading the thread failed: %w", err)
	}
	return nil
}

// Render draws the loaded comment tree
func (t *Thread) Render(selected int64, width int) string {
	return thread.Render(t.Tree(), thread.RenderOptions{
		Now:      now(),
		Text:     output.PlainText,
		Selected: selected,
		Width:    width,
	})
}

// ViewPost prints a post with its comment tree
func (ts *ThreadService) ViewPost(ctx context.Context, postID int64) error {
	th := ts.Open(postID)
	defer th.Close()
	if err := th.Load(ctx); err != nil {
		return err
	}

	post := th.Post()
	if output.GetOutputFormat() == output.FormatJSON {
		return output.Print("", struct {
			*api.PostDetail
			Thread []*thread.Node `json:"thread"`
		}{post, th.Tree()})
	}

	output.Println(formatter.PostHeader(post, now()))
	n := thread.Count(th.Tree())
	formatter.Bold.Fprintf(output.Out, "%d comment%s\n", n, pluralize(n))
	output.Println(th.Render(0, 0))
	return nil
}

// AddComment posts a comment or reply from the command line and prints the refreshed thread
func (ts *ThreadService) AddComment(ctx context.Context, sess *session.Session, postID int64, parentID *int64, content string) error {
	th := ts.Open(postID)
	defer th.Close()

	if parentID != nil {
		if err := th.Load(ctx); err != nil {
			return err
		}
		if thread.Find(th.Tree(), *parentID) == nil {
			return clierrors.NotFoundError("comment", fmt.Sprintf("%d on post %d", *parentID, postID))
		}
	}

	if err := th.Submit(ctx, sess, content, parentID, nil); err != nil {
		return err
	}

	output.PrintSuccess("✓ Comment posted")
	output.Println(th.Render(0, 0))
	return nil
}
