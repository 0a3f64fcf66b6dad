package api

import (
	"bytes"
	"strconv"
	"time"

	"github.com/RicardoYam/Meet/pkg/pager"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Timestamp decodes the server's date values, which arrive as ISO-8601 strings or epoch millis
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}
	if b[0] != '"' {
		ms, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			return err
		}
		t.Time = time.UnixMilli(ms).UTC()
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.UTC().Format(time.RFC3339Nano))), nil
}

// Comment is one entry of a post's flat comment list.
// ParentCommentID is nil for a top-level comment.
type Comment struct {
	ID              int64     `json:"id"`
	ParentCommentID *int64    `json:"parentCommentId"`
	Content         string    `json:"content"`
	Author          string    `json:"author"`
	AuthorAvatar    string    `json:"authorAvatar,omitempty"`
	UpVotes         int       `json:"upVotes"`
	DownVotes       int       `json:"downVotes"`
	CreatedTime     Timestamp `json:"createdTime"`
}

// IsTopLevel reports whether c has no parent
func (c Comment) IsTopLevel() bool {
	return c.ParentCommentID == nil
}

// Post is a feed entry
type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	Avatar      string    `json:"avatar,omitempty"`
	Categories  []string  `json:"categories"`
	Tags        []string  `json:"tags"`
	UpVotes     int       `json:"upVotes"`
	Comments    int       `json:"comments"`
	CreatedTime Timestamp `json:"createdTime"`
}

// PostDetail is a single post with its flat comment list
type PostDetail struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Author       string    `json:"author"`
	AuthorAvatar string    `json:"authorAvatar,omitempty"`
	Categories   []string  `json:"categories"`
	Tags         []string  `json:"tags"`
	UpVotes      int       `json:"upVotes"`
	DownVotes    int       `json:"downVotes"`
	Comments     []Comment `json:"comments"`
	CreatedTime  Timestamp `json:"createdTime"`
}

// PostPage is one page of the feed
type PostPage = pager.Page[Post]

// Category groups posts by subject
type Category struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Tag labels posts by topic
type Tag struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Profile is a user's public page
type Profile struct {
	ID                   int64        `json:"id"`
	Name                 string       `json:"name"`
	Bio                  string       `json:"bio,omitempty"`
	Blogs                []PostDetail `json:"blogs"`
	Categories           []Category   `json:"categories"`
	Tags                 []Tag        `json:"tags"`
	TotalUpVotes         int          `json:"totalUpVotes"`
	TotalReceivedUpVotes int          `json:"totalReceivedUpVotes"`
	TotalComments        int          `json:"totalComments"`
	CreatedTime          Timestamp    `json:"createdTime"`
}

// LoginRequest accepts a username or an email as the account
type LoginRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

// LoginResponse carries the token and identity of the logged-in user
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
}

// RegisterRequest creates an account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CommentRequest submits a comment. ParentCommentID is nil for a top-level comment.
type CommentRequest struct {
	BlogID          int64
	ParentCommentID *int64
	Content         string
}

// commentBody is the wire form; the server calls the parent id "commentId"
type commentBody struct {
	BlogID    int64  `json:"blogId"`
	UserID    int64  `json:"userId"`
	CommentID *int64 `json:"commentId"`
	Content   string `json:"content"`
}

// PostRequest creates a post. The author is taken from the session.
type PostRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}

type postBody struct {
	PostRequest
	AuthorName string `json:"authorName"`
}

// TaxonomyRequest creates a category or a tag
type TaxonomyRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// HealthResponse reports backend liveness
type HealthResponse struct {
	Healthy bool `json:"healthy"`
}
