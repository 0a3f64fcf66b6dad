// Package blogtest runs an in-memory blog backend over HTTP for tests.
package blogtest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/RicardoYam/Meet/pkg/api"
	"github.com/RicardoYam/Meet/pkg/client"
	"github.com/RicardoYam/Meet/pkg/session"
	"github.com/gin-gonic/gin"
)

// Request is a request the server has seen
type Request struct {
	Method    string
	Path      string
	Query     string
	RequestID string
}

type user struct {
	id       int64
	username string
	email    string
	password string
	bio      string
	created  time.Time
	follows  map[int64]bool
	cats     map[int64]bool
	tags     map[int64]bool
}

type post struct {
	detail api.PostDetail
	voters map[int64]bool
}

// Server is a fake blog backend. The zero value is not usable; call Start.
type Server struct {
	mu sync.Mutex

	engine *gin.Engine
	srv    *httptest.Server

	nextID     int64
	users      map[int64]*user
	posts      []*post
	categories []api.Category
	tags       []api.Tag
	resetCodes map[string]string

	requests []Request
	failures map[string]int
	gates    map[string]chan struct{}
}

// Start launches a server and closes it when the test ends
func Start(t testing.TB) *Server {
	t.Helper()

	gin.SetMode(gin.TestMode)
	s := &Server{
		engine:     gin.New(),
		users:      map[int64]*user{},
		resetCodes: map[string]string{},
		failures:   map[string]int{},
		gates:      map[string]chan struct{}{},
	}
	s.engine.Use(gin.Recovery(), s.record, s.inject)
	s.routes()

	s.srv = httptest.NewServer(s.engine)
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the API root, including the /api/v1 prefix
func (s *Server) URL() string {
	return s.srv.URL + "/api/v1"
}

// Client returns an API client pointed at the server
func (s *Server) Client() *api.Client {
	return api.NewClient(client.New(s.URL(), 5*time.Second))
}

// Requests returns the requests received so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many requests matched method and path (path without the /api/v1 prefix)
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// FailNext makes the next request to method and path answer with status
func (s *Server) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = status
}

// Gate blocks requests to method and path until the returned function is called
func (s *Server) Gate(method, path string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.gates[method+" "+path] = ch
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.gates, method+" "+path)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:    c.Request.Method,
		Path:      strings.TrimPrefix(c.Request.URL.Path, "/api/v1"),
		Query:     c.Request.URL.RawQuery,
		RequestID: c.GetHeader(client.HeaderRequestID),
	})
	s.mu.Unlock()
	c.Next()
}

func (s *Server) inject(c *gin.Context) {
	key := c.Request.Method + " " + strings.TrimPrefix(c.Request.URL.Path, "/api/v1")

	s.mu.Lock()
	status, fail := s.failures[key]
	delete(s.failures, key)
	gate := s.gates[key]
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-c.Request.Context().Done():
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
	}
	if fail {
		c.String(status, http.StatusText(status))
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) routes() {
	v1 := s.engine.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"healthy": true})
	})

	v1.POST("/register", s.register)
	v1.POST("/login", s.login)
	v1.GET("/reset-password", s.sendResetCode)
	v1.POST("/reset-password", s.verifyResetCode)
	v1.PUT("/reset-password", s.resetPassword)

	v1.GET("/posts", s.listPosts)
	v1.GET("/posts/search", s.searchPosts)
	v1.GET("/posts/:id", s.getPost)
	v1.POST("/posts", s.auth, s.createPost)
	v1.POST("/comments", s.auth, s.createComment)
	v1.POST("/vote", s.auth, s.vote)

	v1.GET("/categories", s.listCategories)
	v1.POST("/categories", s.auth, s.createCategory)
	v1.POST("/categories/:id", s.auth, s.followCategory(true))
	v1.DELETE("/categories/:id", s.auth, s.followCategory(false))

	v1.GET("/tags", s.listTags)
	v1.POST("/tags", s.auth, s.createTag)
	v1.POST("/tags/:id", s.auth, s.followTag(true))
	v1.DELETE("/tags/:id", s.auth, s.followTag(false))

	v1.GET("/profile", s.getProfile)
	v1.PUT("/profile", s.auth, s.updateProfile)
	v1.POST("/follow/:id", s.auth, s.follow(true))
	v1.DELETE("/follow/:id", s.auth, s.follow(false))
}

// token is the bearer token issued to a user
func token(id int64) string {
	return fmt.Sprintf("token-%d", id)
}

func (s *Server) auth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		c.String(http.StatusBadRequest, "Please provide a valid token")
		c.Abort()
		return
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(raw, "token-"), 10, 64)

	s.mu.Lock()
	u := s.users[id]
	s.mu.Unlock()

	if err != nil || u == nil {
		c.String(http.StatusUnauthorized, "You are not authorized")
		c.Abort()
		return
	}
	c.Set("user_id", id)
	c.Next()
}

func (s *Server) now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

// AddUser registers a user directly and returns a session for them
func (s *Server) AddUser(username, email, password string) *session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.addUserLocked(username, email, password)
	return &session.Session{Token: token(u.id), TokenType: "Bearer ", UserID: u.id, Username: u.username, Email: u.email}
}

func (s *Server) addUserLocked(username, email, password string) *user {
	u := &user{
		id:       s.id(),
		username: username,
		email:    email,
		password: password,
		created:  s.now(),
		follows:  map[int64]bool{},
		cats:     map[int64]bool{},
		tags:     map[int64]bool{},
	}
	s.users[u.id] = u
	return u
}

func (s *Server) userByName(name string) *user {
	for _, u := range s.users {
		if u.username == name || u.email == name {
			return u
		}
	}
	return nil
}

// AddPost stores a post and returns its id
func (s *Server) AddPost(author, title, content string, categories, tags []string, created time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addPostLocked(author, title, content, categories, tags, created)
}

func (s *Server) addPostLocked(author, title, content string, categories, tags []string, created time.Time) int64 {
	p := &post{
		detail: api.PostDetail{
			ID:          s.id(),
			Title:       title,
			Content:     content,
			Author:      author,
			Categories:  append([]string{}, categories...),
			Tags:        append([]string{}, tags...),
			Comments:    []api.Comment{},
			CreatedTime: api.Timestamp{Time: created.UTC().Truncate(time.Millisecond)},
		},
		voters: map[int64]bool{},
	}
	s.posts = append(s.posts, p)
	return p.detail.ID
}

// AddComment appends a comment to a post without validating the parent, so tests can plant orphans
func (s *Server) AddComment(postID int64, parent *int64, author, content string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.postLocked(postID)
	if p == nil {
		return 0
	}
	c := api.Comment{
		ID:              s.id(),
		ParentCommentID: parent,
		Content:         content,
		Author:          author,
		CreatedTime:     api.Timestamp{Time: s.now()},
	}
	p.detail.Comments = append(p.detail.Comments, c)
	return c.ID
}

// AddCategory stores a category and returns its id
func (s *Server) AddCategory(title, description string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := api.Category{ID: s.id(), Title: title, Description: description}
	s.categories = append(s.categories, c)
	return c.ID
}

// AddTag stores a tag and returns its id
func (s *Server) AddTag(title, description string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := api.Tag{ID: s.id(), Title: title, Description: description}
	s.tags = append(s.tags, t)
	return t.ID
}

// Post returns a copy of a stored post
func (s *Server) Post(id int64) (api.PostDetail, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.postLocked(id)
	if p == nil {
		return api.PostDetail{}, false
	}
	d := p.detail
	d.Comments = append([]api.Comment(nil), p.detail.Comments...)
	return d, true
}

// ResetCode returns the last reset code issued for email
func (s *Server) ResetCode(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetCodes[email]
}

// Following reports whether follower follows target
func (s *Server) Following(follower, target int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[follower]
	return u != nil && u.follows[target]
}

// FollowsCategory reports whether a user follows a category
func (s *Server) FollowsCategory(userID, categoryID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[userID]
	return u != nil && u.cats[categoryID]
}

func (s *Server) postLocked(id int64) *post {
	for _, p := range s.posts {
		if p.detail.ID == id {
			return p
		}
	}
	return nil
}
