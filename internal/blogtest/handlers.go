package blogtest

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/RicardoYam/Meet/pkg/api"
	"github.com/RicardoYam/Meet/pkg/pager"
	"github.com/gin-gonic/gin"
)

func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func (s *Server) register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Email == "" || req.Password == "" {
		c.String(http.StatusBadRequest, "Credentials can't be null")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userByName(req.Username) != nil || s.userByName(req.Email) != nil {
		c.String(http.StatusConflict, "Username or email address already in use")
		return
	}
	s.addUserLocked(req.Username, req.Email, req.Password)
	c.String(http.StatusCreated, "User registered successfully")
}

func (s *Server) login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Account == "" || req.Password == "" {
		c.String(http.StatusBadRequest, "Credentials can't be null")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userByName(req.Account)
	if u == nil {
		c.String(http.StatusBadRequest, "Username or email address does not exist")
		return
	}
	if u.password != req.Password {
		c.String(http.StatusUnauthorized, "Invalid credentials")
		return
	}
	c.JSON(http.StatusOK, api.LoginResponse{
		Token:     token(u.id),
		TokenType: "Bearer ",
		UserID:    u.id,
		Username:  u.username,
		Email:     u.email,
	})
}

func (s *Server) sendResetCode(c *gin.Context) {
	email := c.Query("email")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userByName(email) == nil {
		c.String(http.StatusNotFound, "User not found")
		return
	}
	s.resetCodes[email] = fmt.Sprintf("%06d", s.id())
	c.String(http.StatusOK, "Code sent")
}

func (s *Server) verifyResetCode(c *gin.Context) {
	email, code := c.Query("email"), c.Query("code")
	if code == "" {
		c.String(http.StatusBadRequest, "Code can't be null")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	want, ok := s.resetCodes[email]
	switch {
	case !ok:
		c.String(http.StatusNotFound, "Code expired or not found")
	case want != code:
		c.String(http.StatusUnauthorized, "Code verification failed")
	default:
		c.String(http.StatusOK, "Code verified successfully")
	}
}

func (s *Server) resetPassword(c *gin.Context) {
	email, password := c.Query("email"), c.Query("password")
	if password == "" {
		c.String(http.StatusBadRequest, "Password can't be null")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userByName(email)
	if u == nil {
		c.String(http.StatusNotFound, "Password not found")
		return
	}
	u.password = password
	delete(s.resetCodes, email)
	c.String(http.StatusOK, "Password reset successfully")
}

func listItem(p *post) api.Post {
	return api.Post{
		ID:          p.detail.ID,
		Title:       p.detail.Title,
		Content:     p.detail.Content,
		Author:      p.detail.Author,
		Avatar:      p.detail.AuthorAvatar,
		Categories:  p.detail.Categories,
		Tags:        p.detail.Tags,
		UpVotes:     p.detail.UpVotes,
		Comments:    len(p.detail.Comments),
		CreatedTime: p.detail.CreatedTime,
	}
}

// writePage answers with one page of items, or 204 when the page is empty
func writePage(c *gin.Context, items []api.Post) {
	page, size := queryInt(c, "page", 0), queryInt(c, "size", 5)
	if size <= 0 {
		size = 5
	}

	start := page * size
	if start >= len(items) || page < 0 {
		c.String(http.StatusNoContent, "No blogs found")
		return
	}
	end := min(start+size, len(items))
	total := (len(items) + size - 1) / size

	c.JSON(http.StatusOK, pager.Page[api.Post]{
		Content:       items[start:end],
		Number:        page,
		Size:          size,
		TotalPages:    total,
		TotalElements: int64(len(items)),
		Last:          page >= total-1,
	})
}

func (s *Server) listPosts(c *gin.Context) {
	category, tag := c.Query("category"), c.Query("tag")
	sortBy := c.DefaultQuery("sortBy", "createdTime")
	asc := strings.EqualFold(c.Query("sortDir"), "asc")

	s.mu.Lock()
	var items []api.Post
	for _, p := range s.posts {
		if category != "" && !contains(p.detail.Categories, category) {
			continue
		}
		if tag != "" && !contains(p.detail.Tags, tag) {
			continue
		}
		items = append(items, listItem(p))
	}
	s.mu.Unlock()

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		var less bool
		switch sortBy {
		case "votes", "upVotes":
			if a.UpVotes == b.UpVotes {
				return a.ID < b.ID
			}
			less = a.UpVotes < b.UpVotes
		default:
			if a.CreatedTime.Equal(b.CreatedTime.Time) {
				return a.ID < b.ID
			}
			less = a.CreatedTime.Before(b.CreatedTime.Time)
		}
		if asc {
			return less
		}
		return !less
	})

	writePage(c, items)
}

func (s *Server) searchPosts(c *gin.Context) {
	term := strings.ToLower(c.Query("searchTerm"))
	if term == "" {
		c.String(http.StatusBadRequest, "Required parameter 'searchTerm' is not present.")
		return
	}

	s.mu.Lock()
	var items []api.Post
	for _, p := range s.posts {
		if strings.Contains(strings.ToLower(p.detail.Title), term) ||
			strings.Contains(strings.ToLower(p.detail.Content), term) {
			items = append(items, listItem(p))
		}
	}
	s.mu.Unlock()

	writePage(c, items)
}

func (s *Server) getPost(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.String(http.StatusBadRequest, "Please provide a valid id")
		return
	}
	d, ok := s.Post(id)
	if !ok {
		c.String(http.StatusNotFound, "Blog not found")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) createPost(c *gin.Context) {
	var body struct {
		Title      string   `json:"title"`
		Content    string   `json:"content"`
		AuthorName string   `json:"authorName"`
		Categories []string `json:"categories"`
		Tags       []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	switch {
	case body.Title == "":
		c.String(http.StatusBadRequest, "Please provide a valid title")
		return
	case body.Content == "":
		c.String(http.StatusBadRequest, "Please provide a valid content")
		return
	case body.AuthorName == "":
		c.String(http.StatusBadRequest, "Please provide a valid author name")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.addPostLocked(body.AuthorName, body.Title, body.Content, body.Categories, body.Tags, s.now())
	c.String(http.StatusCreated, "Blog created")
}

func (s *Server) createComment(c *gin.Context) {
	var body struct {
		BlogID    int64  `json:"blogId"`
		UserID    int64  `json:"userId"`
		CommentID *int64 `json:"commentId"`
		Content   string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.BlogID <= 0 {
		c.String(http.StatusBadRequest, "Please provide a valid id")
		return
	}
	if strings.TrimSpace(body.Content) == "" {
		c.String(http.StatusBadRequest, "Comment content cannot be empty")
		return
	}

	s.mu.Lock()
	u := s.users[body.UserID]
	p := s.postLocked(body.BlogID)
	s.mu.Unlock()
	if u == nil {
		c.String(http.StatusNotFound, "User not found")
		return
	}
	if p == nil {
		c.String(http.StatusNotFound, "Comment not created")
		return
	}

	s.AddComment(body.BlogID, body.CommentID, u.username, body.Content)
	c.String(http.StatusCreated, "Comment created")
}

func (s *Server) vote(c *gin.Context) {
	blogID, err1 := strconv.ParseInt(c.Query("blogId"), 10, 64)
	userID, err2 := strconv.ParseInt(c.Query("userId"), 10, 64)
	if err1 != nil {
		c.String(http.StatusBadRequest, "Please provide a valid blogId")
		return
	}
	if err2 != nil {
		c.String(http.StatusBadRequest, "Please provide a valid userId")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.postLocked(blogID)
	if p == nil {
		c.String(http.StatusNotFound, "Blog not found")
		return
	}
	if s.users[userID] == nil {
		c.String(http.StatusNotFound, "User not found")
		return
	}
	if p.voters[userID] {
		delete(p.voters, userID)
		p.detail.UpVotes--
	} else {
		p.voters[userID] = true
		p.detail.UpVotes++
	}
	c.String(http.StatusOK, "Blog updated")
}

func (s *Server) listCategories(c *gin.Context) {
	s.mu.Lock()
	out := append([]api.Category(nil), s.categories...)
	s.mu.Unlock()
	if len(out) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listTags(c *gin.Context) {
	s.mu.Lock()
	out := append([]api.Tag(nil), s.tags...)
	s.mu.Unlock()
	if len(out) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, out)
}

func bindTaxonomy(c *gin.Context) (api.TaxonomyRequest, bool) {
	var req api.TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.String(http.StatusBadRequest, "Please provide a valid title")
		return req, false
	}
	if req.Description == "" {
		c.String(http.StatusBadRequest, "Please provide a valid description")
		return req, false
	}
	return req, true
}

func (s *Server) createCategory(c *gin.Context) {
	req, ok := bindTaxonomy(c)
	if !ok {
		return
	}
	s.mu.Lock()
	for _, existing := range s.categories {
		if strings.EqualFold(existing.Title, req.Title) {
			s.mu.Unlock()
			c.String(http.StatusConflict, "Category already exists")
			return
		}
	}
	s.mu.Unlock()
	s.AddCategory(req.Title, req.Description)
	c.String(http.StatusCreated, "Category created")
}

func (s *Server) createTag(c *gin.Context) {
	req, ok := bindTaxonomy(c)
	if !ok {
		return
	}
	s.mu.Lock()
	for _, existing := range s.tags {
		if strings.EqualFold(existing.Title, req.Title) {
			s.mu.Unlock()
			c.String(http.StatusConflict, "Tag already exists")
			return
		}
	}
	s.mu.Unlock()
	s.AddTag(req.Title, req.Description)
	c.String(http.StatusCreated, "Tag added")
}

func (s *Server) followCategory(follow bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.toggleSubscription(c, "category", follow, func(u *user) map[int64]bool { return u.cats }, func(id int64) bool {
			for _, cat := range s.categories {
				if cat.ID == id {
					return true
				}
			}
			return false
		})
	}
}

func (s *Server) followTag(follow bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.toggleSubscription(c, "tag", follow, func(u *user) map[int64]bool { return u.tags }, func(id int64) bool {
			for _, t := range s.tags {
				if t.ID == id {
					return true
				}
			}
			return false
		})
	}
}

func (s *Server) toggleSubscription(c *gin.Context, kind string, follow bool, set func(*user) map[int64]bool, exists func(int64) bool) {
	id, ok := paramID(c)
	userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
	if !ok || err != nil {
		c.String(http.StatusBadRequest, "Please provide a valid %s", kind)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[userID]
	if u == nil || !exists(id) {
		c.String(http.StatusConflict, "%s not followed", kind)
		return
	}
	subs := set(u)
	if follow {
		if subs[id] {
			c.String(http.StatusConflict, "%s not followed", kind)
			return
		}
		subs[id] = true
		c.String(http.StatusCreated, "%s followed", kind)
		return
	}
	if !subs[id] {
		c.String(http.StatusConflict, "%s not unfollowed", kind)
		return
	}
	delete(subs, id)
	c.String(http.StatusCreated, "%s unfollowed", kind)
}

func (s *Server) getProfile(c *gin.Context) {
	name := c.Query("username")

	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userByName(name)
	if u == nil {
		c.String(http.StatusNotFound, "User not found")
		return
	}

	profile := api.Profile{
		ID:          u.id,
		Name:        u.username,
		Bio:         u.bio,
		Blogs:       []api.PostDetail{},
		Categories:  []api.Category{},
		Tags:        []api.Tag{},
		CreatedTime: api.Timestamp{Time: u.created},
	}
	for _, p := range s.posts {
		if p.detail.Author == u.username {
			profile.Blogs = append(profile.Blogs, p.detail)
			profile.TotalReceivedUpVotes += p.detail.UpVotes
		}
		if p.voters[u.id] {
			profile.TotalUpVotes++
		}
		for _, cm := range p.detail.Comments {
			if cm.Author == u.username {
				profile.TotalComments++
			}
		}
	}
	for _, cat := range s.categories {
		if u.cats[cat.ID] {
			profile.Categories = append(profile.Categories, cat)
		}
	}
	for _, t := range s.tags {
		if u.tags[t.ID] {
			profile.Tags = append(profile.Tags, t)
		}
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) updateProfile(c *gin.Context) {
	userID, err := strconv.ParseInt(c.PostForm("userId"), 10, 64)
	if err != nil || userID != c.GetInt64("user_id") {
		c.String(http.StatusUnauthorized, "You are not authorized to update the user")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[userID]
	u.bio = c.PostForm("bio")
	c.String(http.StatusOK, "User info updated successfully")
}

func (s *Server) follow(follow bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		target, err := strconv.ParseInt(c.Query("targetId"), 10, 64)
		if !ok || err != nil {
			c.String(http.StatusBadRequest, "Follower can't be null")
			return
		}
		if id != c.GetInt64("user_id") {
			c.String(http.StatusUnauthorized, "You are not authorized to follow the user")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.users[target] == nil {
			c.String(http.StatusUnauthorized, "Follow failed")
			return
		}
		if follow {
			s.users[id].follows[target] = true
			c.String(http.StatusOK, "Follow success")
			return
		}
		delete(s.users[id].follows, target)
		c.String(http.StatusOK, "Unfollow success")
	}
}
