package blogtest

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// SeedPosts stores n posts with generated titles and content, oldest first.
// Each post gets one of the given categories and tags in rotation.
func (s *Server) SeedPosts(n int, author string, categories, tags []string) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		var cats, tgs []string
		if len(categories) > 0 {
			cats = []string{categories[i%len(categories)]}
		}
		if len(tags) > 0 {
			tgs = []string{tags[i%len(tags)]}
		}
		ids = append(ids, s.addPostLocked(
			author,
			gofakeit.HipsterSentence(),
			"<p>"+gofakeit.HipsterSentence()+"</p>",
			cats,
			tgs,
			base.Add(time.Duration(i)*time.Hour),
		))
	}
	return ids
}

// SeedThread adds replies-of-replies to a post: roots top-level comments, each with fanout replies
func (s *Server) SeedThread(postID int64, roots, fanout int) []int64 {
	var ids []int64
	for i := 0; i < roots; i++ {
		root := s.AddComment(postID, nil, gofakeit.Username(), gofakeit.HipsterSentence())
		ids = append(ids, root)
		for j := 0; j < fanout; j++ {
			parent := root
			ids = append(ids, s.AddComment(postID, &parent, gofakeit.Username(), gofakeit.HipsterSentence()))
		}
	}
	return ids
}
