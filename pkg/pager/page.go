package pager

import (
	"net/url"
)

// DefaultPageSize is used when an accumulator is created with a non-positive size
const DefaultPageSize = 5

// Page is one slice of a server-side collection, in the shape the blog API returns
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Last          bool  `json:"last"`
}

// Info returns the page metadata without its content
func (p *Page[T]) Info() PageInfo {
	return PageInfo{
		Number:        p.Number,
		Size:          p.Size,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
		Last:          p.Last,
	}
}

// EmptyPage is the terminal page returned when the server has nothing at index number
func EmptyPage[T any](number, size int) *Page[T] {
	return &Page[T]{Number: number, Size: size, Last: true}
}

// PageInfo describes the most recently applied page
type PageInfo struct {
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Last          bool  `json:"last"`
}

// Query is the filter and sort key of a listing. Changing any field means a reset.
type Query struct {
	Category string `json:"category,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Search   string `json:"search,omitempty"`
	SortBy   string `json:"sortBy,omitempty"`
	SortDir  string `json:"sortDir,omitempty"`
}

// Key is the canonical string form of q
func (q Query) Key() string {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Tag != "" {
		v.Set("tag", q.Tag)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortDir != "" {
		v.Set("sortDir", q.SortDir)
	}
	return v.Encode()
}

// String implements fmt.Stringer
func (q Query) String() string {
	if k := q.Key(); k != "" {
		return k
	}
	return "(all)"
}
