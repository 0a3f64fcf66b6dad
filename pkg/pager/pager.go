// Package pager accumulates a paginated collection behind "load more" and filter resets.
package pager

import (
	"context"
	"errors"
	"sync"

	"github.com/RicardoYam/Meet/pkg/logger"
)

var (
	// ErrStale is returned for a response that was superseded by a later Reset
	ErrStale = errors.New("pager: response superseded by a newer reset")
	// ErrClosed is returned once the accumulator has been closed
	ErrClosed = errors.New("pager: accumulator closed")
)

// State is the accumulator's lifecycle stage
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Fetcher retrieves page number page of size items for q
type Fetcher[T any] func(ctx context.Context, q Query, page, size int) (*Page[T], error)

// Accumulator holds the items of every page loaded since the last reset.
// It is safe for concurrent use; at most one fetch runs at a time per generation.
type Accumulator[T any] struct {
	mu    sync.Mutex
	fetch Fetcher[T]
	size  int

	query  Query
	items  []T
	info   PageInfo
	loaded bool
	state  State

	gen      uint64
	inflight bool
	cancel   context.CancelFunc
	closed   bool
}

// New creates an idle accumulator
func New[T any](fetch Fetcher[T], size int) *Accumulator[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Accumulator[T]{fetch: fetch, size: size}
}

// Reset discards the accumulated items, switches to q and fetches its first page.
// Any request still in flight is cancelled and its response will be discarded.
func (a *Accumulator[T]) Reset(ctx context.Context, q Query) error {
	fetch, err := a.StartReset(ctx, q)
	if err != nil {
		return err
	}
	return fetch()
}

// StartReset performs the switch to q immediately and returns the fetch of the first
// page, which may run later on another goroutine.
func (a *Accumulator[T]) StartReset(ctx context.Context, q Query) (func() error, error) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil, ErrClosed
	}
	if a.cancel != nil {
		a.cancel()
	}
	a.gen++
	a.query = q
	a.items = nil
	a.info = PageInfo{}
	a.loaded = false
	gen, ctx := a.begin(ctx)
	a.mu.Unlock()

	logger.Debug("Resetting collection", "query", q.String(), "generation", gen)
	return func() error { return a.run(ctx, gen, q, 0) }, nil
}

// LoadMore fetches the page after the last applied one and appends its content.
// It does nothing when the last page has been reached or a request is already in flight.
// If no page has been applied since the last reset, the first page is fetched again.
func (a *Accumulator[T]) LoadMore(ctx context.Context) error {
	_, err := a.loadMore(ctx)
	return err
}

func (a *Accumulator[T]) loadMore(ctx context.Context) (bool, error) {
	fetch, err := a.StartLoadMore(ctx)
	if err != nil || fetch == nil {
		return false, err
	}
	return true, fetch()
}

// StartLoadMore claims the next page and returns its fetch, or nil when LoadMore
// would do nothing.
func (a *Accumulator[T]) StartLoadMore(ctx context.Context) (func() error, error) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil, ErrClosed
	}
	if a.inflight {
		q := a.query
		a.mu.Unlock()
		logger.Debug("Load more ignored, request in flight", "query", q.String())
		return nil, nil
	}
	if a.loaded && a.info.Last {
		a.mu.Unlock()
		return nil, nil
	}
	page := 0
	if a.loaded {
		page = a.info.Number + 1
	}
	q := a.query
	gen, ctx := a.begin(ctx)
	a.mu.Unlock()

	logger.Debug("Loading page", "query", q.String(), "page", page, "size", a.size)
	return func() error { return a.run(ctx, gen, q, page) }, nil
}

// begin marks a request as in flight. Caller holds mu.
func (a *Accumulator[T]) begin(ctx context.Context) (uint64, context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.inflight = true
	a.state = StateLoading
	return a.gen, ctx
}

func (a *Accumulator[T]) run(ctx context.Context, gen uint64, q Query, page int) error {
	res, err := a.fetch(ctx, q, page, a.size)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	if gen != a.gen || q.Key() != a.query.Key() {
		logger.Debug("Discarding stale page", "query", q.String(), "page", page, "generation", gen)
		return ErrStale
	}

	if a.cancel != nil {
		a.cancel()
	}
	a.cancel = nil
	a.inflight = false

	if err != nil {
		if a.loaded {
			a.state = StateReady
		} else {
			a.state = StateIdle
		}
		return err
	}

	if res == nil {
		res = EmptyPage[T](page, a.size)
	}
	a.items = append(a.items, res.Content...)
	a.info = res.Info()
	if a.info.Size == 0 {
		a.info.Size = a.size
	}
	a.loaded = true
	a.state = StateReady
	return nil
}

// Drain calls LoadMore until the last page is applied or maxPages fetches have been made.
// A non-positive maxPages means no limit.
func (a *Accumulator[T]) Drain(ctx context.Context, maxPages int) error {
	for n := 0; maxPages <= 0 || n < maxPages; n++ {
		fetched, err := a.loadMore(ctx)
		if err != nil {
			return err
		}
		if !fetched {
			return nil
		}
	}
	return nil
}

// Close cancels any in-flight request. Later responses are discarded and further calls fail with ErrClosed.
func (a *Accumulator[T]) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true
	a.gen++
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.inflight = false
	a.state = StateClosed
}

// Items returns a copy of the accumulated items
func (a *Accumulator[T]) Items() []T {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]T, len(a.items))
	copy(out, a.items)
	return out
}

// Len returns the number of accumulated items
func (a *Accumulator[T]) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.items)
}

// Info returns the metadata of the last applied page
func (a *Accumulator[T]) Info() PageInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.info
}

// State returns the lifecycle stage
func (a *Accumulator[T]) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Query returns the current filter and sort key
func (a *Accumulator[T]) Query() Query {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.query
}

// Loaded reports whether a page has been applied since the last reset
func (a *Accumulator[T]) Loaded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loaded
}

// Generation identifies the current reset. It changes on every Reset and on Close.
func (a *Accumulator[T]) Generation() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen
}

// HasMore reports whether LoadMore would fetch
func (a *Accumulator[T]) HasMore() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.closed && !(a.loaded && a.info.Last)
}

// PageSize returns the number of items requested per page
func (a *Accumulator[T]) PageSize() int {
	return a.size
}
