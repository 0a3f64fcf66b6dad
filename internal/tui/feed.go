package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RicardoYam/Meet/pkg/api"
	"github.com/RicardoYam/Meet/pkg/formatter"
	"github.com/RicardoYam/Meet/pkg/pager"
	"github.com/RicardoYam/Meet/pkg/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// feedModel lists posts and owns the accumulator behind them
type feedModel struct {
	ctx  context.Context
	acc  *pager.Accumulator[api.Post]
	keys keyMap

	opts     service.ListOptions
	gen      uint64
	posts    []api.Post
	selected int
	loading  bool
	err      error

	searching bool
	search    textinput.Model

	width, height int
}

func newFeedModel(ctx context.Context, feed *service.FeedService, opts service.ListOptions) *feedModel {
	ti := textinput.New()
	ti.Placeholder = "search posts"
	ti.Prompt = "/ "
	return &feedModel{
		ctx:    ctx,
		acc:    feed.Open(),
		keys:   defaultKeyMap(),
		opts:   opts,
		search: ti,
	}
}

// Init loads the first page of the initial listing
func (m *feedModel) Init() tea.Cmd {
	return m.apply(m.opts)
}

// apply switches to opts and starts fetching its first page
func (m *feedModel) apply(opts service.ListOptions) tea.Cmd {
	q, err := opts.Query()
	if err != nil {
		m.err = err
		return nil
	}
	fetch, err := m.acc.StartReset(m.ctx, q)
	if err != nil {
		m.err = err
		return nil
	}
	m.opts = opts
	m.gen = m.acc.Generation()
	m.posts = nil
	m.selected = 0
	m.loading = true
	m.err = nil
	return fetchCmd(m.gen, fetch)
}

func (m *feedModel) loadMore() tea.Cmd {
	fetch, err := m.acc.StartLoadMore(m.ctx)
	if err != nil {
		m.err = err
		return nil
	}
	if fetch == nil {
		return nil
	}
	m.loading = true
	return fetchCmd(m.gen, fetch)
}

func fetchCmd(gen uint64, fetch func() error) tea.Cmd {
	return func() tea.Msg {
		return feedLoadedMsg{gen: gen, err: fetch()}
	}
}

func (m *feedModel) sortName() string {
	if m.opts.Sort == "" {
		return service.SortPresets[0].Name
	}
	return m.opts.Sort
}

func (m *feedModel) current() (api.Post, bool) {
	if m.selected < 0 || m.selected >= len(m.posts) {
		return api.Post{}, false
	}
	return m.posts[m.selected], true
}

func (m *feedModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return nil

	case feedLoadedMsg:
		if msg.gen != m.gen || errors.Is(msg.err, pager.ErrStale) || errors.Is(msg.err, pager.ErrClosed) {
			return nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return nil
		}
		m.err = nil
		m.posts = m.acc.Items()
		if m.selected >= len(m.posts) {
			m.selected = max(len(m.posts)-1, 0)
		}
		return nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return cmd
	}
	return nil
}

func (m *feedModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		term := strings.TrimSpace(m.search.Value())
		return m.apply(service.ListOptions{Search: term, Sort: m.opts.Sort})
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

func (m *feedModel) updateKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Dismiss):
		m.err = nil
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.posts)-1 {
			m.selected++
			return nil
		}
		return m.loadMore()
	case key.Matches(msg, m.keys.More):
		return m.loadMore()
	case key.Matches(msg, m.keys.Sort):
		next := m.opts
		next.Sort = service.NextSort(m.sortName()).Name
		return m.apply(next)
	case key.Matches(msg, m.keys.Category):
		next := service.ListOptions{Sort: m.opts.Sort, Tag: m.opts.Tag}
		if m.opts.Category == "" {
			p, ok := m.current()
			if !ok || len(p.Categories) == 0 {
				return nil
			}
			next.Category = p.Categories[0]
		}
		return m.apply(next)
	case key.Matches(msg, m.keys.Tag):
		next := service.ListOptions{Sort: m.opts.Sort, Category: m.opts.Category}
		if m.opts.Tag == "" {
			p, ok := m.current()
			if !ok || len(p.Tags) == 0 {
				return nil
			}
			next.Tag = p.Tags[0]
		}
		return m.apply(next)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.opts.Search)
		m.search.Focus()
		return textinput.Blink
	case key.Matches(msg, m.keys.Clear):
		return m.apply(service.ListOptions{Sort: m.opts.Sort})
	case key.Matches(msg, m.keys.Open):
		p, ok := m.current()
		if !ok {
			return nil
		}
		id := p.ID
		return func() tea.Msg { return openPostMsg{id: id} }
	}
	return nil
}

func (m *feedModel) title() string {
	parts := []string{"Meet"}
	if m.opts.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", m.opts.Search))
	} else {
		parts = append(parts, m.sortName())
	}
	if m.opts.Category != "" {
		parts = append(parts, "category: "+m.opts.Category)
	}
	if m.opts.Tag != "" {
		parts = append(parts, "tag: "+m.opts.Tag)
	}
	return headerStyle.Render(strings.Join(parts, " · "))
}

func (m *feedModel) postLine(p api.Post, now time.Time) string {
	meta := fmt.Sprintf("%s · ▲%s · %s · %s",
		p.Author,
		humanize.Comma(int64(p.UpVotes)),
		pluralize(p.Comments, "comment"),
		humanize.RelTime(p.CreatedTime.Time, now, "ago", "from now"))
	return titleStyle.Render(p.Title) + "  " + metaStyle.Render(meta)
}

func (m *feedModel) View() string {
	var b strings.Builder
	b.WriteString(m.title())
	b.WriteString("\n\n")

	rows := m.height - 6
	if rows < 5 {
		rows = 5
	}
	start := 0
	if m.selected >= rows {
		start = m.selected - rows + 1
	}
	end := min(start+rows, len(m.posts))

	now := time.Now()
	for i := start; i < end; i++ {
		line := m.postLine(m.posts[i], now)
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(m.posts) == 0 && !m.loading && m.err == nil {
		b.WriteString(metaStyle.Render("No posts found."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(errText(m.err)))
	case m.loading:
		b.WriteString(statusStyle.Render("Loading…"))
	case m.acc.Loaded():
		b.WriteString(metaStyle.Render(formatter.PageFooter(len(m.posts), m.acc.Info())))
	}
	b.WriteString("\n")

	switch {
	case m.searching:
		b.WriteString(m.search.View())
	case m.err != nil:
		b.WriteString(helpLine(m.keys.Dismiss, m.keys.More, m.keys.Quit))
	default:
		b.WriteString(helpLine(m.keys.Open, m.keys.More, m.keys.Sort, m.keys.Category, m.keys.Tag, m.keys.Search, m.keys.Clear, m.keys.Quit))
	}
	return b.String()
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
