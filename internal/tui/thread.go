package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/RicardoYam/Meet/pkg/formatter"
	"github.com/RicardoYam/Meet/pkg/service"
	"github.com/RicardoYam/Meet/pkg/session"
	"github.com/RicardoYam/Meet/pkg/thread"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// scroll exposes a viewport's offset so a refresh can keep the reader's place
type scroll struct {
	vp *viewport.Model
}

func (s scroll) Offset() int          { return s.vp.YOffset }
func (s scroll) SetOffset(offset int) { s.vp.SetYOffset(offset) }

// threadModel shows one post and its comment tree. It is discarded on close.
type threadModel struct {
	ctx    context.Context
	cancel context.CancelFunc
	th     *service.Thread
	votes  *service.VoteService
	sess   *session.Session
	keys   keyMap

	vp       viewport.Model
	input    textinput.Model
	entries  []thread.Entry
	selected int

	composing  bool
	replyTo    *int64
	submitting bool
	loading    bool

	vote   service.VoteState
	voting bool

	status string
	err    error
}

func newThreadModel(ctx context.Context, th *service.Thread, votes *service.VoteService, sess *session.Session, width, height int) *threadModel {
	ctx, cancel := context.WithCancel(ctx)
	ti := textinput.New()
	ti.CharLimit = service.MaxCommentLength
	m := &threadModel{
		ctx:    ctx,
		cancel: cancel,
		th:     th,
		votes:  votes,
		sess:   sess,
		keys:   defaultKeyMap(),
		vp:     viewport.New(width, viewportHeight(height)),
		input:  ti,
		vote:   service.VoteState{PostID: th.PostID()}, // Voted is learned on the first toggle
	}
	return m
}

func viewportHeight(h int) int {
	return max(h-4, 5)
}

func (m *threadModel) Init() tea.Cmd {
	m.loading = true
	th, ctx := m.th, m.ctx
	return func() tea.Msg {
		return threadLoadedMsg{th: th, err: th.Load(ctx)}
	}
}

// close cancels outstanding requests and detaches the thread
func (m *threadModel) close() {
	m.cancel()
	m.th.Close()
}

func (m *threadModel) selectedID() int64 {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return 0
	}
	return m.entries[m.selected].Node.ID()
}

func (m *threadModel) content() string {
	post := m.th.Post()
	if post == nil {
		return ""
	}
	now := time.Now()
	var b strings.Builder
	b.WriteString(formatter.PostHeader(post, now))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(pluralize(len(m.entries), "comment")))
	b.WriteString("\n")
	b.WriteString(m.th.Render(m.selectedID(), m.vp.Width))
	return b.String()
}

// refresh rebuilds the rendered thread while keeping the scroll offset
func (m *threadModel) refresh() {
	m.entries = thread.Flatten(m.th.Tree())
	if m.selected >= len(m.entries) {
		m.selected = max(len(m.entries)-1, 0)
	}
	service.Preserve(scroll{&m.vp}, func() {
		m.vp.SetContent(m.content())
	})
}

func (m *threadModel) owns(th *service.Thread) bool {
	return th == m.th
}

func (m *threadModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = viewportHeight(msg.Height)
		m.refresh()
		return nil

	case threadLoadedMsg:
		if !m.owns(msg.th) || errors.Is(msg.err, service.ErrThreadClosed) {
			return nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return nil
		}
		if post := m.th.Post(); post != nil {
			m.vote.Count = post.UpVotes
		}
		m.refresh()
		return nil

	case submitDoneMsg:
		if !m.owns(msg.th) || errors.Is(msg.err, service.ErrThreadClosed) {
			return nil
		}
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err
			return nil
		}
		m.err = nil
		m.status = "Comment posted"
		m.composing = false
		m.replyTo = nil
		m.input.Reset()
		m.input.Blur()
		m.refresh()
		return nil

	case voteDoneMsg:
		if !m.owns(msg.th) {
			return nil
		}
		m.voting = false
		m.vote = msg.state
		m.err = msg.err
		return nil

	case tea.KeyMsg:
		if m.composing {
			return m.updateCompose(msg)
		}
		return m.updateKeys(msg)
	}
	if m.composing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	return nil
}

func (m *threadModel) updateCompose(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		if m.submitting {
			return nil
		}
		m.composing = false
		m.replyTo = nil
		m.input.Blur()
		return nil
	case tea.KeyEnter:
		if m.submitting {
			return nil
		}
		return m.submit()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *threadModel) submit() tea.Cmd {
	content, err := service.ValidateComment(m.input.Value())
	if err != nil {
		m.err = err
		return nil
	}
	m.submitting = true
	m.status = ""
	th, ctx, sess, parent := m.th, m.ctx, m.sess, m.replyTo
	return func() tea.Msg {
		// The view restores its own offset when the result arrives
		return submitDoneMsg{th: th, err: th.Submit(ctx, sess, content, parent, nil)}
	}
}

func (m *threadModel) compose(parent *int64, prompt string) tea.Cmd {
	m.composing = true
	m.replyTo = parent
	m.input.Prompt = prompt
	m.input.Placeholder = "write a comment"
	m.err = nil
	m.status = ""
	m.input.Focus()
	return textinput.Blink
}

func (m *threadModel) updateKeys(msg tea.KeyMsg) tea.Cmd {
	// Any key dismisses the last error
	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Back):
		m.close()
		return func() tea.Msg { return closeThreadMsg{} }
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.refresh()
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.entries)-1 {
			m.selected++
			m.refresh()
		}
	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return cmd
	case key.Matches(msg, m.keys.Reply):
		if len(m.entries) == 0 {
			return nil
		}
		e := m.entries[m.selected]
		id := e.Node.ID()
		return m.compose(&id, "reply to "+e.Node.Comment.Author+": ")
	case key.Matches(msg, m.keys.Add):
		return m.compose(nil, "comment: ")
	case key.Matches(msg, m.keys.Vote):
		return m.toggleVote()
	}
	return nil
}

// toggleVote shows the flipped count at once; the response confirms or reverts it
func (m *threadModel) toggleVote() tea.Cmd {
	if m.voting || m.th.Post() == nil {
		return nil
	}
	st := m.vote
	m.voting = true
	m.vote.Voted = !m.vote.Voted
	if m.vote.Voted {
		m.vote.Count++
	} else {
		m.vote.Count--
	}
	th, ctx, sess, votes := m.th, m.ctx, m.sess, m.votes
	return func() tea.Msg {
		err := votes.Toggle(ctx, sess, &st)
		return voteDoneMsg{th: th, state: st, err: err}
	}
}

func (m *threadModel) View() string {
	var b strings.Builder
	if m.loading {
		b.WriteString(statusStyle.Render("Loading…"))
		b.WriteString("\n")
	}
	b.WriteString(m.vp.View())
	b.WriteString("\n")

	voted := ""
	if m.vote.Voted {
		voted = " (voted)"
	}
	line := metaStyle.Render("▲" + strconv.Itoa(m.vote.Count) + voted)
	switch {
	case m.err != nil:
		line += "  " + errorStyle.Render(errText(m.err))
	case m.submitting:
		line += "  " + statusStyle.Render("Posting…")
	case m.status != "":
		line += "  " + statusStyle.Render(m.status)
	}
	b.WriteString(line)
	b.WriteString("\n")

	if m.composing {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(helpLine(m.keys.Up, m.keys.Down, m.keys.Reply, m.keys.Add, m.keys.Vote, m.keys.Back))
	}
	return b.String()
}
