// Package tui is the interactive feed and thread browser.
package tui

import (
	"context"

	"github.com/RicardoYam/Meet/pkg/logger"
	"github.com/RicardoYam/Meet/pkg/service"
	"github.com/RicardoYam/Meet/pkg/session"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Deps are the services the browser talks to
type Deps struct {
	Feed    *service.FeedService
	Threads *service.ThreadService
	Votes   *service.VoteService
	// Session may be nil; writing then fails with an authentication error
	Session *session.Session
	// Query is the initial listing
	Query service.ListOptions
}

// App switches between the feed and an open thread
type App struct {
	ctx  context.Context
	deps Deps
	keys keyMap

	feed   *feedModel
	thread *threadModel

	width, height int
}

// New builds the browser. ctx bounds every request it makes.
func New(ctx context.Context, deps Deps) *App {
	return &App{
		ctx:  ctx,
		deps: deps,
		keys: defaultKeyMap(),
		feed: newFeedModel(ctx, deps.Feed, deps.Query),
	}
}

func (a *App) Init() tea.Cmd {
	return a.feed.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		cmd := a.feed.Update(msg)
		if a.thread != nil {
			cmd = tea.Batch(cmd, a.thread.Update(msg))
		}
		return a, cmd

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Force) {
			return a, a.quit()
		}
		if a.thread != nil {
			return a, a.thread.Update(msg)
		}
		if !a.feed.searching && key.Matches(msg, a.keys.Quit) {
			return a, a.quit()
		}
		return a, a.feed.Update(msg)

	case openPostMsg:
		if a.thread != nil {
			a.thread.close()
		}
		logger.Debug("Opening thread", "post_id", msg.id)
		a.thread = newThreadModel(a.ctx, a.deps.Threads.Open(msg.id), a.deps.Votes, a.deps.Session, a.width, a.height)
		return a, a.thread.Init()

	case closeThreadMsg:
		a.thread = nil
		return a, nil

	case feedLoadedMsg:
		return a, a.feed.Update(msg)

	case threadLoadedMsg, submitDoneMsg, voteDoneMsg:
		if a.thread == nil {
			return a, nil
		}
		return a, a.thread.Update(msg)
	}

	// Cursor blinks and the like go to whichever input is active
	if a.thread != nil {
		return a, a.thread.Update(msg)
	}
	return a, a.feed.Update(msg)
}

func (a *App) quit() tea.Cmd {
	if a.thread != nil {
		a.thread.close()
	}
	a.feed.acc.Close()
	return tea.Quit
}

func (a *App) View() string {
	if a.thread != nil {
		return a.thread.View()
	}
	return a.feed.View()
}

// Run starts the browser in the alternate screen and blocks until it exits
func Run(ctx context.Context, deps Deps) error {
	app := New(ctx, deps)
	_, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	app.quit()
	return err
}
