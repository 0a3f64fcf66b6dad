package tui

import (
	"context"
	"testing"

	"github.com/RicardoYam/Meet/internal/blogtest"
	"github.com/RicardoYam/Meet/pkg/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

// exec runs a command the way the program would and returns its message
func exec(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func newDeps(srv *blogtest.Server, pageSize int) Deps {
	c := srv.Client()
	return Deps{
		Feed:    service.NewFeedService(c, pageSize),
		Threads: service.NewThreadService(c),
		Votes:   service.NewVoteService(c),
	}
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
