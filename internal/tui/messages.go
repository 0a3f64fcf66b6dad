package tui

import (
	clierrors "github.com/RicardoYam/Meet/pkg/errors"
	"github.com/RicardoYam/Meet/pkg/service"
)

// feedLoadedMsg reports a finished page fetch for the reset generation gen
type feedLoadedMsg struct {
	gen uint64
	err error
}

// Thread messages carry the thread they belong to; anything for a closed thread is dropped
type threadLoadedMsg struct {
	th  *service.Thread
	err error
}

type submitDoneMsg struct {
	th  *service.Thread
	err error
}

type voteDoneMsg struct {
	th    *service.Thread
	state service.VoteState
	err   error
}

// errText is the one-line form of err for the status bar
func errText(err error) string {
	ce := clierrors.CategorizeError(err)
	if ce.HasSuggestion() {
		return ce.Message + ". " + ce.Suggestion
	}
	return ce.Message
}

// openPostMsg asks the app to show a post's thread
type openPostMsg struct {
	id int64
}

// closeThreadMsg returns from the thread to the feed
type closeThreadMsg struct{}
