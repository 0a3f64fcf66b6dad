// Package auth recovers from a rejected or missing session by logging in again.
package auth

import (
	"context"
	"errors"

	clierrors "github.com/RicardoYam/Meet/pkg/errors"
	"github.com/RicardoYam/Meet/pkg/logger"
	"github.com/RicardoYam/Meet/pkg/prompter"
	"github.com/RicardoYam/Meet/pkg/session"
)

// ErrDeclined is returned when the user chooses not to log in again
var ErrDeclined = errors.New("login declined")

// LoginFunc authenticates and persists a new session
type LoginFunc func(ctx context.Context, account, password string) (*session.Session, error)

// SessionRecovery handles session recovery. The backend issues no refresh
// tokens, so recovering always means asking for the password again.
type SessionRecovery struct {
	login  LoginFunc
	prompt *prompter.Prompter
}

// NewSessionRecovery creates a new session recovery handler
func NewSessionRecovery(login LoginFunc, p *prompter.Prompter) *SessionRecovery {
	return &SessionRecovery{login: login, prompt: p}
}

// IsSessionError checks if an error is a session-related error
func IsSessionError(err error) bool {
	if err == nil {
		return false
	}
	return clierrors.IsType(err, clierrors.ErrorTypeAuthRequired) ||
		clierrors.IsType(err, clierrors.ErrorTypeSessionExpired) ||
		clierrors.IsType(err, clierrors.ErrorTypeUnauthorized)
}

// RecoverSession offers to log in again, reusing the stale session's username when there is one
func (sr *SessionRecovery) RecoverSession(ctx context.Context, stale *session.Session) (*session.Session, error) {
	ok, err := sr.prompt.Confirm("You need to log in to do that. Log in now?")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDeclined
	}

	var account string
	if stale != nil {
		account = stale.Username
	}
	if account == "" {
		if account, err = sr.prompt.String("Username or email: "); err != nil {
			return nil, err
		}
	}
	password, err := sr.prompt.Password("Password: ")
	if err != nil {
		return nil, err
	}
	return sr.login(ctx, account, password)
}

// Do runs fn with sess. When fn fails for lack of a usable session, the user is asked
// to log in and fn runs once more with the new session.
func (sr *SessionRecovery) Do(ctx context.Context, sess *session.Session, fn func(*session.Session) error) error {
	err := fn(sess)
	if !IsSessionError(err) {
		return err
	}

	logger.Debug("Handling session error with recovery", "error", err)
	fresh, recoveryErr := sr.RecoverSession(ctx, sess)
	if errors.Is(recoveryErr, ErrDeclined) {
		return err
	}
	if recoveryErr != nil {
		logger.Error("Session recovery failed", "error", recoveryErr)
		return recoveryErr
	}
	return fn(fresh)
}
