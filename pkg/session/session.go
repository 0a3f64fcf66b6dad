// Package session holds the logged-in identity that authenticated calls take explicitly.
package session

import (
	"time"

	"github.com/RicardoYam/Meet/pkg/credentials"
	clierrors "github.com/RicardoYam/Meet/pkg/errors"
	"github.com/RicardoYam/Meet/pkg/logger"
)

// Session is the current user's token and identity
type Session struct {
	Token     string
	TokenType string
	UserID    int64
	Username  string
	Email     string
	Avatar    string
	ExpiresAt time.Time
}

// Valid reports whether s can be used for an authenticated request
func (s *Session) Valid() bool {
	if s == nil || s.Token == "" || s.UserID == 0 {
		return false
	}
	return s.ExpiresAt.IsZero() || time.Now().Before(s.ExpiresAt)
}

// Authorization returns the Authorization header value for s
func (s *Session) Authorization() string {
	tokenType := s.TokenType
	if tokenType == "" {
		tokenType = "Bearer "
	}
	return tokenType + s.Token
}

// FromCredentials builds a session from stored credentials, nil when there are none
func FromCredentials(c *credentials.Credentials) *Session {
	if c == nil || c.Token == "" {
		return nil
	}
	return &Session{
		Token:     c.Token,
		TokenType: c.TokenType,
		UserID:    c.UserID,
		Username:  c.Username,
		Email:     c.Email,
		Avatar:    c.Avatar,
		ExpiresAt: c.ExpiresAt,
	}
}

// Load reads the session from the credentials file. A missing file yields a nil session.
func Load() (*Session, error) {
	creds, err := credentials.Load()
	if err != nil {
		return nil, err
	}
	return FromCredentials(creds), nil
}

// Require returns s if it is usable, or an auth_required error
func Require(s *Session) (*Session, error) {
	if s == nil {
		return nil, clierrors.AuthRequired()
	}
	if !s.Valid() {
		logger.Debug("Stored session is not usable", "user_id", s.UserID, "expires_at", s.ExpiresAt)
		if !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt) {
			return nil, clierrors.SessionExpiredError()
		}
		return nil, clierrors.AuthRequired()
	}
	return s, nil
}

// Current loads the stored session and requires it
func Current() (*Session, error) {
	s, err := Load()
	if err != nil {
		return nil, err
	}
	return Require(s)
}
