package credentials

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/RicardoYam/Meet/pkg/config"
)

// TestCredentialsIsExpired validates token expiration check
func TestCredentialsIsExpired(t *testing.T) {
	testCases := []struct {
		expiresAt time.Time
		expect    bool
		name      string
	}{
		{time.Now().Add(-1 * time.Hour), true, "past expiration"},
		{time.Now().Add(1 * time.Hour), false, "future expiration"},
		{time.Now().Add(-1 * time.Minute), true, "recently expired"},
		{time.Time{}, false, "no known expiry"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			creds := &Credentials{
				Token:     "test_token",
				ExpiresAt: tc.expiresAt,
			}

			if result := creds.IsExpired(); result != tc.expect {
				t.Errorf("Expected IsExpired=%v, got %v", tc.expect, result)
			}
		})
	}
}

// TestCredentialsIsValid validates credential validity check
func TestCredentialsIsValid(t *testing.T) {
	testCases := []struct {
		token     string
		userID    int64
		expiresAt time.Time
		expect    bool
		name      string
	}{
		{"valid_token", 7, time.Now().Add(1 * time.Hour), true, "valid credentials"},
		{"valid_token", 7, time.Time{}, true, "valid without expiry"},
		{"", 7, time.Now().Add(1 * time.Hour), false, "empty token"},
		{"valid_token", 0, time.Now().Add(1 * time.Hour), false, "missing user id"},
		{"valid_token", 7, time.Now().Add(-1 * time.Hour), false, "expired token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			creds := &Credentials{Token: tc.token, UserID: tc.userID, ExpiresAt: tc.expiresAt}
			if result := creds.IsValid(); result != tc.expect {
				t.Errorf("Expected IsValid=%v, got %v", tc.expect, result)
			}
		})
	}
}

func TestSaveLoadDelete(t *testing.T) {
	tempDir := t.TempDir()
	if err := config.Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("config init: %v", err)
	}

	creds, err := Load()
	if err != nil || creds != nil {
		t.Fatalf("Expected no credentials before login, got %v, %v", creds, err)
	}

	want := &Credentials{Token: "abc", TokenType: "Bearer ", UserID: 42, Username: "ricardo", Email: "r@example.com"}
	if err := Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(config.GetCredentialsPath())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions, got %v", info.Mode().Perm())
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Token != "abc" || got.UserID != 42 || got.Username != "ricardo" {
		t.Errorf("Loaded credentials mismatch: %+v", got)
	}

	if err := Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := Delete(); err != nil {
		t.Errorf("Second Delete should be a no-op, got %v", err)
	}
}
