package service

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/RicardoYam/Meet/pkg/api"
	"github.com/RicardoYam/Meet/pkg/credentials"
	clierrors "github.com/RicardoYam/Meet/pkg/errors"
	"github.com/RicardoYam/Meet/pkg/logger"
	"github.com/RicardoYam/Meet/pkg/output"
	"github.com/RicardoYam/Meet/pkg/prompter"
	"github.com/RicardoYam/Meet/pkg/session"
)

// SessionLifetime is how long a stored login is trusted before asking again
const SessionLifetime = 7 * 24 * time.Hour

// MinPasswordLength matches the sign-up form
const MinPasswordLength = 6

// AuthService logs users in and out
type AuthService struct {
	client *api.Client
	prompt *prompter.Prompter
}

// NewAuthService creates a new auth service. A nil prompter reads the terminal.
func NewAuthService(client *api.Client, p *prompter.Prompter) *AuthService {
	return &AuthService{client: client, prompt: p}
}

// Login authenticates and stores the credentials
func (as *AuthService) Login(ctx context.Context, account, password string) (*session.Session, error) {
	if account == "" {
		return nil, clierrors.ValidationError("account", "username or email is required")
	}
	if password == "" {
		return nil, clierrors.ValidationError("password", "is required")
	}

	resp, err := as.client.Login(ctx, account, password)
	if err != nil {
		return nil, err
	}

	creds := &credentials.Credentials{
		Token:     resp.Token,
		TokenType: resp.TokenType,
		UserID:    resp.UserID,
		Username:  resp.Username,
		Email:     resp.Email,
		Avatar:    resp.Avatar,
		ExpiresAt: now().Add(SessionLifetime),
	}
	if err := credentials.Save(creds); err != nil {
		return nil, fmt.Errorf("failed to save credentials: %w", err)
	}
	logger.Info("Logged in", "user_id", creds.UserID, "username", creds.Username)
	return session.FromCredentials(creds), nil
}

// LoginInteractive prompts for whatever is missing and logs in
func (as *AuthService) LoginInteractive(ctx context.Context, account string) error {
	p := orDefault(as.prompt)
	var err error
	if account == "" {
		if account, err = p.String("Username or email: "); err != nil {
			return err
		}
	}
	password, err := p.Password("Password: ")
	if err != nil {
		return err
	}

	sess, err := as.Login(ctx, account, password)
	if err != nil {
		return err
	}
	output.PrintSuccess("✓ Logged in as %s", sess.Username)
	return nil
}

// ValidateSignup checks the sign-up fields locally
func ValidateSignup(req api.RegisterRequest) error {
	if req.Username == "" {
		return clierrors.ValidationError("username", "is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return clierrors.ValidationError("email", "is not a valid address")
	}
	if len(req.Password) < MinPasswordLength {
		return clierrors.ValidationError("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	return nil
}

// Signup registers a new account
func (as *AuthService) Signup(ctx context.Context, req api.RegisterRequest) error {
	if err := ValidateSignup(req); err != nil {
		return err
	}
	return as.client.Register(ctx, req)
}

// SignupInteractive prompts for the account details and registers
func (as *AuthService) SignupInteractive(ctx context.Context) error {
	p := orDefault(as.prompt)
	var req api.RegisterRequest
	var err error
	if req.Username, err = p.String("Username: "); err != nil {
		return err
	}
	if req.Email, err = p.String("Email: "); err != nil {
		return err
	}
	if req.Password, err = p.Password("Password: "); err != nil {
		return err
	}
	confirm, err := p.Password("Confirm password: ")
	if err != nil {
		return err
	}
	if confirm != req.Password {
		return clierrors.ValidationError("password", "passwords do not match")
	}

	if err := as.Signup(ctx, req); err != nil {
		return err
	}
	output.PrintSuccess("✓ Account created. Run 'meet-cli auth login' to sign in.")
	return nil
}

// Logout removes the stored credentials
func (as *AuthService) Logout() error {
	if err := credentials.Delete(); err != nil {
		return err
	}
	output.PrintSuccess("✓ Logged out")
	return nil
}

// WhoAmI prints the stored session
func (as *AuthService) WhoAmI() error {
	sess, err := session.Current()
	if err != nil {
		return err
	}
	return output.PrintRecord("Current user", map[string]interface{}{
		"id":       sess.UserID,
		"username": sess.Username,
		"email":    sess.Email,
		"expires":  output.Ago(sess.ExpiresAt, now()),
	})
}

// ResetPassword runs the three-step reset: send a code, verify it, set the new password
func (as *AuthService) ResetPassword(ctx context.Context, email string) error {
	p := orDefault(as.prompt)
	var err error
	if email == "" {
		if email, err = p.String("Email: "); err != nil {
			return err
		}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return clierrors.ValidationError("email", "is not a valid address")
	}

	if err := as.client.SendResetCode(ctx, email); err != nil {
		return err
	}
	output.PrintInfo("A verification code was sent to %s", email)

	code, err := p.String("Verification code: ")
	if err != nil {
		return err
	}
	if err := as.client.VerifyResetCode(ctx, email, code); err != nil {
		return err
	}

	password, err := p.Password("New password: ")
	if err != nil {
		return err
	}
	if len(password) < MinPasswordLength {
		return clierrors.ValidationError("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	if err := as.client.ChangePassword(ctx, email, password); err != nil {
		return err
	}
	output.PrintSuccess("✓ Password changed. Run 'meet-cli auth login' to sign in.")
	return nil
}
