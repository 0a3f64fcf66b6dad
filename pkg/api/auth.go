package api

import (
	"context"
	"fmt"

	"github.com/RicardoYam/Meet/pkg/logger"
)

// Login authenticates with a username or email and a password
func (c *Client) Login(ctx context.Context, account, password string) (*LoginResponse, error) {
	logger.Debug("Attempting login", "account", account)

	resp, err := c.request(ctx).
		SetBody(LoginRequest{Account: account, Password: password}).
		Post("/login")
	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var loginResp LoginResponse
	if err := json.Unmarshal(resp.Body(), &loginResp); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}

	logger.Debug("Login successful", "username", loginResp.Username, "user_id", loginResp.UserID)
	return &loginResp, nil
}

// Register creates an account
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	logger.Debug("Registering account", "username", req.Username, "email", req.Email)

	resp, err := c.request(ctx).SetBody(req).Post("/register")
	return CheckResponse(resp, err)
}

// SendResetCode emails a password reset code
func (c *Client) SendResetCode(ctx context.Context, email string) error {
	logger.Debug("Requesting reset code", "email", email)

	resp, err := c.request(ctx).SetQueryParam("email", email).Get("/reset-password")
	return CheckResponse(resp, err)
}

// VerifyResetCode checks the code sent by SendResetCode
func (c *Client) VerifyResetCode(ctx context.Context, email, code string) error {
	logger.Debug("Verifying reset code", "email", email)

	resp, err := c.request(ctx).
		SetQueryParams(map[string]string{"email": email, "code": code}).
		Post("/reset-password")
	return CheckResponse(resp, err)
}

// ChangePassword sets a new password once the reset code has been verified
func (c *Client) ChangePassword(ctx context.Context, email, password string) error {
	logger.Debug("Changing password", "email", email)

	resp, err := c.request(ctx).
		SetQueryParams(map[string]string{"email": email, "password": password}).
		Put("/reset-password")
	return CheckResponse(resp, err)
}

// Health reports whether the backend is up
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.request(ctx).Get("/health")
	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var out HealthResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to decode health response: %w", err)
	}
	return &out, nil
}
