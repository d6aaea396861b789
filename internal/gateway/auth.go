package gateway

import (
	"context"
	"fmt"
	"net/http"

	"taqueando-console/internal/domain"
)

// Login exchanges credentials for a token and stores it in the session.
func (c *Client) Login(ctx context.Context, email, password, captchaToken string) error {
	body := map[string]string{
		"email":        email,
		"password":     password,
		"captchaToken": captchaToken,
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, call{method: http.MethodPost, path: "/auth/login", body: body}, &resp); err != nil {
		c.session.Clear()
		return fmt.Errorf("login failed: %w", err)
	}
	if resp.Token == "" {
		c.session.Clear()
		return ErrMissingToken
	}

	c.session.SetToken(resp.Token)
	return nil
}

// VerifyToken asks the backend for the user behind the current token and
// records it in the session. A rejected token clears the session.
func (c *Client) VerifyToken(ctx context.Context) (*domain.User, error) {
	var resp struct {
		User *domain.User `json:"user"`
	}
	if err := c.do(ctx, call{method: http.MethodPost, path: "/auth/verify-token", auth: true}, &resp); err != nil {
		c.session.Clear()
		return nil, fmt.Errorf("token verification failed: %w", err)
	}
	if resp.User == nil {
		c.session.Clear()
		return nil, fmt.Errorf("token verification failed: %w", ErrInvalidPayload)
	}

	c.session.SetUser(*resp.User)
	return resp.User, nil
}

// UpdatePassword changes the password of the logged in user.
func (c *Client) UpdatePassword(ctx context.Context, current, next string) (string, error) {
	body := map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, call{method: http.MethodPost, path: "/auth/update-password", body: body, auth: true}, &resp); err != nil {
		return "", fmt.Errorf("could not update password: %w", err)
	}
	return resp.Message, nil
}
