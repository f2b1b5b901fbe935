package portal

import (
	"context"

	"github.com/jrsteele09/internship-portal/users"
)

// LoginResult tells the caller which landing page fits the user's role
type LoginResult struct {
	UserID   int64            `json:"user_id"`
	Username string           `json:"username"`
	Status   users.RoleStatus `json:"status"`
}

// Message is the {"message": ...} acknowledgement returned by several endpoints
type Message struct {
	Message string `json:"message"`
}

type SignupRequest struct {
	FirstName      string `json:"first_name"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	RecaptchaToken string `json:"recaptchaToken,omitempty"`
}

func decodeInto[T any](resp *Response, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	var v T
	if err := resp.Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Login authenticates and stores the access and refresh cookies in the jar
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	return decodeInto[LoginResult](c.Post(ctx, PathAuthLogin, map[string]string{
		"username": username,
		"password": password,
	}))
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*Message, error) {
	return decodeInto[Message](c.Post(ctx, PathAuthSignup, req))
}

func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (*Message, error) {
	return decodeInto[Message](c.Post(ctx, PathAuthVerifyOTP, map[string]string{
		"email": email,
		"otp":   otp,
	}))
}

// Me returns the identity behind the current session
func (c *Client) Me(ctx context.Context) (*users.User, error) {
	return decodeInto[users.User](c.Get(ctx, PathAuthMe))
}

// Refresh asks for a new access cookie. Calling it directly never triggers the
// recovery path.
func (c *Client) Refresh(ctx context.Context) error {
	_, err := c.Post(ctx, PathAuthRefresh, nil)
	return err
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.Post(ctx, PathAuthLogout, nil)
	return err
}
