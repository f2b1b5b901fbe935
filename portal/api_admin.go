package portal

import (
	"context"

	"github.com/jrsteele09/internship-portal/users"
)

// UserUpdate is a partial account update; nil fields are left unchanged
type UserUpdate struct {
	IsActive *bool `json:"is_active,omitempty"`
	IsStaff  *bool `json:"is_staff,omitempty"`
}

// ListUsers returns every account, newest first
func (c *Client) ListUsers(ctx context.Context) ([]users.User, error) {
	list, err := decodeInto[[]users.User](c.Get(ctx, PathAdminUsers))
	if err != nil {
		return nil, err
	}
	return *list, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*users.User, error) {
	return decodeInto[users.User](c.Get(ctx, adminUserPath(id)))
}

// SetUserActive activates (true) or blocks (false) an account
func (c *Client) SetUserActive(ctx context.Context, id int64, active bool) (*users.User, error) {
	return c.UpdateUser(ctx, id, UserUpdate{IsActive: &active})
}

func (c *Client) UpdateUser(ctx context.Context, id int64, update UserUpdate) (*users.User, error) {
	return decodeInto[users.User](c.Patch(ctx, adminUserPath(id), update))
}
