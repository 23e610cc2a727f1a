package api

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/productbazar/bazaaradmin/internal/roles"
)

// AdminTimeout bounds the directory load and both role mutations.
const AdminTimeout = 15 * time.Second

// ListAllUsers issues GET /admin/users/all as a priority request.
func (c *Client) ListAllUsers(ctx context.Context) ([]User, error) {
	var resp Response[UserList]
	if err := c.Get(ctx, "/admin/users/all", nil, &resp, Priority(), Timeout(AdminTimeout)); err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &APIError{Status: 200, Message: resp.Message}
	}
	if resp.Data.Users == nil {
		return []User{}, nil
	}
	return resp.Data.Users, nil
}

// UpdateUserRole issues PUT /admin/users/{id}/role.
func (c *Client) UpdateUserRole(ctx context.Context, userID string, role roles.Role) error {
	var resp Response[json.RawMessage]
	path := "/admin/users/" + url.PathEscape(userID) + "/role"
	if err := c.Put(ctx, path, UpdateRoleRequest{Role: role}, &resp, Timeout(AdminTimeout)); err != nil {
		return err
	}
	if !resp.OK() {
		return &APIError{Status: 200, Message: resp.Message}
	}
	return nil
}

// UpdateSecondaryRoles issues PUT /admin/users/{id}/secondary-roles with the
// given roles in order.
func (c *Client) UpdateSecondaryRoles(ctx context.Context, userID string, secondary []roles.Role) error {
	if secondary == nil {
		secondary = []roles.Role{}
	}
	var resp Response[json.RawMessage]
	path := "/admin/users/" + url.PathEscape(userID) + "/secondary-roles"
	body := UpdateSecondaryRolesRequest{SecondaryRoles: secondary}
	if err := c.Put(ctx, path, body, &resp, Timeout(AdminTimeout)); err != nil {
		return err
	}
	if !resp.OK() {
		return &APIError{Status: 200, Message: resp.Message}
	}
	return nil
}

// CurrentUser issues GET /auth/me.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var resp Response[CurrentUser]
	if err := c.Get(ctx, "/auth/me", nil, &resp, Priority(), Timeout(AdminTimeout)); err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &APIError{Status: 200, Message: resp.Message}
	}
	return &resp.Data.User, nil
}
