package core

import (
	"context"
	"errors"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User is an authenticable principal. The credential hash never leaves the
// store; User carries the username and granted roles only.
type User struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

var (
	ErrConflictedUser = errors.New("user already exists")
	ErrUnknownRole    = errors.New("unknown role")
)

type UserStore interface {
	// CreateUser provisions a principal with the given roles. The password is
	// hashed before it is stored.
	CreateUser(ctx context.Context, username, password string, roles ...string) error

	// GetUserByUsername returns the principal with its granted roles, or nil
	// when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// ComparePassword reports whether password matches the stored credential
	// hash of username.
	ComparePassword(ctx context.Context, username, password string) (bool, error)

	// HasAdmin reports whether any principal holds the ADMIN role.
	HasAdmin(ctx context.Context) (bool, error)
}
