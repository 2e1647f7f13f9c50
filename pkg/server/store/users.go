package store

import (
	"context"
	"errors"

	"github.com/doodlesbykumbi/shiplog/pkg/model"
)

var (
	// ErrUserExists is returned when registering a taken username.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when no user has the given username.
	ErrUserNotFound = errors.New("user not found")
)

// UsersStore abstracts account storage.
type UsersStore interface {
	// CreateUser stores a new account. passwordHash must already be hashed.
	// Returns ErrUserExists if the username is taken.
	CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error)

	// FindUserByUsername returns ErrUserNotFound if there is no such user.
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
}
