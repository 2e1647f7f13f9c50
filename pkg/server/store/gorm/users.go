package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/shiplog/pkg/model"
	"github.com/doodlesbykumbi/shiplog/pkg/server/store"
)

var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// CreateUser checks for the username first so the common case never hits the
// unique constraint; a concurrent registration still maps to ErrUserExists.
func (s *UsersStore) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, store.ErrUserExists
	}

	user := &model.User{Username: username, Password: passwordHash}
	if err := db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// FindUserByUsername looks a user up by exact username.
func (s *UsersStore) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
