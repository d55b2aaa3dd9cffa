package store

import (
	"context"
	"errors"
	"strings"

	"DirectChat/models"

	"gorm.io/gorm"
)

// AccountStore persists users and checks credentials.
type AccountStore struct {
	db *gorm.DB
}

func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

// Register creates a user with a bcrypt hash of password.
func (s *AccountStore) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, validationErr("username and password are required")
	}

	var exists models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&exists).Error
	switch {
	case err == nil:
		return nil, ErrConflict
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, storeErr("lookup user", err)
	}

	user := models.User{Username: username}
	if err := user.SetPassword(password); err != nil {
		return nil, storeErr("hash password", err)
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// lost a race against a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, storeErr("create user", err)
	}
	return &user, nil
}

// Authenticate returns the user when password matches the stored hash.
// The name is matched as given, so an unknown or blank-looking name is
// simply not found.
func (s *AccountStore) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, validationErr("username and password are required")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, storeErr("lookup user", err)
	}
	if !user.CheckPassword(password) {
		return nil, ErrUnauthorized
	}
	return &user, nil
}

// FindByID loads a user by primary key.
func (s *AccountStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, storeErr("load user", err)
	}
	return &user, nil
}
