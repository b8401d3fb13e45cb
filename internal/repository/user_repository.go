package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Baaaki/portfolio/internal/models"
	"github.com/Baaaki/portfolio/internal/utils"
	"gorm.io/gorm"
)

// UserRepository is the credential store. Passwords are hashed here, so
// plaintext never reaches the database.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create hashes password and inserts a new user. An empty role means
// models.RoleUser.
func (r *UserRepository) Create(ctx context.Context, username, password string, role models.Role) (*models.User, error) {
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	existing, err := r.GetByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, ErrDuplicateUsername
	}
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	// The unique index still decides when two registrations race.
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}
