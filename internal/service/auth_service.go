package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/Baaaki/portfolio/internal/models"
	"github.com/Baaaki/portfolio/internal/repository"
	"github.com/Baaaki/portfolio/internal/utils"
	"github.com/Baaaki/portfolio/pkg/logger"
	"go.uber.org/zap"
)

// UserStore is the credential store the auth service depends on.
type UserStore interface {
	Create(ctx context.Context, username, password string, role models.Role) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type AuthService struct {
	users         UserStore
	jwtSecret     string
	jwtExpiration time.Duration

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService builds the service. A zero jwtExpiration issues tokens
// without expiry.
func NewAuthService(users UserStore, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	start := time.Now()
	username = strings.TrimSpace(username)

	if err := validateRegisterInput(username, password); err != nil {
		logger.Log.Warn("Registration validation failed",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, err
	}

	user, err := s.users.Create(ctx, username, password, models.RoleUser)
	if err != nil {
		if errors.Is(err, ErrUsernameAlreadyExists) {
			logger.Log.Warn("Username already exists", zap.String("username", username))
		} else {
			logger.Log.Error("Failed to create user",
				zap.String("username", username),
				zap.Error(err),
			)
		}
		return nil, err
	}

	logger.Log.Info("User registered successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.Duration("total_duration", time.Since(start)),
	)

	return user, nil
}

// Login returns a signed token. Unknown usernames and wrong passwords both
// yield ErrInvalidCredentials after the same amount of hashing work.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	start := time.Now()

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			logger.Log.Error("Failed to get user by username",
				zap.String("username", username),
				zap.Error(err),
			)
			return "", nil, err
		}
		user = nil
	}

	hash := s.fallbackHash()
	if user != nil {
		hash = user.PasswordHash
	}

	valid := false
	if hash != "" {
		valid, err = utils.VerifyPassword(password, hash)
		if err != nil {
			logger.Log.Error("Failed to verify password",
				zap.String("username", username),
				zap.Error(err),
			)
			return "", nil, err
		}
	}

	if user == nil || !valid {
		logger.Log.Warn("Login failed",
			zap.String("username", username),
			zap.Bool("user_exists", user != nil),
		)
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate JWT token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return "", nil, err
	}

	logger.Log.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
		zap.Duration("total_duration", time.Since(start)),
	)

	return token, user, nil
}

// Verify parses a bearer token into claims.
func (s *AuthService) Verify(tokenString string) (*utils.Claims, error) {
	if tokenString == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := utils.ValidateToken(tokenString, s.jwtSecret)
	if err != nil {
		logger.Log.Debug("Token rejected", zap.Error(err))
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RequireRole fails closed: no claims means unauthenticated, any other role
// means forbidden.
func (s *AuthService) RequireRole(claims *utils.Claims, role models.Role) error {
	if claims == nil {
		return ErrUnauthenticated
	}
	if claims.Role != role {
		return ErrForbidden
	}
	return nil
}

// fallbackHash is verified against when the username does not exist.
func (s *AuthService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		h, err := utils.HashPassword("portfolio-login-timing-equalizer")
		if err != nil {
			logger.Log.Error("Failed to build fallback hash", zap.Error(err))
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

func validateRegisterInput(username, password string) error {
	switch n := utf8.RuneCountInString(username); {
	case n == 0:
		return newValidationError("username", "username is required")
	case n < 3:
		return newValidationError("username", "username must be at least 3 characters")
	case n > 50:
		return newValidationError("username", "username must be at most 50 characters")
	}

	switch n := utf8.RuneCountInString(password); {
	case n == 0:
		return newValidationError("password", "password is required")
	case n < 6:
		return newValidationError("password", "password must be at least 6 characters")
	case n > 128:
		return newValidationError("password", "password too long")
	}

	return nil
}
