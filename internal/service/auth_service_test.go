package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Baaaki/portfolio/internal/models"
	"github.com/Baaaki/portfolio/internal/repository"
	"github.com/Baaaki/portfolio/internal/service"
	"github.com/Baaaki/portfolio/internal/testutil"
	"github.com/Baaaki/portfolio/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testSecret = "test-secret-key"

type AuthServiceTestSuite struct {
	suite.Suite
	testDB      *testutil.TestDatabase
	authService *service.AuthService
	ctx         context.Context
}

func (s *AuthServiceTestSuite) SetupSuite() {
	s.testDB = testutil.SetupTestDatabase(s.T())
	s.authService = service.NewAuthService(repository.NewUserRepository(s.testDB.DB), testSecret, 0)
	s.ctx = context.Background()
}

func (s *AuthServiceTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *AuthServiceTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *AuthServiceTestSuite) TestRegisterThenLogin() {
	user, err := s.authService.Register(s.ctx, "alice", "secret1")
	s.Require().NoError(err)
	s.Equal(models.RoleUser, user.Role)

	token, loggedIn, err := s.authService.Login(s.ctx, "alice", "secret1")
	s.Require().NoError(err)
	s.Equal(user.ID, loggedIn.ID)

	claims, err := s.authService.Verify(token)
	s.Require().NoError(err)
	s.Equal("alice", claims.Username)
	s.Equal(user.ID, claims.UserID)
	s.Equal(models.RoleUser, claims.Role)
	s.Nil(claims.ExpiresAt)
}

func (s *AuthServiceTestSuite) TestRegisterTrimsUsername() {
	user, err := s.authService.Register(s.ctx, "  bob  ", "secret1")
	s.Require().NoError(err)
	s.Equal("bob", user.Username)
}

func (s *AuthServiceTestSuite) TestRegisterDuplicate() {
	_, err := s.authService.Register(s.ctx, "alice", "secret1")
	s.Require().NoError(err)

	_, err = s.authService.Register(s.ctx, "alice", "secret2")
	s.ErrorIs(err, service.ErrUsernameAlreadyExists)
}

func (s *AuthServiceTestSuite) TestRegisterValidation() {
	testCases := []struct {
		name     string
		username string
		password string
	}{
		{"Empty username", "", "secret1"},
		{"Blank username", "   ", "secret1"},
		{"Short username", "ab", "secret1"},
		{"Long username", string(make([]byte, 51)), "secret1"},
		{"Empty password", "alice", ""},
		{"Short password", "alice", "12345"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.authService.Register(s.ctx, tc.username, tc.password)
			s.True(service.IsValidationError(err), "expected validation error, got %v", err)
		})
	}
}

func (s *AuthServiceTestSuite) TestLoginFailuresAreUniform() {
	testutil.DefaultTestUser(s.T(), s.testDB.DB)

	_, _, wrongPassword := s.authService.Login(s.ctx, testutil.UserUsername, "not-the-password")
	_, _, unknownUser := s.authService.Login(s.ctx, "nobody", "not-the-password")

	s.ErrorIs(wrongPassword, service.ErrInvalidCredentials)
	s.ErrorIs(unknownUser, service.ErrInvalidCredentials)
	s.Equal(wrongPassword.Error(), unknownUser.Error())
}

func (s *AuthServiceTestSuite) TestVerify() {
	s.Run("Empty token", func() {
		_, err := s.authService.Verify("")
		s.ErrorIs(err, service.ErrUnauthenticated)
	})
	s.Run("Garbage", func() {
		_, err := s.authService.Verify("garbage")
		s.ErrorIs(err, service.ErrInvalidToken)
	})
	s.Run("Other secret", func() {
		user := &models.User{ID: uuid.New(), Username: "eve", Role: models.RoleAdmin}
		token, err := utils.GenerateToken(user, "some-other-secret", 0)
		s.Require().NoError(err)

		_, err = s.authService.Verify(token)
		s.ErrorIs(err, service.ErrInvalidToken)
	})
}

func (s *AuthServiceTestSuite) TestRequireRole() {
	admin := &utils.Claims{UserID: uuid.New(), Username: "admin", Role: models.RoleAdmin}
	user := &utils.Claims{UserID: uuid.New(), Username: "alice", Role: models.RoleUser}

	s.NoError(s.authService.RequireRole(admin, models.RoleAdmin))
	s.ErrorIs(s.authService.RequireRole(user, models.RoleAdmin), service.ErrForbidden)
	s.ErrorIs(s.authService.RequireRole(nil, models.RoleAdmin), service.ErrUnauthenticated)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

type failingUserStore struct{ err error }

func (f failingUserStore) Create(context.Context, string, string, models.Role) (*models.User, error) {
	return nil, f.err
}

func (f failingUserStore) GetByUsername(context.Context, string) (*models.User, error) {
	return nil, f.err
}

func TestAuthService_StoreFailureIsNotInvalidCredentials(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := service.NewAuthService(failingUserStore{err: storeErr}, testSecret, 0)

	_, _, err := svc.Login(context.Background(), "admin", "password123")
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_ExpiringTokens(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)
	testutil.DefaultAdminUser(t, testDB.DB)

	svc := service.NewAuthService(repository.NewUserRepository(testDB.DB), testSecret, time.Hour)
	token, _, err := svc.Login(context.Background(), testutil.AdminUsername, testutil.AdminPassword)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}
