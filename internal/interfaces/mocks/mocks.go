package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"social-server/internal/models"
)

// Mock UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
func (m *UserRepository) GetUserByHashedID(ctx context.Context, hashed string) (*models.User, error) {
	args := m.Called(ctx, hashed)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
func (m *UserRepository) GetUserBySecondaryToken(ctx context.Context, hashedToken string) (*models.User, error) {
	args := m.Called(ctx, hashedToken)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
func (m *UserRepository) UpdateMetadata(ctx context.Context, username string, metadata models.UserMetadata) error {
	args := m.Called(ctx, username, metadata)
	return args.Error(0)
}
func (m *UserRepository) UpdateRole(ctx context.Context, username string, role models.Role) error {
	args := m.Called(ctx, username, role)
	return args.Error(0)
}

// Mock FollowRepository
type FollowRepository struct {
	mock.Mock
}

func (m *FollowRepository) GetFollow(ctx context.Context, user, isFollowing string) (*models.Log, error) {
	args := m.Called(ctx, user, isFollowing)
	log, _ := args.Get(0).(*models.Log)
	return log, args.Error(1)
}
func (m *FollowRepository) CreateFollow(ctx context.Context, follow models.UserFollow) (*models.Log, error) {
	args := m.Called(ctx, follow)
	log, _ := args.Get(0).(*models.Log)
	return log, args.Error(1)
}
func (m *FollowRepository) DeleteFollow(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *FollowRepository) ListFollowers(ctx context.Context, user string, limit, offset int) ([]models.Log, error) {
	args := m.Called(ctx, user, limit, offset)
	logs, _ := args.Get(0).([]models.Log)
	return logs, args.Error(1)
}
func (m *FollowRepository) ListFollowing(ctx context.Context, user string, limit, offset int) ([]models.Log, error) {
	args := m.Called(ctx, user, limit, offset)
	logs, _ := args.Get(0).([]models.Log)
	return logs, args.Error(1)
}
func (m *FollowRepository) CountFollowers(ctx context.Context, user string) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}
func (m *FollowRepository) CountFollowing(ctx context.Context, user string) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}

// Mock UserCache
type UserCache struct {
	mock.Mock
}

func (m *UserCache) GetUser(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
func (m *UserCache) SetUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *UserCache) DeleteUser(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

// Mock IdentityHasher
type IdentityHasher struct {
	mock.Mock
}

func (m *IdentityHasher) Hash(value string) string {
	args := m.Called(value)
	return args.String(0)
}
