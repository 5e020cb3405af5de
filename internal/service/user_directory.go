package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"social-server/internal/interfaces"
	"social-server/internal/models"
)

// Username constraints shared with pre-existing account rows.
const (
	minUsernameLength = 2
	maxUsernameLength = 500
)

// Letters, digits, underscore, hyphen, dot and exclamation mark only.
var usernameRegex = regexp.MustCompile(`^[\w\-.!]+$`)

// UserDirectory manages the account lifecycle: creation, lookup by the four
// identity forms, metadata edits and bans.
type UserDirectory interface {
	// Create registers a new account and returns the one-time unhashed id
	// alongside the stored hashed id.
	Create(ctx context.Context, username string) (unhashedID string, hashedID string, err error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByHashedID(ctx context.Context, hashed string) (*models.User, error)
	GetByUnhashedID(ctx context.Context, unhashed string) (*models.User, error)
	GetBySecondaryToken(ctx context.Context, unhashedToken string) (*models.User, error)
	EditMetadata(ctx context.Context, username string, metadata models.UserMetadata) error
	Ban(ctx context.Context, username string) error
}

// Compile-time check to ensure userDirectoryImpl implements UserDirectory
var _ UserDirectory = (*userDirectoryImpl)(nil)

type userDirectoryImpl struct {
	userRepo interfaces.UserRepository
	cache    interfaces.UserCache
	hasher   interfaces.IdentityHasher
	roles    *RoleRegistry
	logger   *zap.Logger
}

// NewUserDirectory creates a new instance of userDirectoryImpl.
func NewUserDirectory(userRepo interfaces.UserRepository, cache interfaces.UserCache, hasher interfaces.IdentityHasher, roles *RoleRegistry, logger *zap.Logger) UserDirectory {
	return &userDirectoryImpl{
		userRepo: userRepo,
		cache:    cache,
		hasher:   hasher,
		roles:    roles,
		logger:   logger.Named("UserDirectory"),
	}
}

// ValidateUsername checks the username shape without touching storage.
func ValidateUsername(username string) error {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return models.ErrInvalidUsername
	}
	if !usernameRegex.MatchString(username) {
		return models.ErrInvalidUsername
	}
	return nil
}

// Create registers a new account row with role "member" and empty metadata
// whose nickname defaults to the username.
func (s *userDirectoryImpl) Create(ctx context.Context, username string) (string, string, error) {
	logFields := []zap.Field{zap.String("username", username)}
	s.logger.Info("Creating new user", logFields...)

	// Validation happens before any storage call.
	if err := ValidateUsername(username); err != nil {
		s.logger.Warn("Create attempt with invalid username", logFields...)
		return "", "", err
	}

	existing, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		s.logger.Error("Error checking existing username during create", append(logFields, zap.Error(err))...)
		return "", "", fmt.Errorf("error checking existing username: %w", err)
	}
	if existing != nil {
		s.logger.Warn("Create attempt for existing username", logFields...)
		return "", "", models.ErrUserAlreadyExists
	}

	// The unhashed id is disclosed to the caller exactly once and never stored.
	unhashedID := uuid.NewString()
	hashedID := s.hasher.Hash(unhashedID)
	nickname := username

	user := &models.User{
		Username:  username,
		HashedID:  hashedID,
		Role:      models.RoleMember,
		CreatedAt: time.Now().UTC(),
		Metadata:  models.UserMetadata{Nickname: &nickname},
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		// The repository already maps unique violations to ErrUserAlreadyExists,
		// which also covers two creates racing past the lookup above.
		if !errors.Is(err, models.ErrUserAlreadyExists) {
			s.logger.Error("Failed to create user via repository", append(logFields, zap.Error(err))...)
		}
		return "", "", err
	}

	s.logger.Info("User created successfully", logFields...)
	return unhashedID, hashedID, nil
}

// GetByUsername serves the lookup through the snapshot cache, falling back to
// storage and repopulating the cache on a miss.
func (s *userDirectoryImpl) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	cached, err := s.cache.GetUser(ctx, username)
	if err == nil {
		s.logger.Debug("User served from cache", zap.String("username", username))
		return cached, nil
	}
	if !errors.Is(err, models.ErrCacheMiss) {
		// Cache trouble never fails a read; storage stays authoritative.
		s.logger.Warn("Cache lookup failed, falling back to storage", zap.Error(err), zap.String("username", username))
	}

	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetUser(ctx, user); err != nil {
		s.logger.Warn("Failed to populate user cache", zap.Error(err), zap.String("username", username))
	}
	return user, nil
}

// GetByHashedID looks up an account by its hashed id.
func (s *userDirectoryImpl) GetByHashedID(ctx context.Context, hashed string) (*models.User, error) {
	return s.userRepo.GetUserByHashedID(ctx, hashed)
}

// GetByUnhashedID hashes the input and delegates to the hashed lookup,
// falling back to the secondary-token lookup so recovery flows can present
// either credential.
func (s *userDirectoryImpl) GetByUnhashedID(ctx context.Context, unhashed string) (*models.User, error) {
	user, err := s.GetByHashedID(ctx, s.hasher.Hash(unhashed))
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}
	return s.GetBySecondaryToken(ctx, unhashed)
}

// GetBySecondaryToken resolves an account by its unhashed secondary token.
func (s *userDirectoryImpl) GetBySecondaryToken(ctx context.Context, unhashedToken string) (*models.User, error) {
	return s.userRepo.GetUserBySecondaryToken(ctx, s.hasher.Hash(unhashedToken))
}

// EditMetadata replaces the metadata blob and patches any cached snapshot.
func (s *userDirectoryImpl) EditMetadata(ctx context.Context, username string, metadata models.UserMetadata) error {
	logFields := []zap.Field{zap.String("username", username)}
	s.logger.Info("Editing user metadata", logFields...)

	if _, err := s.userRepo.GetUserByUsername(ctx, username); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.logger.Warn("Edit attempt for non-existent user", logFields...)
		}
		return err
	}

	if err := s.userRepo.UpdateMetadata(ctx, username, metadata); err != nil {
		return err
	}

	s.patchCache(ctx, username, func(u *models.User) {
		u.Metadata = metadata
	})

	s.logger.Info("User metadata updated successfully", logFields...)
	return nil
}

// Ban sets the role to "banned" when the user's current level is unprivileged
// and patches any cached snapshot.
func (s *userDirectoryImpl) Ban(ctx context.Context, username string) error {
	logFields := []zap.Field{zap.String("username", username)}
	s.logger.Info("Attempting to ban user", logFields...)

	existing, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.logger.Warn("Ban attempt for non-existent user", logFields...)
		}
		return err
	}

	level := s.roles.LevelFor(existing.Role)
	if level.Elevation != 0 {
		s.logger.Warn("Ban attempt on elevated user",
			append(logFields, zap.String("role", string(existing.Role)), zap.Int("elevation", level.Elevation))...)
		return models.ErrForbidden
	}

	if err := s.userRepo.UpdateRole(ctx, username, models.RoleBanned); err != nil {
		return err
	}

	s.patchCache(ctx, username, func(u *models.User) {
		u.Role = models.RoleBanned
	})

	s.logger.Info("User banned successfully", logFields...)
	return nil
}

// patchCache mutates an existing snapshot in place. Best-effort: an absent
// entry stays absent, and a failed patch drops the entry so a stale snapshot
// never outlives the mutating call.
func (s *userDirectoryImpl) patchCache(ctx context.Context, username string, patch func(*models.User)) {
	cached, err := s.cache.GetUser(ctx, username)
	if err != nil {
		if !errors.Is(err, models.ErrCacheMiss) {
			s.logger.Warn("Failed to read cache entry for patch", zap.Error(err), zap.String("username", username))
			if delErr := s.cache.DeleteUser(ctx, username); delErr != nil {
				s.logger.Error("Failed to drop unreadable cache entry", zap.Error(delErr), zap.String("username", username))
			}
		}
		return
	}

	patch(cached)
	if err := s.cache.SetUser(ctx, cached); err != nil {
		s.logger.Warn("Failed to patch cache entry, dropping it", zap.Error(err), zap.String("username", username))
		if delErr := s.cache.DeleteUser(ctx, username); delErr != nil {
			s.logger.Error("Failed to drop stale cache entry", zap.Error(delErr), zap.String("username", username))
		}
	}
}
