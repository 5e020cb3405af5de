package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"social-server/internal/interfaces"
	"social-server/internal/models"
)

// FollowPageSize is the fixed page length of follower/following listings.
const FollowPageSize = 50

// FollowGraph manages the directed follow edges stored in the event log.
type FollowGraph interface {
	// Toggle flips the edge user->target and reports whether the edge exists
	// after the call.
	Toggle(ctx context.Context, user, target string) (following bool, err error)
	GetEdge(ctx context.Context, user, target string) (*models.Log, error)
	ListFollowers(ctx context.Context, username string, offset int) ([]models.Log, error)
	ListFollowing(ctx context.Context, username string, offset int) ([]models.Log, error)
	CountFollowers(ctx context.Context, username string) (int, error)
	CountFollowing(ctx context.Context, username string) (int, error)
}

// Compile-time check to ensure followGraphImpl implements FollowGraph
var _ FollowGraph = (*followGraphImpl)(nil)

type followGraphImpl struct {
	followRepo interfaces.FollowRepository
	directory  UserDirectory
	logger     *zap.Logger
}

// NewFollowGraph creates a new instance of followGraphImpl.
func NewFollowGraph(followRepo interfaces.FollowRepository, directory UserDirectory, logger *zap.Logger) FollowGraph {
	return &followGraphImpl{
		followRepo: followRepo,
		directory:  directory,
		logger:     logger.Named("FollowGraph"),
	}
}

// Toggle creates the edge when absent and removes it when present. Both
// endpoints must be existing accounts and self-follows are rejected.
func (s *followGraphImpl) Toggle(ctx context.Context, user, target string) (bool, error) {
	logFields := []zap.Field{zap.String("user", user), zap.String("target", target)}
	s.logger.Info("Toggling follow edge", logFields...)

	if user == target {
		s.logger.Warn("Self-follow attempt rejected", logFields...)
		return false, models.ErrSelfFollow
	}

	if _, err := s.directory.GetByUsername(ctx, user); err != nil {
		return false, err
	}
	if _, err := s.directory.GetByUsername(ctx, target); err != nil {
		return false, err
	}

	existing, err := s.followRepo.GetFollow(ctx, user, target)
	if err != nil && !errors.Is(err, models.ErrFollowNotFound) {
		s.logger.Error("Error looking up follow edge", append(logFields, zap.Error(err))...)
		return false, fmt.Errorf("error looking up follow edge: %w", err)
	}

	if existing != nil {
		if err := s.followRepo.DeleteFollow(ctx, existing.ID); err != nil {
			// A concurrent toggle may have removed the row already; the edge
			// is gone either way.
			if errors.Is(err, models.ErrFollowNotFound) {
				s.logger.Warn("Follow edge removed concurrently", logFields...)
				return false, nil
			}
			s.logger.Error("Failed to delete follow edge", append(logFields, zap.Error(err))...)
			return false, err
		}
		s.logger.Info("Follow edge removed", logFields...)
		return false, nil
	}

	if _, err := s.followRepo.CreateFollow(ctx, models.UserFollow{User: user, IsFollowing: target}); err != nil {
		if errors.Is(err, models.ErrFollowAlreadyExists) {
			// Lost the creation race to a concurrent toggle.
			s.logger.Warn("Follow edge created concurrently", logFields...)
			return true, nil
		}
		s.logger.Error("Failed to create follow edge", append(logFields, zap.Error(err))...)
		return false, err
	}

	s.logger.Info("Follow edge created", logFields...)
	return true, nil
}

// GetEdge returns the log record for the edge user->target, if any.
func (s *followGraphImpl) GetEdge(ctx context.Context, user, target string) (*models.Log, error) {
	return s.followRepo.GetFollow(ctx, user, target)
}

// ListFollowers returns a page of edges pointing at username, newest first.
func (s *followGraphImpl) ListFollowers(ctx context.Context, username string, offset int) ([]models.Log, error) {
	if offset < 0 {
		offset = 0
	}
	return s.followRepo.ListFollowers(ctx, username, FollowPageSize, offset)
}

// ListFollowing returns a page of edges originating from username, newest first.
func (s *followGraphImpl) ListFollowing(ctx context.Context, username string, offset int) ([]models.Log, error) {
	if offset < 0 {
		offset = 0
	}
	return s.followRepo.ListFollowing(ctx, username, FollowPageSize, offset)
}

// CountFollowers returns the total number of accounts following username.
func (s *followGraphImpl) CountFollowers(ctx context.Context, username string) (int, error) {
	return s.followRepo.CountFollowers(ctx, username)
}

// CountFollowing returns the total number of accounts username follows.
func (s *followGraphImpl) CountFollowing(ctx context.Context, username string) (int, error) {
	return s.followRepo.CountFollowing(ctx, username)
}
