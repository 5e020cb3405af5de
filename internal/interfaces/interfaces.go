package interfaces

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"social-server/internal/models"
)

// DBTX is the subset of pgxpool.Pool / pgx.Tx the repositories depend on.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository persists account rows in sh_users.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByHashedID(ctx context.Context, hashed string) (*models.User, error)
	// GetUserBySecondaryToken matches the hashed form of the secondary token
	// stored inside the metadata blob.
	GetUserBySecondaryToken(ctx context.Context, hashedToken string) (*models.User, error)
	UpdateMetadata(ctx context.Context, username string, metadata models.UserMetadata) error
	UpdateRole(ctx context.Context, username string, role models.Role) error
}

// FollowRepository persists follow edges as rows of the sh_logs table.
type FollowRepository interface {
	GetFollow(ctx context.Context, user, isFollowing string) (*models.Log, error)
	CreateFollow(ctx context.Context, follow models.UserFollow) (*models.Log, error)
	DeleteFollow(ctx context.Context, id string) error
	ListFollowers(ctx context.Context, user string, limit, offset int) ([]models.Log, error)
	ListFollowing(ctx context.Context, user string, limit, offset int) ([]models.Log, error)
	CountFollowers(ctx context.Context, user string) (int, error)
	CountFollowing(ctx context.Context, user string) (int, error)
}

// UserCache holds serialized account snapshots keyed by username.
// GetUser returns models.ErrCacheMiss when no entry exists.
type UserCache interface {
	GetUser(ctx context.Context, username string) (*models.User, error)
	SetUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, username string) error
}

// IdentityHasher is the injected one-way id-hashing capability:
// deterministic and collision-resistant, never reversible.
type IdentityHasher interface {
	Hash(value string) string
}
