package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"social-server/internal/interfaces"
	"social-server/internal/models"
)

// Compile-time check to ensure pgFollowRepository implements FollowRepository
var _ interfaces.FollowRepository = (*pgFollowRepository)(nil)

// pgFollowRepository stores follow edges as rows of the generic sh_logs table
// with logtype 'follow'. Edge queries match the structured content fields
// exactly; a partial unique index on the ordered pair rejects duplicate edges
// racing through concurrent toggles.
type pgFollowRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgFollowRepository creates a new PostgreSQL-backed FollowRepository.
func NewPgFollowRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.FollowRepository {
	return &pgFollowRepository{
		db:     db,
		logger: logger.Named("PgFollowRepo"),
	}
}

// GetFollow retrieves the edge for an ordered (user, is_following) pair.
func (r *pgFollowRepository) GetFollow(ctx context.Context, user, isFollowing string) (*models.Log, error) {
	query := `SELECT id, logtype, timestamp, content FROM sh_logs WHERE logtype = 'follow' AND content->>'user' = $1 AND content->>'is_following' = $2`
	logFields := []zap.Field{zap.String("user", user), zap.String("isFollowing", isFollowing)}
	r.logger.Debug("Executing query", append(logFields, zap.String("query", query))...)

	entry, err := r.scanLog(r.db.QueryRow(ctx, query, user, isFollowing))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Follow not found", logFields...)
			return nil, models.ErrFollowNotFound
		}
		r.logger.Error("Failed to get follow from postgres", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to get follow from postgres: %w", err)
	}
	return entry, nil
}

// CreateFollow inserts a new follow log row with the current timestamp.
func (r *pgFollowRepository) CreateFollow(ctx context.Context, follow models.UserFollow) (*models.Log, error) {
	query := `INSERT INTO sh_logs (id, logtype, timestamp, content) VALUES ($1, $2, $3, $4)`
	logFields := []zap.Field{zap.String("user", follow.User), zap.String("isFollowing", follow.IsFollowing)}
	r.logger.Debug("Adding follow record", logFields...)

	entry := &models.Log{
		ID:        uuid.NewString(),
		LogType:   models.LogTypeFollow,
		Timestamp: time.Now().UnixMilli(),
		Content:   follow,
	}

	contentJSON, err := json.Marshal(follow)
	if err != nil {
		r.logger.Error("Failed to marshal follow content", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to marshal follow content: %w", err)
	}

	_, err = r.db.Exec(ctx, query, entry.ID, entry.LogType, entry.Timestamp, contentJSON)
	if err != nil {
		var pgErr *pgconn.PgError
		// unique_violation on the pair index means a concurrent toggle won
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Warn("Follow already exists (unique constraint violation)", logFields...)
			return nil, models.ErrFollowAlreadyExists
		}
		r.logger.Error("Failed to add follow record", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to add follow: %w", err)
	}

	r.logger.Info("Follow record added successfully", logFields...)
	return entry, nil
}

// DeleteFollow removes a follow log row by its id.
func (r *pgFollowRepository) DeleteFollow(ctx context.Context, id string) error {
	query := `DELETE FROM sh_logs WHERE id = $1 AND logtype = 'follow'`
	logFields := []zap.Field{zap.String("id", id)}
	r.logger.Debug("Removing follow record", logFields...)

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to remove follow record", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to remove follow: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Follow not found to remove", logFields...)
		return models.ErrFollowNotFound
	}

	r.logger.Info("Follow record removed successfully", logFields...)
	return nil
}

// ListFollowers retrieves edges pointing at the given user, newest first.
func (r *pgFollowRepository) ListFollowers(ctx context.Context, user string, limit, offset int) ([]models.Log, error) {
	query := `SELECT id, logtype, timestamp, content FROM sh_logs WHERE logtype = 'follow' AND content->>'is_following' = $1 ORDER BY timestamp DESC LIMIT $2 OFFSET $3`
	return r.listFollows(ctx, query, user, limit, offset)
}

// ListFollowing retrieves edges originating from the given user, newest first.
func (r *pgFollowRepository) ListFollowing(ctx context.Context, user string, limit, offset int) ([]models.Log, error) {
	query := `SELECT id, logtype, timestamp, content FROM sh_logs WHERE logtype = 'follow' AND content->>'user' = $1 ORDER BY timestamp DESC LIMIT $2 OFFSET $3`
	return r.listFollows(ctx, query, user, limit, offset)
}

// CountFollowers returns the total number of edges pointing at the user.
func (r *pgFollowRepository) CountFollowers(ctx context.Context, user string) (int, error) {
	query := `SELECT COUNT(*) FROM sh_logs WHERE logtype = 'follow' AND content->>'is_following' = $1`
	return r.countFollows(ctx, query, user)
}

// CountFollowing returns the total number of edges originating from the user.
func (r *pgFollowRepository) CountFollowing(ctx context.Context, user string) (int, error) {
	query := `SELECT COUNT(*) FROM sh_logs WHERE logtype = 'follow' AND content->>'user' = $1`
	return r.countFollows(ctx, query, user)
}

func (r *pgFollowRepository) listFollows(ctx context.Context, query, user string, limit, offset int) ([]models.Log, error) {
	logFields := []zap.Field{zap.String("user", user), zap.Int("limit", limit), zap.Int("offset", offset)}
	r.logger.Debug("Executing query", append(logFields, zap.String("query", query))...)

	rows, err := r.db.Query(ctx, query, user, limit, offset)
	if err != nil {
		r.logger.Error("Failed to query follows from postgres", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to query follows: %w", err)
	}
	defer rows.Close()

	follows := make([]models.Log, 0)
	for rows.Next() {
		entry, err := r.scanLog(rows)
		if err != nil {
			r.logger.Error("Failed to scan follow row", append(logFields, zap.Error(err))...)
			return nil, fmt.Errorf("failed to scan follow row: %w", err)
		}
		follows = append(follows, *entry)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating follow rows", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("error iterating follow rows: %w", err)
	}

	return follows, nil
}

func (r *pgFollowRepository) countFollows(ctx context.Context, query, user string) (int, error) {
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("user", user))
	var count int
	if err := r.db.QueryRow(ctx, query, user).Scan(&count); err != nil {
		r.logger.Error("Failed to count follows in postgres", zap.Error(err), zap.String("user", user))
		return 0, fmt.Errorf("failed to count follows: %w", err)
	}
	return count, nil
}

func (r *pgFollowRepository) scanLog(row pgx.Row) (*models.Log, error) {
	entry := &models.Log{}
	var contentRaw []byte

	if err := row.Scan(&entry.ID, &entry.LogType, &entry.Timestamp, &contentRaw); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(contentRaw, &entry.Content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal follow content: %w", err)
	}
	return entry, nil
}
