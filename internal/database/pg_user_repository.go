package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"social-server/internal/interfaces"
	"social-server/internal/models"
)

// Compile-time check to ensure pgUserRepository implements UserRepository
var _ interfaces.UserRepository = (*pgUserRepository)(nil)

type pgUserRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgUserRepository creates a new PostgreSQL-backed UserRepository.
func NewPgUserRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.UserRepository {
	return &pgUserRepository{
		db:     db,
		logger: logger.Named("PgUserRepo"),
	}
}

const userColumns = `username, id_hashed, role, timestamp, metadata`

// CreateUser inserts a new account row into sh_users.
func (r *pgUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO sh_users (username, id_hashed, role, timestamp, metadata) VALUES ($1, $2, $3, $4, $5)`
	logFields := []zap.Field{zap.String("username", user.Username)}
	r.logger.Debug("Executing query", append(logFields, zap.String("query", query))...)

	metadataJSON, err := json.Marshal(user.Metadata)
	if err != nil {
		r.logger.Error("Failed to marshal user metadata", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to marshal user metadata: %w", err)
	}

	_, err = r.db.Exec(ctx, query, user.Username, user.HashedID, user.Role, user.CreatedAt, metadataJSON)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 is unique_violation (duplicate username or hashed id)
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Warn("Attempted to create duplicate user", append(logFields, zap.String("constraint", pgErr.ConstraintName))...)
			return models.ErrUserAlreadyExists
		}
		r.logger.Error("Failed to create user in postgres", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create user in postgres: %w", err)
	}

	r.logger.Info("User created successfully", logFields...)
	return nil
}

// GetUserByUsername retrieves an account row by its username.
func (r *pgUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM sh_users WHERE username = $1`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("username", username))
	return r.scanUser(r.db.QueryRow(ctx, query, username), zap.String("username", username))
}

// GetUserByHashedID retrieves an account row by its hashed id.
func (r *pgUserRepository) GetUserByHashedID(ctx context.Context, hashed string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM sh_users WHERE id_hashed = $1`
	r.logger.Debug("Executing query", zap.String("query", query))
	return r.scanUser(r.db.QueryRow(ctx, query, hashed), zap.String("lookup", "id_hashed"))
}

// GetUserBySecondaryToken retrieves an account row whose metadata carries the
// given hashed secondary token. Exact structured match, no pattern matching.
func (r *pgUserRepository) GetUserBySecondaryToken(ctx context.Context, hashedToken string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM sh_users WHERE metadata->>'secondary_token' = $1`
	r.logger.Debug("Executing query", zap.String("query", query))
	return r.scanUser(r.db.QueryRow(ctx, query, hashedToken), zap.String("lookup", "secondary_token"))
}

// UpdateMetadata replaces the metadata blob of an account row.
func (r *pgUserRepository) UpdateMetadata(ctx context.Context, username string, metadata models.UserMetadata) error {
	query := `UPDATE sh_users SET metadata = $1 WHERE username = $2`
	logFields := []zap.Field{zap.String("username", username)}
	r.logger.Debug("Executing query", append(logFields, zap.String("query", query))...)

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		r.logger.Error("Failed to marshal user metadata", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to marshal user metadata: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, metadataJSON, username)
	if err != nil {
		r.logger.Error("Failed to update user metadata in postgres", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to update user metadata: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to update metadata for non-existent user", logFields...)
		return models.ErrUserNotFound
	}

	r.logger.Info("User metadata updated successfully", logFields...)
	return nil
}

// UpdateRole sets the role tag of an account row.
func (r *pgUserRepository) UpdateRole(ctx context.Context, username string, role models.Role) error {
	query := `UPDATE sh_users SET role = $1 WHERE username = $2`
	logFields := []zap.Field{zap.String("username", username), zap.String("role", string(role))}
	r.logger.Debug("Executing query", append(logFields, zap.String("query", query))...)

	cmdTag, err := r.db.Exec(ctx, query, role, username)
	if err != nil {
		r.logger.Error("Failed to update user role in postgres", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to update user role: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to update role for non-existent user", logFields...)
		return models.ErrUserNotFound
	}

	r.logger.Info("User role updated successfully", logFields...)
	return nil
}

func (r *pgUserRepository) scanUser(row pgx.Row, logFields ...zap.Field) (*models.User, error) {
	user := &models.User{}
	var metadataRaw []byte

	err := row.Scan(&user.Username, &user.HashedID, &user.Role, &user.CreatedAt, &metadataRaw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found", logFields...)
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user from postgres", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to get user from postgres: %w", err)
	}

	if len(metadataRaw) > 0 {
		if err := json.Unmarshal(metadataRaw, &user.Metadata); err != nil {
			r.logger.Error("Failed to unmarshal user metadata", append(logFields, zap.Error(err))...)
			return nil, fmt.Errorf("failed to unmarshal user metadata: %w", err)
		}
	}
	return user, nil
}
