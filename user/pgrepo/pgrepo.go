package pgrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/speedrun-coding/backend/logger"
	"github.com/speedrun-coding/backend/user"
)

type userPgRepo struct {
	pool *pgxpool.Pool
}

func NewUserPgRepo(pool *pgxpool.Pool) *userPgRepo {
	return &userPgRepo{pool: pool}
}

func (r *userPgRepo) GetUserByUUID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return r.getBy(ctx, "uuid", id)
}

func (r *userPgRepo) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *userPgRepo) getBy(ctx context.Context, column string, value any) (user.User, error) {
	log := logger.FromContext(ctx)
	query := `SELECT uuid, username, email, is_staff FROM users WHERE ` + column + ` = $1`
	log.Debug("executing user query", "query", query)

	var u user.User
	err := r.pool.QueryRow(ctx, query, value).Scan(&u.UUID, &u.Username, &u.Email, &u.IsStaff)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound().SetDebug(err)
		}
		return user.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

// UpsertUser mirrors an identity from the account system.
func (r *userPgRepo) UpsertUser(ctx context.Context, u user.User) error {
	log := logger.FromContext(ctx)
	log.Debug("upserting user", "uuid", u.UUID, "username", u.Username)

	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (uuid, username, email, is_staff)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (uuid) DO UPDATE SET
			username = EXCLUDED.username,
			email = EXCLUDED.email,
			is_staff = EXCLUDED.is_staff
	`, u.UUID, u.Username, u.Email, u.IsStaff)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}
