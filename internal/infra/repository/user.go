package repository

import (
	"context"
	"time"

	"studiohub/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	const query = `UPDATE users SET last_login = $2, updated_at = now() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, at); err != nil {
		return wrapPgErr("failed to update last login", err)
	}
	return nil
}
