package repository

import (
	"context"

	"studiohub/internal/domain/club"
	"studiohub/internal/infra/db"

	"github.com/google/uuid"
)

type ClubRepository struct {
	db db.DBTX
}

func NewClubRepository(db db.DBTX) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) Create(ctx context.Context, c *club.Club) error {
	const query = `
		INSERT INTO clubs (id, name, club_type, owner_id, description, icon)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		c.ID(), c.Name(), string(c.ClubType()), c.OwnerID(), c.Description(), c.Icon(),
	)
	if err != nil {
		return wrapPgErr("failed to create club", err)
	}
	return nil
}

func (r *ClubRepository) AddMember(ctx context.Context, clubID, userID uuid.UUID, role string) error {
	const query = `
		INSERT INTO club_members (club_id, user_id, role)
		VALUES ($1, $2, $3)`

	if _, err := r.db.Exec(ctx, query, clubID, userID, role); err != nil {
		return wrapPgErr("failed to add club member", err)
	}
	return nil
}

// UpsertRoleGrant keeps the (user, role) pair unique: a second club of
// the same type re-points the grant instead of failing.
func (r *ClubRepository) UpsertRoleGrant(ctx context.Context, userID uuid.UUID, role club.RoleType, clubID uuid.UUID) error {
	const query = `
		INSERT INTO role_grants (user_id, role, club_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, role)
		DO UPDATE SET club_id = EXCLUDED.club_id, granted_at = now()`

	if _, err := r.db.Exec(ctx, query, userID, string(role), clubID); err != nil {
		return wrapPgErr("failed to upsert role grant", err)
	}
	return nil
}
