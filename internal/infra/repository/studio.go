package repository

import (
	"context"

	"studiohub/internal/domain/studio"
	"studiohub/internal/infra/db"
)

type StudioRepository struct {
	db db.DBTX
}

func NewStudioRepository(db db.DBTX) *StudioRepository {
	return &StudioRepository{db: db}
}

func (r *StudioRepository) Create(ctx context.Context, st *studio.Studio) error {
	const query = `
		INSERT INTO studios (id, owner_id, name, description, hourly_rate_cents, active)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		st.ID(), st.OwnerID(), st.Name(), st.Description(), st.HourlyRateCents(), st.IsActive(),
	)
	if err != nil {
		return wrapPgErr("failed to create studio", err)
	}
	return nil
}

func (r *StudioRepository) Update(ctx context.Context, st *studio.Studio) error {
	const query = `
		UPDATE studios
		SET name = $2, description = $3, hourly_rate_cents = $4, active = $5, updated_at = now()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query,
		st.ID(), st.Name(), st.Description(), st.HourlyRateCents(), st.IsActive(),
	)
	if err != nil {
		return wrapPgErr("failed to update studio", err)
	}
	return nil
}
