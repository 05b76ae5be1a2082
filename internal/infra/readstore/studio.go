package readstore

import (
	"context"

	"studiohub/internal/infra"
	"studiohub/internal/infra/db"
	"studiohub/internal/pkg/pgconv"
	"studiohub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type StudioReadStore struct {
	db db.DBTX
}

func NewStudioReadStore(db db.DBTX) *StudioReadStore {
	return &StudioReadStore{db: db}
}

const studioViewColumns = `
	s.id, s.owner_id, u.display_name, s.name, s.description,
	s.hourly_rate_cents, s.active, s.created_at, s.updated_at`

func scanStudioView(row pgx.Row) (*queries.StudioView, error) {
	var v queries.StudioView
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.OwnerName, &v.Name, &v.Description,
		&v.HourlyRateCents, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *StudioReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.StudioView, error) {
	query := `
		SELECT ` + studioViewColumns + `
		FROM studios s
		JOIN users u ON u.id = s.owner_id
		WHERE s.id = $1`

	v, err := scanStudioView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("studio not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find studio by ID", err)
	}
	return v, nil
}

func (r *StudioReadStore) FindActive(ctx context.Context, limit int32) ([]*queries.StudioView, error) {
	query := `
		SELECT ` + studioViewColumns + `
		FROM studios s
		JOIN users u ON u.id = s.owner_id
		WHERE s.active
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active studios", err)
	}
	defer rows.Close()

	return collectStudioViews(rows)
}

func (r *StudioReadStore) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*queries.StudioView, error) {
	query := `
		SELECT ` + studioViewColumns + `
		FROM studios s
		JOIN users u ON u.id = s.owner_id
		WHERE s.owner_id = $1
		ORDER BY s.created_at DESC, s.id DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list studios by owner", err)
	}
	defer rows.Close()

	return collectStudioViews(rows)
}

func collectStudioViews(rows pgx.Rows) ([]*queries.StudioView, error) {
	var result []*queries.StudioView
	for rows.Next() {
		v, err := scanStudioView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan studio row", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate studio rows", err)
	}
	return result, nil
}
