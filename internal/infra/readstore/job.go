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

type JobReadStore struct {
	db db.DBTX
}

func NewJobReadStore(db db.DBTX) *JobReadStore {
	return &JobReadStore{db: db}
}

const jobViewColumns = `
	j.id, j.client_id, c.display_name, j.provider_id, p.display_name,
	j.title, j.description, j.budget_cents, j.deadline, j.status,
	NULLIF(j.response, ''), j.responded_at, j.created_at, j.updated_at`

const jobViewJoins = `
	FROM jobs j
	JOIN users c ON c.id = j.client_id
	JOIN users p ON p.id = j.provider_id`

func scanJobView(row pgx.Row) (*queries.JobView, error) {
	var v queries.JobView
	err := row.Scan(
		&v.ID, &v.ClientID, &v.ClientName, &v.ProviderID, &v.ProviderName,
		&v.Title, &v.Description, &v.BudgetCents, &v.Deadline, &v.Status,
		&v.Response, &v.RespondedAt, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *JobReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.JobView, error) {
	query := `SELECT ` + jobViewColumns + jobViewJoins + ` WHERE j.id = $1`

	v, err := scanJobView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("job not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find job by ID", err)
	}
	return v, nil
}

func (r *JobReadStore) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*queries.JobView, error) {
	query := `SELECT ` + jobViewColumns + jobViewJoins + `
		WHERE j.client_id = $1
		ORDER BY j.created_at DESC, j.id DESC`

	return r.collect(ctx, query, clientID)
}

func (r *JobReadStore) FindByProviderID(ctx context.Context, providerID uuid.UUID) ([]*queries.JobView, error) {
	query := `SELECT ` + jobViewColumns + jobViewJoins + `
		WHERE j.provider_id = $1
		ORDER BY j.created_at DESC, j.id DESC`

	return r.collect(ctx, query, providerID)
}

func (r *JobReadStore) collect(ctx context.Context, query string, arg any) ([]*queries.JobView, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list jobs", err)
	}
	defer rows.Close()

	var result []*queries.JobView
	for rows.Next() {
		v, err := scanJobView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan job row", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate job rows", err)
	}
	return result, nil
}
