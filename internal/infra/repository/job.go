package repository

import (
	"context"
	"time"

	"studiohub/internal/domain/job"
	"studiohub/internal/infra/db"

	"github.com/google/uuid"
)

type JobRepository struct {
	db db.DBTX
}

func NewJobRepository(db db.DBTX) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j *job.Job) error {
	const query = `
		INSERT INTO jobs (id, client_id, provider_id, title, description, budget_cents, deadline, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		j.ID(), j.ClientID(), j.ProviderID(), j.Title(), j.Description(),
		j.BudgetCents(), j.Deadline(), j.Status().String(),
	)
	if err != nil {
		return wrapPgErr("failed to create job", err)
	}
	return nil
}

func (r *JobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to job.Status, response *string, respondedAt *time.Time) (int64, error) {
	const query = `
		UPDATE jobs
		SET status = $3,
		    response = COALESCE($4, response),
		    responded_at = COALESCE($5, responded_at),
		    updated_at = now()
		WHERE id = $1 AND status = $2`

	tag, err := r.db.Exec(ctx, query, id, from.String(), to.String(), response, respondedAt)
	if err != nil {
		return 0, wrapPgErr("failed to update job status", err)
	}
	return tag.RowsAffected(), nil
}
