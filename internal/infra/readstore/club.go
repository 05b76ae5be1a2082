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

type ClubReadStore struct {
	db db.DBTX
}

func NewClubReadStore(db db.DBTX) *ClubReadStore {
	return &ClubReadStore{db: db}
}

const clubViewColumns = `
	c.id, c.name, c.club_type, c.owner_id, c.description, c.icon,
	(SELECT count(*) FROM club_members m WHERE m.club_id = c.id),
	c.created_at`

func scanClubView(row pgx.Row) (*queries.ClubView, error) {
	var v queries.ClubView
	err := row.Scan(
		&v.ID, &v.Name, &v.ClubType, &v.OwnerID, &v.Description, &v.Icon,
		&v.MemberCount, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ClubReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ClubView, error) {
	query := `SELECT ` + clubViewColumns + ` FROM clubs c WHERE c.id = $1`

	v, err := scanClubView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("club not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find club by ID", err)
	}
	return v, nil
}

func (r *ClubReadStore) FindByMemberID(ctx context.Context, userID uuid.UUID) ([]*queries.ClubView, error) {
	query := `
		SELECT ` + clubViewColumns + `
		FROM clubs c
		JOIN club_members cm ON cm.club_id = c.id
		WHERE cm.user_id = $1
		ORDER BY c.created_at DESC, c.id DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list clubs by member", err)
	}
	defer rows.Close()

	var result []*queries.ClubView
	for rows.Next() {
		v, err := scanClubView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan club row", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate club rows", err)
	}
	return result, nil
}
