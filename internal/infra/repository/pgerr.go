package repository

import (
	"context"
	"errors"

	"studiohub/internal/infra"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeExclusionViolation  = "23P01"
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

// wrapPgErr classifies driver errors into repository kinds. The
// exclusion constraint on reservation slots surfaces here as a conflict.
func wrapPgErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeExclusionViolation:
			return infra.WrapRepoErr(msg, err, infra.KindConflict)
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgErrCodeForeignKeyViolation:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return infra.WrapRepoErr(msg, err, infra.KindTimeout)
	}
	return infra.WrapRepoErr(msg, err)
}
