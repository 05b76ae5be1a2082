package components

import (
	"context"
	"log/slog"

	"studiohub/internal/infra/db"
	"studiohub/internal/infra/readstore"
	"studiohub/internal/infra/repository"
	"studiohub/internal/infra/uow"
	"studiohub/internal/usecase/queries"
	"studiohub/internal/usecase/sideeffect"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		NewDispatcher,
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewStudioReadStore,
			fx.As(new(queries.StudioReadStore)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			readstore.NewJobReadStore,
			fx.As(new(queries.JobReadStore)),
		),
		fx.Annotate(
			readstore.NewAuctionReadStore,
			fx.As(new(queries.AuctionReadStore)),
		),
		fx.Annotate(
			readstore.NewClubReadStore,
			fx.As(new(queries.ClubReadStore)),
		),
		fx.Annotate(
			readstore.NewNotificationReadStore,
			fx.As(new(queries.NotificationReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

// NewDispatcher writes side effects through its own repository over the
// pool, independent of any request transaction. Shutdown waits for
// in-flight deliveries.
func NewDispatcher(lc fx.Lifecycle, pool *pgxpool.Pool, logger *slog.Logger) *sideeffect.Dispatcher {
	d := sideeffect.NewDispatcher(repository.NewNotificationRepository(pool), logger)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			d.Wait()
			return nil
		},
	})

	return d
}
