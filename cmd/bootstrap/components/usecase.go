package components

import (
	"studiohub/internal/pkg/clock"
	"studiohub/internal/usecase"
	"studiohub/internal/usecase/commands"
	"studiohub/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewStudioCommands,
		commands.NewReservationCommands,
		commands.NewJobCommands,
		commands.NewAuctionCommands,
		commands.NewClubCommands,
		commands.NewNotificationCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewStudioQueries,
		queries.NewReservationQueries,
		queries.NewJobQueries,
		queries.NewAuctionQueries,
		queries.NewClubQueries,
		queries.NewNotificationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
