package components

import (
	"studiohub/internal/handler"
	"studiohub/internal/handler/api"
	"studiohub/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewStudioHandler,
		api.NewReservationHandler,
		api.NewJobHandler,
		api.NewAuctionHandler,
		api.NewClubHandler,
		api.NewNotificationHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	auth *api.AuthHandler,
	studio *api.StudioHandler,
	reservation *api.ReservationHandler,
	job *api.JobHandler,
	auction *api.AuctionHandler,
	club *api.ClubHandler,
	notification *api.NotificationHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:         auth,
		Studio:       studio,
		Reservation:  reservation,
		Job:          job,
		Auction:      auction,
		Club:         club,
		Notification: notification,
	}
}
