package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"studiohub/internal/handler/api"
	"studiohub/internal/handler/middleware"
	"studiohub/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth         *api.AuthHandler
	Studio       *api.StudioHandler
	Reservation  *api.ReservationHandler
	Job          *api.JobHandler
	Auction      *api.AuctionHandler
	Club         *api.ClubHandler
	Notification *api.NotificationHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		studios := apiGroup.Group("/studios")
		{
			addRoutes(studios, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Studio.ListStudios},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Studio.GetStudio},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Reservation.CheckAvailability},
			})

			owned := studios.Group("")
			owned.Use(authMiddleware.RequireAuth())
			addRoutes(owned, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Studio.CreateStudio},
				{Method: http.MethodGet, Path: "/mine", Handler: h.Studio.ListOwnStudios},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Studio.UpdateStudio},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Studio.DeactivateStudio},
				{Method: http.MethodGet, Path: "/:id/reservations", Handler: h.Reservation.ListStudioReservations},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.CreateReservation},
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.ListOwnReservations},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.GetReservation},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: h.Reservation.ConfirmReservation},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Reservation.CancelReservation},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Reservation.CompleteReservation},
			})
		}

		jobs := apiGroup.Group("/jobs")
		jobs.Use(authMiddleware.RequireAuth())
		{
			addRoutes(jobs, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Job.CreateJob},
				{Method: http.MethodGet, Path: "/sent", Handler: h.Job.ListSentJobs},
				{Method: http.MethodGet, Path: "/received", Handler: h.Job.ListReceivedJobs},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Job.GetJob},
				{Method: http.MethodPost, Path: "/:id/accept", Handler: h.Job.AcceptJob},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: h.Job.RejectJob},
				{Method: http.MethodPost, Path: "/:id/start", Handler: h.Job.StartJob},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Job.CompleteJob},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Job.CancelJob},
			})
		}

		listings := apiGroup.Group("/listings")
		{
			addRoutes(listings, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Auction.ListOpenListings},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Auction.GetListing},
			})

			bidding := listings.Group("")
			bidding.Use(authMiddleware.RequireAuth())
			addRoutes(bidding, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Auction.CreateListing},
				{Method: http.MethodGet, Path: "/:id/bids", Handler: h.Auction.ListBids},
				{Method: http.MethodPost, Path: "/:id/bids", Handler: h.Auction.PlaceBid},
			})
		}

		bids := apiGroup.Group("/bids")
		bids.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bids, []route{
				{Method: http.MethodPost, Path: "/:id/accept", Handler: h.Auction.AcceptBid},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: h.Auction.RejectBid},
			})
		}

		clubs := apiGroup.Group("/clubs")
		{
			addRoutes(clubs, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: h.Club.GetClub},
			})

			member := clubs.Group("")
			member.Use(authMiddleware.RequireAuth())
			addRoutes(member, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Club.CreateClub},
				{Method: http.MethodGet, Path: "", Handler: h.Club.ListOwnClubs},
			})
		}

		notifications := apiGroup.Group("/notifications")
		notifications.Use(authMiddleware.RequireAuth())
		{
			addRoutes(notifications, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Notification.ListNotifications},
				{Method: http.MethodGet, Path: "/unread", Handler: h.Notification.CountUnread},
				{Method: http.MethodPost, Path: "/:id/read", Handler: h.Notification.MarkRead},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
