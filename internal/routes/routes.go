package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/neuromancers/session-scheduler/internal/audit"
	"github.com/neuromancers/session-scheduler/internal/cache"
	"github.com/neuromancers/session-scheduler/internal/config"
	"github.com/neuromancers/session-scheduler/internal/handlers"
	infraRepo "github.com/neuromancers/session-scheduler/internal/infra/repository"
	"github.com/neuromancers/session-scheduler/internal/media"
	"github.com/neuromancers/session-scheduler/internal/meetings"
	"github.com/neuromancers/session-scheduler/internal/middleware"
	"github.com/neuromancers/session-scheduler/internal/models"
	"github.com/neuromancers/session-scheduler/internal/notifications"
	"github.com/neuromancers/session-scheduler/internal/payments"
	"github.com/neuromancers/session-scheduler/internal/permissions"
	ucSession "github.com/neuromancers/session-scheduler/internal/usecase/session"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	c *cache.Cache,
	log *zap.Logger,
) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	sessionRepo := infraRepo.NewSessionGormRepository(db)
	grants := permissions.NewStore(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	notifier := notifications.New(cfg, log)
	stripeClient := payments.New(cfg, log)
	meetingsClient := meetings.New(cfg, log)

	uploader := media.NewUploader(cfg, log)

	// ======================================================
	// USE CASES — SESSIONS
	// ======================================================
	createSessionUC := ucSession.NewCreateSession(
		sessionRepo,
		grants,
		auditDispatcher,
	)

	publishSessionUC := ucSession.NewPublishSession(
		sessionRepo,
		grants,
		notifier,
		auditDispatcher,
	)

	manageAvailabilityUC := ucSession.NewManageAvailability(sessionRepo)

	getAvailabilityUC := ucSession.NewGetAvailability(sessionRepo, c)

	listSessionsUC := ucSession.NewListSessions(sessionRepo)

	// ======================================================
	// USE CASES — REQUESTS
	// ======================================================
	createRequestUC := ucSession.NewCreateRequest(
		sessionRepo,
		grants,
		notifier,
		auditDispatcher,
	)

	approveRequestUC := ucSession.NewApproveRequest(
		sessionRepo,
		stripeClient,
		notifier,
		auditDispatcher,
	)

	rejectRequestUC := ucSession.NewRejectRequest(
		sessionRepo,
		notifier,
		auditDispatcher,
	)

	withdrawRequestUC := ucSession.NewWithdrawRequest(
		sessionRepo,
		stripeClient,
		meetingsClient,
		notifier,
		auditDispatcher,
	)

	approveRefundUC := ucSession.NewApproveRefund(
		sessionRepo,
		stripeClient,
		notifier,
		auditDispatcher,
	)

	listSessionRequestsUC := ucSession.NewListSessionRequests(sessionRepo)
	listMyRequestsUC := ucSession.NewListMyRequests(sessionRepo)
	requestPaymentUC := ucSession.NewGetRequestPayment(sessionRepo, stripeClient)
	createReviewUC := ucSession.NewCreateReview(sessionRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db, uploader)

	sessionHandler := handlers.NewSessionHandler(
		createSessionUC,
		publishSessionUC,
		manageAvailabilityUC,
		listSessionRequestsUC,
		approveRequestUC,
		rejectRequestUC,
		approveRefundUC,
	)

	requestHandler := handlers.NewRequestHandler(
		createRequestUC,
		listMyRequestsUC,
		withdrawRequestUC,
		requestPaymentUC,
		createReviewUC,
		cfg.AppName,
	)

	publicHandler := handlers.NewPublicHandler(db, listSessionsUC, getAvailabilityUC)
	sessionViewHandler := handlers.NewSessionViewHandler(db, grants)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/sessions", publicHandler.ListSessions)
			publicAPI.GET("/sessions/:id", publicHandler.GetSession)
			publicAPI.GET("/sessions/:id/availability", publicHandler.Availability)
			publicAPI.GET("/sessions/:id/booking-form", publicHandler.BookingForm)
			publicAPI.GET("/sessions/:id/reviews", publicHandler.ListReviews)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me/profile", meHandler.UpdateProfile)
			secured.POST("/me/avatar", meHandler.UploadAvatar)
			secured.GET("/me/notification-settings", meHandler.GetNotificationSettings)
			secured.PUT("/me/notification-settings", meHandler.UpdateNotificationSettings)

			// ------------------------------
			// HOSTING (peers)
			// ------------------------------
			hosting := secured.Group("/me/sessions")
			hosting.Use(middleware.RequireRole(models.RolePeer))
			{
				hosting.POST("", sessionHandler.Create)
				hosting.PATCH("/:id/publish", sessionHandler.Publish)
				hosting.PATCH("/:id/unpublish", sessionHandler.Unpublish)

				hosting.POST("/:id/availability", sessionHandler.AddAvailability)
				hosting.DELETE("/:id/availability/:availabilityId", sessionHandler.RemoveAvailability)

				hosting.GET("/:id/requests", sessionHandler.ListRequests)
			}

			decisions := secured.Group("/me/requests")
			decisions.Use(middleware.RequireRole(models.RolePeer))
			{
				decisions.PATCH("/:requestId/approve", sessionHandler.ApproveRequest)
				decisions.PATCH("/:requestId/reject", sessionHandler.RejectRequest)
				decisions.PATCH("/:requestId/approve-refund", sessionHandler.ApproveRefund)
			}

			// ------------------------------
			// ATTENDING
			// ------------------------------
			secured.GET("/sessions/:id", sessionViewHandler.Get)
			secured.POST("/sessions/:id/requests", requestHandler.Create)
			secured.POST("/sessions/:id/reviews", requestHandler.CreateReview)
			secured.GET("/my/requests", requestHandler.ListMine)
			secured.PATCH("/my/requests/:id/withdraw", requestHandler.Withdraw)
			secured.GET("/my/requests/:id/payment", requestHandler.PaymentStatus)
			secured.GET("/my/calendar.ics", requestHandler.ExportCalendar)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
