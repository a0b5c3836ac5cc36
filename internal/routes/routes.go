package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/audit"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/billing"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/config"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/handlers"
	infraRepo "github.com/michaelofdavenport/london-ohio-lions-club-app/internal/infra/repository"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/mailer"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/middleware"
	ucTrial "github.com/michaelofdavenport/london-ohio-lions-club-app/internal/usecase/trial"
)

const appVersion = "1.0.0"

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	gateRepo := infraRepo.NewGateGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	mail := mailer.New(cfg)

	billingProvider := billing.NewProvider(
		cfg.StripeSecretKey,
		cfg.StripeWebhookSecret,
		cfg.StripePricePro,
	)

	// ======================================================
	// USE CASES
	// ======================================================
	startTrialUC := ucTrial.NewStartTrial(gateRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	clubHandler := handlers.NewClubHandler(db)
	memberHandler := handlers.NewMemberHandler(db)
	eventHandler := handlers.NewEventHandler(db, cfg, mail)
	serviceHourHandler := handlers.NewServiceHourHandler(db)

	requestHandler := handlers.NewRequestHandler(db, cfg, mail, auditDispatcher)

	adminMemberHandler := handlers.NewAdminMemberHandler(db, cfg, mail)
	adminToolsHandler := handlers.NewAdminToolsHandler(db, cfg, mail)

	billingHandler := handlers.NewBillingHandler(db, cfg, billingProvider, startTrialUC, gateRepo)
	reportsHandler := handlers.NewReportsHandler(db, cfg)

	platformHandler := handlers.NewPlatformHandler(db)
	bootstrapHandler := handlers.NewBootstrapHandler(db, cfg)

	// ======================================================
	// PUBLIC ROUTES (no auth)
	// ======================================================
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "service": cfg.OrgName})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "version": appVersion})
	})

	r.POST("/member/login", authHandler.Login)

	public := r.Group("/public")
	{
		public.GET("/clubs", clubHandler.ListPublic)
		public.GET("/club/:slug", clubHandler.GetPublicBySlug)
		public.POST("/requests", requestHandler.CreatePublic)
		public.GET("/events", eventHandler.ListPublic)
	}

	// One-time keyed setup; hidden (404) unless configured.
	r.POST("/admin/bootstrap", bootstrapHandler.Bootstrap)

	// Stripe calls this directly; auth is the signature header.
	r.POST("/billing/stripe/webhook", billingHandler.Webhook)

	// ======================================================
	// MEMBER ROUTES
	//
	// Summary/read endpoints stay reachable when the club is
	// locked so the paywall page can still render; everything
	// else goes through the access gate.
	// ======================================================
	member := r.Group("/member")
	member.Use(middleware.AuthMiddleware(db, cfg))
	{
		member.GET("/me", memberHandler.GetMe)
		member.GET("/requests/summary", memberHandler.RequestsSummary)
		member.GET("/events", eventHandler.List)
		member.GET("/service-hours/summary", serviceHourHandler.Summary)

		locked := middleware.RequireActiveAccess()

		member.PUT("/me", locked, memberHandler.UpdateMe)
		member.GET("/roster", locked, memberHandler.Roster)

		member.GET("/requests", locked, memberHandler.ListRequests)
		member.PATCH("/requests/:id/review", locked, requestHandler.Review)

		member.POST("/events", locked, middleware.RequireAdmin(), eventHandler.Create)
		member.PUT("/events/:id", locked, middleware.RequireAdmin(), eventHandler.Update)
		member.DELETE("/events/:id", locked, middleware.RequireAdmin(), eventHandler.Delete)

		member.POST("/service-hours", locked, serviceHourHandler.Create)
		member.GET("/service-hours", locked, serviceHourHandler.List)
		member.PATCH("/service-hours/:id", locked, serviceHourHandler.Update)
		member.DELETE("/service-hours/:id", locked, serviceHourHandler.Delete)
	}

	// ======================================================
	// ADMIN ROUTES
	// ======================================================
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(db, cfg),
		middleware.RequireAdmin(),
		middleware.TrialGate(),
	)
	{
		admin.GET("/ping", adminToolsHandler.Ping)
		admin.POST("/email/test", adminToolsHandler.TestEmail)

		admin.GET("/members", adminMemberHandler.List)
		admin.POST("/members", adminMemberHandler.Create)
		admin.PATCH("/members/:id", adminMemberHandler.Update)
		admin.PATCH("/members/:id/active", adminMemberHandler.SetActive)
		admin.PATCH("/members/:id/password", adminMemberHandler.ResetPassword)

		requests := admin.Group("/requests")
		{
			requests.GET("", requestHandler.AdminList)
			requests.GET("/export.csv", requestHandler.ExportCSV)
			requests.PATCH("/:id/decision", requestHandler.Decision)
			requests.PATCH("/:id/status", requestHandler.UpdateStatus)
			requests.POST("/:id/notes", requestHandler.AddNote)
			requests.GET("/:id/notes", requestHandler.ListNotes)
			requests.GET("/:id/logs", requestHandler.ListLogs)
		}

		admin.POST("/events/:id/invite", eventHandler.Invite)
	}

	// ======================================================
	// OWNER ROUTES
	// ======================================================
	owner := r.Group("/owner")
	owner.Use(
		middleware.AuthMiddleware(db, cfg),
		middleware.RequireOwner(),
		middleware.TrialGate(),
	)
	{
		owner.PATCH("/club", clubHandler.OwnerUpdateClub)
		owner.PATCH("/members/:id/admin", clubHandler.OwnerSetMemberAdmin)
		owner.POST("/transfer", clubHandler.OwnerTransfer)
	}

	// ======================================================
	// BILLING ROUTES
	//
	// Reachable while locked; this is how a locked club pays.
	// ======================================================
	billingGrp := r.Group("/billing")
	billingGrp.Use(middleware.AuthMiddleware(db, cfg))
	{
		billingGrp.GET("/status", billingHandler.Status)

		ownerOnly := billingGrp.Group("")
		ownerOnly.Use(middleware.RequireOwner())
		{
			ownerOnly.POST("/start-trial", billingHandler.StartTrial)
			ownerOnly.GET("/me", billingHandler.Me)
			ownerOnly.POST("/checkout", billingHandler.Checkout)
			ownerOnly.POST("/portal", billingHandler.Portal)
		}
	}

	// ======================================================
	// REPORTS ROUTES (PRO plan only)
	// ======================================================
	reports := r.Group("/reports")
	reports.Use(
		middleware.AuthMiddleware(db, cfg),
		middleware.RequireActiveAccess(),
		middleware.RequirePro(),
	)
	{
		reports.GET("/ping", reportsHandler.Ping)
		reports.GET("/status-counts", reportsHandler.StatusCounts)
	}

	// ======================================================
	// PLATFORM ROUTES (super admin)
	// ======================================================
	platform := r.Group("/platform")
	platform.Use(
		middleware.AuthMiddleware(db, cfg),
		middleware.RequireSuperAdmin(),
	)
	{
		platform.POST("/onboard", platformHandler.Onboard)
	}
}
