package routes

import (
	"kgtk-simpanse/internal/adapters/http/handlers"
	"kgtk-simpanse/internal/adapters/http/middleware"
	"kgtk-simpanse/internal/adapters/persistence/repositories"
	"kgtk-simpanse/internal/config"
	"kgtk-simpanse/internal/core/domain"
	"kgtk-simpanse/internal/core/services"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Setup configures all routes for the application and returns the reminder
// service so main can stop it on shutdown.
func Setup(app *fiber.App, state *repositories.State, cfg *config.Config) *services.ReminderService {
	// Initialize repositories
	itemRepo := repositories.NewItemRepository(state)
	loanRepo := repositories.NewLoanRepository(state)
	userRepo := repositories.NewUserRepository(state)
	sessionRepo := repositories.NewSessionRepository(state)
	configRepo := repositories.NewConfigRepository(state)

	// Initialize services
	notifyService := services.NewNotificationService()
	loanService := services.NewLoanService(loanRepo, itemRepo, sessionRepo, notifyService)
	itemService := services.NewItemService(itemRepo)
	userService := services.NewUserService(userRepo, notifyService)
	authService := services.NewAuthService(userRepo, notifyService, cfg.JWT.Secret, cfg.JWT.AccessTokenMins)
	configService := services.NewConfigService(configRepo)
	reportService := services.NewReportService(loanRepo, userRepo)
	reminderService := services.NewReminderService(loanRepo, notifyService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	loanHandler := handlers.NewLoanHandler(loanService)
	itemHandler := handlers.NewItemHandler(itemService)
	userHandler := handlers.NewUserHandler(userService)
	configHandler := handlers.NewConfigHandler(configService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAuthRoutes(apiV1.Group("/auth"), authHandler)
	setupItemRoutes(apiV1.Group("/items"), itemHandler, cfg)
	setupLoanRoutes(apiV1.Group("/loans"), loanHandler, reportHandler, cfg)
	setupSessionRoutes(apiV1.Group("/session"), loanHandler)
	setupUserRoutes(apiV1.Group("/users"), userHandler, reportHandler, cfg)
	setupConfigRoutes(apiV1.Group("/config"), configHandler, cfg)

	return reminderService
}

// setupAuthRoutes configures authentication routes (public, rate-limited)
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler) {
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/forgot-password", middleware.AuthRateLimiter(), handler.ForgotPassword)
}

// setupItemRoutes configures catalog routes
func setupItemRoutes(router fiber.Router, handler *handlers.ItemHandler, cfg *config.Config) {
	// Public catalog
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)

	// Staff management
	manage := middleware.RequireCapability(domain.CapManageItems)
	router.Post("/", middleware.AuthMiddleware(cfg), manage, handler.Create)
	router.Put("/:id", middleware.AuthMiddleware(cfg), manage, handler.Update)
	router.Delete("/:id", middleware.AuthMiddleware(cfg), manage, handler.Delete)
}

// setupLoanRoutes configures loan lifecycle routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler, reports *handlers.ReportHandler, cfg *config.Config) {
	// Public: submission, visibility-filtered listing and email lookup
	router.Post("/", handler.Submit)
	router.Get("/", middleware.OptionalAuth(cfg), handler.List)
	router.Get("/lookup", handler.Lookup)
	router.Get("/my", handler.MyLoans)

	// Staff
	auth := middleware.AuthMiddleware(cfg)
	router.Get("/dashboard", auth, middleware.RequireCapability(domain.CapViewAllLoans), handler.ListPartitioned)
	router.Get("/history", auth, middleware.RequireCapability(domain.CapViewAllLoans), handler.History)
	router.Get("/export", auth, middleware.RequireCapability(domain.CapExportReports), reports.ExportLoans)

	router.Put("/:id/verify", auth, middleware.RequireCapability(domain.CapVerifyLoan), handler.Verify)
	router.Put("/:id/approve", auth, middleware.RequireCapability(domain.CapApproveLoan), handler.Approve)
	router.Put("/:id/reject", auth, middleware.RequireCapability(domain.CapRejectLoan), handler.Reject)
	router.Put("/:id/review", auth, middleware.RequireCapability(domain.CapReviewLoan), handler.Review)
	router.Put("/:id/return", auth, middleware.RequireCapability(domain.CapReturnLoan), handler.Return)
}

// setupSessionRoutes configures the anonymous borrower session routes
func setupSessionRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Post("/logout", handler.Logout)
}

// setupUserRoutes configures the staff directory routes (SuperAdmin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler, reports *handlers.ReportHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))
	router.Use(middleware.RequireCapability(domain.CapManageUsers))

	router.Get("/", handler.List)
	router.Get("/export", reports.ExportUsers)
	router.Get("/:id", handler.Get)
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}

// setupConfigRoutes configures the system configuration routes
func setupConfigRoutes(router fiber.Router, handler *handlers.ConfigHandler, cfg *config.Config) {
	router.Get("/", handler.Get)
	router.Put("/", middleware.AuthMiddleware(cfg), middleware.RequireCapability(domain.CapManageConfig), handler.Update)
}
