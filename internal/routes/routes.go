package routes

import (
	"time"

	"github.com/careertrackhq/careertrack-backend/internal/config"
	"github.com/careertrackhq/careertrack-backend/internal/handlers"
	"github.com/careertrackhq/careertrack-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	applicationHandler *handlers.ApplicationHandler,
	documentHandler *handlers.DocumentHandler,
	progressHandler *handlers.ProgressHandler,
	aiHandler *handlers.AIHandler,
	adminHandler *handlers.AdminHandler,
) {
	api := app.Group("/api/v1")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth is public with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Everything below requires a valid JWT for an active account.
	protected := api.Group("", middleware.Protected(cfg), middleware.ActiveUser(db))

	protected.Get("/users/me", profileHandler.GetMe)
	protected.Patch("/users/me", profileHandler.UpdateMe)

	apps := protected.Group("/job-applications")
	apps.Post("/", applicationHandler.Create)
	apps.Get("/", applicationHandler.List)
	// Bulk delete must register before the :id route.
	apps.Delete("/bulk", applicationHandler.BulkDelete)
	apps.Get("/:id", applicationHandler.Get)
	apps.Put("/:id", applicationHandler.Update)
	apps.Delete("/:id", applicationHandler.Delete)

	docs := protected.Group("/documents")
	docs.Post("/", documentHandler.Upload)
	docs.Get("/", documentHandler.List)
	docs.Get("/status", documentHandler.Status)
	docs.Get("/:id", documentHandler.Get)
	docs.Put("/:id", documentHandler.Update)
	docs.Delete("/:id", documentHandler.Delete)
	docs.Get("/:id/download", documentHandler.Download)

	progress := protected.Group("/progress")
	progress.Get("/kpis", progressHandler.KPIs)
	progress.Get("/charts", progressHandler.Charts)
	progress.Get("/activity", progressHandler.Activity)
	progress.Get("/summary", progressHandler.Summary)

	protected.Get("/dashboard/stats", progressHandler.Dashboard)

	ai := protected.Group("/ai-assistant")
	ai.Post("/chat", aiHandler.Chat)
	ai.Get("/conversations", aiHandler.ListConversations)
	ai.Get("/conversations/:id/messages", aiHandler.ListMessages)
	ai.Delete("/conversations/:id", aiHandler.DeleteConversation)

	admin := protected.Group("/admin", middleware.AdminRequired(cfg))
	admin.Get("/users", adminHandler.ListUsers)
	admin.Patch("/users/:id/status", adminHandler.SetUserStatus)
	admin.Get("/applications", adminHandler.ListApplications)
	admin.Get("/documents", adminHandler.ListDocuments)
	admin.Get("/stats", adminHandler.Stats)
}
