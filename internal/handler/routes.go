package handler

import (
	"lingo-days/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles everything RegisterRoutes mounts.
type Handlers struct {
	Auth    *AuthHandler
	Lessons *LessonHandler
	Webhook *WebhookHandler
	Health  *HealthHandler
}

// RegisterRoutes mounts the API under /api and the health check at /health.
// The fixed lesson paths are registered before /lessons/:day so they are not taken as a day.
func RegisterRoutes(app *fiber.App, h Handlers, tokens middleware.TokenValidator, cookieName string) {
	protected := middleware.Protected(tokens, cookieName)
	validationMiddleware := middleware.NewValidationMiddleware()

	app.Get("/health", h.Health.Check)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/logout", h.Auth.Logout)
	auth.Get("/me", protected, h.Auth.Me)
	auth.Put("/change-password", protected, h.Auth.ChangePassword)
	auth.Put("/accept-terms", protected, h.Auth.AcceptTerms)
	auth.Get("/google/login", h.Auth.GoogleLogin)
	auth.Get("/google/callback", h.Auth.GoogleCallback)

	lessons := api.Group("/lessons", protected)
	lessons.Get("/", h.Lessons.ListLessons)
	lessons.Get("/bulk/initial-data", h.Lessons.BulkInitialData)
	lessons.Get("/vocabulary/game", h.Lessons.VocabularyGame)
	lessons.Get("/:day", validationMiddleware.ValidateDayParam(), h.Lessons.GetLesson)
	lessons.Post("/:day/complete", validationMiddleware.ValidateDayParam(), h.Lessons.CompleteLesson)
	lessons.Post("/:day/save", validationMiddleware.ValidateDayParam(), h.Lessons.SaveProgress)

	api.Post("/webhook/salla/order", h.Webhook.SallaOrder)
}
