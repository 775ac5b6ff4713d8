package adminRoutes

import (
	adminControllers "certgen/controllers/admin"
	"certgen/middleware"
	formValidators "certgen/validators/form"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/api/admin", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	adminGroup.Get("/submissions", adminControllers.GetSubmissions)
	adminGroup.Get("/submissions/:id", adminControllers.GetSubmission)
	adminGroup.Patch("/submissions/:id", formValidators.Patch(), adminControllers.UpdateSubmission)
	adminGroup.Post("/submissions/:id/revoke", adminControllers.RevokeSubmission)
	adminGroup.Get("/stats", adminControllers.GetStats)
}
