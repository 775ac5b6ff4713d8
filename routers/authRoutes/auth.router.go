package authRoutes

import (
	authControllers "certgen/controllers/auth"
	authValidators "certgen/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
}
