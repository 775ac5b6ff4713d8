package verifyRoutes

import (
	verifyControllers "certgen/controllers/verify"

	"github.com/gofiber/fiber/v2"
)

func SetupVerifyRoutes(app *fiber.App) {
	verifyGroup := app.Group("/api/verify")

	verifyGroup.Get("/:refNo", verifyControllers.VerifyCertificate)
}
