package formRoutes

import (
	formControllers "certgen/controllers/form"
	formValidators "certgen/validators/form"

	"github.com/gofiber/fiber/v2"
)

func SetupFormRoutes(app *fiber.App) {
	formGroup := app.Group("/api/forms")

	formGroup.Post("/submit", formValidators.Submit(), formControllers.SubmitForm)
	formGroup.Post("/submit/:partition", formValidators.Submit(), formControllers.SubmitForm)
}
