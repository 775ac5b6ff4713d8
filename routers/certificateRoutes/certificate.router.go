package certificateRoutes

import (
	certificateControllers "certgen/controllers/certificate"
	"certgen/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupCertificateRoutes(app *fiber.App) {
	certGroup := app.Group("/api/certificates")

	certGroup.Post("/generate/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), certificateControllers.GenerateCertificate)

	// Downloads are public: the reference number is the capability.
	certGroup.Get("/:refNo/pdf", certificateControllers.DownloadCertificatePDF)
	certGroup.Get("/:refNo/image", certificateControllers.DownloadCertificateImage)
}
