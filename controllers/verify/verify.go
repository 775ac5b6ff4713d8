package controllers

import (
	"certgen/middleware"
	"certgen/sheetdb"
	"certgen/verification"

	"github.com/gofiber/fiber/v2"
)

// VerifyCertificate is the public authenticity check by reference number.
// Not-found, revoked and pending are ordinary results, not errors; only a
// store failure maps to a 500.
func VerifyCertificate(c *fiber.Ctx) error {
	resolver := &verification.Resolver{Store: sheetdb.Database}

	result, err := resolver.Verify(c.Context(), c.Params("refNo"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "An error occurred while verifying the certificate. Please try again later.", nil)
	}

	status := fiber.StatusOK
	if result.Status == verification.StatusNotFound {
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(result)
}
