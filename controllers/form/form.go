package controllers

import (
	"certgen/middleware"
	"certgen/sheetdb"

	"github.com/gofiber/fiber/v2"
)

// SubmitForm receives a form submission from any intake source (Google Forms
// webhook, the public site form, bulk import) and stores it in the partition
// named by the route. Column naming varies per source; the field mapper
// reconciles it before insert.
func SubmitForm(c *fiber.Ctx) error {
	raw, ok := c.Locals("validatedSubmission").(map[string]string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	partition := c.Params("partition", "student")

	fields := sheetdb.Normalize(raw)
	if fields[sheetdb.FieldCertificateType] == "" {
		fields[sheetdb.FieldCertificateType] = partition
	}

	id, err := sheetdb.Database.Insert(c.Context(), partition, fields)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store form submission!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Form submission received and stored successfully!", fiber.Map{
		"submissionId": id,
		"status":       "pending_approval",
	})
}
