package controllers

import (
	"certgen/middleware"
	"certgen/sheetdb"

	"github.com/gofiber/fiber/v2"
)

// GetSubmissions lists a partition's submissions with filtering and
// pagination. Filters run before pagination, so the reported total counts
// the filtered set.
func GetSubmissions(c *fiber.Ctx) error {
	partition := c.Query("type", "student")

	result, err := sheetdb.Database.List(c.Context(), partition, sheetdb.ListOptions{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 20),
		Status: c.Query("status"),
		Search: c.Query("search"),
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully!", result)
}

// GetSubmission fetches a single submission by its opaque id
func GetSubmission(c *fiber.Ctx) error {
	rec, err := sheetdb.Database.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submission!", nil)
	}
	if rec == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission fetched successfully!", rec)
}

// UpdateSubmission shallow-merges the request body over the stored record.
// Fields not present in the patch keep their current values.
func UpdateSubmission(c *fiber.Ctx) error {
	patch, ok := c.Locals("validatedPatch").(map[string]string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	rec, err := sheetdb.Database.Update(c.Context(), c.Params("id"), patch)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update submission!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission updated successfully!", rec)
}

// RevokeSubmission marks a certificate as revoked. Terminal for verification
// purposes; the archived document is kept.
func RevokeSubmission(c *fiber.Ctx) error {
	id := c.Params("id")

	rec, err := sheetdb.Database.GetByID(c.Context(), id)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submission!", nil)
	}
	if rec == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}

	if rec.Status() != sheetdb.StatusGenerated && rec.Status() != sheetdb.StatusIssued {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only generated or issued certificates can be revoked!", nil)
	}

	updated, err := sheetdb.Database.Update(c.Context(), id, map[string]string{
		sheetdb.FieldStatus: sheetdb.StatusRevoked,
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to revoke certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate revoked successfully!", updated)
}

// GetStats tallies submissions per partition by lifecycle status
func GetStats(c *fiber.Ctx) error {
	stats, err := sheetdb.Database.Stats(c.Context())
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch statistics!", nil)
	}

	totals := &sheetdb.PartitionStats{}
	for _, ps := range stats {
		totals.Total += ps.Total
		totals.Pending += ps.Pending
		totals.Generated += ps.Generated
		totals.Issued += ps.Issued
		totals.Revoked += ps.Revoked
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Statistics fetched successfully!", fiber.Map{
		"overview": totals,
		"byType":   stats,
	})
}
