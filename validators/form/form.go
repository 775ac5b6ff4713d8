package formValidator

import (
	"certgen/middleware"
	"certgen/sheetdb"
	"fmt"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Helper to validate email format
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

func isValidPartition(partition string) bool {
	for _, p := range sheetdb.Partitions {
		if p == partition {
			return true
		}
	}
	return false
}

// stringifyBody flattens an arbitrary JSON body into the string map the
// field mapper consumes. Google Forms webhooks mix strings and numbers.
func stringifyBody(c *fiber.Ctx) (map[string]string, error) {
	body := make(map[string]interface{})
	if err := c.BodyParser(&body); err != nil {
		return nil, err
	}

	raw := make(map[string]string, len(body))
	for k, v := range body {
		if v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			raw[k] = val
		case float64:
			raw[k] = strings.TrimSuffix(fmt.Sprintf("%v", val), ".0")
		case bool:
			raw[k] = fmt.Sprintf("%v", val)
		default:
			// Nested objects (raw form payloads) are not stored per-column.
		}
	}
	return raw, nil
}

// Submit validator middleware: the mapper handles naming variance, so
// validation runs against the normalized view of the body.
func Submit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := stringifyBody(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !isValidPartition(c.Params("partition", "student")) {
			errors["partition"] = "Unknown certificate type!"
		}

		normalized := sheetdb.Normalize(raw)

		name := strings.TrimSpace(normalized[sheetdb.FieldFullName])
		if len(name) < 2 {
			errors["full_name"] = "Full name must be at least 2 characters long!"
		}

		email := strings.TrimSpace(normalized[sheetdb.FieldEmailAddress])
		if email == "" || !isValidEmail(email) {
			errors["email_address"] = "Invalid email!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmission", raw)
		return c.Next()
	}
}

// Patch validator middleware for admin submission updates. Lifecycle status
// values are constrained; everything else passes through to the merge.
func Patch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := stringifyBody(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(raw) == 0 {
			errors["body"] = "Nothing to update!"
		}

		if status, ok := raw[sheetdb.FieldStatus]; ok {
			switch status {
			case sheetdb.StatusPending, sheetdb.StatusGenerated, sheetdb.StatusIssued, sheetdb.StatusRevoked:
			default:
				errors["status"] = "Invalid status value!"
			}
		}

		if email, ok := raw[sheetdb.FieldEmailAddress]; ok && !isValidEmail(email) {
			errors["email_address"] = "Invalid email!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPatch", raw)
		return c.Next()
	}
}
