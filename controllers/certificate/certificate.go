package controllers

import (
	"certgen/database"
	"certgen/generator"
	"certgen/middleware"
	"certgen/models"
	"certgen/sheetdb"
	"certgen/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GenerateCertificate composes a certificate document for one submission,
// archives the rendered bytes and advances the submission lifecycle:
// generated once composed, issued once the bytes are durably stored.
func GenerateCertificate(c *fiber.Ctx) error {
	id := c.Params("id")

	rec, err := sheetdb.Database.GetByID(c.Context(), id)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submission!", nil)
	}
	if rec == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}
	if rec.Status() == sheetdb.StatusRevoked {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot generate a certificate for a revoked submission!", nil)
	}

	data := generator.Prepare(
		rec.FullName(),
		rec.Course(),
		rec.Get(sheetdb.FieldBatchInitials),
		rec.Get(sheetdb.FieldStartDate),
		rec.Get(sheetdb.FieldEndDate),
		rec.Get(sheetdb.FieldGPA),
		rec.Partition,
	)

	result, err := generator.Default.Generate(data)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Certificate generation failed!", nil)
	}

	// Mark generated as soon as composition succeeds; the reference number
	// becomes the submission's verification code.
	if _, err := sheetdb.Database.Update(c.Context(), id, map[string]string{
		sheetdb.FieldStatus:           sheetdb.StatusGenerated,
		sheetdb.FieldCertificateID:    result.CertificateID,
		sheetdb.FieldVerificationCode: result.ReferenceNo,
		sheetdb.FieldCertificateURL:   result.VerificationURL,
		sheetdb.FieldIssuedDate:       result.IssuedAt.Format("2006-01-02"),
	}); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update submission!", nil)
	}

	file := models.CertificateFile{
		ReferenceNo:   result.ReferenceNo,
		CertificateID: result.CertificateID,
		SubmissionID:  id,
		HolderName:    data.Name,
		Course:        rec.Course(),
		Batch:         data.Batch,
		TemplateUsed:  result.Template.Filename,
		Method:        result.Method,
		PDFData:       result.Output.PDF,
		ImageData:     result.Output.PNG,
		IssuedAt:      result.IssuedAt,
	}
	if err := database.Database.Db.Create(&file).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store certificate files!", nil)
	}

	if _, err := sheetdb.Database.Update(c.Context(), id, map[string]string{
		sheetdb.FieldStatus: sheetdb.StatusIssued,
	}); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update submission!", nil)
	}

	// Delivery is best-effort; a mail failure never fails the issuance.
	if rec.Email() != "" {
		go func(email, name, refNo, verifyURL string, pdf []byte) {
			if err := utils.SendCertificateEmail(email, name, refNo, verifyURL, pdf); err != nil {
				log.Printf("Certificate email to %s failed: %v", email, err)
			}
		}(rec.Email(), data.Name, result.ReferenceNo, result.VerificationURL, result.Output.PDF)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate generated successfully!", result)
}

// DownloadCertificatePDF streams the archived PDF by reference number
func DownloadCertificatePDF(c *fiber.Ctx) error {
	var file models.CertificateFile
	if err := database.Database.Db.Where("reference_no = ? AND is_deleted = ?", c.Params("refNo"), false).First(&file).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.ReferenceNo+`.pdf"`)
	return c.Send(file.PDFData)
}

// DownloadCertificateImage streams the archived PNG by reference number. The
// image is best-effort output: PDF-only generations have none.
func DownloadCertificateImage(c *fiber.Ctx) error {
	var file models.CertificateFile
	if err := database.Database.Db.Where("reference_no = ? AND is_deleted = ?", c.Params("refNo"), false).First(&file).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if len(file.ImageData) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No image was produced for this certificate!", nil)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.ReferenceNo+`.png"`)
	return c.Send(file.ImageData)
}
