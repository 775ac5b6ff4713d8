package models

import (
	"time"

	"gorm.io/gorm"
)

// CertificateFile archives the rendered document bytes for one issued
// certificate, keyed by its public reference number. Rows are immutable:
// regenerating a certificate for the same submission creates a new row with a
// new reference number, never an update of the old one.
type CertificateFile struct {
	gorm.Model
	ReferenceNo   string `gorm:"uniqueIndex;not null"`
	CertificateID string `gorm:"index"`
	SubmissionID  string `gorm:"index"` // {partition}_{rowNumber}
	HolderName    string
	Course        string
	Batch         string
	TemplateUsed  string
	Method        string // canvas or pdfkit
	PDFData       []byte `gorm:"type:bytea" json:"-"`
	ImageData     []byte `gorm:"type:bytea" json:"-"`
	IssuedAt      time.Time
	IsDeleted     bool `gorm:"default:false"`
}
