// Package verification authenticates certificates by reference number. The
// outcome is always a structured tri-state-plus-not-found result; callers
// must not collapse it into a bare boolean, since "pending" and "revoked"
// carry information "not found" does not.
package verification

import (
	"context"

	"certgen/sheetdb"
)

// RecordFinder is the slice of the record store verification needs.
type RecordFinder interface {
	FindByCode(ctx context.Context, code string) (*sheetdb.Record, error)
}

// Resolver looks up and evaluates certificates.
type Resolver struct {
	Store RecordFinder
}

// Statuses a verification can resolve to.
const (
	StatusNotFound = "not_found"
	StatusRevoked  = "revoked"
	StatusPending  = "pending"
	StatusValid    = "valid"
)

// Projection is the public view of a verified certificate. Non-valid
// outcomes intentionally project a narrower shape: revoked and pending
// certificates expose name and course for transparency but no scores,
// contact or organization details.
type Projection struct {
	ReferenceNumber      string `json:"referenceNumber"`
	CertificateType      string `json:"certificateType,omitempty"`
	HolderName           string `json:"holderName"`
	Email                string `json:"email,omitempty"`
	Course               string `json:"course"`
	Batch                string `json:"batch,omitempty"`
	BatchInitials        string `json:"batchInitials,omitempty"`
	StartDate            string `json:"startDate,omitempty"`
	EndDate              string `json:"endDate,omitempty"`
	GPA                  string `json:"gpa,omitempty"`
	TrainingHours        string `json:"trainingHours,omitempty"`
	AttendancePercentage string `json:"attendancePercentage,omitempty"`
	AssessmentScore      string `json:"assessmentScore,omitempty"`
	Organization         string `json:"organization,omitempty"`
	Position             string `json:"position,omitempty"`
	IssuedDate           string `json:"issuedDate,omitempty"`
	VerificationURL      string `json:"verificationUrl,omitempty"`
}

// Result is the outcome of one verification.
type Result struct {
	Valid       bool        `json:"valid"`
	Status      string      `json:"status"`
	Message     string      `json:"message"`
	Certificate *Projection `json:"certificateData,omitempty"`
}

// Verify evaluates a reference/verification code. States are checked in
// order: not found, revoked, pending, valid. Only store I/O failures return
// an error; every lookup outcome is a value.
func (r *Resolver) Verify(ctx context.Context, code string) (*Result, error) {
	rec, err := r.Store.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if rec == nil {
		return &Result{
			Valid:   false,
			Status:  StatusNotFound,
			Message: "The provided reference number does not match any certificate in our records.",
		}, nil
	}

	if rec.Status() == sheetdb.StatusRevoked {
		return &Result{
			Valid:   false,
			Status:  StatusRevoked,
			Message: "This certificate has been revoked.",
			Certificate: &Projection{
				ReferenceNumber: code,
				HolderName:      rec.FullName(),
				Course:          rec.Course(),
				IssuedDate:      rec.Get(sheetdb.FieldIssuedDate),
			},
		}, nil
	}

	if rec.Status() != sheetdb.StatusGenerated && rec.Status() != sheetdb.StatusIssued {
		return &Result{
			Valid:   false,
			Status:  StatusPending,
			Message: "This certificate is still being processed.",
			Certificate: &Projection{
				ReferenceNumber: code,
				HolderName:      rec.FullName(),
				Course:          rec.Course(),
			},
		}, nil
	}

	return &Result{
		Valid:   true,
		Status:  StatusValid,
		Message: "Certificate is valid and authentic.",
		Certificate: &Projection{
			ReferenceNumber:      code,
			CertificateType:      rec.Partition,
			HolderName:           rec.FullName(),
			Email:                rec.Email(),
			Course:               rec.Course(),
			Batch:                rec.Get(sheetdb.FieldBatchName),
			BatchInitials:        rec.Get(sheetdb.FieldBatchInitials),
			StartDate:            rec.Get(sheetdb.FieldStartDate),
			EndDate:              rec.Get(sheetdb.FieldEndDate),
			GPA:                  rec.Get(sheetdb.FieldGPA),
			TrainingHours:        rec.Get(sheetdb.FieldTrainingHours),
			AttendancePercentage: rec.Get(sheetdb.FieldAttendancePercentage),
			AssessmentScore:      rec.Get(sheetdb.FieldAssessmentScore),
			Organization:         rec.Get(sheetdb.FieldOrganization),
			Position:             rec.Get(sheetdb.FieldPosition),
			IssuedDate:           rec.Get(sheetdb.FieldIssuedDate),
			VerificationURL:      rec.Get(sheetdb.FieldCertificateURL),
		},
	}, nil
}
