package sheetdb

// Canonical field names. Rows coming from the three partition sheets are
// normalized onto these regardless of how the originating form labeled its
// columns.
const (
	FieldTimestamp            = "timestamp"
	FieldFullName             = "full_name"
	FieldEmailAddress         = "email_address"
	FieldTitle                = "title"
	FieldPhone                = "phone"
	FieldDateOfBirth          = "date_of_birth"
	FieldGender               = "gender"
	FieldQualification        = "qualification"
	FieldInstitution          = "institution"
	FieldSpecialization       = "specialization"
	FieldExperienceYears      = "experience_years"
	FieldOrganization         = "organization"
	FieldPosition             = "position"
	FieldEmployeeID           = "employee_id"
	FieldCourseName           = "course_name"
	FieldCourseDomain         = "course_domain"
	FieldBatchInitials        = "batch_initials"
	FieldBatchName            = "batch_name"
	FieldTrainingType         = "training_type"
	FieldTrainingMode         = "training_mode"
	FieldStartDate            = "start_date"
	FieldEndDate              = "end_date"
	FieldAttendancePercentage = "attendance_percentage"
	FieldAssessmentScore      = "assessment_score"
	FieldGPA                  = "gpa"
	FieldGrade                = "grade"
	FieldPerformanceRating    = "performance_rating"
	FieldTrainingHours        = "training_hours"
	FieldCertificateType      = "certificate_type"
	FieldStatus               = "status"
	FieldCertificateID        = "certificate_id"
	FieldCertificateURL       = "certificate_url"
	FieldQRCode               = "qr_code"
	FieldIssuedDate           = "issued_date"
	FieldValidUntil           = "valid_until"
	FieldVerificationCode     = "verification_code"
	FieldFormSource           = "form_source"
	FieldResponseID           = "response_id"
	FieldAdditionalData       = "additional_data"
)

// Submission lifecycle states.
const (
	StatusPending   = "pending"
	StatusGenerated = "generated"
	StatusIssued    = "issued"
	StatusRevoked   = "revoked"
)

// Partitions are the three independent record categories, each backed by its
// own spreadsheet.
var Partitions = []string{"student", "trainer", "trainee"}

// CanonicalColumns is the ground-truth column set for every partition sheet.
// The reconciler appends any of these missing from a sheet's header row;
// existing column order is never disturbed, so this list only governs the
// order of newly added columns.
var CanonicalColumns = []string{
	FieldTimestamp,
	FieldFullName,
	FieldEmailAddress,
	FieldTitle,
	FieldPhone,
	FieldDateOfBirth,
	FieldGender,
	FieldQualification,
	FieldInstitution,
	FieldSpecialization,
	FieldExperienceYears,
	FieldOrganization,
	FieldPosition,
	FieldEmployeeID,
	FieldCourseName,
	FieldCourseDomain,
	FieldBatchInitials,
	FieldBatchName,
	FieldTrainingType,
	FieldTrainingMode,
	FieldStartDate,
	FieldEndDate,
	FieldAttendancePercentage,
	FieldAssessmentScore,
	FieldGPA,
	FieldGrade,
	FieldPerformanceRating,
	FieldTrainingHours,
	FieldCertificateType,
	FieldStatus,
	FieldCertificateID,
	FieldCertificateURL,
	FieldQRCode,
	FieldIssuedDate,
	FieldValidUntil,
	FieldVerificationCode,
	FieldFormSource,
	FieldResponseID,
	FieldAdditionalData,
}

// Record is one normalized row from a partition sheet. Fields holds canonical
// values only; Original keeps the raw, pre-normalization row for audit and
// debugging and is never used for business logic.
type Record struct {
	ID        string            `json:"_id"`
	Partition string            `json:"certificate_type"`
	RowNumber int               `json:"_rowNumber"`
	Fields    map[string]string `json:"fields"`
	Original  map[string]string `json:"_originalData,omitempty"`
}

// Get returns the canonical field value, or "" when unset.
func (r *Record) Get(field string) string {
	if r == nil || r.Fields == nil {
		return ""
	}
	return r.Fields[field]
}

func (r *Record) Status() string   { return r.Get(FieldStatus) }
func (r *Record) FullName() string { return r.Get(FieldFullName) }
func (r *Record) Email() string    { return r.Get(FieldEmailAddress) }
func (r *Record) Course() string   { return r.Get(FieldCourseName) }
