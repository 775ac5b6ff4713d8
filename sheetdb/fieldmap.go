package sheetdb

import (
	"sort"
	"strings"
)

// fieldAlias maps one canonical field to the source-column names it may
// arrive under. Google Forms label columns with the question text, and the
// three intake forms phrase the same question differently, so each canonical
// field carries an ordered alias list. Order matters: when two aliases are
// both present with different values, the first one in the list wins.
type fieldAlias struct {
	Field   string
	Aliases []string
}

var fieldAliases = []fieldAlias{
	{FieldTimestamp, []string{"Timestamp", "timestamp"}},
	{FieldFullName, []string{"FULL NAME", "Full Name", "full_name"}},
	{FieldEmailAddress, []string{"Email Address", "Email address", "email_address"}},
	{FieldTitle, []string{"Title", "title"}},
	{FieldPhone, []string{"Phone Number", "Phone Number ", "phone"}},
	{FieldDateOfBirth, []string{"DATE OF BIRTH", "Date of Birth", "date_of_birth"}},
	{FieldGender, []string{"GENDER", "Gender", "gender"}},
	{FieldQualification, []string{"Qualification", "qualification"}},
	{FieldInstitution, []string{"Institution", "College Name", "institution"}},
	{FieldSpecialization, []string{"Specialization", "specialization"}},
	{FieldExperienceYears, []string{"Years of Experience", "experience_years"}},
	{FieldOrganization, []string{"Organization", "Company Name", "organization"}},
	{FieldPosition, []string{"Position", "Designation", "position"}},
	{FieldEmployeeID, []string{"Employee ID", "employee_id"}},
	{FieldCourseName, []string{"Course/Domain", "Course Name", "course_name"}},
	{FieldCourseDomain, []string{"Course Domain", "course_domain"}},
	{FieldBatchInitials, []string{"Batch", "batch_initials"}},
	{FieldBatchName, []string{"Batch Name", "batch_name"}},
	{FieldTrainingType, []string{"Training Type", "training_type"}},
	{FieldTrainingMode, []string{"Training Mode", "training_mode"}},
	{FieldStartDate, []string{"Start Date", "Training Start Date", "start_date"}},
	{FieldEndDate, []string{"End Date", "Training End Date", "end_date"}},
	{FieldAttendancePercentage, []string{"Attendance Percentage", "attendance_percentage"}},
	{FieldAssessmentScore, []string{"Assessment Score", "assessment_score"}},
	{FieldGPA, []string{"GPA", "gpa"}},
	{FieldGrade, []string{"Grade", "grade"}},
	{FieldPerformanceRating, []string{"Performance Rating", "performance_rating"}},
	{FieldTrainingHours, []string{"Training Hours", "training_hours"}},
	{FieldCertificateType, []string{"Choose Your Role", "certificate_type"}},
	{FieldStatus, []string{"Status", "status"}},
	{FieldCertificateID, []string{"Certificate ID", "certificate_id"}},
	{FieldCertificateURL, []string{"Certificate URL", "certificate_url"}},
	{FieldQRCode, []string{"QR Code", "qr_code"}},
	{FieldIssuedDate, []string{"Issued Date", "issued_date"}},
	{FieldValidUntil, []string{"Valid Until", "valid_until"}},
	{FieldVerificationCode, []string{"Verification Code", "verification_code"}},
	{FieldFormSource, []string{"Form Source", "form_source"}},
	{FieldResponseID, []string{"Response ID", "response_id"}},
	{FieldAdditionalData, []string{"Additional Data", "additional_data"}},
}

// aliasIndex folds every alias to lowercase-trimmed form for reverse lookup.
// When two aliases of different fields fold identically the earlier field in
// fieldAliases claims the name.
var aliasIndex = func() map[string]string {
	idx := make(map[string]string)
	for _, fa := range fieldAliases {
		for _, alias := range fa.Aliases {
			key := strings.ToLower(strings.TrimSpace(alias))
			if _, ok := idx[key]; !ok {
				idx[key] = fa.Field
			}
		}
	}
	return idx
}()

// CanonicalFor resolves a raw column name to its canonical field. Matching
// folds case and whitespace the same way Normalize does.
func CanonicalFor(column string) (string, bool) {
	field, ok := aliasIndex[strings.ToLower(strings.TrimSpace(column))]
	return field, ok
}

// Normalize maps an arbitrary raw row onto canonical field names. For each
// canonical field the alias list is tried in order and the first alias
// present with a non-empty value wins. Matching is case-insensitive and
// whitespace-trimmed on both sides. Missing required fields are not an error
// here; validation belongs to the caller.
func Normalize(raw map[string]string) map[string]string {
	// Pre-fold the raw keys once so each alias probe is a map lookup. Keys
	// are folded in sorted order so that when two raw keys collide after
	// folding, the first non-empty value by key order wins deterministically.
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	folded := make(map[string]string, len(raw))
	for _, k := range keys {
		fk := strings.ToLower(strings.TrimSpace(k))
		if v, seen := folded[fk]; seen && v != "" {
			continue
		}
		folded[fk] = raw[k]
	}

	normalized := make(map[string]string, len(fieldAliases))
	for _, fa := range fieldAliases {
		for _, alias := range fa.Aliases {
			v, ok := folded[strings.ToLower(strings.TrimSpace(alias))]
			if ok && v != "" {
				normalized[fa.Field] = v
				break
			}
		}
	}
	return normalized
}

// NormalizeRow produces the store's view of a raw sheet row: canonical fields
// with the pending-status default applied, and the untouched raw row kept
// alongside for audit.
func NormalizeRow(raw map[string]string) (fields, original map[string]string) {
	fields = Normalize(raw)
	if fields[FieldStatus] == "" {
		fields[FieldStatus] = StatusPending
	}
	original = make(map[string]string, len(raw))
	for k, v := range raw {
		original[k] = v
	}
	return fields, original
}
