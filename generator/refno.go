package generator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var nonAlnumRe = regexp.MustCompile(`[^A-Z0-9]`)

// ReferenceNumber builds the public certificate identifier:
// {TYPE}_{COURSE_CODE}_{BATCH}_{YEAR}_{UNIQUE4}. The course code is the
// course string with non-alphanumerics stripped, truncated to 4 characters.
func ReferenceNumber(certType, course, batch string) string {
	typeCode := strings.ToUpper(strings.TrimSpace(certType))
	courseCode := nonAlnumRe.ReplaceAllString(strings.ToUpper(course), "")
	if len(courseCode) > 4 {
		courseCode = courseCode[:4]
	}
	batchCode := nonAlnumRe.ReplaceAllString(strings.ToUpper(batch), "")
	year := time.Now().Year()

	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	unique := millis[len(millis)-4:]

	return fmt.Sprintf("%s_%s_%s_%d_%s", typeCode, courseCode, batchCode, year, unique)
}

// VerificationURL appends the reference number to the environment-supplied
// base URL.
func VerificationURL(baseURL, refNo string) string {
	return strings.TrimRight(baseURL, "/") + "/" + refNo
}

// FormatDate renders a stored date for the certificate body. Unparseable
// input is printed as-is rather than dropped.
func FormatDate(value string) string {
	if value == "" {
		return "N/A"
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "02/01/2006", "1/2/2006"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return value
}

// Narrative builds the certificate body paragraph. The long form is used when
// the training period is known.
func Narrative(d Data) string {
	if d.StartDate != "" && d.EndDate != "" {
		return fmt.Sprintf(
			`For successful completion of four months training in "%s" from %s to %s securing %s GPA, attending the mandatory "Life Skills Training" sessions, and completing the services to community launched by SURE Trust`,
			d.Course, FormatDate(d.StartDate), FormatDate(d.EndDate), d.GPA,
		)
	}
	return fmt.Sprintf(
		`For successful completion of training in "%s" demonstrating exceptional skills and commitment to excellence in learning at SURE Trust`,
		d.Course,
	)
}
