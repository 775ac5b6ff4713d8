package generator

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReferenceNumberFormat(t *testing.T) {
	refNo := ReferenceNumber("completion", "Python Programming", "G28")

	parts := strings.Split(refNo, "_")
	assert.Len(t, parts, 5)
	assert.Equal(t, "COMPLETION", parts[0])
	assert.Equal(t, "PYTH", parts[1])
	assert.Equal(t, "G28", parts[2])
	assert.Equal(t, fmt.Sprintf("%d", time.Now().Year()), parts[3])
	assert.Len(t, parts[4], 4)
}

func TestReferenceNumberStripsNonAlphanumerics(t *testing.T) {
	refNo := ReferenceNumber("trainer", "VLSI & Chip Design", "G-10")

	parts := strings.Split(refNo, "_")
	assert.Equal(t, "TRAINER", parts[0])
	assert.Equal(t, "VLSI", parts[1])
	assert.Equal(t, "G10", parts[2])
}

func TestReferenceNumberShortCourseCode(t *testing.T) {
	refNo := ReferenceNumber("completion", "ES", "G13")

	parts := strings.Split(refNo, "_")
	assert.Equal(t, "ES", parts[1])
}

func TestVerificationURL(t *testing.T) {
	assert.Equal(t,
		"https://suretrust.example.com/verify/COMPLETION_PYTH_G28_2026_1234",
		VerificationURL("https://suretrust.example.com/verify/", "COMPLETION_PYTH_G28_2026_1234"),
	)
	assert.Equal(t,
		"https://suretrust.example.com/verify/REF",
		VerificationURL("https://suretrust.example.com/verify", "REF"),
	)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "N/A", FormatDate(""))
	assert.Equal(t, "March 5, 2025", FormatDate("2025-03-05"))
	assert.Equal(t, "March 5, 2025", FormatDate("05/03/2025"))
	assert.Equal(t, "March 5, 2025", FormatDate("2025-03-05T10:30:00Z"))
	assert.Equal(t, "next week", FormatDate("next week"))
}

func TestNarrativeWithTrainingPeriod(t *testing.T) {
	body := Narrative(Data{
		Course:    "Python Programming",
		StartDate: "2025-01-01",
		EndDate:   "2025-04-30",
		GPA:       "9.1",
	})

	assert.Contains(t, body, `"Python Programming"`)
	assert.Contains(t, body, "January 1, 2025")
	assert.Contains(t, body, "April 30, 2025")
	assert.Contains(t, body, "9.1 GPA")
	assert.Contains(t, body, "Life Skills Training")
}

func TestNarrativeWithoutTrainingPeriod(t *testing.T) {
	body := Narrative(Data{Course: "Data Science"})

	assert.Contains(t, body, `"Data Science"`)
	assert.NotContains(t, body, "GPA")
	assert.Contains(t, body, "SURE Trust")
}
