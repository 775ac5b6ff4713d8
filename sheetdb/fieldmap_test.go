package sheetdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMapsFormColumns(t *testing.T) {
	raw := map[string]string{
		"FULL NAME":     "Ravi Kumar",
		"Email Address": "ravi@example.com",
		"Course/Domain": "VLSI Design G10",
		"Batch":         "G10",
		"GPA":           "9.1",
	}

	fields := Normalize(raw)

	assert.Equal(t, "Ravi Kumar", fields[FieldFullName])
	assert.Equal(t, "ravi@example.com", fields[FieldEmailAddress])
	assert.Equal(t, "VLSI Design G10", fields[FieldCourseName])
	assert.Equal(t, "G10", fields[FieldBatchInitials])
	assert.Equal(t, "9.1", fields[FieldGPA])
}

func TestNormalizeIsCaseInsensitiveAndTrimmed(t *testing.T) {
	fields := Normalize(map[string]string{
		"  full name ":  "Asha",
		"EMAIL ADDRESS": "asha@example.com",
	})

	assert.Equal(t, "Asha", fields[FieldFullName])
	assert.Equal(t, "asha@example.com", fields[FieldEmailAddress])
}

func TestNormalizeAliasOrderWins(t *testing.T) {
	// Both aliases present with different values: the first alias in the
	// list must win, deterministically.
	fields := Normalize(map[string]string{
		"Course/Domain": "Cloud Computing",
		"Course Name":   "Something Else",
	})
	assert.Equal(t, "Cloud Computing", fields[FieldCourseName])

	// First alias present but empty: the next non-empty alias wins.
	fields = Normalize(map[string]string{
		"Course/Domain": "",
		"Course Name":   "Java Basics",
	})
	assert.Equal(t, "Java Basics", fields[FieldCourseName])
}

func TestNormalizeIsIdempotent(t *testing.T) {
	raw := map[string]string{
		"FULL NAME":     "Ravi Kumar",
		"Email Address": "ravi@example.com",
		"Batch":         "G12",
	}

	once := Normalize(raw)
	twice := Normalize(once)

	assert.Equal(t, once, twice)
}

func TestNormalizeDoesNotValidate(t *testing.T) {
	// Missing required fields are the caller's problem, not the mapper's.
	fields := Normalize(map[string]string{"GPA": "8.0"})
	require.NotNil(t, fields)
	assert.Empty(t, fields[FieldFullName])
	assert.Equal(t, "8.0", fields[FieldGPA])
}

func TestNormalizeRowDefaultsAndAudit(t *testing.T) {
	raw := map[string]string{
		"FULL NAME":      "Ravi Kumar",
		"Unknown Column": "kept verbatim",
	}

	fields, original := NormalizeRow(raw)

	assert.Equal(t, StatusPending, fields[FieldStatus])
	assert.Equal(t, "kept verbatim", original["Unknown Column"])
	assert.Equal(t, "Ravi Kumar", original["FULL NAME"])
}

func TestCanonicalFor(t *testing.T) {
	field, ok := CanonicalFor("Status")
	assert.True(t, ok)
	assert.Equal(t, FieldStatus, field)

	field, ok = CanonicalFor("  full name ")
	assert.True(t, ok)
	assert.Equal(t, FieldFullName, field)

	_, ok = CanonicalFor("Unknown Column")
	assert.False(t, ok)
}

func TestNormalizeCollidingKeysAreDeterministic(t *testing.T) {
	// Two raw keys folding to the same name: the first non-empty value in
	// sorted key order survives, regardless of map iteration order.
	raw := map[string]string{
		"STATUS": "pending",
		"Status": "revoked",
	}

	for i := 0; i < 50; i++ {
		assert.Equal(t, "pending", Normalize(raw)[FieldStatus])
	}
}
