package verification

import (
	"context"
	"errors"
	"testing"

	"certgen/sheetdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFinder struct {
	records map[string]*sheetdb.Record
	err     error
}

func (f *fakeFinder) FindByCode(_ context.Context, code string) (*sheetdb.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records[code], nil
}

func issuedRecord(status string) *sheetdb.Record {
	return &sheetdb.Record{
		ID:        "student_2",
		Partition: "student",
		RowNumber: 2,
		Fields: map[string]string{
			sheetdb.FieldFullName:             "Jane Doe",
			sheetdb.FieldEmailAddress:         "jane@example.com",
			sheetdb.FieldCourseName:           "Python Programming",
			sheetdb.FieldBatchName:            "Batch 28",
			sheetdb.FieldBatchInitials:        "G28",
			sheetdb.FieldStartDate:            "2025-01-01",
			sheetdb.FieldEndDate:              "2025-04-30",
			sheetdb.FieldGPA:                  "9.1",
			sheetdb.FieldVerificationCode:     "COMPLETION_PYTH_G28_2025_0042",
			sheetdb.FieldStatus:               status,
			sheetdb.FieldIssuedDate:           "2025-05-02",
			sheetdb.FieldCertificateURL:       "https://suretrust.example.com/verify/COMPLETION_PYTH_G28_2025_0042",
			sheetdb.FieldOrganization:         "SURE Trust",
			sheetdb.FieldTrainingHours:        "320",
			sheetdb.FieldAssessmentScore:      "88",
			sheetdb.FieldAttendancePercentage: "95",
		},
	}
}

func TestVerifyNotFound(t *testing.T) {
	r := &Resolver{Store: &fakeFinder{records: map[string]*sheetdb.Record{}}}

	res, err := r.Verify(context.Background(), "NOPE")
	require.NoError(t, err)

	assert.False(t, res.Valid)
	assert.Equal(t, StatusNotFound, res.Status)
	assert.Nil(t, res.Certificate)
	assert.Contains(t, res.Message, "does not match")
}

func TestVerifyRevokedProjectsNarrowly(t *testing.T) {
	code := "COMPLETION_PYTH_G28_2025_0042"
	r := &Resolver{Store: &fakeFinder{records: map[string]*sheetdb.Record{
		code: issuedRecord(sheetdb.StatusRevoked),
	}}}

	res, err := r.Verify(context.Background(), code)
	require.NoError(t, err)

	assert.False(t, res.Valid)
	assert.Equal(t, StatusRevoked, res.Status)
	require.NotNil(t, res.Certificate)
	assert.Equal(t, "Jane Doe", res.Certificate.HolderName)
	assert.Equal(t, "Python Programming", res.Certificate.Course)
	assert.Equal(t, "2025-05-02", res.Certificate.IssuedDate)
	assert.Empty(t, res.Certificate.Email)
	assert.Empty(t, res.Certificate.GPA)
	assert.Empty(t, res.Certificate.Organization)
}

func TestVerifyPendingProjectsNarrowly(t *testing.T) {
	code := "COMPLETION_PYTH_G28_2025_0042"
	r := &Resolver{Store: &fakeFinder{records: map[string]*sheetdb.Record{
		code: issuedRecord(sheetdb.StatusPending),
	}}}

	res, err := r.Verify(context.Background(), code)
	require.NoError(t, err)

	assert.False(t, res.Valid)
	assert.Equal(t, StatusPending, res.Status)
	require.NotNil(t, res.Certificate)
	assert.Equal(t, "Jane Doe", res.Certificate.HolderName)
	assert.Equal(t, "Python Programming", res.Certificate.Course)
	assert.Empty(t, res.Certificate.Email)
	assert.Empty(t, res.Certificate.IssuedDate)
}

func TestVerifyValid(t *testing.T) {
	code := "COMPLETION_PYTH_G28_2025_0042"
	for _, status := range []string{sheetdb.StatusGenerated, sheetdb.StatusIssued} {
		r := &Resolver{Store: &fakeFinder{records: map[string]*sheetdb.Record{
			code: issuedRecord(status),
		}}}

		res, err := r.Verify(context.Background(), code)
		require.NoError(t, err)

		assert.True(t, res.Valid, "status %s", status)
		assert.Equal(t, StatusValid, res.Status)
		require.NotNil(t, res.Certificate)
		assert.Equal(t, code, res.Certificate.ReferenceNumber)
		assert.Equal(t, "student", res.Certificate.CertificateType)
		assert.Equal(t, "jane@example.com", res.Certificate.Email)
		assert.Equal(t, "Batch 28", res.Certificate.Batch)
		assert.Equal(t, "G28", res.Certificate.BatchInitials)
		assert.Equal(t, "9.1", res.Certificate.GPA)
		assert.Equal(t, "SURE Trust", res.Certificate.Organization)
	}
}

func TestVerifyStoreError(t *testing.T) {
	r := &Resolver{Store: &fakeFinder{err: errors.New("sheet unreachable")}}

	res, err := r.Verify(context.Background(), "ANY")
	require.Error(t, err)
	assert.Nil(t, res)
}
