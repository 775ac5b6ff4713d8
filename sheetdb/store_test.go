package sheetdb

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertTestRecord(t *testing.T, store *Store, partition, name, email, course string) string {
	t.Helper()
	id, err := store.Insert(context.Background(), partition, map[string]string{
		FieldFullName:     name,
		FieldEmailAddress: email,
		FieldCourseName:   course,
	})
	require.NoError(t, err)
	return id
}

func TestInsertThenGetByID(t *testing.T) {
	store, _ := newTestStore()

	id := insertTestRecord(t, store, "student", "Ravi Kumar", "ravi@example.com", "VLSI Design G10")
	assert.Equal(t, "student_2", id, "first data row lands under the header")

	rec, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "Ravi Kumar", rec.FullName())
	assert.Equal(t, "ravi@example.com", rec.Email())
	assert.Equal(t, "VLSI Design G10", rec.Course())
	assert.Equal(t, StatusPending, rec.Status())
	assert.Equal(t, "student", rec.Get(FieldCertificateType))
	assert.NotEmpty(t, rec.Get(FieldTimestamp))
}

func TestGetByIDEmptyRowIsNil(t *testing.T) {
	store, _ := newTestStore()
	insertTestRecord(t, store, "student", "Ravi", "ravi@example.com", "Java")

	rec, err := store.GetByID(context.Background(), "student_99")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestGetByIDInvalidID(t *testing.T) {
	store, _ := newTestStore()

	_, err := store.GetByID(context.Background(), "garbage")
	assert.Error(t, err)

	_, err = store.GetByID(context.Background(), "student_one")
	assert.Error(t, err)
}

func TestListFiltersBeforePagination(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		insertTestRecord(t, store, "student", fmt.Sprintf("Pending %d", i), fmt.Sprintf("p%d@example.com", i), "Python")
	}
	for i := 0; i < 3; i++ {
		id := insertTestRecord(t, store, "student", fmt.Sprintf("Issued %d", i), fmt.Sprintf("i%d@example.com", i), "Python")
		_, err := store.Update(ctx, id, map[string]string{FieldStatus: StatusIssued})
		require.NoError(t, err)
	}

	result, err := store.List(ctx, "student", ListOptions{Page: 1, Limit: 2, Status: StatusPending})
	require.NoError(t, err)

	assert.Equal(t, 5, result.Total, "total reflects the filtered count, not the partition size")
	assert.Equal(t, 3, result.TotalPages)
	assert.Len(t, result.Data, 2)
	for _, rec := range result.Data {
		assert.Equal(t, StatusPending, rec.Status())
	}
}

func TestListSearchMatchesNameEmailCourse(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	insertTestRecord(t, store, "student", "Ravi Kumar", "ravi@example.com", "VLSI Design")
	insertTestRecord(t, store, "student", "Asha Patel", "asha@example.com", "Cloud Computing")
	insertTestRecord(t, store, "student", "Vikram Singh", "vikram@ravi-mail.com", "Java")

	result, err := store.List(ctx, "student", ListOptions{Search: "RAVI"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total, "search is case-insensitive over name, email and course")

	result, err = store.List(ctx, "student", ListOptions{Search: "cloud"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "Asha Patel", result.Data[0].FullName())
}

func TestListEmptyPartition(t *testing.T) {
	store, _ := newTestStore()

	result, err := store.List(context.Background(), "trainee", ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Data)
}

func TestUpdatePreservesUntouchedFields(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	id := insertTestRecord(t, store, "student", "Ravi Kumar", "ravi@example.com", "VLSI Design G10")
	_, err := store.Update(ctx, id, map[string]string{FieldGPA: "9.2", FieldStatus: StatusGenerated})
	require.NoError(t, err)

	_, err = store.Update(ctx, id, map[string]string{FieldStatus: StatusRevoked})
	require.NoError(t, err)

	rec, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, StatusRevoked, rec.Status())
	assert.Equal(t, "9.2", rec.Get(FieldGPA), "fields absent from the patch keep their values")
	assert.Equal(t, "Ravi Kumar", rec.FullName())
	assert.Equal(t, "ravi@example.com", rec.Email())
}

func TestUpdateUnknownIDFails(t *testing.T) {
	store, _ := newTestStore()

	_, err := store.Update(context.Background(), "student_42", map[string]string{FieldStatus: StatusIssued})
	assert.Error(t, err)
}

func TestUpdateRejectsDuplicateVerificationCode(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	first := insertTestRecord(t, store, "student", "Ravi", "ravi@example.com", "Java")
	second := insertTestRecord(t, store, "student", "Asha", "asha@example.com", "Java")

	_, err := store.Update(ctx, first, map[string]string{FieldVerificationCode: "STUDENT_JAVA_G1_2025_0001"})
	require.NoError(t, err)

	_, err = store.Update(ctx, second, map[string]string{FieldVerificationCode: "STUDENT_JAVA_G1_2025_0001"})
	assert.Error(t, err, "verification codes are unique within a partition")

	// Re-assigning a record its own code is not a collision.
	_, err = store.Update(ctx, first, map[string]string{FieldVerificationCode: "STUDENT_JAVA_G1_2025_0001"})
	assert.NoError(t, err)
}

func TestFindByCodeScansAllPartitions(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	insertTestRecord(t, store, "student", "Ravi", "ravi@example.com", "Java")
	id := insertTestRecord(t, store, "trainee", "Asha", "asha@example.com", "Python")
	_, err := store.Update(ctx, id, map[string]string{FieldVerificationCode: "TRAINEE_PYTH_G2_2025_7421"})
	require.NoError(t, err)

	rec, err := store.FindByCode(ctx, "TRAINEE_PYTH_G2_2025_7421")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "trainee", rec.Partition)
	assert.Equal(t, "Asha", rec.FullName())

	rec, err = store.FindByCode(ctx, "UNKNOWN-CODE")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestStoreErrorsPropagate(t *testing.T) {
	store, client := newTestStore()
	ctx := context.Background()

	id := insertTestRecord(t, store, "student", "Ravi", "ravi@example.com", "Java")

	client.failAll = true

	_, err := store.List(ctx, "student", ListOptions{})
	assert.Error(t, err, "an I/O failure is a store error, not an empty result")

	_, err = store.GetByID(ctx, id)
	assert.Error(t, err)

	_, err = store.FindByCode(ctx, "ANY")
	assert.Error(t, err, "a partial scan is a failed lookup, not a not-found")
}

func TestStats(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	insertTestRecord(t, store, "student", "A", "a@example.com", "Java")
	id := insertTestRecord(t, store, "student", "B", "b@example.com", "Java")
	_, err := store.Update(ctx, id, map[string]string{FieldStatus: StatusIssued})
	require.NoError(t, err)
	insertTestRecord(t, store, "trainer", "C", "c@example.com", "Python")

	stats, err := store.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats["student"].Total)
	assert.Equal(t, 1, stats["student"].Pending)
	assert.Equal(t, 1, stats["student"].Issued)
	assert.Equal(t, 1, stats["trainer"].Pending)
	assert.Equal(t, 0, stats["trainee"].Total)
}

func TestUpdateWritesThroughFormLabeledColumns(t *testing.T) {
	store, client := newTestStore()
	ctx := context.Background()

	// A sheet whose header carries the Google Forms labels the alias table
	// anticipates, with a data row filled under those labels.
	client.sheets["sheet-student"] = [][]string{
		{"Status", "FULL NAME", "Email Address"},
		{StatusPending, "Ravi Kumar", "ravi@example.com"},
	}
	_, err := store.EnsureColumns(ctx, "student")
	require.NoError(t, err)

	_, err = store.Update(ctx, "student_2", map[string]string{FieldStatus: StatusRevoked})
	require.NoError(t, err)

	rec, err := store.GetByID(ctx, "student_2")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, StatusRevoked, rec.Status(), "form-labeled cell must not mask the patch")
	assert.Equal(t, "Ravi Kumar", rec.FullName())

	// The form-labeled cell itself carries the new value.
	assert.Equal(t, StatusRevoked, client.sheets["sheet-student"][1][0])
}

func TestInsertRejectsDuplicateVerificationCode(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.Insert(ctx, "student", map[string]string{
		FieldFullName:         "Ravi Kumar",
		FieldVerificationCode: "COMPLETION_VLSI_G10_2026_0001",
	})
	require.NoError(t, err)

	_, err = store.Insert(ctx, "student", map[string]string{
		FieldFullName:         "Sita Devi",
		FieldVerificationCode: "COMPLETION_VLSI_G10_2026_0001",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already assigned")
}

func TestConcurrentUpdatesSameCodeOnlyOneWins(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	first := insertTestRecord(t, store, "student", "Ravi Kumar", "ravi@example.com", "Python")
	second := insertTestRecord(t, store, "student", "Sita Devi", "sita@example.com", "Python")

	code := "COMPLETION_PYTH_G28_2026_0042"
	errs := make(chan error, 2)
	for _, id := range []string{first, second} {
		go func(id string) {
			_, err := store.Update(ctx, id, map[string]string{FieldVerificationCode: code})
			errs <- err
		}(id)
	}

	var failures int
	for i := 0; i < 2; i++ {
		if <-errs != nil {
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one assignment of the same code succeeds")

	rec, err := store.FindByCode(ctx, code)
	require.NoError(t, err)
	require.NotNil(t, rec)
}
