package serviceimpl

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faceattend/domain/models"
	"faceattend/domain/repositories"
	"faceattend/domain/services"
)

func seedEmployeeWithVector(t *testing.T, repo *fakeEmployeeRepo, name string, embedding []float32) uuid.UUID {
	t.Helper()
	employee := &models.Employee{
		Name:      name,
		Role:      "engineer",
		Embedding: pgvector.NewVector(embedding),
	}
	require.NoError(t, repo.Create(context.Background(), employee))
	return employee.ID
}

func newRecognitionFixture(extractor *fakeExtractor, cache repositories.RosterCache) (services.RecognitionService, *fakeEmployeeRepo, *fakeAttendanceRepo) {
	employees := newFakeEmployeeRepo()
	attendance := newFakeAttendanceRepo()
	attendanceSvc := NewAttendanceService(attendance, employees, nil)
	return NewRecognitionService(extractor, employees, cache, attendanceSvc, 0), employees, attendance
}

func TestCheckInByImage(t *testing.T) {
	ctx := context.Background()
	image := []byte("jpeg bytes")

	t.Run("no face in the image is ErrNoFaceDetected", func(t *testing.T) {
		extractor := &fakeExtractor{signatures: [][]float32{}}
		svc, _, attendance := newRecognitionFixture(extractor, nil)

		_, err := svc.CheckInByImage(ctx, image, "image/jpeg", 0)
		assert.ErrorIs(t, err, services.ErrNoFaceDetected)
		assert.Zero(t, attendance.recordCount())
	})

	t.Run("extractor failure is propagated", func(t *testing.T) {
		boom := errors.New("face service down")
		extractor := &fakeExtractor{err: boom}
		svc, _, _ := newRecognitionFixture(extractor, nil)

		_, err := svc.CheckInByImage(ctx, image, "image/jpeg", 0)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("nobody recognized yields empty results and no records", func(t *testing.T) {
		extractor := &fakeExtractor{signatures: [][]float32{{50, 50}}}
		svc, employees, attendance := newRecognitionFixture(extractor, nil)

		seedEmployeeWithVector(t, employees, "Alice", []float32{0, 0})

		results, err := svc.CheckInByImage(ctx, image, "image/jpeg", 0)
		require.NoError(t, err)
		assert.Empty(t, results)
		assert.Zero(t, attendance.recordCount())
	})

	t.Run("recognized faces are checked in", func(t *testing.T) {
		extractor := &fakeExtractor{signatures: [][]float32{{0.1, 0.1}, {9.9, 10}}}
		svc, employees, attendance := newRecognitionFixture(extractor, nil)

		alice := seedEmployeeWithVector(t, employees, "Alice", []float32{0, 0})
		bob := seedEmployeeWithVector(t, employees, "Bob", []float32{10, 10})

		results, err := svc.CheckInByImage(ctx, image, "image/jpeg", 0)
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, alice, results[0].EmployeeID)
		assert.Equal(t, services.OutcomeCheckedIn, results[0].Outcome)
		assert.Equal(t, bob, results[1].EmployeeID)
		assert.Equal(t, services.OutcomeCheckedIn, results[1].Outcome)
		assert.Equal(t, 2, attendance.recordCount())
	})

	t.Run("same person twice in one image checks in once", func(t *testing.T) {
		extractor := &fakeExtractor{signatures: [][]float32{{0.1, 0}, {0, 0.1}}}
		svc, employees, attendance := newRecognitionFixture(extractor, nil)

		alice := seedEmployeeWithVector(t, employees, "Alice", []float32{0, 0})

		results, err := svc.CheckInByImage(ctx, image, "image/jpeg", 0)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, alice, results[0].EmployeeID)
		assert.Equal(t, 1, attendance.recordCount())
	})

	t.Run("tight threshold rejects a borderline face", func(t *testing.T) {
		extractor := &fakeExtractor{signatures: [][]float32{{0.4, 0}}}
		svc, employees, _ := newRecognitionFixture(extractor, nil)

		seedEmployeeWithVector(t, employees, "Alice", []float32{0, 0})

		// Within the default threshold, outside an explicit 0.25.
		results, err := svc.CheckInByImage(ctx, image, "image/jpeg", 0.25)
		require.NoError(t, err)
		assert.Empty(t, results)

		results, err = svc.CheckInByImage(ctx, image, "image/jpeg", 0)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("roster is cached after the first miss", func(t *testing.T) {
		extractor := &fakeExtractor{signatures: [][]float32{{0.1, 0.1}}}
		cache := &fakeRosterCache{}
		svc, employees, _ := newRecognitionFixture(extractor, cache)

		seedEmployeeWithVector(t, employees, "Alice", []float32{0, 0})

		_, err := svc.CheckInByImage(ctx, image, "image/jpeg", 0)
		require.NoError(t, err)
		assert.Equal(t, 1, cache.sets)
		assert.Equal(t, 1, employees.listCalls)

		_, err = svc.CheckInByImage(ctx, image, "image/jpeg", 0)
		require.NoError(t, err)
		assert.Equal(t, 1, cache.sets)
		assert.Equal(t, 1, employees.listCalls)
	})
}
