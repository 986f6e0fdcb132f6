package serviceimpl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faceattend/domain/models"
	"faceattend/domain/services"
)

func TestEnroll(t *testing.T) {
	ctx := context.Background()
	image := []byte("jpeg bytes")

	t.Run("stores the first face signature", func(t *testing.T) {
		employees := newFakeEmployeeRepo()
		extractor := &fakeExtractor{signatures: [][]float32{{1, 2}, {3, 4}}}
		svc := NewEmployeeService(employees, newFakeAttendanceRepo(), extractor, nil)

		employee, err := svc.Enroll(ctx, "Alice", "engineer", image, "image/jpeg")
		require.NoError(t, err)

		assert.Equal(t, "Alice", employee.Name)
		assert.Equal(t, "engineer", employee.Role)
		assert.Equal(t, []float32{1, 2}, employee.Embedding.Slice())
		assert.NotEqual(t, uuid.Nil, employee.ID)
	})

	t.Run("rejects images without a face", func(t *testing.T) {
		employees := newFakeEmployeeRepo()
		extractor := &fakeExtractor{signatures: [][]float32{}}
		svc := NewEmployeeService(employees, newFakeAttendanceRepo(), extractor, nil)

		_, err := svc.Enroll(ctx, "Alice", "engineer", image, "image/jpeg")
		assert.ErrorIs(t, err, services.ErrNoFaceDetected)

		count, err := employees.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("invalidates the roster cache", func(t *testing.T) {
		employees := newFakeEmployeeRepo()
		cache := &fakeRosterCache{}
		extractor := &fakeExtractor{signatures: [][]float32{{1, 2}}}
		svc := NewEmployeeService(employees, newFakeAttendanceRepo(), extractor, cache)

		_, err := svc.Enroll(ctx, "Alice", "engineer", image, "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, 1, cache.invalidates)
	})
}

func TestEmployeeUpdate(t *testing.T) {
	ctx := context.Background()
	image := []byte("jpeg bytes")

	employees := newFakeEmployeeRepo()
	extractor := &fakeExtractor{signatures: [][]float32{{1, 2}}}
	cache := &fakeRosterCache{}
	svc := NewEmployeeService(employees, newFakeAttendanceRepo(), extractor, cache)

	enrolled, err := svc.Enroll(ctx, "Alice", "engineer", image, "image/jpeg")
	require.NoError(t, err)

	t.Run("changes name and role without touching the embedding", func(t *testing.T) {
		updated, err := svc.Update(ctx, enrolled.ID, "Alicia", "lead", nil, "")
		require.NoError(t, err)

		assert.Equal(t, "Alicia", updated.Name)
		assert.Equal(t, "lead", updated.Role)
		assert.Equal(t, []float32{1, 2}, updated.Embedding.Slice())
	})

	t.Run("a new image replaces the embedding", func(t *testing.T) {
		extractor.signatures = [][]float32{{9, 9}}

		updated, err := svc.Update(ctx, enrolled.ID, "", "", image, "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, []float32{9, 9}, updated.Embedding.Slice())
		assert.Positive(t, cache.invalidates)
	})

	t.Run("unknown employee is ErrEmployeeNotFound", func(t *testing.T) {
		_, err := svc.Update(ctx, uuid.New(), "Nobody", "", nil, "")
		assert.ErrorIs(t, err, services.ErrEmployeeNotFound)
	})
}

func TestEmployeeDelete(t *testing.T) {
	ctx := context.Background()
	image := []byte("jpeg bytes")

	t.Run("refused while attendance records exist", func(t *testing.T) {
		employees := newFakeEmployeeRepo()
		attendance := newFakeAttendanceRepo()
		extractor := &fakeExtractor{signatures: [][]float32{{1, 2}}}
		svc := NewEmployeeService(employees, attendance, extractor, nil)

		enrolled, err := svc.Enroll(ctx, "Alice", "engineer", image, "image/jpeg")
		require.NoError(t, err)

		now := time.Now().UTC()
		require.NoError(t, attendance.Create(ctx, &models.AttendanceRecord{
			EmployeeID:     enrolled.ID,
			CheckInTime:    now,
			AttendanceDate: models.DayOf(now),
		}))

		err = svc.Delete(ctx, enrolled.ID)
		assert.ErrorIs(t, err, services.ErrEmployeeHasRecords)

		_, err = svc.Get(ctx, enrolled.ID)
		assert.NoError(t, err)
	})

	t.Run("removes an employee without history", func(t *testing.T) {
		employees := newFakeEmployeeRepo()
		cache := &fakeRosterCache{}
		extractor := &fakeExtractor{signatures: [][]float32{{1, 2}}}
		svc := NewEmployeeService(employees, newFakeAttendanceRepo(), extractor, cache)

		enrolled, err := svc.Enroll(ctx, "Alice", "engineer", image, "image/jpeg")
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, enrolled.ID))

		_, err = svc.Get(ctx, enrolled.ID)
		assert.ErrorIs(t, err, services.ErrEmployeeNotFound)
		assert.Equal(t, 2, cache.invalidates)
	})
}
