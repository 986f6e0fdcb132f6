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

func addRecord(t *testing.T, repo *fakeAttendanceRepo, employeeID uuid.UUID, checkIn time.Time, hours float64) {
	t.Helper()

	record := &models.AttendanceRecord{
		EmployeeID:     employeeID,
		CheckInTime:    checkIn,
		AttendanceDate: models.DayOf(checkIn),
	}
	if hours > 0 {
		out := checkIn.Add(time.Duration(hours * float64(time.Hour)))
		record.CheckOutTime = &out
	}
	require.NoError(t, repo.Create(context.Background(), record))
}

func TestDailyReport(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)

	t.Run("sums hours and counts check-ins per employee", func(t *testing.T) {
		employees := newFakeEmployeeRepo()
		attendance := newFakeAttendanceRepo()
		svc := NewReportService(attendance, employees, nil)

		alice := seedEmployee(t, employees, "Alice")
		addRecord(t, attendance, alice, day.Add(9*time.Hour), 1.0)

		lines, err := svc.Daily(ctx, day)
		require.NoError(t, err)
		require.Len(t, lines, 1)

		assert.Equal(t, "Alice", lines[0].Name)
		assert.Equal(t, "engineer", lines[0].Role)
		assert.Equal(t, 1, lines[0].TotalCheckIns)
		assert.InDelta(t, 1.0, lines[0].TotalHours, 1e-9)
	})

	t.Run("open records count as check-ins with zero hours", func(t *testing.T) {
		employees := newFakeEmployeeRepo()
		attendance := newFakeAttendanceRepo()
		svc := NewReportService(attendance, employees, nil)

		alice := seedEmployee(t, employees, "Alice")

		addRecord(t, attendance, alice, day.Add(9*time.Hour), 0) // never checked out

		lines, err := svc.Daily(ctx, day)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].TotalCheckIns)
		assert.Zero(t, lines[0].TotalHours)
	})

	t.Run("employees without records in the window get no line", func(t *testing.T) {
		employees := newFakeEmployeeRepo()
		attendance := newFakeAttendanceRepo()
		svc := NewReportService(attendance, employees, nil)

		alice := seedEmployee(t, employees, "Alice")
		seedEmployee(t, employees, "Bob") // absent

		addRecord(t, attendance, alice, day.Add(9*time.Hour), 2.0)

		lines, err := svc.Daily(ctx, day)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, "Alice", lines[0].Name)
	})

	t.Run("record of an unknown employee fails the whole report", func(t *testing.T) {
		employees := newFakeEmployeeRepo()
		attendance := newFakeAttendanceRepo()
		svc := NewReportService(attendance, employees, nil)

		addRecord(t, attendance, uuid.New(), day.Add(9*time.Hour), 1.0)

		_, err := svc.Daily(ctx, day)
		assert.ErrorIs(t, err, services.ErrEmployeeMissing)
	})

	t.Run("finished days are served from the cache", func(t *testing.T) {
		employees := newFakeEmployeeRepo()
		attendance := newFakeAttendanceRepo()
		cache := newFakeReportCache()
		svc := NewReportService(attendance, employees, cache)

		alice := seedEmployee(t, employees, "Alice")
		addRecord(t, attendance, alice, day.Add(9*time.Hour), 1.5)

		first, err := svc.Daily(ctx, day)
		require.NoError(t, err)

		second, err := svc.Daily(ctx, day)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, cache.hits)
	})

	t.Run("today is never cached", func(t *testing.T) {
		employees := newFakeEmployeeRepo()
		attendance := newFakeAttendanceRepo()
		cache := newFakeReportCache()
		svc := NewReportService(attendance, employees, cache)

		today := time.Now().UTC()
		alice := seedEmployee(t, employees, "Alice")
		addRecord(t, attendance, alice, today, 0)

		_, err := svc.Daily(ctx, today)
		require.NoError(t, err)

		_, err = svc.Daily(ctx, today)
		require.NoError(t, err)
		assert.Zero(t, cache.hits)
		assert.Empty(t, cache.reports)
	})
}

func TestWeeklyReport(t *testing.T) {
	ctx := context.Background()
	monday := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)

	employees := newFakeEmployeeRepo()
	attendance := newFakeAttendanceRepo()
	svc := NewReportService(attendance, employees, nil)

	alice := seedEmployee(t, employees, "Alice")
	bob := seedEmployee(t, employees, "Bob")

	// Alice: 1.0h Monday, 2.5h Tuesday, open record Wednesday.
	addRecord(t, attendance, alice, monday.Add(9*time.Hour), 1.0)
	addRecord(t, attendance, alice, monday.AddDate(0, 0, 1).Add(9*time.Hour), 2.5)
	addRecord(t, attendance, alice, monday.AddDate(0, 0, 2).Add(9*time.Hour), 0)

	// Bob checks in later in the week.
	addRecord(t, attendance, bob, monday.AddDate(0, 0, 3).Add(8*time.Hour), 4.0)

	// Next Monday is outside the half-open window.
	addRecord(t, attendance, alice, monday.AddDate(0, 0, 7).Add(9*time.Hour), 8.0)

	lines, err := svc.Weekly(ctx, monday)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	// Grouped in order of first appearance.
	assert.Equal(t, "Alice", lines[0].Name)
	assert.Equal(t, 3, lines[0].TotalCheckIns)
	assert.InDelta(t, 3.5, lines[0].TotalHours, 1e-9)

	assert.Equal(t, "Bob", lines[1].Name)
	assert.Equal(t, 1, lines[1].TotalCheckIns)
	assert.InDelta(t, 4.0, lines[1].TotalHours, 1e-9)
}

func TestMonthlyReport(t *testing.T) {
	ctx := context.Background()

	t.Run("window is exactly the calendar month", func(t *testing.T) {
		employees := newFakeEmployeeRepo()
		attendance := newFakeAttendanceRepo()
		svc := NewReportService(attendance, employees, nil)

		alice := seedEmployee(t, employees, "Alice")

		// Leap-year February: the 29th belongs, March 1st does not.
		addRecord(t, attendance, alice, time.Date(2024, time.February, 29, 9, 0, 0, 0, time.UTC), 1.0)
		addRecord(t, attendance, alice, time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC), 1.0)

		lines, err := svc.Monthly(ctx, 2024, time.February)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].TotalCheckIns)
	})

	t.Run("thirty-day month does not leak its neighbor", func(t *testing.T) {
		employees := newFakeEmployeeRepo()
		attendance := newFakeAttendanceRepo()
		svc := NewReportService(attendance, employees, nil)

		alice := seedEmployee(t, employees, "Alice")

		addRecord(t, attendance, alice, time.Date(2024, time.April, 30, 9, 0, 0, 0, time.UTC), 1.0)
		addRecord(t, attendance, alice, time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC), 1.0)

		lines, err := svc.Monthly(ctx, 2024, time.April)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].TotalCheckIns)
	})

	t.Run("december rolls into january of the next year", func(t *testing.T) {
		employees := newFakeEmployeeRepo()
		attendance := newFakeAttendanceRepo()
		svc := NewReportService(attendance, employees, nil)

		alice := seedEmployee(t, employees, "Alice")

		addRecord(t, attendance, alice, time.Date(2024, time.December, 31, 9, 0, 0, 0, time.UTC), 1.0)
		addRecord(t, attendance, alice, time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC), 1.0)

		lines, err := svc.Monthly(ctx, 2024, time.December)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].TotalCheckIns)
	})

	t.Run("empty month yields an empty report", func(t *testing.T) {
		svc := NewReportService(newFakeAttendanceRepo(), newFakeEmployeeRepo(), nil)

		lines, err := svc.Monthly(ctx, 2024, time.June)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}
