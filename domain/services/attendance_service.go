package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"faceattend/domain/models"
)

var ErrRecordNotFound = errors.New("attendance record not found")

// CheckInOutcome is the per-employee result of a check-in batch.
type CheckInOutcome string

const (
	OutcomeCheckedIn        CheckInOutcome = "checked_in"
	OutcomeAlreadyCheckedIn CheckInOutcome = "already_checked_in"
)

// CheckInResult reports what happened for one employee in a CheckIn call.
// Record is set only when Outcome is OutcomeCheckedIn.
type CheckInResult struct {
	EmployeeID uuid.UUID
	Outcome    CheckInOutcome
	Record     *models.AttendanceRecord
}

// AttendanceService is the ledger: it owns the once-per-day invariant.
type AttendanceService interface {
	// HasCheckedInToday reports whether a record exists for the employee on
	// the calendar day of ref.
	HasCheckedInToday(ctx context.Context, employeeID uuid.UUID, ref time.Time) (bool, error)

	// CheckIn writes at most one record per employee for today. Employees
	// already checked in (or duplicated within ids) come back as
	// OutcomeAlreadyCheckedIn; everyone else gets a fresh record. Safe under
	// concurrent calls for the same employee: exactly one caller wins.
	CheckIn(ctx context.Context, ids []uuid.UUID) ([]CheckInResult, error)

	// CheckOut stamps the record's check-out time if it is not already set.
	// A second call is a no-op that returns the unchanged record.
	CheckOut(ctx context.Context, recordID uuid.UUID) (*models.AttendanceRecord, error)

	// Administrative record access. UpdateRecord applies arbitrary field
	// corrections without re-checking the once-per-day invariant; the caller
	// owns consistency on this path.
	GetRecord(ctx context.Context, recordID uuid.UUID) (*models.AttendanceRecord, error)
	ListRecords(ctx context.Context, offset, limit int) ([]models.AttendanceRecord, int64, error)
	UpdateRecord(ctx context.Context, recordID uuid.UUID, record *models.AttendanceRecord) (*models.AttendanceRecord, error)
	DeleteRecord(ctx context.Context, recordID uuid.UUID) error
}
