package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmployeeMissing means a stored attendance record points at an employee
// that no longer exists. Report generation fails loudly on it instead of
// silently dropping the rows.
var ErrEmployeeMissing = errors.New("attendance record references a missing employee")

// ReportLine is one employee's totals inside a report window. Derived, never
// persisted.
type ReportLine struct {
	EmployeeID    uuid.UUID `json:"employee_id"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	TotalCheckIns int       `json:"total_check_ins"`
	TotalHours    float64   `json:"total_hours"`
}

// ReportService folds attendance records over half-open time windows.
type ReportService interface {
	// Daily covers [day, day+24h) for the UTC day of date.
	Daily(ctx context.Context, date time.Time) ([]ReportLine, error)

	// Weekly covers [weekStart, weekStart+7d).
	Weekly(ctx context.Context, weekStart time.Time) ([]ReportLine, error)

	// Monthly covers [first of month, first of next month).
	Monthly(ctx context.Context, year int, month time.Month) ([]ReportLine, error)
}
