package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"faceattend/domain/models"
)

type AttendanceRepository interface {
	// Create inserts a new record. A (employee, attendance date) collision
	// with an existing row returns ErrDuplicateCheckIn.
	Create(ctx context.Context, record *models.AttendanceRecord) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.AttendanceRecord, error)
	List(ctx context.Context, offset, limit int) ([]models.AttendanceRecord, int64, error)

	// ExistsForDay reports whether a record exists for the employee with
	// attendance_date in the half-open interval [day, day+24h).
	ExistsForDay(ctx context.Context, employeeID uuid.UUID, day time.Time) (bool, error)

	// GetByDateRange returns records with attendance_date in [start, end),
	// ordered by check-in time then id so aggregation is deterministic.
	GetByDateRange(ctx context.Context, start, end time.Time) ([]models.AttendanceRecord, error)

	Update(ctx context.Context, id uuid.UUID, record *models.AttendanceRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error)
}
