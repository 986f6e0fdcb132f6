package models

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord is one check-in (and optional check-out) for one employee
// on one calendar day. AttendanceDate holds the UTC day of CheckInTime,
// stored separately so day-range queries never re-derive it from the
// timestamp. The unique index on (employee_id, attendance_date) is the
// storage-level backstop for the once-per-day rule: at most one record may
// exist per employee per day.
type AttendanceRecord struct {
	ID             uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_attendance_employee_date,priority:1"`
	CheckInTime    time.Time `gorm:"not null"`
	CheckOutTime   *time.Time
	AttendanceDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_attendance_employee_date,priority:2"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Employee Employee `gorm:"foreignKey:EmployeeID"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// DayOf truncates t to its UTC calendar day. Both AttendanceDate values and
// the bounds of day-window queries go through this, so the two always agree.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
