package dto

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceRecordResponse struct {
	ID             uuid.UUID  `json:"id"`
	EmployeeID     uuid.UUID  `json:"employee_id"`
	CheckInTime    time.Time  `json:"check_in_time"`
	CheckOutTime   *time.Time `json:"check_out_time,omitempty"`
	AttendanceDate string     `json:"attendance_date"`
}

// CheckInResultResponse is one entry of a check-in batch answer.
type CheckInResultResponse struct {
	EmployeeID uuid.UUID                 `json:"employee_id"`
	Outcome    string                    `json:"outcome"`
	Record     *AttendanceRecordResponse `json:"record,omitempty"`
}

type AttendanceListResponse struct {
	Records []AttendanceRecordResponse `json:"records"`
	Total   int64                      `json:"total"`
	Offset  int                        `json:"offset"`
	Limit   int                        `json:"limit"`
}
